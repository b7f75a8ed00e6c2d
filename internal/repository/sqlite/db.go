package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"
	dialect    = "sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// CreateSqliteDb opens (creating if needed) the database file and checks the connection.
func CreateSqliteDb(ctx context.Context, name string) (*sql.DB, error) {
	if name == "" {
		return nil, errors.New("database name cannot be empty")
	}
	connectionString := "file:" + name + "?cache=shared&mode=rwc"
	db, err := sql.Open(driverName, connectionString)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// InitSqliteDb applies the embedded migrations.
func InitSqliteDb(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, "migrations")
}
