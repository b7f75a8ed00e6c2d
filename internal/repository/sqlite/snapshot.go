package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
)

var ErrNoSnapshot = errors.New("no forecast snapshot stored")

// DefaultKeep is how many snapshots survive a Save.
const DefaultKeep = 48

// SnapshotRepository stores the last successfully built forecast views.
type SnapshotRepository struct {
	DB   *sql.DB
	log  zerolog.Logger
	keep int
	now  func() time.Time
}

func NewSnapshotRepository(db *sql.DB, logger zerolog.Logger, keep int) *SnapshotRepository {
	if keep <= 0 {
		keep = DefaultKeep
	}
	logger = logger.With().Str("component", "SnapshotRepository").Logger()
	return &SnapshotRepository{DB: db, log: logger, keep: keep, now: time.Now}
}

// Save inserts view and prunes everything but the newest keep rows.
func (r *SnapshotRepository) Save(ctx context.Context, view models.ForecastView) error {
	payload, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.log.Error().Err(rbErr).Ctx(ctx).Msg("failed to rollback snapshot tx")
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO forecast_snapshots (city, payload, created_at) VALUES (?, ?, ?)`,
		view.City, string(payload), r.now().UnixMilli(),
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to insert snapshot")
		return err
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM forecast_snapshots
		 WHERE id NOT IN (SELECT id FROM forecast_snapshots ORDER BY id DESC LIMIT ?)`,
		r.keep,
	)
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to prune snapshots")
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	pruned, _ := res.RowsAffected()
	r.log.Debug().Ctx(ctx).
		Str("city", view.City).
		Int64("pruned", pruned).
		Msg("snapshot saved")
	return nil
}

// Latest returns the most recently saved view or ErrNoSnapshot.
func (r *SnapshotRepository) Latest(ctx context.Context) (models.ForecastView, error) {
	var payload string
	err := r.DB.QueryRowContext(ctx,
		`SELECT payload FROM forecast_snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ForecastView{}, ErrNoSnapshot
	}
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Msg("failed to query latest snapshot")
		return models.ForecastView{}, err
	}

	var view models.ForecastView
	if err := json.Unmarshal([]byte(payload), &view); err != nil {
		return models.ForecastView{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return view, nil
}

// Count returns the number of stored snapshots.
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM forecast_snapshots`).Scan(&n)
	return n, err
}
