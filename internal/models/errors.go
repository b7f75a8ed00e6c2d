package models

import "errors"

var (
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrForecastUnavailable = errors.New("forecast unavailable")
	ErrSchemaMismatch      = errors.New("forecast response schema mismatch")
	ErrFormatting          = errors.New("forecast formatting failed")
)
