package warmer

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
)

const timeoutDuration = 30 * time.Second

// Run results, used as metric labels.
const (
	ResultSuccess = "success"
	ResultStale   = "stale"
	ResultError   = "error"
)

var ErrEmptySpec = errors.New("warmer schedule is empty")

type forecaster interface {
	Forecast(ctx context.Context) (models.ForecastView, error)
}

type recorder interface {
	ObserveWarmerRun(result string, d time.Duration)
}

// Warmer periodically builds the forecast so the response cache and the
// snapshot store stay fresh between page views.
type Warmer struct {
	service forecaster
	logger  zerolog.Logger
	m       recorder
	cron    *cron.Cron
	spec    string
	cancel  context.CancelFunc
}

// New constructs a Warmer for a seconds-enabled cron spec, e.g. "0 */15 * * * *".
func New(service forecaster, spec string, logger zerolog.Logger, m recorder) *Warmer {
	logger = logger.With().Str("component", "Warmer").Logger()
	return &Warmer{
		service: service,
		logger:  logger,
		m:       m,
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
	}
}

// Start schedules the job. It does not block.
func (w *Warmer) Start(ctx context.Context) error {
	if w.spec == "" {
		return ErrEmptySpec
	}

	ctx, cancel := context.WithCancel(ctx)

	if _, err := w.cron.AddFunc(w.spec, func() { w.RunOnce(ctx) }); err != nil {
		cancel()
		w.logger.Error().Err(err).Str("spec", w.spec).Msg("failed to schedule warm-up job")
		return err
	}

	w.cancel = cancel
	w.cron.Start()
	w.logger.Info().Str("spec", w.spec).Msg("forecast warmer started")
	return nil
}

// Stop cancels the running job, if any, and waits for it to return.
func (w *Warmer) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info().Msg("forecast warmer stopped")
}

// RunOnce builds one forecast and reports the result.
func (w *Warmer) RunOnce(ctx context.Context) string {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	result := ResultSuccess
	view, err := w.service.Forecast(ctx)
	switch {
	case err != nil:
		result = ResultError
		w.logger.Error().Err(err).Msg("warm-up run failed")
	case view.Stale:
		result = ResultStale
		w.logger.Warn().Str("reason", view.StaleReason).Msg("warm-up run served a stale forecast")
	default:
		w.logger.Debug().Str("city", view.City).Msg("warm-up run completed")
	}

	w.m.ObserveWarmerRun(result, time.Since(start))
	return result
}
