package weather

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
	"github.com/Nazarious-ucu/local-forecast/internal/services/forecast"
	"github.com/Nazarious-ucu/local-forecast/internal/services/metrics"
	"github.com/Nazarious-ucu/local-forecast/internal/services/presenter"
)

const tracerName = "local-forecast/weather"

// snapshotTimeout bounds snapshot reads and writes, which outlive the request deadline.
const snapshotTimeout = time.Second

// Pipeline stages, used as metric labels.
const (
	StageLocate = "locate"
	StageFetch  = "fetch"
	StageDecode = "decode"
	StageBuild  = "build"
)

type locator interface {
	Locate(ctx context.Context) (models.Location, error)
}

type fetcher interface {
	Fetch(ctx context.Context, loc models.Location) ([]byte, error)
	Params() forecast.Params
}

type snapshotStore interface {
	Save(ctx context.Context, view models.ForecastView) error
	Latest(ctx context.Context) (models.ForecastView, error)
}

type recorder interface {
	ObserveForecast(outcome string)
	ObserveStageError(stage string)
}

// Option customises a ServiceProvider.
type Option func(*ServiceProvider)

// WithClock replaces time.Now as the source of the page timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceProvider) { s.now = now }
}

// WithSnapshots enables the last-good fallback.
func WithSnapshots(store snapshotStore) Option {
	return func(s *ServiceProvider) { s.snapshots = store }
}

// ServiceProvider runs locate, fetch, decode and build for one request.
type ServiceProvider struct {
	locator   locator
	fetcher   fetcher
	snapshots snapshotStore
	metrics   recorder
	logger    zerolog.Logger
	now       func() time.Time
}

func NewService(logger zerolog.Logger, m recorder, loc locator, f fetcher, opts ...Option) *ServiceProvider {
	s := &ServiceProvider{
		locator: loc,
		fetcher: f,
		metrics: m,
		logger:  logger.With().Str("component", "WeatherService").Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Forecast returns the view for the caller's location. When a stage fails and
// a snapshot exists, the snapshot is returned marked stale instead of the error.
func (s *ServiceProvider) Forecast(ctx context.Context) (models.ForecastView, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "weather.Forecast")
	defer span.End()

	view, stage, err := s.build(ctx)
	if err == nil {
		s.metrics.ObserveForecast(metrics.OutcomeFresh)
		s.save(ctx, view)
		span.SetAttributes(attribute.String("outcome", metrics.OutcomeFresh))
		return view, nil
	}

	s.metrics.ObserveStageError(stage)
	span.RecordError(err)
	s.logger.Error().
		Ctx(ctx).
		Err(err).
		Str("stage", stage).
		Msg("forecast pipeline failed")

	stale, ok := s.latest(ctx)
	if !ok {
		s.metrics.ObserveForecast(metrics.OutcomeFailed)
		span.SetStatus(codes.Error, err.Error())
		return models.ForecastView{}, err
	}

	stale.Stale = true
	stale.StaleReason = err.Error()
	s.metrics.ObserveForecast(metrics.OutcomeDegraded)
	span.SetAttributes(attribute.String("outcome", metrics.OutcomeDegraded))
	s.logger.Warn().
		Ctx(ctx).
		Str("city", stale.City).
		Time("generated_at", stale.GeneratedAt).
		Msg("serving last good forecast")
	return stale, nil
}

func (s *ServiceProvider) build(ctx context.Context) (models.ForecastView, string, error) {
	loc, err := s.locator.Locate(ctx)
	if err != nil {
		return models.ForecastView{}, StageLocate, err
	}

	body, err := s.fetcher.Fetch(ctx, loc)
	if err != nil {
		return models.ForecastView{}, StageFetch, err
	}

	var fc models.Forecast
	err = traced(ctx, "forecast.Decode", func(trace.Span) error {
		fc, err = forecast.Decode(body, s.fetcher.Params())
		return err
	})
	if err != nil {
		return models.ForecastView{}, StageDecode, err
	}

	var view models.ForecastView
	err = traced(ctx, "presenter.Build", func(span trace.Span) error {
		view, err = presenter.Build(s.now(), loc, fc)
		span.SetAttributes(attribute.Int("hourly_entries", len(view.HourlyForecast)))
		return err
	})
	if err != nil {
		return models.ForecastView{}, StageBuild, err
	}

	s.logger.Info().
		Ctx(ctx).
		Str("city", view.City).
		Int("current_temp", view.CurrentTemp).
		Msg("forecast built")
	return view, "", nil
}

func (s *ServiceProvider) save(ctx context.Context, view models.ForecastView) {
	if s.snapshots == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
	defer cancel()

	if err := s.snapshots.Save(ctx, view); err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("failed to save forecast snapshot")
	}
}

func (s *ServiceProvider) latest(ctx context.Context) (models.ForecastView, bool) {
	if s.snapshots == nil {
		return models.ForecastView{}, false
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotTimeout)
	defer cancel()

	view, err := s.snapshots.Latest(ctx)
	if err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Msg("no snapshot to fall back to")
		return models.ForecastView{}, false
	}
	return view, true
}

func traced(ctx context.Context, name string, fn func(trace.Span) error) error {
	_, span := otel.Tracer(tracerName).Start(ctx, name)
	defer span.End()

	if err := fn(span); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
