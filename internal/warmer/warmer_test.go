package warmer_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
	"github.com/Nazarious-ucu/local-forecast/internal/warmer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockForecaster struct {
	mock.Mock
	calls atomic.Int32
}

func (m *mockForecaster) Forecast(ctx context.Context) (models.ForecastView, error) {
	m.calls.Add(1)
	args := m.Called(ctx)
	view, ok := args.Get(0).(models.ForecastView)
	if !ok {
		return models.ForecastView{}, args.Error(1)
	}
	return view, args.Error(1)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveWarmerRun(result string, d time.Duration) {
	m.Called(result, d)
}

func TestWarmer_RunOnce(t *testing.T) {
	cases := []struct {
		name string
		view models.ForecastView
		err  error
		want string
	}{
		{name: "Success", view: models.ForecastView{City: "Lviv"}, want: warmer.ResultSuccess},
		{name: "Stale", view: models.ForecastView{City: "Lviv", Stale: true, StaleReason: "forecast unavailable"}, want: warmer.ResultStale},
		{name: "Error", err: models.ErrLocationUnavailable, want: warmer.ResultError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockForecaster{}
			rec := &mockRecorder{}
			svc.On("Forecast", mock.Anything).Return(tc.view, tc.err)
			rec.On("ObserveWarmerRun", tc.want, mock.AnythingOfType("time.Duration")).Return()

			w := warmer.New(svc, "", zerolog.Nop(), rec)
			assert.Equal(t, tc.want, w.RunOnce(context.Background()))

			rec.AssertExpectations(t)
		})
	}
}

func TestWarmer_StartRequiresSpec(t *testing.T) {
	w := warmer.New(&mockForecaster{}, "", zerolog.Nop(), &mockRecorder{})
	assert.ErrorIs(t, w.Start(context.Background()), warmer.ErrEmptySpec)
}

func TestWarmer_StartInvalidSpec(t *testing.T) {
	w := warmer.New(&mockForecaster{}, "not a cron spec", zerolog.Nop(), &mockRecorder{})
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}

func TestWarmer_RunsOnSchedule(t *testing.T) {
	svc := &mockForecaster{}
	rec := &mockRecorder{}
	svc.On("Forecast", mock.Anything).Return(models.ForecastView{City: "Lviv"}, nil)
	rec.On("ObserveWarmerRun", warmer.ResultSuccess, mock.Anything).Return()

	w := warmer.New(svc, "* * * * * *", zerolog.Nop(), rec)
	require.NoError(t, w.Start(context.Background()))

	assert.Eventually(t, func() bool { return svc.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	w.Stop()
}

func TestWarmer_StopCancelsRunningJob(t *testing.T) {
	svc := &mockForecaster{}
	rec := &mockRecorder{}
	started := make(chan struct{}, 1)
	svc.On("Forecast", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			select {
			case started <- struct{}{}:
			default:
			}
			<-ctx.Done()
		}).
		Return(models.ForecastView{}, errors.New("canceled"))
	rec.On("ObserveWarmerRun", warmer.ResultError, mock.Anything).Return()

	w := warmer.New(svc, "* * * * * *", zerolog.Nop(), rec)
	require.NoError(t, w.Start(context.Background()))

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("warm-up job never started")
	}

	w.Stop()
	rec.AssertCalled(t, "ObserveWarmerRun", warmer.ResultError, mock.Anything)
}
