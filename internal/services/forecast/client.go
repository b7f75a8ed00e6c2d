package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
	"github.com/Nazarious-ucu/local-forecast/internal/services/httpclient"
)

const (
	tracerName      = "local-forecast/forecast"
	maxErrorPreview = 200
)

type apiError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// ClientOpenMeteo fetches raw forecasts from the Open-Meteo forecast API.
type ClientOpenMeteo struct {
	apiURL string
	params Params
	client httpclient.HTTPClient
	logger zerolog.Logger
}

// NewClientOpenMeteo constructs a forecast client. httpClient is expected to
// carry the cache and retry decorators.
func NewClientOpenMeteo(apiURL string, params Params,
	httpClient httpclient.HTTPClient, logger zerolog.Logger,
) *ClientOpenMeteo {
	logger = logger.With().Str("component", "OpenMeteo").Logger()
	return &ClientOpenMeteo{apiURL: apiURL, params: params, client: httpClient, logger: logger}
}

// Params returns the variable names the client requests.
func (s *ClientOpenMeteo) Params() Params {
	return s.params
}

// URL returns the request URL for a location.
func (s *ClientOpenMeteo) URL(loc models.Location) string {
	return s.apiURL + "?" + s.params.Query(loc.Latitude, loc.Longitude).Encode()
}

// Fetch returns the raw 200 response body for loc. Failures wrap
// models.ErrForecastUnavailable.
func (s *ClientOpenMeteo) Fetch(ctx context.Context, loc models.Location) ([]byte, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "forecast.Fetch")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("latitude", loc.Latitude),
		attribute.Float64("longitude", loc.Longitude),
	)

	start := time.Now()
	url := s.URL(loc)

	s.logger.Debug().
		Ctx(ctx).
		Str("city", loc.City).
		Str("url", url).
		Msg("starting Open-Meteo request")

	body, cacheStatus, err := s.fetch(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", loc.City).
			Str("url", url).
			Msg("forecast fetch failed")
		return nil, fmt.Errorf("%w: %w", models.ErrForecastUnavailable, err)
	}

	span.SetAttributes(attribute.String("cache", cacheStatus))
	s.logger.Info().
		Ctx(ctx).
		Str("city", loc.City).
		Str("cache", cacheStatus).
		Int("bytes", len(body)).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched forecast data")

	return body, nil
}

func (s *ClientOpenMeteo) fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().
				Err(cerr).
				Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("Open-Meteo API error: status %s: %s", resp.Status, errorReason(body))
	}

	return body, resp.Header.Get(httpclient.CacheStatusHeader), nil
}

func errorReason(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Reason != "" {
		return e.Reason
	}
	if len(body) > maxErrorPreview {
		body = body[:maxErrorPreview]
	}
	return string(body)
}
