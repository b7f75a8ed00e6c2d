package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
	"github.com/Nazarious-ucu/local-forecast/internal/services/httpclient"
)

const tracerName = "local-forecast/locator"

type apiResponse struct {
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	City     string   `json:"city"`
	Country  string   `json:"country"`
	Timezone string   `json:"timezone"`
	Query    string   `json:"query"`
}

// Client resolves the public IP of this host to a location using ip-api.com.
type Client struct {
	baseURL string
	client  httpclient.HTTPClient
	logger  zerolog.Logger
}

// NewClient constructs a locator calling {baseURL}/json.
func NewClient(baseURL string, httpClient httpclient.HTTPClient, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "Locator").Logger()
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
		logger:  logger,
	}
}

// Locate returns the approximate location; every failure wraps
// models.ErrLocationUnavailable.
func (c *Client) Locate(ctx context.Context) (models.Location, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "locator.Locate")
	defer span.End()

	start := time.Now()
	url := c.baseURL + "/json"

	loc, err := c.locate(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("url", url).
			Msg("location lookup failed")
		return models.Location{}, fmt.Errorf("%w: %w", models.ErrLocationUnavailable, err)
	}

	span.SetAttributes(
		attribute.String("city", loc.City),
		attribute.Float64("latitude", loc.Latitude),
		attribute.Float64("longitude", loc.Longitude),
	)
	c.logger.Info().
		Ctx(ctx).
		Str("city", loc.City).
		Float64("lat", loc.Latitude).
		Float64("lon", loc.Longitude).
		Dur("duration_ms", time.Since(start)).
		Msg("location resolved")

	return loc, nil
}

func (c *Client) locate(ctx context.Context, url string) (models.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Location{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Location{}, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Error().
				Err(cerr).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return models.Location{}, fmt.Errorf("geolocation API error: status %s", resp.Status)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Location{}, fmt.Errorf("decode response: %w", err)
	}

	if raw.Status != "" && raw.Status != "success" {
		return models.Location{}, fmt.Errorf("geolocation API status %q: %s", raw.Status, raw.Message)
	}

	var missing []string
	if raw.Lat == nil {
		missing = append(missing, "lat")
	}
	if raw.Lon == nil {
		missing = append(missing, "lon")
	}
	if raw.City == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return models.Location{}, fmt.Errorf("response missing fields: %s", strings.Join(missing, ", "))
	}

	return models.Location{
		Latitude:  *raw.Lat,
		Longitude: *raw.Lon,
		City:      raw.City,
		Country:   raw.Country,
		Timezone:  raw.Timezone,
		Query:     raw.Query,
	}, nil
}
