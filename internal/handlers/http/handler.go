package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/local-forecast/internal/models"
)

const timeoutDuration = 10 * time.Second

type forecaster interface {
	Forecast(ctx context.Context) (models.ForecastView, error)
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

type errorPage struct {
	Status  int
	Message string
}

type Handler struct {
	service forecaster
	logger  zerolog.Logger
}

func NewHandler(svc forecaster, logger zerolog.Logger) *Handler {
	logger = logger.With().Str("component", "HTTPHandler").Logger()
	return &Handler{service: svc, logger: logger}
}

// GetWeatherPage
// @Summary Forecast page
// @Description Renders the forecast for the server's approximate location as HTML
// @Tags weather
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 500 {string} string "HTML error page"
// @Failure 502 {string} string "HTML error page"
// @Failure 503 {string} string "HTML error page"
// @Router /weather [get]
func (h *Handler) GetWeatherPage(c *gin.Context) {
	view, err := h.forecast(c)
	if err != nil {
		status, msg := statusFor(err)
		c.HTML(status, "error.html", errorPage{Status: status, Message: msg})
		return
	}

	c.HTML(http.StatusOK, "index.html", view)
}

// GetWeather
// @Summary Current forecast
// @Description Returns the forecast for the server's approximate location
// @Tags weather
// @Produce json
// @Success 200 {object} models.ForecastView
// @Failure 500 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/weather [get]
func (h *Handler) GetWeather(c *gin.Context) {
	view, err := h.forecast(c)
	if err != nil {
		status, msg := statusFor(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Health
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) forecast(c *gin.Context) (models.ForecastView, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	view, err := h.service.Forecast(ctx)
	if err != nil {
		h.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("path", c.FullPath()).
			Msg("forecast request failed")
		return models.ForecastView{}, err
	}
	return view, nil
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrLocationUnavailable):
		return http.StatusServiceUnavailable, "location unavailable"
	case errors.Is(err, models.ErrForecastUnavailable):
		return http.StatusBadGateway, "forecast unavailable"
	case errors.Is(err, models.ErrSchemaMismatch):
		return http.StatusBadGateway, "unexpected forecast format"
	case errors.Is(err, models.ErrFormatting):
		return http.StatusInternalServerError, "could not format forecast"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "forecast timed out"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
