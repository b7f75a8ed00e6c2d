package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Server struct {
	Host        string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout int    `envconfig:"SERVER_TIMEOUT" default:"10"`
}

type Locator struct {
	URL   string  `envconfig:"LOCATOR_URL" default:"http://ip-api.com"`
	Rate  float64 `envconfig:"LOCATOR_RATE" default:"0.75"`
	Burst int     `envconfig:"LOCATOR_BURST" default:"3"`
}

type Forecast struct {
	URL      string `envconfig:"FORECAST_URL" default:"https://api.open-meteo.com/v1/forecast"`
	Timezone string `envconfig:"FORECAST_TIMEZONE" default:"auto"`
}

type Retry struct {
	Count   uint64        `envconfig:"RETRY_COUNT" default:"5"`
	Backoff time.Duration `envconfig:"RETRY_BACKOFF" default:"200ms"`
}

type Cache struct {
	Backend string        `envconfig:"CACHE_BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"CACHE_TTL" default:"1h"`
}

type Redis struct {
	Host   string `envconfig:"REDIS_HOST" default:"localhost"`
	Port   string `envconfig:"REDIS_PORT" default:"6379"`
	DbType int    `envconfig:"REDIS_DB_TYPE" default:"0"`
}

type Breaker struct {
	TimeInterval int    `envconfig:"BREAKER_INTERVAL" default:"30"`
	TimeTimeOut  int    `envconfig:"BREAKER_TIMEOUT" default:"10"`
	RepeatNumber uint32 `envconfig:"BREAKER_REPEAT_NUM" default:"5"`
}

type DB struct {
	Source string `envconfig:"DB_NAME" default:"forecast.db"`
}

type Warmer struct {
	Spec string `envconfig:"WARMER_SPEC" default:""`
}

type Tracing struct {
	ZipkinURL   string `envconfig:"ZIPKIN_URL" default:""`
	ServiceName string `envconfig:"TRACING_SERVICE_NAME" default:"local-forecast"`
}

type Config struct {
	Server   Server
	Locator  Locator
	Forecast Forecast
	Retry    Retry
	Cache    Cache
	Redis    Redis
	Breaker  Breaker
	DB       DB
	Warmer   Warmer
	Tracing  Tracing

	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogsPath     string `envconfig:"LOGS_PATH" default:"./log/local-forecast.log"`
	HTTPLogsPath string `envconfig:"HTTP_LOGS_PATH" default:"./log/outbound-http.log"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (r Redis) Address() string {
	return r.Host + ":" + r.Port
}
