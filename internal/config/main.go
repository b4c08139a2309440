//nolint:mnd //no magic number
package config

import (
	"log/slog"
	"time"

	"github.com/xdoubleu/essentia/v2/pkg/config"
	str2duration "github.com/xhit/go-str2duration/v2"
)

type Config struct {
	Env           string
	Port          int
	WebURL        string
	SentryDsn     string
	SampleRate    float64
	Release       string
	PlanURL       string
	FetchStrategy string
	CurlPath      string
	FetchTimeout  time.Duration
	CacheTTL      time.Duration
	CacheMaxSize  int
}

func New(logger *slog.Logger) Config {
	var cfg Config

	parser := config.New(logger)

	cfg.Env = parser.EnvStr("ENV", config.ProdEnv)
	cfg.Port = parser.EnvInt("PORT", 8000)
	cfg.WebURL = parser.EnvStr("WEB_URL", "http://localhost:8000")
	cfg.SentryDsn = parser.EnvStr("SENTRY_DSN", "")
	cfg.SampleRate = parser.EnvFloat("SAMPLE_RATE", 1.0)
	cfg.Release = parser.EnvStr("RELEASE", config.DevEnv)

	cfg.PlanURL = parser.EnvStr("PLAN_URL", "https://plan.polsl.pl/plan.php")
	cfg.FetchStrategy = parser.EnvStr("FETCH_STRATEGY", "http")
	cfg.CurlPath = parser.EnvStr("CURL_PATH", "curl")
	cfg.FetchTimeout = mustDuration(parser.EnvStr("FETCH_TIMEOUT", "15s"))

	cfg.CacheTTL = mustDuration(parser.EnvStr("CACHE_TTL", "2h"))
	cfg.CacheMaxSize = parser.EnvInt("CACHE_MAX_SIZE", 128)

	return cfg
}

func mustDuration(value string) time.Duration {
	d, err := str2duration.ParseDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
