package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/sentrytools"
	"sutplan.dev/internal/clients/plan"
	"sutplan.dev/internal/config"
	"sutplan.dev/internal/repositories"
	"sutplan.dev/internal/services"
)

type Application struct {
	logger   *slog.Logger
	config   config.Config
	services *services.Services
}

//	@title			SUT Plan API
//	@version		1.0
//	@license.name	GPL-3.0
//	@Produce		json

func main() {
	cfg := config.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	logger := slog.New(sentrytools.NewLogHandler(cfg.Env,
		slog.NewTextHandler(os.Stdout, nil)))

	app := NewApplication(logger, cfg, newFetcher(logger, cfg))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,  //nolint:mnd //no magic number
		WriteTimeout: 30 * time.Second, //nolint:mnd //upstream fetch is slow
	}
	err := httptools.Serve(logger, srv, cfg.Env)
	if err != nil {
		logger.Error("failed to serve server", logging.ErrAttr(err))
	}
}

func NewApplication(
	logger *slog.Logger,
	cfg config.Config,
	fetcher plan.Fetcher,
) *Application {
	repos := repositories.New(cfg.CacheMaxSize, cfg.CacheTTL)

	return &Application{
		logger:   logger,
		config:   cfg,
		services: services.New(logger, repos, fetcher),
	}
}

func newFetcher(logger *slog.Logger, cfg config.Config) plan.Fetcher {
	// The plan server rejects some TLS stacks; the curl strategy uses the
	// system TLS fingerprint instead of Go's.
	if cfg.FetchStrategy == "curl" {
		return plan.NewCurlClient(logger, cfg.CurlPath, cfg.PlanURL, cfg.FetchTimeout)
	}

	return plan.New(logger, cfg.PlanURL, cfg.FetchTimeout)
}
