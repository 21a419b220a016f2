package main

import (
	"flag"
	"fmt"
	"os"

	"heat-optimizer/internal/api"
	"heat-optimizer/internal/app"
	"heat-optimizer/internal/logger"
	"heat-optimizer/internal/metrics"
	"heat-optimizer/internal/optimizer"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("API_CONFIG"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := app.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := logger.Setup(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New("api")

	// Environment overrides the file
	port := os.Getenv("API_PORT")
	if port == "" {
		port = cfg.Server.Port
	}
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	recorder, err := metrics.NewPromRecorder()
	if err != nil {
		log.Fatal().Err(err).Msg("register metrics")
	}
	svc, err := app.New(cfg, optimizer.WithRecorder(recorder))
	if err != nil {
		log.Fatal().Err(err).Msg("initialise")
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error().Err(err).Msg("close result store")
		}
	}()

	router := api.NewRouter(api.Deps{
		Catalog:        svc.Catalog,
		Defaults:       svc.Defaults,
		Demand:         svc.Demand,
		Store:          svc.Store,
		Engine:         svc.Engine,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Gatherer:       prometheus.DefaultGatherer,
	}, log)

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Int("units", len(svc.Catalog.List())).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}
