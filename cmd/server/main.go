package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-api-bootstrap/internal/bootstrap"
	"github.com/MKhiriev/go-api-bootstrap/internal/config"
	"github.com/MKhiriev/go-api-bootstrap/internal/logger"
	"github.com/MKhiriev/go-api-bootstrap/internal/metrics"
	"github.com/MKhiriev/go-api-bootstrap/internal/openapi"
	"github.com/MKhiriev/go-api-bootstrap/internal/routes"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("api-server").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" && buildVersion != "N/A" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewLogger(cfg.App.Name)
	if err := log.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	docs := openapi.Load(ctx, openapi.Source{
		Location:     cfg.OpenAPI.SpecPath,
		FetchTimeout: cfg.OpenAPI.FetchTimeout,
		Options: openapi.Options{
			ValidateResponses: cfg.OpenAPI.ValidateResponses,
			MaxBodyBytes:      cfg.OpenAPI.MaxBodyBytes,
		},
	}, log)

	recorder := metrics.New(cfg.App.Name)
	registry := routes.Registry(cfg.App, docs, recorder.Handler())

	res := bootstrap.Start(ctx, bootstrap.NewDependencies(cfg, log, docs, recorder, registry))
	if res.Err != nil {
		// already logged by Start
		stop()
		os.Exit(1)
	}

	if err := res.Server.Run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
