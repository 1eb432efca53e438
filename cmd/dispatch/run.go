package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/material-price-dispatch/internal/auth"
	"github.com/andresuchdata/material-price-dispatch/internal/cliq"
	"github.com/andresuchdata/material-price-dispatch/internal/config"
	"github.com/andresuchdata/material-price-dispatch/internal/domain"
	"github.com/andresuchdata/material-price-dispatch/internal/metrics"
	"github.com/andresuchdata/material-price-dispatch/internal/service"
	"github.com/andresuchdata/material-price-dispatch/internal/storage"
	"github.com/andresuchdata/material-price-dispatch/pkg/logger"
)

// Exit codes for fatal precondition failures. Upload failures never change the exit code.
const (
	exitConfiguration = 2
	exitAuth          = 3
	exitStorage       = 4
)

func flagOverrides(c *cli.Context) map[string]string {
	overrides := make(map[string]string)
	for name, env := range flagEnv {
		if c.IsSet(name) {
			overrides[env] = c.String(name)
		}
	}
	return overrides
}

func runDispatch(c *cli.Context) error {
	cfg, err := config.Load(flagOverrides(c))
	if err != nil {
		return exitError(err)
	}

	logger.SetLevel(cfg.App.LogLevel)
	logger.SetFormat(cfg.App.LogFormat)

	store, err := storage.New(storage.Options{
		Driver:    cfg.Storage.Driver,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Region:    cfg.Storage.Region,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return exitError(&domain.StorageError{Bucket: cfg.Storage.Bucket, Key: cfg.Storage.FileKey, Err: err})
	}

	svc := service.NewDispatchService(
		auth.NewZohoRefresher(cfg.Zoho.TokenURL, nil),
		service.NewObjectFetcher(store, cfg.App.ScratchDir),
		service.NewFileDistributor(
			cliq.NewClient(cfg.Zoho.CliqAPIURL, cfg.Zoho.BotUniqueName, cfg.Zoho.HTTPTimeout),
			cfg.Zoho.BotName,
			cfg.Zoho.Comments,
		),
	)

	recorder, err := metrics.NewRecorder(cliq.Collectors()...)
	if err != nil {
		return err
	}

	start := time.Now()
	report, runErr := svc.Run(c.Context, service.DispatchOptions{
		Credentials: cfg.Zoho.Credentials(),
		Source:      cfg.Storage.Location(),
		Recipients:  cfg.Zoho.UserIDs,
	})
	if runErr != nil {
		recorder.ObserveFailure(runErr, time.Since(start))
	} else {
		recorder.ObserveRun(report, time.Since(start))
	}

	if cfg.Metrics.PushgatewayURL != "" {
		if err := recorder.Push(c.Context, cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName); err != nil {
			logger.Log.Warn().Err(err).Msg("metrics push failed")
		}
	}

	if runErr != nil {
		return exitError(runErr)
	}

	if c.Bool("report-json") {
		if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	}
	logger.Log.Info().Msg("done")
	return nil
}

// exitError maps fatal errors to process exit codes.
func exitError(err error) error {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return cli.Exit(err.Error(), exitConfiguration)
	case errors.Is(err, domain.ErrAuth):
		return cli.Exit(err.Error(), exitAuth)
	case errors.Is(err, domain.ErrStorage):
		return cli.Exit(err.Error(), exitStorage)
	default:
		return cli.Exit(err.Error(), 1)
	}
}
