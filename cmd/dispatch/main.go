package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/material-price-dispatch/pkg/logger"
)

// flagEnv maps each configuration flag to the environment variable it overrides.
var flagEnv = map[string]string{
	"zoho-refresh-token":  "ZOHO_REFRESH_TOKEN",
	"zoho-client-id":      "ZOHO_CLIENT_ID",
	"zoho-client-secret":  "ZOHO_CLIENT_SECRET",
	"user-ids":            "ZOHO_CLIQ_USER_IDS",
	"bot-name":            "ZOHO_BOT_NAME",
	"bot-unique-name":     "ZOHO_BOT_UNIQUE_NAME",
	"comments":            "ZOHO_CLIQ_COMMENTS",
	"bucket":              "AWS_S3_BUCKET",
	"file-key":            "AWS_S3_FILE_KEY",
	"region":              "AWS_REGION",
	"storage-driver":      "STORAGE_DRIVER",
	"storage-endpoint":    "AWS_S3_ENDPOINT",
	"scratch-dir":         "APP_SCRATCH_DIR",
	"log-level":           "LOG_LEVEL",
	"log-format":          "LOG_FORMAT",
	"metrics-pushgateway": "METRICS_PUSHGATEWAY_URL",
}

func stringFlag(name, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    name,
		Usage:   usage,
		EnvVars: []string{flagEnv[name]},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dispatch",
		Usage: "Download the material price file from S3 and send it to Zoho Cliq users",
		Flags: []cli.Flag{
			stringFlag("zoho-refresh-token", "Zoho OAuth refresh token"),
			stringFlag("zoho-client-id", "Zoho OAuth client ID"),
			stringFlag("zoho-client-secret", "Zoho OAuth client secret"),
			stringFlag("user-ids", "Comma-separated Cliq user IDs"),
			stringFlag("bot-name", "Bot display name sent with each file"),
			stringFlag("bot-unique-name", "Bot unique name used in the files endpoint"),
			stringFlag("comments", "Comma-separated comments attached to the file"),
			stringFlag("bucket", "S3 bucket name"),
			stringFlag("file-key", "S3 object key"),
			stringFlag("region", "S3 region"),
			stringFlag("storage-driver", "Storage driver: minio or s3compat"),
			stringFlag("storage-endpoint", "S3 endpoint host"),
			stringFlag("scratch-dir", "Directory for the temporary download"),
			stringFlag("log-level", "Log level"),
			stringFlag("log-format", "Log format: console or json"),
			stringFlag("metrics-pushgateway", "Prometheus Pushgateway URL"),
			&cli.BoolFlag{
				Name:  "report-json",
				Usage: "Print the run report as JSON on stdout",
			},
		},
		Action: runDispatch,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("dispatch failed")
		stop()
		os.Exit(1)
	}
}
