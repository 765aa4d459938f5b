package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/moniecodes/SAR-Logging/internal/app"
	"github.com/moniecodes/SAR-Logging/internal/client"
	"github.com/moniecodes/SAR-Logging/internal/config"
	"github.com/moniecodes/SAR-Logging/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stdout)

	a, err := app.NewFromAWS(context.Background(), cfg, client.AuthOptions{}, log)
	if err != nil {
		log.Error("failed to create AWS clients", "error", err)
		os.Exit(1)
	}
	lambda.Start(a.ExistingLogGroups)
}
