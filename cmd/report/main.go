package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pennywise-fin/pennywise/internal/aggregate"
	"github.com/pennywise-fin/pennywise/internal/config"
	"github.com/pennywise-fin/pennywise/internal/dynamo"
	"github.com/pennywise-fin/pennywise/internal/logger"
	"github.com/pennywise-fin/pennywise/internal/publish"
	"github.com/pennywise-fin/pennywise/internal/report"
	"github.com/pennywise-fin/pennywise/internal/reportrun"
)

func main() {
	// Initialize structured logger
	log := logger.NewConsole()

	// Parse CLI flags
	month := flag.String("month", "", "Target month in YYYY-MM form (default: previous month)")
	out := flag.String("out", "", "Local output directory (default: REPORTS_OUTPUT_DIR)")
	overall := flag.Bool("overall", false, "Also generate the cross-month overall summary")
	flag.Parse()

	cfg := config.Load()
	if *out != "" {
		cfg.OutputDir = *out
	}
	if err := cfg.ValidateReport(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS configuration")
	}

	runner := reportrun.New(
		dynamo.New(dynamodb.NewFromConfig(awsCfg), cfg.TxnTableName, log),
		aggregate.New(log),
		report.NewComposer(),
		publish.New(s3.NewFromConfig(awsCfg), log),
		cfg,
		log,
	)

	log.Info().Str("month", *month).Bool("overall", *overall).Msg("Starting report run")

	if err := runner.Run(ctx, reportrun.Options{Month: *month, Overall: *overall}); err != nil {
		log.Fatal().Err(err).Msg("Report run failed")
	}

	fmt.Println("Report run completed successfully.")
}
