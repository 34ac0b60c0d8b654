package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
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

// reportEvent is the invocation payload. Both fields are optional, an
// empty month falls back to the month before the current one.
type reportEvent struct {
	Month   string `json:"month"`
	Overall bool   `json:"overall"`
}

func main() {
	log := logger.New()

	cfg := config.Load()
	if err := cfg.ValidateReport(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
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

	lambda.Start(func(ctx context.Context, event reportEvent) error {
		ctx = logger.WithContext(ctx, log)
		opts := reportrun.Options{Month: event.Month, Overall: event.Overall}
		if err := runner.Run(ctx, opts); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		return nil
	})
}
