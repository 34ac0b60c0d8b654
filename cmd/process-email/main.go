package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pennywise-fin/pennywise/internal/config"
	"github.com/pennywise-fin/pennywise/internal/dynamo"
	"github.com/pennywise-fin/pennywise/internal/extract"
	"github.com/pennywise-fin/pennywise/internal/ingest"
	"github.com/pennywise-fin/pennywise/internal/logger"
)

// handler processes SES delivery notifications for inbound transaction emails.
type handler struct {
	pipeline *ingest.Pipeline
}

func (h *handler) handle(ctx context.Context, event events.SimpleEmailEvent) error {
	log := logger.FromContext(ctx)
	for _, rec := range event.Records {
		messageID := rec.SES.Mail.MessageID
		if err := h.pipeline.ProcessMessage(ctx, messageID); err != nil {
			log.Error().Err(err).Str("message_id", messageID).Msg("failed to process email")
			return err
		}
	}
	return nil
}

func main() {
	log := logger.New()

	cfg := config.Load()
	if err := cfg.ValidateIngest(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load AWS configuration")
	}

	pipeline := ingest.NewPipeline(
		ingest.NewS3Fetcher(s3.NewFromConfig(awsCfg), cfg.TxnEmailsBucket),
		extract.NewExtractor(extract.NewGeminiGenerator(cfg)),
		dynamo.New(dynamodb.NewFromConfig(awsCfg), cfg.TxnTableName, log),
		log,
	)
	h := &handler{pipeline: pipeline}

	lambda.Start(func(ctx context.Context, event events.SimpleEmailEvent) error {
		ctx = logger.WithContext(ctx, log)
		if err := h.handle(ctx, event); err != nil {
			return fmt.Errorf("process email event: %w", err)
		}
		return nil
	})
}
