package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pennywise-fin/pennywise/internal/domain"
)

// ObjectFetcher downloads a stored raw email by object key.
type ObjectFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// TransactionExtractor pulls structured transaction fields out of an email body.
type TransactionExtractor interface {
	ExtractTransaction(ctx context.Context, body string) (domain.Record, error)
}

// Store persists an extracted transaction record.
type Store interface {
	PutTransaction(ctx context.Context, rec domain.Record) error
}

// Pipeline processes one inbound transaction email end to end.
type Pipeline struct {
	fetcher   ObjectFetcher
	extractor TransactionExtractor
	store     Store
	log       zerolog.Logger
}

func NewPipeline(fetcher ObjectFetcher, extractor TransactionExtractor, store Store, log zerolog.Logger) *Pipeline {
	return &Pipeline{fetcher: fetcher, extractor: extractor, store: store, log: log}
}

// ProcessMessage fetches the raw email stored under messageID, extracts the
// transaction it describes, and writes the record to storage keyed by
// message_id. Inbound mail is stored under its SES message ID, so the same
// value serves as both the object key and the record key.
func (p *Pipeline) ProcessMessage(ctx context.Context, messageID string) error {
	// Step 1: fetch the raw email from the mail bucket.
	raw, err := p.fetcher.Fetch(ctx, messageID)
	if err != nil {
		return fmt.Errorf("ProcessMessage: fetch raw email: %w", err)
	}

	// Step 2: pull the plain-text body out of the MIME structure.
	body, err := ExtractPlainBody(raw)
	if err != nil {
		return fmt.Errorf("ProcessMessage: extract body: %w", err)
	}

	// Step 3: have the model extract transaction fields from the body.
	rec, err := p.extractor.ExtractTransaction(ctx, body)
	if err != nil {
		return fmt.Errorf("ProcessMessage: extract transaction: %w", err)
	}

	// Step 4: persist the record keyed by message ID.
	key := messageID
	if key == "" {
		key = uuid.NewString()
		p.log.Warn().Str("generated_id", key).Msg("message without ID, generated record key")
	}
	rec["message_id"] = key
	if err := p.store.PutTransaction(ctx, rec); err != nil {
		return fmt.Errorf("ProcessMessage: persist transaction: %w", err)
	}

	p.log.Info().Str("message_id", key).Msg("saved transaction record")
	return nil
}
