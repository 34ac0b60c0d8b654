package ingest

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pennywise-fin/pennywise/internal/domain"
)

type fakeFetcher struct {
	raw []byte
	err error
	key string
}

func (f *fakeFetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	f.key = key
	return f.raw, f.err
}

type fakeExtractor struct {
	rec  domain.Record
	err  error
	body string
}

func (f *fakeExtractor) ExtractTransaction(ctx context.Context, body string) (domain.Record, error) {
	f.body = body
	return f.rec, f.err
}

type fakeStore struct {
	rec domain.Record
	err error
}

func (f *fakeStore) PutTransaction(ctx context.Context, rec domain.Record) error {
	f.rec = rec
	return f.err
}

const rawEmail = "From: bank@example.com\r\n" +
	"Subject: Debit alert\r\n" +
	"\r\n" +
	"You spent 4500 at Cafe Neo.\r\n"

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestProcessMessage(t *testing.T) {
	fetcher := &fakeFetcher{raw: []byte(rawEmail)}
	extractor := &fakeExtractor{rec: domain.Record{"amount": "4500", "merchant": "Cafe Neo"}}
	store := &fakeStore{}
	p := NewPipeline(fetcher, extractor, store, discardLogger())

	if err := p.ProcessMessage(context.Background(), "msg-123"); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}

	if fetcher.key != "msg-123" {
		t.Errorf("fetched key = %q, want the message ID", fetcher.key)
	}
	if extractor.body == "" || extractor.body == rawEmail {
		t.Errorf("extractor body = %q, want the parsed plain body", extractor.body)
	}
	if store.rec == nil {
		t.Fatal("no record was persisted")
	}
	if got := store.rec.Str("message_id"); got != "msg-123" {
		t.Errorf("message_id = %q, want %q", got, "msg-123")
	}
	if got := store.rec.Str("merchant"); got != "Cafe Neo" {
		t.Errorf("merchant = %q, want %q", got, "Cafe Neo")
	}
}

func TestProcessMessage_GeneratesKeyWhenMissing(t *testing.T) {
	fetcher := &fakeFetcher{raw: []byte(rawEmail)}
	extractor := &fakeExtractor{rec: domain.Record{}}
	store := &fakeStore{}
	p := NewPipeline(fetcher, extractor, store, discardLogger())

	if err := p.ProcessMessage(context.Background(), ""); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	if store.rec.Str("message_id") == "" {
		t.Error("message_id is empty, want a generated key")
	}
}

func TestProcessMessage_Errors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		fetcher   *fakeFetcher
		extractor *fakeExtractor
		store     *fakeStore
	}{
		{
			name:      "fetch fails",
			fetcher:   &fakeFetcher{err: boom},
			extractor: &fakeExtractor{},
			store:     &fakeStore{},
		},
		{
			name:      "body not parseable",
			fetcher:   &fakeFetcher{raw: []byte("garbage")},
			extractor: &fakeExtractor{},
			store:     &fakeStore{},
		},
		{
			name:      "extraction fails",
			fetcher:   &fakeFetcher{raw: []byte(rawEmail)},
			extractor: &fakeExtractor{err: boom},
			store:     &fakeStore{},
		},
		{
			name:      "persist fails",
			fetcher:   &fakeFetcher{raw: []byte(rawEmail)},
			extractor: &fakeExtractor{rec: domain.Record{}},
			store:     &fakeStore{err: boom},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(tt.fetcher, tt.extractor, tt.store, discardLogger())
			if err := p.ProcessMessage(context.Background(), "msg-1"); err == nil {
				t.Error("ProcessMessage() = nil error, want failure")
			}
		})
	}
}
