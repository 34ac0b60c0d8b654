package reportrun

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/pennywise-fin/pennywise/internal/aggregate"
	"github.com/pennywise-fin/pennywise/internal/config"
	"github.com/pennywise-fin/pennywise/internal/domain"
	"github.com/pennywise-fin/pennywise/internal/dynamo"
	"github.com/pennywise-fin/pennywise/internal/normalize"
	"github.com/pennywise-fin/pennywise/internal/publish"
	"github.com/pennywise-fin/pennywise/internal/report"
)

// Scanner reads the full transaction table.
type Scanner interface {
	ScanAll(ctx context.Context) (*dynamo.ScanResult, error)
}

// Composer renders summaries into PDF documents.
type Composer interface {
	ComposeMonthly(summary *domain.MonthlySummary) (report.Document, error)
	ComposeOverall(overall *domain.OverallSummary) (report.Document, error)
}

// Publisher writes documents locally and optionally uploads them.
type Publisher interface {
	Publish(doc report.Document, path string) error
	PublishRemote(ctx context.Context, localPath, bucket, key string) error
}

// Options selects what a report run produces.
type Options struct {
	// Month in YYYY-MM form. Empty means the month before the current one.
	Month string
	// Overall adds a cross-month summary document to the run.
	Overall bool
}

// Runner drives a full report run: scan, aggregate, compose, publish.
type Runner struct {
	scanner   Scanner
	agg       *aggregate.Aggregator
	composer  Composer
	publisher Publisher
	cfg       *config.Config
	log       zerolog.Logger
	now       func() time.Time
}

func New(scanner Scanner, agg *aggregate.Aggregator, composer Composer, publisher Publisher, cfg *config.Config, log zerolog.Logger) *Runner {
	return &Runner{
		scanner:   scanner,
		agg:       agg,
		composer:  composer,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// Run produces the monthly report for opts.Month. A month with no
// transactions is logged and skipped rather than treated as a failure.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	month := opts.Month
	if month == "" {
		month = normalize.PreviousMonth(r.now())
	}
	log := r.log.With().Str("month", month).Logger()

	// Step 1: scan the transaction table.
	scan, err := r.scanner.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("Run: scan transactions: %w", err)
	}
	if scan.Truncated {
		log.Warn().Int("pages", scan.Pages).Msg("scan hit the page ceiling, report may be partial")
	}
	log.Info().Int("records", len(scan.Records)).Msg("scanned transaction table")

	// Step 2: aggregate the target month.
	summary, err := r.agg.Aggregate(scan.Records, month)
	if err != nil {
		if errors.Is(err, aggregate.ErrNoTransactions) {
			log.Info().Msg("no transactions for month, skipping report")
			return nil
		}
		return fmt.Errorf("Run: aggregate: %w", err)
	}

	// Step 3: compose and publish the monthly document.
	doc, err := r.composer.ComposeMonthly(summary)
	if err != nil {
		return fmt.Errorf("Run: compose monthly report: %w", err)
	}
	localPath := filepath.Join(r.cfg.OutputDir, publish.ReportFileName(month))
	if err := r.publisher.Publish(doc, localPath); err != nil {
		return fmt.Errorf("Run: publish monthly report: %w", err)
	}
	log.Info().Str("path", localPath).Msg("wrote monthly report")

	r.upload(ctx, log, localPath, publish.RemoteKey(r.cfg.ReportsPrefix, month))

	// Step 4: optionally compose the cross-month summary.
	if opts.Overall {
		if err := r.runOverall(ctx, log, scan.Records); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOverall(ctx context.Context, log zerolog.Logger, records []domain.Record) error {
	overall := aggregate.BuildOverall(r.agg.TotalsByMonth(records))
	if overall == nil {
		log.Info().Msg("no months with transactions, skipping overall summary")
		return nil
	}

	doc, err := r.composer.ComposeOverall(overall)
	if err != nil {
		return fmt.Errorf("Run: compose overall summary: %w", err)
	}
	localPath := filepath.Join(r.cfg.OutputDir, publish.OverallFileName)
	if err := r.publisher.Publish(doc, localPath); err != nil {
		return fmt.Errorf("Run: publish overall summary: %w", err)
	}
	log.Info().Str("path", localPath).Msg("wrote overall summary")

	r.upload(ctx, log, localPath, r.cfg.ReportsPrefix+publish.OverallFileName)
	return nil
}

// upload is best effort. The local artifact is the durable output, a
// failed upload must not fail the run.
func (r *Runner) upload(ctx context.Context, log zerolog.Logger, localPath, key string) {
	if r.cfg.ReportsBucket == "" {
		return
	}
	if err := r.publisher.PublishRemote(ctx, localPath, r.cfg.ReportsBucket, key); err != nil {
		log.Warn().Err(err).Str("bucket", r.cfg.ReportsBucket).Str("key", key).Msg("report upload failed")
		return
	}
	log.Info().Str("bucket", r.cfg.ReportsBucket).Str("key", key).Msg("uploaded report")
}
