// Package publish writes rendered report documents to the local filesystem
// and, best-effort, to S3. Filenames and object keys are deterministic from
// the month key, so a rerun for the same month overwrites its predecessor.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/pennywise-fin/pennywise/internal/report"
)

// OverallFileName is the artifact name of the cross-month rollup document.
const OverallFileName = "overall_summary.pdf"

// uploadTimeout caps a single remote publish attempt.
const uploadTimeout = 2 * time.Minute

// ReportFileName returns the artifact name for a monthly document,
// e.g. "transaction_report_2025-08.pdf".
func ReportFileName(month string) string {
	return fmt.Sprintf("transaction_report_%s.pdf", month)
}

// RemoteKey returns the object key a monthly document is uploaded under.
func RemoteKey(prefix, month string) string {
	return fmt.Sprintf("%smonthly_reports/%s/%s", prefix, month, ReportFileName(month))
}

// UploadAPI is the subset of the S3 client the publisher uses.
type UploadAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Publisher persists rendered documents.
type Publisher struct {
	uploader UploadAPI // nil disables remote publishing
	log      zerolog.Logger
}

func New(uploader UploadAPI, log zerolog.Logger) *Publisher {
	return &Publisher{uploader: uploader, log: log}
}

// Publish writes the document to path, creating parent directories as
// needed. The local artifact is the durable result of a report run.
func (p *Publisher) Publish(doc report.Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("Publish: create output dir: %w", err)
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("Publish: write %s: %w", path, err)
	}
	p.log.Info().Str("path", path).Int("bytes", len(doc)).Msg("Report written")
	return nil
}

// PublishRemote uploads a previously published local artifact to S3. It is
// best-effort: callers log the returned error and keep going, because the
// local artifact already exists.
func (p *Publisher) PublishRemote(ctx context.Context, localPath, bucket, key string) error {
	if p.uploader == nil {
		return fmt.Errorf("PublishRemote: no uploader configured")
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("PublishRemote: open %s: %w", localPath, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err = p.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("PublishRemote: upload s3://%s/%s: %w", bucket, key, err)
	}

	p.log.Info().Str("bucket", bucket).Str("key", key).Msg("Report uploaded")
	return nil
}
