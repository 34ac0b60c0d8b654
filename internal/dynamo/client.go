// Package dynamo wraps the DynamoDB transaction table. The ingestion path
// writes one item per extracted transaction; the report path scans the full
// table with cursor pagination.
package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/pennywise-fin/pennywise/internal/domain"
)

// API is the subset of the DynamoDB client the table wrapper uses. Tests
// substitute a fake that serves canned pages.
type API interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// maxScanPages bounds the full-table scan so a pathological pagination loop
// cannot run unbounded; hitting it degrades to partial data, it is not an
// error.
const maxScanPages = 100

// Client provides access to the transaction table.
type Client struct {
	api   API
	table string
	log   zerolog.Logger
}

// New creates a Client on top of a concrete DynamoDB client.
func New(db API, table string, log zerolog.Logger) *Client {
	return &Client{api: db, table: table, log: log}
}

// ScanResult is the outcome of a full-table scan. Truncated reports that the
// page ceiling was reached and Records may be incomplete.
type ScanResult struct {
	Records   []domain.Record
	Pages     int
	Truncated bool
}

// ScanAll retrieves every item from the transaction table, following
// continuation tokens until the store stops returning one or the page
// ceiling is reached. Items are returned in page order.
func (c *Client) ScanAll(ctx context.Context) (*ScanResult, error) {
	var (
		records  []domain.Record
		startKey map[string]types.AttributeValue
		pages    int
	)

	for {
		out, err := c.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(c.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("ScanAll: page %d: %w", pages+1, err)
		}
		pages++

		var page []domain.Record
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("ScanAll: unmarshal page %d: %w", pages, err)
		}
		records = append(records, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		if pages >= maxScanPages {
			c.log.Warn().
				Int("pages", pages).
				Int("records", len(records)).
				Msg("Reached scan page ceiling, results may be incomplete")
			return &ScanResult{Records: records, Pages: pages, Truncated: true}, nil
		}
		startKey = out.LastEvaluatedKey
	}

	c.log.Info().Int("records", len(records)).Int("pages", pages).Msg("Scan completed")
	return &ScanResult{Records: records, Pages: pages}, nil
}

// PutTransaction persists one extracted transaction record.
func (c *Client) PutTransaction(ctx context.Context, rec domain.Record) error {
	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return fmt.Errorf("PutTransaction: marshal item: %w", err)
	}

	_, err = c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutTransaction: put item: %w", err)
	}
	return nil
}
