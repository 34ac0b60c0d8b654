package dynamo

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/pennywise-fin/pennywise/internal/domain"
)

// fakeAPI serves canned scan pages and records put items.
type fakeAPI struct {
	pages    []*dynamodb.ScanOutput
	calls    int
	scanErr  error
	putItems []map[string]types.AttributeValue
	putErr   error
}

func (f *fakeAPI) Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if f.calls >= len(f.pages) {
		// Keep serving the last page; used by the ceiling test.
		f.calls++
		return f.pages[len(f.pages)-1], nil
	}
	out := f.pages[f.calls]
	f.calls++
	return out, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.putItems = append(f.putItems, in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func item(date, merchant string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"date":     &types.AttributeValueMemberS{Value: date},
		"merchant": &types.AttributeValueMemberS{Value: merchant},
	}
}

func TestScanAll_FollowsContinuationTokens(t *testing.T) {
	api := &fakeAPI{pages: []*dynamodb.ScanOutput{
		{
			Items: []map[string]types.AttributeValue{
				item("2025-08-01", "Cafe"),
				item("2025-08-02", "Store"),
			},
			LastEvaluatedKey: map[string]types.AttributeValue{
				"message_id": &types.AttributeValueMemberS{Value: "cursor-1"},
			},
		},
		{
			Items: []map[string]types.AttributeValue{
				item("2025-08-03", "Market"),
			},
		},
	}}

	client := New(api, "transactions", zerolog.Nop())
	res, err := client.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}

	if res.Truncated {
		t.Error("Truncated = true, want false")
	}
	if res.Pages != 2 {
		t.Errorf("Pages = %d, want 2", res.Pages)
	}
	if len(res.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(res.Records))
	}
	// First-page-then-second-page order.
	wantMerchants := []string{"Cafe", "Store", "Market"}
	for i, want := range wantMerchants {
		if got := res.Records[i].Str("merchant"); got != want {
			t.Errorf("record %d merchant = %q, want %q", i, got, want)
		}
	}
}

func TestScanAll_PageCeiling(t *testing.T) {
	// Every page returns a continuation token, so the scan never finishes on
	// its own.
	api := &fakeAPI{pages: []*dynamodb.ScanOutput{
		{
			Items: []map[string]types.AttributeValue{item("2025-08-01", "Cafe")},
			LastEvaluatedKey: map[string]types.AttributeValue{
				"message_id": &types.AttributeValueMemberS{Value: "cursor"},
			},
		},
	}}

	client := New(api, "transactions", zerolog.Nop())
	res, err := client.ScanAll(context.Background())
	if err != nil {
		t.Fatalf("ScanAll failed: %v", err)
	}

	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
	if res.Pages != 100 {
		t.Errorf("Pages = %d, want 100", res.Pages)
	}
	if len(res.Records) != 100 {
		t.Errorf("got %d records, want 100", len(res.Records))
	}
}

func TestScanAll_Error(t *testing.T) {
	api := &fakeAPI{scanErr: errors.New("throttled")}
	client := New(api, "transactions", zerolog.Nop())

	if _, err := client.ScanAll(context.Background()); err == nil {
		t.Error("ScanAll() = nil error, want propagated scan error")
	}
}

func TestPutTransaction(t *testing.T) {
	api := &fakeAPI{}
	client := New(api, "transactions", zerolog.Nop())

	rec := domain.Record{
		"message_id": "msg-1",
		"amount":     "₦100.00",
		"date":       "2025-08-01",
	}
	if err := client.PutTransaction(context.Background(), rec); err != nil {
		t.Fatalf("PutTransaction failed: %v", err)
	}

	if len(api.putItems) != 1 {
		t.Fatalf("got %d put items, want 1", len(api.putItems))
	}
	got, ok := api.putItems[0]["amount"].(*types.AttributeValueMemberS)
	if !ok || got.Value != "₦100.00" {
		t.Errorf("stored amount = %#v, want string ₦100.00", api.putItems[0]["amount"])
	}
}
