package resumex

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/lexicon"
)

func TestProcessBatchLength(t *testing.T) {
	e := newTestEngine(nil, nil)

	docs := []string{
		"jane@example.com Python",
		"bad \xff\xfe bytes",
		"",
		"john@example.com Rust, Docker",
	}
	records, l := e.ProcessBatch(context.Background(), docs)

	if len(records) != len(docs) {
		t.Fatalf("Expected %d records, got %d", len(docs), len(records))
	}
	if !reflect.DeepEqual(records[1], e.Empty()) {
		t.Errorf("Malformed document should yield an empty record, got %+v", records[1])
	}
	if !reflect.DeepEqual(records[3].Emails, []string{"john@example.com"}) {
		t.Errorf("Record 3 emails = %v", records[3].Emails)
	}
	if got := l.Get("programming_languages"); !reflect.DeepEqual(got, []string{"python", "rust"}) {
		t.Errorf("Ledger programming_languages = %v", got)
	}
}

func TestProcessBatchOrder(t *testing.T) {
	e := newTestEngine(nil, nil)

	docs := make([]string, 40)
	for i := range docs {
		docs[i] = fmt.Sprintf("user%d@example.com", i)
	}
	records, _ := e.ProcessBatch(context.Background(), docs)

	for i, rec := range records {
		want := fmt.Sprintf("user%d@example.com", i)
		if len(rec.Emails) != 1 || rec.Emails[0] != want {
			t.Errorf("Record %d emails = %v, want [%s]", i, rec.Emails, want)
		}
	}
}

func TestProcessBatchLedgerReset(t *testing.T) {
	e := newTestEngine(nil, nil)
	ctx := context.Background()

	_, first := e.ProcessBatch(ctx, []string{"Python and Django https://github.com/a"})
	_, second := e.ProcessBatch(ctx, []string{"Go and Docker"})

	if got := first.Get("programming_languages"); !reflect.DeepEqual(got, []string{"python"}) {
		t.Errorf("First ledger programming_languages = %v", got)
	}
	if got := first.Get(lexicon.ExternalLinks); !reflect.DeepEqual(got, []string{"github"}) {
		t.Errorf("First ledger external_links = %v", got)
	}
	if got := second.Get("programming_languages"); !reflect.DeepEqual(got, []string{"go"}) {
		t.Errorf("Second ledger should start empty, programming_languages = %v", got)
	}
	if got := second.Get(lexicon.ExternalLinks); len(got) != 0 {
		t.Errorf("Second ledger external_links = %v, want empty", got)
	}
}

func TestProcessBatchLedgerDeterministic(t *testing.T) {
	e := newTestEngine(nil, nil)
	docs := []string{"Rust, Go", "Python, Go", "Java", "Rust, Kotlin", "Python"}

	_, want := e.ProcessBatch(context.Background(), docs)
	for i := 0; i < 5; i++ {
		_, got := e.ProcessBatch(context.Background(), docs)
		if !reflect.DeepEqual(got.Snapshot(), want.Snapshot()) {
			t.Fatalf("Ledger differs between runs: %v vs %v", got.Snapshot(), want.Snapshot())
		}
	}
	if got := want.Get("programming_languages"); !reflect.DeepEqual(got, []string{"rust", "go", "python", "java", "kotlin"}) {
		t.Errorf("Ledger order = %v, want input order", got)
	}
}

func TestProcessBatchRecoversPanic(t *testing.T) {
	e := newTestEngine(panickingRecognizer{}, nil)

	b := e.ProcessInputs(context.Background(), []Input{
		{ID: "a", Text: "jane@example.com"},
		{ID: "b", Text: "boom"},
		{ID: "c", Text: "john@example.com"},
	})

	if b.Errors[1] == nil {
		t.Error("Panicking document should report an error")
	}
	if b.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", b.Failed())
	}
	if len(b.Records[0].Emails) != 1 || len(b.Records[2].Emails) != 1 {
		t.Errorf("Siblings of a panicking document should succeed: %+v", b.Records)
	}
}

func TestProcessInputsConversionError(t *testing.T) {
	e := newTestEngine(nil, nil)
	convErr := fmt.Errorf("%w: scan.tiff", internalerr.ErrUnsupportedFormat)

	b := e.ProcessInputs(context.Background(), []Input{
		{ID: "scan.tiff", Err: convErr},
		{ID: "cv.txt", Text: "jane@example.com Python"},
	})

	if len(b.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(b.Records))
	}
	if !errors.Is(b.Errors[0], internalerr.ErrUnsupportedFormat) {
		t.Errorf("Errors[0] = %v, want ErrUnsupportedFormat", b.Errors[0])
	}
	if !reflect.DeepEqual(b.Records[0], e.Empty()) {
		t.Errorf("Failed input should have an empty record")
	}
	if b.Ledger.Docs() != 1 {
		t.Errorf("Ledger should only count successful documents, got %d", b.Ledger.Docs())
	}
}

func TestProcessBatchCancelled(t *testing.T) {
	e := newTestEngine(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := e.ProcessInputs(ctx, []Input{{Text: "a@b.io"}, {Text: "c@d.io"}})
	if len(b.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(b.Records))
	}
	for i, err := range b.Errors {
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Errors[%d] = %v, want context.Canceled", i, err)
		}
	}
}

func TestSaveBatch(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(nil, nil)

	records, _ := e.ProcessBatch(ctx, []string{"a@b.io", "c@d.io"})
	key, err := e.SaveBatch(ctx, records)
	if err != nil {
		t.Fatalf("SaveBatch failed: %v", err)
	}
	got, err := e.Fetch(ctx, key)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 records, got %d", len(got))
	}
}
