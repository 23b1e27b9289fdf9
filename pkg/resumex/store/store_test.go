package store

import (
	"testing"

	"github.com/cognicore/resumex/pkg/resumex/record"
)

func TestNewKeyOrdered(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		k := NewKey()
		if len(k) != 26 {
			t.Fatalf("Expected 26-char ULID, got %q", k)
		}
		if seen[k] {
			t.Fatalf("Duplicate key %s", k)
		}
		if k <= prev {
			t.Errorf("Keys should increase: %s after %s", k, prev)
		}
		seen[k] = true
		prev = k
	}
}

func TestKeyFor(t *testing.T) {
	rec := record.New(record.Schema{})
	rec.Emails = []string{"jane@example.com", "j@work.io"}
	if got := KeyFor(rec); got != "jane@example.com" {
		t.Errorf("KeyFor() = %q, want first email", got)
	}

	if got := KeyFor(record.New(record.Schema{})); len(got) != 26 {
		t.Errorf("KeyFor() without email = %q, want generated key", got)
	}
}
