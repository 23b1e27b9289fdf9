// Package storetest holds the behavior every store.Store backend shares.
package storetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/record"
	"github.com/cognicore/resumex/pkg/resumex/store"
)

// Schema is the record schema used by the sample records.
var Schema = record.Schema{
	SkillCategories:   []string{"programming_languages", "tools"},
	ExternalPlatforms: []string{"github"},
	SocialPlatforms:   []string{"twitter"},
}

// Sample returns a populated record named name.
func Sample(name, email string) record.Record {
	rec := record.New(Schema)
	rec.Name = &name
	rec.Emails = []string{email}
	rec.Education = []string{"IIT Bombay"}
	rec.Skills["programming_languages"] = []string{"python", "go"}
	rec.ExternalLinks["github"] = []string{"https://github.com/" + name}
	return rec
}

// Run exercises st. The store must be empty.
func Run(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()

	jane := Sample("jane", "jane@example.com")
	john := Sample("john", "john@example.com")
	empty := record.New(Schema)

	// Save and fetch a single record
	if err := st.Save(ctx, "jane@example.com", jane); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Fetch(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 1 || !reflect.DeepEqual(got[0], jane) {
		t.Errorf("Fetch returned %+v, want %+v", got, jane)
	}

	// Collections keep order, empty records included
	key := store.NewKey()
	if err := st.Save(ctx, key, john, empty, jane); err != nil {
		t.Fatalf("Save collection: %v", err)
	}
	got, err = st.Fetch(ctx, key)
	if err != nil {
		t.Fatalf("Fetch collection: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(got))
	}
	if got[0].NameOr("") != "john" || got[1].Name != nil || got[2].NameOr("") != "jane" {
		t.Errorf("Collection order not preserved: %+v", got)
	}
	if !reflect.DeepEqual(got[1], empty) {
		t.Errorf("Empty record changed in storage: %+v", got[1])
	}

	// Saving under an existing key appends
	if err := st.Save(ctx, "jane@example.com", john); err != nil {
		t.Fatalf("Save append: %v", err)
	}
	got, err = st.Fetch(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("Fetch after append: %v", err)
	}
	if len(got) != 2 || got[0].NameOr("") != "jane" || got[1].NameOr("") != "john" {
		t.Errorf("Save should append after existing records, got %+v", got)
	}
	if err := st.Save(ctx, "jane@example.com", empty, jane); err != nil {
		t.Fatalf("Save append batch: %v", err)
	}
	got, _ = st.Fetch(ctx, "jane@example.com")
	if len(got) != 4 || got[2].Name != nil || got[3].NameOr("") != "jane" {
		t.Errorf("Appended batch out of order: %+v", got)
	}

	keys, err := st.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("Expected 2 keys, got %v", keys)
	}

	// Unknown keys
	if _, err := st.Fetch(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Fetch missing: expected ErrNotFound, got %v", err)
	}
	if err := st.Delete(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Delete missing: expected ErrNotFound, got %v", err)
	}

	// Delete
	if err := st.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Fetch(ctx, key); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Fetch after delete: expected ErrNotFound, got %v", err)
	}

	// Generated collection keys
	generated, err := store.SaveCollection(ctx, st, []record.Record{jane})
	if err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}
	if got, err := st.Fetch(ctx, generated); err != nil || len(got) != 1 {
		t.Errorf("Fetch generated key: %v, %d records", err, len(got))
	}
}
