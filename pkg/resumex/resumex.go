package resumex

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cognicore/resumex/pkg/resumex/ingest"
	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/lexicon"
	"github.com/cognicore/resumex/pkg/resumex/merge"
	"github.com/cognicore/resumex/pkg/resumex/ner"
	"github.com/cognicore/resumex/pkg/resumex/record"
	"github.com/cognicore/resumex/pkg/resumex/store"
)

// DefaultWorkers bounds batch concurrency when Options.Workers is unset.
const DefaultWorkers = 4

// Engine is the résumé extraction facade
type Engine struct {
	pipeline *ingest.Pipeline
	general  ner.Recognizer
	custom   ner.Recognizer
	interp   *ner.Interpreter
	merger   *merge.Merger
	store    store.Store
	workers  int
	logger   *zap.Logger
}

// Options configures an Engine
type Options struct {
	Pipeline          *ingest.Pipeline
	General           ner.Recognizer // PERSON, ORG, GPE
	Custom            ner.Recognizer // GRADUATION_YEAR, DESIGNATION, LOCATION, EMPLOYER
	EducationKeywords []string
	Store             store.Store // optional
	Workers           int
	Logger            *zap.Logger
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{
		pipeline: opts.Pipeline,
		general:  opts.General,
		custom:   opts.Custom,
		interp:   ner.NewInterpreter(opts.EducationKeywords, logger),
		merger:   merge.NewMerger(opts.Pipeline.Schema()),
		store:    opts.Store,
		workers:  workers,
		logger:   logger,
	}
}

// Close cleanly shuts down the Engine
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Schema returns the categories and platforms every record carries.
func (e *Engine) Schema() record.Schema {
	return e.merger.Schema()
}

// Empty returns a record with no values and every key present.
func (e *Engine) Empty() record.Record {
	return e.merger.Empty()
}

// Extract runs the full pipeline on one document's text. Text that is not
// valid UTF-8 is rejected with ErrInvalidInput and an empty record.
// Recognizer failures are logged and only blank the fields that
// recognizer owns.
func (e *Engine) Extract(ctx context.Context, text string) (record.Record, error) {
	if !utf8.ValidString(text) {
		return e.Empty(), fmt.Errorf("%w: text is not valid UTF-8", internalerr.ErrInvalidInput)
	}

	// 1. Deterministic passes
	doc := e.pipeline.Process(text)

	// 2. Statistical passes read the cased text
	general := e.recognize(ctx, e.general, doc.Clean, ner.SourceGeneral)
	custom := e.recognize(ctx, e.custom, doc.Clean, ner.SourceCustom)
	ents := e.interp.Interpret(doc.Clean, general, custom)

	// 3. Merge
	return e.merger.Merge(
		merge.Contribution{
			Source: ner.SourceRegex,
			Lists: map[merge.Field][]string{
				merge.FieldEmails:         doc.Regex.Emails,
				merge.FieldPhones:         doc.Regex.Phones,
				merge.FieldCertifications: doc.Regex.Certifications,
			},
			Groups: map[merge.Field]map[string][]string{
				merge.FieldExternalLinks: doc.Links[lexicon.ExternalLinks],
				merge.FieldSocialLinks:   doc.Links[lexicon.SocialLinks],
			},
		},
		merge.Contribution{
			Source: ner.SourcePhrase,
			Groups: map[merge.Field]map[string][]string{merge.FieldSkills: doc.Skills},
		},
		merge.Contribution{
			Source:      ner.SourceGeneral,
			Name:        ents.Name,
			NameGuessed: ents.NameGuessed,
			Lists:       map[merge.Field][]string{merge.FieldEducation: ents.Education},
		},
		merge.Contribution{
			Source: ner.SourceCustom,
			Lists: map[merge.Field][]string{
				merge.FieldDesignations:    ents.Designations,
				merge.FieldGraduationYears: ents.GraduationYears,
				merge.FieldLocations:       ents.Locations,
				merge.FieldEmployers:       ents.Employers,
			},
		},
	), nil
}

// recognize runs r on text. A nil recognizer yields no spans; a failing
// one is logged and reported through Result.Err.
func (e *Engine) recognize(ctx context.Context, r ner.Recognizer, text string, src ner.Source) *ner.Result {
	if r == nil {
		return &ner.Result{}
	}
	spans, err := r.Recognize(ctx, text)
	if err != nil {
		e.logger.Warn("Recognizer failed",
			zap.String("recognizer", r.Name()),
			zap.String("source", string(src)),
			zap.Error(err),
		)
		return &ner.Result{Err: err}
	}
	return &ner.Result{Spans: ner.Stamp(spans, src)}
}

// Save stores rec under its first email, or a generated key, and returns
// the key.
func (e *Engine) Save(ctx context.Context, rec record.Record) (string, error) {
	if e.store == nil {
		return "", fmt.Errorf("%w: no store configured", internalerr.ErrStoreUnavailable)
	}
	key := store.KeyFor(rec)
	if err := e.store.Save(ctx, key, rec); err != nil {
		return "", err
	}
	return key, nil
}

// SaveBatch stores recs as one collection under a generated key.
func (e *Engine) SaveBatch(ctx context.Context, recs []record.Record) (string, error) {
	if e.store == nil {
		return "", fmt.Errorf("%w: no store configured", internalerr.ErrStoreUnavailable)
	}
	return store.SaveCollection(ctx, e.store, recs)
}

// Fetch returns the records stored under key.
func (e *Engine) Fetch(ctx context.Context, key string) ([]record.Record, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: no store configured", internalerr.ErrStoreUnavailable)
	}
	return e.store.Fetch(ctx, key)
}
