package ner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// Recognizer labels entity spans in text. Implementations are read-only
// after construction and safe for concurrent use.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, text string) ([]Span, error)
}

// OpenAIPrefix selects the hosted model recognizer in Open.
const OpenAIPrefix = "openai:"

// OpenOptions configures Open.
type OpenOptions struct {
	Labels     []string // label set for hosted models
	APIKey     string
	BaseURL    string
	MaxRetries int
	Logger     *zap.Logger
}

// Open loads the recognizer named by path: "openai:<model>" selects a
// hosted model, anything else is read as a gazetteer model file.
// Every failure wraps ErrModelUnavailable.
func Open(path string, opts OpenOptions) (Recognizer, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty model path", internalerr.ErrModelUnavailable)
	}
	if model, ok := strings.CutPrefix(path, OpenAIPrefix); ok {
		return NewOpenAI(model, OpenAIOptions{
			APIKey:     opts.APIKey,
			BaseURL:    opts.BaseURL,
			Labels:     opts.Labels,
			MaxRetries: opts.MaxRetries,
			Logger:     opts.Logger,
		})
	}
	return LoadGazetteer(path)
}

// Stamp sets the source of every span and returns the slice.
func Stamp(spans []Span, src Source) []Span {
	for i := range spans {
		spans[i].Source = src
	}
	return spans
}
