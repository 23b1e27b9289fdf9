package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/resumex/pkg/resumex/ingest"
	"github.com/cognicore/resumex/pkg/resumex/internalerr"
	"github.com/cognicore/resumex/pkg/resumex/lexicon"
	"github.com/cognicore/resumex/pkg/resumex/ner"
	"github.com/cognicore/resumex/pkg/resumex/store"
	"github.com/cognicore/resumex/pkg/resumex/store/memstore"
	"github.com/cognicore/resumex/pkg/resumex/store/postgres"
	"github.com/cognicore/resumex/pkg/resumex/store/redisstore"
	"github.com/cognicore/resumex/pkg/resumex/store/sqlite"
)

// Loader loads all configured artifacts and constructs components
type Loader struct {
	Config Config
	Logger *zap.Logger
}

// Components holds all loaded components
type Components struct {
	Lexicon           *lexicon.Lexicon
	Normalizer        *ingest.Normalizer
	Pipeline          *ingest.Pipeline
	General           ner.Recognizer // nil when no general model is configured
	Custom            ner.Recognizer // nil when no custom model is configured
	EducationKeywords []string
}

// Load reads the lexicon and models and returns initialized components.
// A malformed lexicon or an unloadable model is fatal.
func (l *Loader) Load() (*Components, error) {
	logger := l.logger()
	cfg := l.Config
	comp := &Components{EducationKeywords: cfg.EducationKeywords}

	// Lexicon
	lex := lexicon.Default()
	if cfg.LexiconPath != "" {
		loaded, err := lexicon.LoadFromYAML(cfg.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}
	if len(cfg.ActiveSkillCategories) > 0 {
		restricted, err := lex.Restrict(cfg.ActiveSkillCategories)
		if err != nil {
			return nil, fmt.Errorf("restrict lexicon: %w", err)
		}
		lex = restricted
	}
	comp.Lexicon = lex

	stats := lex.Stats()
	logger.Info("Lexicon loaded",
		zap.Int("categories", stats.Categories),
		zap.Int("phrases", stats.Phrases),
		zap.Int("platforms", stats.Platforms),
	)

	// Pipeline
	comp.Normalizer = ingest.NewNormalizer(ingest.NormalizerOptions{
		Lowercase:   cfg.LowercaseNormalize,
		Boilerplate: cfg.Boilerplate,
	})
	comp.Pipeline = ingest.NewPipeline(comp.Normalizer, ingest.NewPhraseMatcher(lex), ingest.NewLinkMatcher(lex))

	// Recognizers
	var err error
	if comp.General, err = l.openModel(cfg.GeneralModelPath, ner.GeneralLabels); err != nil {
		return nil, fmt.Errorf("load general model: %w", err)
	}
	if comp.Custom, err = l.openModel(cfg.CustomModelPath, ner.CustomLabels); err != nil {
		return nil, fmt.Errorf("load custom model: %w", err)
	}

	return comp, nil
}

func (l *Loader) openModel(path string, labels []string) (ner.Recognizer, error) {
	if path == "" {
		l.logger().Warn("No model configured, recognizer disabled", zap.Strings("labels", labels))
		return nil, nil
	}
	rec, err := ner.Open(path, ner.OpenOptions{
		Labels:     labels,
		APIKey:     l.Config.OpenAI.APIKey,
		BaseURL:    l.Config.OpenAI.BaseURL,
		MaxRetries: l.Config.OpenAI.MaxRetries,
		Logger:     l.logger(),
	})
	if err != nil {
		return nil, err
	}
	l.logger().Info("Model loaded", zap.String("model", rec.Name()))
	return rec, nil
}

// OpenStore opens the configured record store.
func (l *Loader) OpenStore(ctx context.Context) (store.Store, error) {
	sc := l.Config.Store
	switch sc.Driver {
	case DriverMemory:
		return memstore.New(), nil
	case DriverSQLite:
		return sqlite.OpenSQLite(ctx, sc.Path)
	case DriverPostgres:
		return postgres.Open(ctx, sc.DSN, l.logger())
	case DriverRedis:
		st, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     sc.RedisAddr,
			Password: sc.RedisPassword,
			DB:       sc.RedisDB,
		}, l.logger())
		if err != nil {
			return nil, err
		}
		return st, nil
	}
	return nil, fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, sc.Driver)
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
