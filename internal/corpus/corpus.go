// Package corpus loads résumé collections from disk for batch runs.
package corpus

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/resumex/pkg/resumex"
	"github.com/cognicore/resumex/pkg/resumex/convert"
)

// Item is one line of a JSONL corpus.
type Item struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Loader reads résumés from a JSONL file, a directory or a zip archive.
// Files that fail to convert are kept as inputs carrying the error so the
// batch stays index-aligned with what was found on disk.
type Loader struct {
	Registry *convert.Registry
	Workers  int
	Logger   *zap.Logger
}

// Load dispatches on path: directories are walked, .zip archives are
// opened and .jsonl files are read line by line. Anything else is treated
// as a single résumé file.
func (l *Loader) Load(ctx context.Context, path string) ([]resumex.Input, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return l.LoadDir(ctx, path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return l.LoadZip(ctx, path)
	case ".jsonl":
		return LoadJSONL(path, l.logger())
	}
	return l.LoadFiles(ctx, []string{path})
}

// LoadJSONL loads items from a JSONL file. Malformed lines are skipped
// with a warning; a line without an id gets its line number.
func LoadJSONL(path string, logger *zap.Logger) ([]resumex.Input, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var inputs []resumex.Input
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			logger.Warn("Skipping malformed JSON line",
				zap.String("path", path), zap.Int("line", i+1), zap.Error(err))
			continue
		}
		if item.ID == "" {
			item.ID = fmt.Sprintf("%s:%d", filepath.Base(path), i+1)
		}
		inputs = append(inputs, resumex.Input{ID: item.ID, Text: item.Text})
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}

	return inputs, nil
}

// LoadDir converts every supported file under dir, sorted by path.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]resumex.Input, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !convert.Supported(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return l.LoadFiles(ctx, paths)
}

// LoadFiles converts the given files concurrently. The result keeps the
// order of paths.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]resumex.Input, error) {
	docs := make([]convert.Document, len(paths))
	for i, p := range paths {
		docs[i] = convert.Document{Name: p}
	}
	return l.convertAll(ctx, docs, func(_ int, doc *convert.Document) error {
		data, err := os.ReadFile(doc.Name)
		if err != nil {
			return err
		}
		doc.Data = data
		return nil
	})
}

// LoadZip converts every supported entry of a zip archive, in archive order.
func (l *Loader) LoadZip(ctx context.Context, path string) ([]resumex.Input, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()

	var (
		docs    []convert.Document
		entries []*zip.File
	)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !convert.Supported(f.Name) {
			continue
		}
		docs = append(docs, convert.Document{Name: f.Name})
		entries = append(entries, f)
	}

	return l.convertAll(ctx, docs, func(i int, doc *convert.Document) error {
		rc, err := entries[i].Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		doc.Data, err = io.ReadAll(rc)
		return err
	})
}

// convertAll reads and converts docs on a bounded errgroup. Per-document
// failures land in Input.Err; only cancellation aborts the load.
func (l *Loader) convertAll(ctx context.Context, docs []convert.Document, read func(int, *convert.Document) error) ([]resumex.Input, error) {
	reg := l.Registry
	if reg == nil {
		reg = convert.NewRegistry()
	}
	logger := l.logger()
	inputs := make([]resumex.Input, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers())
	for i := range docs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc := docs[i]
			inputs[i].ID = doc.Name
			if err := read(i, &doc); err != nil {
				inputs[i].Err = fmt.Errorf("read %s: %w", doc.Name, err)
				logger.Warn("Failed to read document", zap.String("doc", doc.Name), zap.Error(err))
				return nil
			}
			text, err := reg.Text(gctx, doc)
			if err != nil {
				inputs[i].Err = err
				logger.Warn("Failed to convert document", zap.String("doc", doc.Name), zap.Error(err))
				return nil
			}
			inputs[i].Text = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Corpus loaded", zap.Int("documents", len(inputs)))
	return inputs, nil
}

func (l *Loader) workers() int {
	if l.Workers <= 0 {
		return resumex.DefaultWorkers
	}
	return l.Workers
}

func (l *Loader) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
