// Package convert turns uploaded résumé files into plain text.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// Format identifies a document encoding.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
	FormatHTML Format = "html"
)

// Document is a raw uploaded file.
type Document struct {
	Name   string
	Format Format // derived from Name when empty
	Data   []byte
}

// Converter extracts text from one format.
type Converter interface {
	Convert(ctx context.Context, data []byte) (string, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(ctx context.Context, data []byte) (string, error)

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, data []byte) (string, error) {
	return f(ctx, data)
}

var extensions = map[string]Format{
	".pdf":  FormatPDF,
	".doc":  FormatDOC,
	".docx": FormatDOCX,
	".txt":  FormatTXT,
	".text": FormatTXT,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// FormatFromPath maps a file extension to its format.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", internalerr.ErrUnsupportedFormat, ext)
}

// Supported reports whether path has a known extension.
func Supported(path string) bool {
	_, err := FormatFromPath(path)
	return err == nil
}

// Registry dispatches documents to converters by format.
type Registry struct {
	converters map[Format]Converter
}

// NewRegistry returns a registry with the built-in converters. Legacy DOC
// goes through the antiword command.
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[Format]Converter)}
	r.Register(FormatTXT, ConverterFunc(PlainText))
	r.Register(FormatHTML, ConverterFunc(HTMLText))
	r.Register(FormatDOCX, ConverterFunc(DOCXText))
	r.Register(FormatPDF, ConverterFunc(PDFText))
	r.Register(FormatDOC, Command{Name: "antiword", Args: []string{"-m", "UTF-8.txt", InputFile}})
	return r
}

// Register sets the converter for f, replacing any existing one.
func (r *Registry) Register(f Format, c Converter) {
	r.converters[f] = c
}

// Text converts doc to text. An unknown format or an unavailable converter
// is ErrUnsupportedFormat.
func (r *Registry) Text(ctx context.Context, doc Document) (string, error) {
	format := doc.Format
	if format == "" {
		f, err := FormatFromPath(doc.Name)
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", doc.Name, err)
		}
		format = f
	}

	c, ok := r.converters[format]
	if !ok {
		return "", fmt.Errorf("convert %s: %w: %s", doc.Name, internalerr.ErrUnsupportedFormat, format)
	}
	text, err := c.Convert(ctx, doc.Data)
	if err != nil {
		return "", fmt.Errorf("convert %s: %w", doc.Name, err)
	}
	return text, nil
}
