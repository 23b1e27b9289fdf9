package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// PDFText extracts the text layer of a PDF, page by page.
// Scanned PDFs without a text layer yield an empty string.
func PDFText(ctx context.Context, data []byte) (text string, err error) {
	// the reader panics on malformed object streams
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed pdf: %v", internalerr.ErrUnsupportedFormat, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", internalerr.ErrUnsupportedFormat, err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
