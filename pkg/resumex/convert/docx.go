package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

// DOCXText extracts the body text of a WordprocessingML document.
// Each paragraph or table becomes its own line; tabs inside a run are kept.
func DOCXText(ctx context.Context, data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %v", internalerr.ErrUnsupportedFormat, err)
	}

	var buf strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			buf.WriteString(it.String())
			buf.WriteByte('\n')
		case *docx.Table:
			buf.WriteString(it.String())
			buf.WriteByte('\n')
		}
	}

	return strings.TrimSpace(buf.String()), nil
}
