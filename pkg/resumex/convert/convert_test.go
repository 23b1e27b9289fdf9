package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/cognicore/resumex/pkg/resumex/internalerr"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"cv.pdf", FormatPDF, true},
		{"CV.PDF", FormatPDF, true},
		{"dir/resume.docx", FormatDOCX, true},
		{"old.doc", FormatDOC, true},
		{"notes.txt", FormatTXT, true},
		{"page.htm", FormatHTML, true},
		{"scan.tiff", "", false},
		{"noext", "", false},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
		}
		if !tt.ok && !errors.Is(err, internalerr.ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
		}
	}
}

func TestPlainText(t *testing.T) {
	got, err := PlainText(context.Background(), append([]byte{0xEF, 0xBB, 0xBF}, "Jane Doe"...))
	if err != nil || got != "Jane Doe" {
		t.Errorf("PlainText() = %q, %v", got, err)
	}

	if _, err := PlainText(context.Background(), []byte{0xff, 0xfe}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestHTMLText(t *testing.T) {
	page := `<html><head><style>p{color:red}</style><script>track()</script></head>
<body><h1>Jane Doe</h1><p>Python</p></body></html>`

	got, err := HTMLText(context.Background(), []byte(page))
	if err != nil {
		t.Fatalf("HTMLText failed: %v", err)
	}
	if got != "Jane Doe\nPython" {
		t.Errorf("HTMLText() = %q", got)
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("zip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestDOCXText(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t xml:space="preserve">Python, Go</w:t></w:r></w:p>
</w:body>
</w:document>`

	got, err := DOCXText(context.Background(), buildDOCX(t, doc))
	if err != nil {
		t.Fatalf("DOCXText failed: %v", err)
	}
	if got != "Jane Doe\nSkills:\tPython, Go" {
		t.Errorf("DOCXText() = %q", got)
	}
}

func TestDOCXTextNotZip(t *testing.T) {
	if _, err := DOCXText(context.Background(), []byte("plain text")); !errors.Is(err, internalerr.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

// buildPDF writes a one-page PDF that shows text in Helvetica.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestPDFText(t *testing.T) {
	got, err := PDFText(context.Background(), buildPDF("Jane Doe"))
	if err != nil {
		t.Fatalf("PDFText failed: %v", err)
	}
	if !strings.Contains(got, "Jane Doe") {
		t.Errorf("PDFText() = %q, want it to contain %q", got, "Jane Doe")
	}
}

func TestPDFTextNotPDF(t *testing.T) {
	if _, err := PDFText(context.Background(), []byte("plain text")); !errors.Is(err, internalerr.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRegistryText(t *testing.T) {
	r := NewRegistry()

	got, err := r.Text(context.Background(), Document{Name: "cv.txt", Data: []byte("Jane")})
	if err != nil || got != "Jane" {
		t.Errorf("Text() = %q, %v", got, err)
	}

	got, err = r.Text(context.Background(), Document{Name: "cv.pdf", Data: buildPDF("Jane Doe")})
	if err != nil || !strings.Contains(got, "Jane Doe") {
		t.Errorf("Text(pdf) = %q, %v", got, err)
	}

	_, err = r.Text(context.Background(), Document{Name: "scan.tiff", Data: []byte{1, 2}})
	if !errors.Is(err, internalerr.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRegistryOverride(t *testing.T) {
	r := NewRegistry()
	r.Register(FormatPDF, ConverterFunc(func(ctx context.Context, data []byte) (string, error) {
		return "converted " + string(data), nil
	}))

	got, err := r.Text(context.Background(), Document{Name: "x", Format: FormatPDF, Data: []byte("pdf")})
	if err != nil || got != "converted pdf" {
		t.Errorf("Text() = %q, %v", got, err)
	}
}

func TestCommandMissingBinary(t *testing.T) {
	c := Command{Name: "resumex-no-such-converter", Args: []string{InputFile}}
	if _, err := c.Convert(context.Background(), []byte("x")); !errors.Is(err, internalerr.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCommandRuns(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	c := Command{Name: "cat", Args: []string{InputFile}}

	got, err := c.Convert(context.Background(), []byte("Jane Doe"))
	if err != nil || got != "Jane Doe" {
		t.Errorf("Convert() = %q, %v", got, err)
	}
}
