package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestExtract_MissingFileIsReadError(t *testing.T) {
	res := New(0).Extract(filepath.Join(t.TempDir(), "nope.txt"))

	assert.Equal(t, KindReadError, res.Kind)
	assert.Error(t, res.Err)
	content, ok := res.Content()
	assert.False(t, ok)
	assert.Empty(t, content)
}

func TestExtract_DirectoryIsReadError(t *testing.T) {
	res := New(0).Extract(t.TempDir())
	assert.Equal(t, KindReadError, res.Kind)
}

func TestExtract_PlainTextRoundTrip(t *testing.T) {
	want := "# Bike planner\n\nRoutes adapt to weather. Ünïcödé is kept as is.\n"
	for _, name := range []string{"notes.txt", "README.md", "main.go"} {
		path := writeFile(t, name, []byte(want))

		res := New(0).Extract(path)

		require.Equal(t, KindText, res.Kind, name)
		content, ok := res.Content()
		assert.True(t, ok)
		assert.Equal(t, want, content)
		assert.Equal(t, "text", res.Format)
	}
}

func TestExtract_EmptyTextFile(t *testing.T) {
	res := New(0).Extract(writeFile(t, "empty.txt", nil))
	content, ok := res.Content()
	assert.True(t, ok)
	assert.Equal(t, "", content)
}

func TestExtract_BinaryWithTextExtensionIsUnsupported(t *testing.T) {
	res := New(0).Extract(writeFile(t, "fake.txt", []byte{'a', 0, 'b', 0xff}))
	assert.Equal(t, KindUnsupported, res.Kind)
	assert.ErrorIs(t, res.Err, ErrBinaryContent)
}

func TestExtract_UnknownExtensionSniffsContent(t *testing.T) {
	res := New(0).Extract(writeFile(t, "NOTES", []byte("just some plain words")))
	assert.Equal(t, KindText, res.Kind)
	assert.Equal(t, "just some plain words", res.Text)

	res = New(0).Extract(writeFile(t, "image.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")))
	assert.Equal(t, KindUnsupported, res.Kind)
	assert.ErrorIs(t, res.Err, ErrUnknownFormat)
}

func TestExtract_TooLarge(t *testing.T) {
	res := New(4).Extract(writeFile(t, "big.txt", []byte("0123456789")))
	assert.Equal(t, KindUnsupported, res.Kind)
	assert.ErrorIs(t, res.Err, ErrTooLarge)
}

func TestExtract_CorruptPDFIsUnsupported(t *testing.T) {
	res := New(0).Extract(writeFile(t, "broken.pdf", []byte("not a pdf at all")))
	assert.Equal(t, KindUnsupported, res.Kind)
	assert.Equal(t, "pdf", res.Format)
}

func TestExtract_Notebook(t *testing.T) {
	nb := `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Title\n", "Some intro"]},
    {"cell_type": "code", "source": "print('hi')"},
    {"cell_type": "code", "source": []}
  ],
  "nbformat": 4
}`
	res := New(0).Extract(writeFile(t, "analysis.ipynb", []byte(nb)))

	require.Equal(t, KindText, res.Kind)
	assert.Equal(t, "ipynb", res.Format)
	assert.Equal(t, "# Title\nSome intro\n\nprint('hi')", res.Text)
}

func TestExtract_InvalidNotebook(t *testing.T) {
	res := New(0).Extract(writeFile(t, "bad.ipynb", []byte("{oops")))
	assert.Equal(t, KindUnsupported, res.Kind)
}

func TestExtract_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Feature"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Status"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "Login"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "done"))
	path := filepath.Join(t.TempDir(), "plan.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	res := New(0).Extract(path)

	require.Equal(t, KindText, res.Kind)
	assert.Equal(t, "xlsx", res.Format)
	assert.Equal(t, "Feature\tStatus\nLogin\tdone", res.Text)
}

func TestExtract_RereadsEveryCall(t *testing.T) {
	path := writeFile(t, "a.txt", []byte("first"))
	ex := New(0)
	assert.Equal(t, "first", ex.Extract(path).Text)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
	assert.Equal(t, "second", ex.Extract(path).Text)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "unsupported", KindUnsupported.String())
	assert.Equal(t, "read_error", KindReadError.String())
}

// onePagePDF builds a minimal PDF whose single page carries line as text.
func onePagePDF(line string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 300 144] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		"",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	stream := fmt.Sprintf("BT /F1 18 Tf 20 80 Td (%s) Tj ET", line)
	objects[3] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)

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

func TestExtract_PDFTextLayer(t *testing.T) {
	res := New(0).Extract(writeFile(t, "report.pdf", onePagePDF("Hello architecture")))

	require.Equal(t, KindText, res.Kind, "%v", res.Err)
	assert.Equal(t, "pdf", res.Format)
	assert.Equal(t, "Hello architecture", res.Text)
}
