package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind tells a caller why text is or is not available.
type Kind int

const (
	KindText Kind = iota
	KindUnsupported
	KindReadError
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUnsupported:
		return "unsupported"
	case KindReadError:
		return "read_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the outcome of one extraction. Text is only meaningful for
// KindText; Err is set for KindReadError and, when known, KindUnsupported.
type Result struct {
	Kind   Kind
	Text   string
	Format string // "text" | "pdf" | "xlsx" | "ipynb" | ""
	Err    error
}

// Content returns the text and true only when text was extracted.
func (r Result) Content() (string, bool) {
	if r.Kind != KindText {
		return "", false
	}
	return r.Text, true
}

func text(format, s string) Result { return Result{Kind: KindText, Text: s, Format: format} }

func unsupported(format string, err error) Result {
	return Result{Kind: KindUnsupported, Format: format, Err: err}
}

func readError(err error) Result { return Result{Kind: KindReadError, Err: err} }

var (
	ErrTooLarge      = errors.New("file exceeds extraction size limit")
	ErrBinaryContent = errors.New("file content is not text")
	ErrUnknownFormat = errors.New("unknown file format")
)

const DefaultMaxBytes int64 = 10 << 20

var plainTextExts = map[string]struct{}{
	".txt": {}, ".md": {}, ".markdown": {}, ".rst": {}, ".csv": {}, ".tsv": {}, ".log": {},
	".json": {}, ".yaml": {}, ".yml": {}, ".xml": {}, ".html": {}, ".go": {}, ".py": {},
	".js": {}, ".ts": {}, ".java": {}, ".c": {}, ".cpp": {}, ".h": {}, ".rb": {}, ".rs": {},
	".sql": {}, ".sh": {},
}

// Extractor reads stored uploads and returns their text. It holds no state
// between calls and is safe for concurrent use.
type Extractor struct {
	MaxBytes int64
}

func New(maxBytes int64) *Extractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Extractor{MaxBytes: maxBytes}
}

// Extract never fails: missing or unreadable files come back as
// KindReadError, formats it cannot decode as KindUnsupported.
func (e *Extractor) Extract(path string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = readError(fmt.Errorf("extract %s: %v", path, r))
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return readError(err)
	}
	if info.IsDir() {
		return readError(fmt.Errorf("%s is a directory", path))
	}
	if info.Size() > e.maxBytes() {
		return unsupported("", ErrTooLarge)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return readPDF(path)
	case ".xlsx":
		return readXLSX(path)
	case ".ipynb":
		return readNotebook(path)
	}

	data, err := readAll(path, e.maxBytes())
	if err != nil {
		return readError(err)
	}
	if _, ok := plainTextExts[ext]; ok {
		return plainText(data)
	}
	if strings.HasPrefix(http.DetectContentType(data), "text/plain") {
		return plainText(data)
	}
	return unsupported("", ErrUnknownFormat)
}

func (e *Extractor) maxBytes() int64 {
	if e == nil || e.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return e.MaxBytes
}

func plainText(data []byte) Result {
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return unsupported("text", ErrBinaryContent)
	}
	return text("text", string(data))
}

func readAll(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit))
}
