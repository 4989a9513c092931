// Package document turns source files into extracted text ready for
// chunking. PDFs are parsed page by page; anything else is read as plain
// text.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"docchat/internal/domain"
)

var (
	// ErrTooLarge is returned when the source file exceeds the configured
	// maximum input size.
	ErrTooLarge = errors.New("document exceeds maximum size")

	// ErrNoText is returned when extraction produces nothing usable. Not
	// an exception path: the caller decides how to inform the user.
	ErrNoText = errors.New("no text extracted from document")
)

var idSanitizer = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// Loader reads and extracts source files.
type Loader struct {
	maxBytes int64
	log      *zap.Logger
}

// NewLoader creates a loader enforcing maxBytes on input files.
func NewLoader(maxBytes int64, log *zap.Logger) *Loader {
	return &Loader{maxBytes: maxBytes, log: log}
}

// IDFor derives a document id from a file path. Ids are deterministic so
// re-ingesting the same file replaces its records instead of accumulating.
func IDFor(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	id := idSanitizer.ReplaceAllString(stem, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		id = "document"
	}
	return strings.ToLower(id)
}

// Load reads the file at path and returns a Document with extracted text.
// PDF extraction failures on individual pages are logged and skipped; a
// document from which nothing could be extracted yields ErrNoText.
func (l *Loader) Load(path string) (domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reading document: %w", err)
	}
	if l.maxBytes > 0 && info.Size() > l.maxBytes {
		return domain.Document{}, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, info.Size(), l.maxBytes)
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = l.extractPDF(path)
	} else {
		text, err = l.readPlain(path)
	}
	if err != nil {
		return domain.Document{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.Document{}, ErrNoText
	}

	return domain.Document{ID: IDFor(path), Path: path, Text: text}, nil
}

func (l *Loader) readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}

func (l *Loader) extractPDF(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	reader, err := pdf.NewReader(file, info.Size())
	if err != nil {
		return "", fmt.Errorf("parsing pdf: %w", err)
	}

	var out strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			l.log.Warn("extracting pdf page, skipping", zap.Int("page", i), zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&out, "\n--- Page %d ---\n%s", i, text)
	}
	return out.String(), nil
}
