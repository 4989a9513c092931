package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"docchat/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIDFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/Annual Report (2024).pdf", "annual-report-2024"},
		{"notes.txt", "notes"},
		{"/a/b/читать.pdf", "document"},
		{"UPPER_case.md", "upper-case"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IDFor(tt.path), tt.path)
	}
}

func TestLoadPlainText(t *testing.T) {
	l := NewLoader(1<<20, zaptest.NewLogger(t))
	path := writeFile(t, "sample.txt", "some document body\nwith two lines")

	doc, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", doc.ID)
	assert.Equal(t, path, doc.Path)
	assert.Contains(t, doc.Text, "two lines")
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	l := NewLoader(10, zaptest.NewLogger(t))
	path := writeFile(t, "big.txt", strings.Repeat("x", 100))

	_, err := l.Load(path)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoadEmptyFileIsErrNoText(t *testing.T) {
	l := NewLoader(1<<20, zaptest.NewLogger(t))
	path := writeFile(t, "empty.txt", "  \n\t ")

	_, err := l.Load(path)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader(1<<20, zaptest.NewLogger(t))
	_, err := l.Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoadedDocumentKeysRoundTrip(t *testing.T) {
	l := NewLoader(1<<20, zaptest.NewLogger(t))
	path := writeFile(t, "report.txt", "content")

	doc, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, domain.DocumentIDFromKey(domain.ChunkKey(doc.ID, 4)))
}
