package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/domain"
)

func TestNewWindowChunkerRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"equal", 100, 100},
		{"overlap larger", 50, 100},
		{"zero size", 0, 0},
		{"negative overlap", 100, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindowChunker(tt.size, tt.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidChunking)
		})
	}
}

func TestWindowsOffsets(t *testing.T) {
	c, err := NewWindowChunker(100, 20)
	require.NoError(t, err)

	text := strings.Repeat("x", 250)
	windows := c.Windows(text)

	require.Len(t, windows, 3)
	assert.Equal(t, text[0:100], windows[0])
	assert.Equal(t, text[80:180], windows[1])
	assert.Equal(t, text[160:250], windows[2])
}

func TestWindowsCoverTextExactly(t *testing.T) {
	c, err := NewWindowChunker(40, 15)
	require.NoError(t, err)

	text := strings.Repeat("abcdefghij", 17) + "klm"
	windows := c.Windows(text)
	require.NotEmpty(t, windows)

	// Every window except possibly the last is exactly the window size, and
	// stripping the overlap from each subsequent window reconstructs the text.
	var rebuilt strings.Builder
	rebuilt.WriteString(windows[0])
	for i, w := range windows {
		if i == 0 {
			continue
		}
		if i < len(windows)-1 {
			assert.Len(t, w, 40)
		}
		rebuilt.WriteString(w[15:])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestWindowsEmptyText(t *testing.T) {
	c, err := NewWindowChunker(100, 20)
	require.NoError(t, err)
	assert.Empty(t, c.Windows(""))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "a b c", Clean("  a\n\n b\t\tc  "))
	assert.Equal(t, "", Clean(" \n\t "))
}

func TestChunkDropsShortFragments(t *testing.T) {
	c, err := NewWindowChunker(200, 10)
	require.NoError(t, err)

	// 60 chars of content: one window, above the minimum.
	kept := c.Chunk(domain.Document{ID: "d", Text: strings.Repeat("word ", 12)})
	require.Len(t, kept, 1)
	assert.Equal(t, 0, kept[0].Index)
	assert.Equal(t, "d_chunk_0", kept[0].Key())

	// 30 chars: below the minimum, dropped.
	dropped := c.Chunk(domain.Document{ID: "d", Text: strings.Repeat("word ", 6)})
	assert.Empty(t, dropped)
}

func TestChunkDropsShortTrailingWindow(t *testing.T) {
	c, err := NewWindowChunker(100, 0)
	require.NoError(t, err)

	// 230 chars -> windows of 100, 100, 30; the 30-char tail is noise.
	chunks := c.Chunk(domain.Document{ID: "doc", Text: strings.Repeat("a", 230)})

	require.Len(t, chunks, 2)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[1].Index)
	assert.Equal(t, "doc_chunk_1", chunks[1].Key())
}
