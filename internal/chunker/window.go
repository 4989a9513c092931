// Package chunker splits cleaned document text into fixed-size overlapping
// character windows.
package chunker

import (
	"errors"
	"fmt"
	"strings"

	"docchat/internal/domain"
)

// ErrInvalidChunking is returned when chunk size and overlap cannot produce
// a forward-advancing window.
var ErrInvalidChunking = errors.New("chunk size must be greater than overlap")

// MinChunkLen is the minimum trimmed length a chunk must exceed to be kept.
// Shorter fragments are stray page artifacts and are never embedded.
const MinChunkLen = 50

// WindowChunker emits overlapping character windows over cleaned text.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker validates the size/overlap relationship at construction;
// a size not strictly greater than the overlap would never advance.
func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= overlap {
		return nil, fmt.Errorf("%w (size=%d overlap=%d)", ErrInvalidChunking, size, overlap)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w (negative overlap %d)", ErrInvalidChunking, overlap)
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// Clean collapses all whitespace runs (newlines and tabs included) to single
// spaces and trims. Pure and deterministic; applied once before chunking.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Windows splits already-cleaned text into windows of the configured size,
// each overlapping the previous by the configured overlap. The final window
// may be shorter.
func (c *WindowChunker) Windows(text string) []string {
	var windows []string
	for start := 0; start < len(text); start += c.size - c.overlap {
		end := start + c.size
		if end > len(text) {
			end = len(text)
		}
		windows = append(windows, text[start:end])
	}
	return windows
}

// Chunk cleans the document text, windows it, and drops windows whose
// trimmed length does not exceed MinChunkLen. Surviving chunks are indexed
// sequentially from zero.
func (c *WindowChunker) Chunk(doc domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	for _, w := range c.Windows(Clean(doc.Text)) {
		if len(strings.TrimSpace(w)) <= MinChunkLen {
			continue
		}
		chunks = append(chunks, domain.Chunk{DocumentID: doc.ID, Index: len(chunks), Text: w})
	}
	return chunks
}

// Size reports the configured window size.
func (c *WindowChunker) Size() int { return c.size }

// Overlap reports the configured window overlap.
func (c *WindowChunker) Overlap() int { return c.overlap }
