package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkKeyFormat(t *testing.T) {
	assert.Equal(t, "report_chunk_0", ChunkKey("report", 0))
	assert.Equal(t, "report_chunk_12", ChunkKey("report", 12))
	assert.Equal(t, "report_chunk_3", Chunk{DocumentID: "report", Index: 3}.Key())
}

func TestDocPrefixScopesKeys(t *testing.T) {
	// The prefix must separate "doc1" from "doc10".
	assert.Equal(t, "doc1_", DocPrefix("doc1"))
	assert.True(t, strings.HasPrefix(ChunkKey("doc1", 0), DocPrefix("doc1")))
	assert.False(t, strings.HasPrefix(ChunkKey("doc10", 0), DocPrefix("doc1")))
}

func TestDocumentIDFromKey(t *testing.T) {
	assert.Equal(t, "report", DocumentIDFromKey("report_chunk_7"))
	// Underscored document ids survive the round trip.
	assert.Equal(t, "my_doc", DocumentIDFromKey(ChunkKey("my_doc", 2)))
	assert.Equal(t, "", DocumentIDFromKey("unrelated-key"))
}
