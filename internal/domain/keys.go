package domain

import (
	"fmt"
	"strings"
)

// ChunkKey builds the vector store key for the chunk at index of documentID.
func ChunkKey(documentID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, index)
}

// DocPrefix returns the key prefix covering every chunk of documentID.
func DocPrefix(documentID string) string {
	return documentID + "_"
}

// DocumentIDFromKey recovers the document id from a chunk key, or "" if the
// key does not follow the chunk key format.
func DocumentIDFromKey(key string) string {
	i := strings.LastIndex(key, "_chunk_")
	if i < 0 {
		return ""
	}
	return key[:i]
}
