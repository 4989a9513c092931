package domain

// Document is a single source file loaded into the system, with extraction
// already applied (Text holds raw extracted text, not yet cleaned).
type Document struct {
	ID   string
	Path string
	Text string
}

// Chunk is a contiguous slice of a document's cleaned text, the unit of
// embedding and retrieval. Immutable once created.
type Chunk struct {
	DocumentID string
	Index      int
	Text       string
}

// Key returns the storage key for this chunk: "{document_id}_chunk_{index}".
// Prefix filtering on "{document_id}_" is the sole document-scoping
// mechanism, so this format is load-bearing.
func (c Chunk) Key() string {
	return ChunkKey(c.DocumentID, c.Index)
}

// Message roles understood by the prompt assembler.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the conversation. The ordered history is owned
// by the caller; the core only reads a bounded trailing window of it.
type ChatMessage struct {
	Role    string
	Content string
}
