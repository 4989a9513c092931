// Package vectorstore defines the storage contract for embedding records
// and the similarity math shared by its backends.
package vectorstore

// Metadata travels with every stored vector and carries enough to rebuild a
// retrieval result without consulting the source document.
type Metadata struct {
	DocumentID string `json:"document_id"`
	ChunkIndex int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// Record is one stored embedding entry.
type Record struct {
	Vector   []float64 `json:"vector"`
	Metadata Metadata  `json:"metadata"`
}

// Result is a transient retrieval hit; never persisted.
type Result struct {
	Key        string
	Similarity float64
	Text       string
	ChunkIndex int
	DocumentID string
}

// Store is a mapping from string key to embedding record with
// prefix-scoped similarity search and prefix deletion.
//
// Mutations are expected to leave the backend's durable state consistent
// with memory on return, best effort: persistence failures are the
// backend's to log, and the in-memory view stays authoritative.
type Store interface {
	// Add inserts or replaces the record under key.
	Add(key string, vector []float64, meta Metadata) error

	// Get returns the record under key, reporting whether it exists.
	Get(key string) (Record, bool)

	// Keys lists every stored key. Order carries no meaning.
	Keys() []string

	// Search scans all records, restricted to keys with prefix
	// "{documentID}_" when documentID is non-empty, and returns at most
	// topK results in descending similarity order.
	Search(query []float64, documentID string, topK int) ([]Result, error)

	// RemoveByPrefix deletes every record whose key starts with prefix.
	RemoveByPrefix(prefix string) error

	// Clear empties the store.
	Clear() error
}
