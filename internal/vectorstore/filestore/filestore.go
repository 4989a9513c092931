// Package filestore is the flat-file vector store backend: the whole
// key-to-record mapping lives in memory and is rewritten to one JSON file on
// every mutation. Search is a full linear scan with cosine scoring, which is
// the intended scale tradeoff for a single document's worth of chunks.
package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"docchat/internal/domain"
	"docchat/internal/vectorstore"
)

// Store is a process-local, file-backed mapping. Not safe for concurrent
// use; the application is single-session by design.
type Store struct {
	path    string
	records map[string]vectorstore.Record
	log     *zap.Logger
}

// New loads the mapping from path if the file exists. A file that cannot be
// read or decoded is logged and treated as empty: the store must stay
// usable.
func New(path string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path, records: make(map[string]vectorstore.Record), log: log}
	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("reading vector store file, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		s.log.Warn("decoding vector store file, starting empty", zap.String("path", s.path), zap.Error(err))
		s.records = make(map[string]vectorstore.Record)
	}
}

// save rewrites the whole mapping. Failures are logged, never returned:
// the in-memory state stays authoritative for the rest of the process.
func (s *Store) save() {
	data, err := json.Marshal(s.records)
	if err != nil {
		s.log.Error("encoding vector store", zap.Error(err))
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Error("writing vector store file", zap.String("path", tmp), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Error("replacing vector store file", zap.String("path", s.path), zap.Error(err))
	}
}

// Add inserts or replaces a record and persists immediately.
func (s *Store) Add(key string, vector []float64, meta vectorstore.Metadata) error {
	s.records[key] = vectorstore.Record{Vector: vector, Metadata: meta}
	s.save()
	return nil
}

// Get returns the record stored under key.
func (s *Store) Get(key string) (vectorstore.Record, bool) {
	r, ok := s.records[key]
	return r, ok
}

// Keys lists all stored keys in unspecified order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	return keys
}

// Len reports the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Search linearly scans every record, scoring each candidate with cosine
// similarity against query. When documentID is non-empty only keys under
// its prefix are considered. Results are sorted stably descending and
// truncated to topK after sorting; storage order implies nothing.
func (s *Store) Search(query []float64, documentID string, topK int) ([]vectorstore.Result, error) {
	keys := s.Keys()
	sort.Strings(keys) // deterministic scan order for stable tie-breaks

	var results []vectorstore.Result
	for _, key := range keys {
		if documentID != "" && !strings.HasPrefix(key, domain.DocPrefix(documentID)) {
			continue
		}
		rec := s.records[key]
		results = append(results, vectorstore.Result{
			Key:        key,
			Similarity: vectorstore.Cosine(query, rec.Vector),
			Text:       rec.Metadata.Text,
			ChunkIndex: rec.Metadata.ChunkIndex,
			DocumentID: rec.Metadata.DocumentID,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Similarity > results[j].Similarity })
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// RemoveByPrefix deletes every record whose key starts with prefix, then
// persists once.
func (s *Store) RemoveByPrefix(prefix string) error {
	for k := range s.records {
		if strings.HasPrefix(k, prefix) {
			delete(s.records, k)
		}
	}
	s.save()
	return nil
}

// Clear empties the mapping and persists the empty state.
func (s *Store) Clear() error {
	s.records = make(map[string]vectorstore.Record)
	s.save()
	return nil
}

var _ vectorstore.Store = (*Store)(nil)
