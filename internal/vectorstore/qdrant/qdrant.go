// Package qdrant is an optional vector store backend speaking Qdrant's REST
// API. The flat-file backend is the default; this one exists for stores that
// outgrow a single JSON file. Document scoping maps onto payload filters
// instead of key-prefix scans.
package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"docchat/internal/vectorstore"
)

// keyNamespace seeds deterministic UUIDv5 point ids. Qdrant only accepts
// integer or UUID ids, so store keys are hashed into UUIDs; determinism
// keeps Add idempotent per key.
var keyNamespace = uuid.MustParse("9f2d41b0-33c1-4c2a-8a4e-6f1d92d3a5c7")

// Store is a minimal REST client to a Qdrant collection using cosine
// distance. The collection is created lazily from the first added vector's
// dimensionality.
type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

// Config holds connection details for a Qdrant deployment.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// New creates a Qdrant-backed store. No connection is attempted until the
// first operation.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func pointID(key string) string {
	return uuid.NewSHA1(keyNamespace, []byte(key)).String()
}

func (s *Store) ensureCollection(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid vector dimension")
	}
	if s.dimension == dimension {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 for an existing collection with the same schema.
	if err := s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, s.collection), body); err != nil {
		return err
	}
	s.dimension = dimension
	return nil
}

// Add upserts one point keyed by a UUID derived from key. The original key
// rides along in the payload so Get and Keys can recover it.
func (s *Store) Add(key string, vector []float64, meta vectorstore.Metadata) error {
	if err := s.ensureCollection(len(vector)); err != nil {
		return err
	}
	body := map[string]any{
		"points": []map[string]any{{
			"id":     pointID(key),
			"vector": vector,
			"payload": map[string]any{
				"key":         key,
				"document_id": meta.DocumentID,
				"chunk_index": meta.ChunkIndex,
				"text":        meta.Text,
			},
		}},
	}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

// Get retrieves the record stored under key, if any.
func (s *Store) Get(key string) (vectorstore.Record, bool) {
	req := map[string]any{
		"ids":          []string{pointID(key)},
		"with_payload": true,
		"with_vector":  true,
	}
	var resp struct {
		Result []struct {
			Vector  []float64      `json:"vector"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	err := s.postJSON(fmt.Sprintf("%s/collections/%s/points", s.url, s.collection), req, &resp)
	if err != nil || len(resp.Result) == 0 {
		return vectorstore.Record{}, false
	}
	p := resp.Result[0]
	return vectorstore.Record{Vector: p.Vector, Metadata: payloadMeta(p.Payload)}, true
}

// Keys scrolls the whole collection and returns every stored key.
func (s *Store) Keys() []string {
	var keys []string
	var offset any
	for {
		req := map[string]any{
			"limit":        256,
			"with_payload": true,
		}
		if offset != nil {
			req["offset"] = offset
		}
		var resp struct {
			Result struct {
				Points []struct {
					Payload map[string]any `json:"payload"`
				} `json:"points"`
				NextPageOffset any `json:"next_page_offset"`
			} `json:"result"`
		}
		if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/scroll", s.url, s.collection), req, &resp); err != nil {
			return keys
		}
		for _, p := range resp.Result.Points {
			if k, ok := p.Payload["key"].(string); ok {
				keys = append(keys, k)
			}
		}
		if resp.Result.NextPageOffset == nil {
			return keys
		}
		offset = resp.Result.NextPageOffset
	}
}

// Search delegates scoring to Qdrant; the document scope becomes a payload
// match filter on document_id.
func (s *Store) Search(query []float64, documentID string, topK int) ([]vectorstore.Result, error) {
	if topK <= 0 {
		topK = 3
	}
	req := map[string]any{
		"vector":       query,
		"limit":        topK,
		"with_payload": true,
	}
	if documentID != "" {
		req["filter"] = map[string]any{
			"must": []map[string]any{{
				"key":   "document_id",
				"match": map[string]any{"value": documentID},
			}},
		}
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]vectorstore.Result, 0, len(resp.Result))
	for _, r := range resp.Result {
		meta := payloadMeta(r.Payload)
		key, _ := r.Payload["key"].(string)
		results = append(results, vectorstore.Result{
			Key:        key,
			Similarity: r.Score,
			Text:       meta.Text,
			ChunkIndex: meta.ChunkIndex,
			DocumentID: meta.DocumentID,
		})
	}
	return results, nil
}

// RemoveByPrefix deletes all points of the document the prefix denotes.
// Prefixes always come from domain.DocPrefix, so stripping the trailing
// separator recovers the document id for the payload filter.
func (s *Store) RemoveByPrefix(prefix string) error {
	documentID := prefix
	if n := len(prefix); n > 0 && prefix[n-1] == '_' {
		documentID = prefix[:n-1]
	}
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{{
				"key":   "document_id",
				"match": map[string]any{"value": documentID},
			}},
		},
	}
	return s.postJSON(fmt.Sprintf("%s/collections/%s/points/delete?wait=true", s.url, s.collection), body, nil)
}

// Clear drops the collection. It is recreated on the next Add.
func (s *Store) Clear() error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return err
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	s.dimension = 0
	return nil
}

func payloadMeta(payload map[string]any) vectorstore.Metadata {
	var meta vectorstore.Metadata
	if v, ok := payload["document_id"].(string); ok {
		meta.DocumentID = v
	}
	if v, ok := payload["chunk_index"].(float64); ok {
		meta.ChunkIndex = int(v)
	}
	if v, ok := payload["text"].(string); ok {
		meta.Text = v
	}
	return meta
}

func (s *Store) putJSON(url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Store) postJSON(url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

var _ vectorstore.Store = (*Store)(nil)
