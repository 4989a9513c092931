package qdrant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/vectorstore"
)

// fakeQdrant records requests and replies with canned bodies per path.
type fakeQdrant struct {
	requests  []recordedRequest
	responses map[string]string
}

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

func (f *fakeQdrant) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.requests = append(f.requests, recordedRequest{method: r.Method, path: r.URL.Path, body: body})
		if resp, ok := f.responses[r.URL.Path]; ok {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(resp))
			return
		}
		_, _ = w.Write([]byte(`{"result":{},"status":"ok"}`))
	})
}

func newTestStore(t *testing.T, fake *fakeQdrant) *Store {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return New(Config{URL: srv.URL, Collection: "docchat"})
}

func TestPointIDDeterministic(t *testing.T) {
	assert.Equal(t, pointID("doc_chunk_0"), pointID("doc_chunk_0"))
	assert.NotEqual(t, pointID("doc_chunk_0"), pointID("doc_chunk_1"))
}

func TestAddCreatesCollectionOnce(t *testing.T) {
	fake := &fakeQdrant{responses: map[string]string{}}
	s := newTestStore(t, fake)

	meta := vectorstore.Metadata{DocumentID: "doc", ChunkIndex: 0, Text: "hello"}
	require.NoError(t, s.Add("doc_chunk_0", []float64{1, 2, 3}, meta))
	require.NoError(t, s.Add("doc_chunk_1", []float64{4, 5, 6}, meta))

	var creates, upserts int
	for _, r := range fake.requests {
		switch r.path {
		case "/collections/docchat":
			creates++
			vectors := r.body["vectors"].(map[string]any)
			assert.Equal(t, float64(3), vectors["size"])
			assert.Equal(t, "Cosine", vectors["distance"])
		case "/collections/docchat/points":
			upserts++
		}
	}
	assert.Equal(t, 1, creates)
	assert.Equal(t, 2, upserts)
}

func TestSearchAppliesDocumentFilter(t *testing.T) {
	fake := &fakeQdrant{responses: map[string]string{
		"/collections/docchat/points/search": `{"result":[
			{"score":0.91,"payload":{"key":"doc_chunk_2","document_id":"doc","chunk_index":2,"text":"relevant"}},
			{"score":0.40,"payload":{"key":"doc_chunk_0","document_id":"doc","chunk_index":0,"text":"less"}}
		]}`,
	}}
	s := newTestStore(t, fake)

	results, err := s.Search([]float64{1, 0}, "doc", 3)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "doc_chunk_2", results[0].Key)
	assert.InDelta(t, 0.91, results[0].Similarity, 1e-9)
	assert.Equal(t, 2, results[0].ChunkIndex)

	last := fake.requests[len(fake.requests)-1]
	filter := last.body["filter"].(map[string]any)
	must := filter["must"].([]any)[0].(map[string]any)
	assert.Equal(t, "document_id", must["key"])
	assert.Equal(t, map[string]any{"value": "doc"}, must["match"])
}

func TestSearchUnscopedOmitsFilter(t *testing.T) {
	fake := &fakeQdrant{responses: map[string]string{
		"/collections/docchat/points/search": `{"result":[]}`,
	}}
	s := newTestStore(t, fake)

	_, err := s.Search([]float64{1}, "", 3)
	require.NoError(t, err)

	last := fake.requests[len(fake.requests)-1]
	_, hasFilter := last.body["filter"]
	assert.False(t, hasFilter)
}

func TestRemoveByPrefixDeletesByDocumentID(t *testing.T) {
	fake := &fakeQdrant{responses: map[string]string{}}
	s := newTestStore(t, fake)

	require.NoError(t, s.RemoveByPrefix("doc1_"))

	last := fake.requests[len(fake.requests)-1]
	assert.Equal(t, "/collections/docchat/points/delete", last.path)
	filter := last.body["filter"].(map[string]any)
	must := filter["must"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"value": "doc1"}, must["match"])
}

func TestKeysScrollsAllPages(t *testing.T) {
	fake := &fakeQdrant{responses: map[string]string{
		"/collections/docchat/points/scroll": `{"result":{"points":[
			{"payload":{"key":"a_chunk_0"}},
			{"payload":{"key":"a_chunk_1"}}
		],"next_page_offset":null}}`,
	}}
	s := newTestStore(t, fake)

	keys := s.Keys()
	assert.ElementsMatch(t, []string{"a_chunk_0", "a_chunk_1"}, keys)
}
