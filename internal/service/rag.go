// Package service wires chunking, embedding, storage, prompt assembly and
// generation into the two operations the callers use: ingest a document,
// answer a question about it.
package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"

	"go.uber.org/zap"

	"docchat/internal/chunker"
	"docchat/internal/domain"
	"docchat/internal/embedding"
	"docchat/internal/generation"
	"docchat/internal/prompt"
	"docchat/internal/vectorstore"
)

// TopK is how many chunks are retrieved as context per question.
const TopK = 3

// summarySentences bounds the extractive summary shown after ingestion.
const summarySentences = 5

// ErrNoChunks is returned when a document yields nothing worth embedding.
var ErrNoChunks = errors.New("document produced no chunks")

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Service is the RAG orchestrator.
type Service struct {
	chunker    *chunker.WindowChunker
	embedder   embedding.Embedder
	store      vectorstore.Store
	generator  generation.Generator
	assembler  *prompt.Assembler
	summarizer Summarizer
	log        *zap.Logger
}

// New assembles a Service from its collaborators.
func New(ch *chunker.WindowChunker, emb embedding.Embedder, store vectorstore.Store, gen generation.Generator, sum Summarizer, log *zap.Logger) *Service {
	return &Service{
		chunker:    ch,
		embedder:   emb,
		store:      store,
		generator:  gen,
		assembler:  prompt.New(),
		summarizer: sum,
		log:        log,
	}
}

// IngestResult reports what ingestion stored.
type IngestResult struct {
	DocumentID string
	ChunkCount int
	Summary    string
}

// Ingest chunks the document, embeds every chunk sequentially, and stores
// the vectors under the document's key prefix. Records from a previous
// ingestion of the same id are purged first, so re-ingestion replaces
// rather than accumulates. A failed embedding is logged and stored as a
// zero vector; one bad chunk never aborts the batch.
func (s *Service) Ingest(ctx context.Context, doc domain.Document) (IngestResult, error) {
	chunks := s.chunker.Chunk(doc)
	if len(chunks) == 0 {
		return IngestResult{}, ErrNoChunks
	}

	if err := s.store.RemoveByPrefix(domain.DocPrefix(doc.ID)); err != nil {
		return IngestResult{}, fmt.Errorf("purging previous records for %s: %w", doc.ID, err)
	}

	for _, c := range chunks {
		vec := s.embed(ctx, c.Text, embedding.PurposeDocument)
		meta := vectorstore.Metadata{DocumentID: c.DocumentID, ChunkIndex: c.Index, Text: c.Text}
		if err := s.store.Add(c.Key(), vec, meta); err != nil {
			return IngestResult{}, fmt.Errorf("storing chunk %s: %w", c.Key(), err)
		}
	}

	summary := ""
	if s.summarizer != nil {
		var err error
		summary, err = s.summarizer.Summarize(chunker.Clean(doc.Text), summarySentences)
		if err != nil {
			s.log.Warn("summarizing document", zap.String("document", doc.ID), zap.Error(err))
			summary = ""
		}
	}

	s.log.Info("document ingested",
		zap.String("document", doc.ID),
		zap.Int("chunks", len(chunks)))
	return IngestResult{DocumentID: doc.ID, ChunkCount: len(chunks), Summary: summary}, nil
}

// embed converts one text to a vector, falling back to a zero vector of the
// provider's dimensionality on failure. Zero vectors score 0.0 against
// everything, so a failed item simply never ranks.
func (s *Service) embed(ctx context.Context, text string, purpose embedding.Purpose) []float64 {
	vec, err := s.embedder.Embed(ctx, text, purpose)
	if err != nil {
		s.log.Warn("embedding failed, using zero vector",
			zap.String("purpose", string(purpose)),
			zap.Error(err))
		return make([]float64, s.embedder.Dimension())
	}
	return vec
}

// Retrieve embeds the query and returns the top-k most similar chunks,
// scoped to documentID when non-empty.
func (s *Service) Retrieve(ctx context.Context, query, documentID string, topK int) ([]vectorstore.Result, error) {
	qvec := s.embed(ctx, query, embedding.PurposeQuery)
	return s.store.Search(qvec, documentID, topK)
}

// Answer retrieves context for the query and generates a blocking response.
// Generation failures are folded into the response text; per the error
// contract they never terminate the request.
func (s *Service) Answer(ctx context.Context, query, documentID string, history []domain.ChatMessage) (string, error) {
	retrieved, err := s.Retrieve(ctx, query, documentID, TopK)
	if err != nil {
		return "", fmt.Errorf("retrieving context: %w", err)
	}
	p := s.assembler.Assemble(query, retrieved, history)
	text, err := s.generator.Generate(ctx, p)
	if err != nil {
		s.log.Warn("generation failed", zap.Error(err))
		return fmt.Sprintf("Error generating response: %v", err), nil
	}
	return text, nil
}

// AnswerStream is the streaming variant of Answer. The returned sequence is
// finite and consumed once; any failure, retrieval or generation, surfaces
// as a single final error fragment so consumers always see a well-formed
// stream.
func (s *Service) AnswerStream(ctx context.Context, query, documentID string, history []domain.ChatMessage) iter.Seq[string] {
	return func(yield func(string) bool) {
		retrieved, err := s.Retrieve(ctx, query, documentID, TopK)
		if err != nil {
			s.log.Warn("retrieval failed", zap.Error(err))
			yield(fmt.Sprintf("[Error] %v", err))
			return
		}
		p := s.assembler.Assemble(query, retrieved, history)
		for fragment, err := range s.generator.Stream(ctx, p) {
			if err != nil {
				s.log.Warn("generation stream failed", zap.Error(err))
				yield(fmt.Sprintf("[Error] %v", err))
				return
			}
			if !yield(fragment) {
				return
			}
		}
	}
}

// SourcedAnswer pairs a response with the retrieval results and assembled
// context that produced it.
type SourcedAnswer struct {
	Response string
	Sources  []vectorstore.Result
	Context  string
}

// AnswerWithSources behaves like Answer but also reports which chunks
// backed the response. Failures fold into the response text with empty
// sources.
func (s *Service) AnswerWithSources(ctx context.Context, query, documentID string, history []domain.ChatMessage) SourcedAnswer {
	retrieved, err := s.Retrieve(ctx, query, documentID, TopK)
	if err != nil {
		s.log.Warn("retrieval failed", zap.Error(err))
		return SourcedAnswer{Response: fmt.Sprintf("Sorry, I encountered an error: %v", err)}
	}
	formatted := s.assembler.FormatContext(retrieved)
	text, err := s.generator.Generate(ctx, s.assembler.Assemble(query, retrieved, history))
	if err != nil {
		s.log.Warn("generation failed", zap.Error(err))
		return SourcedAnswer{Response: fmt.Sprintf("Sorry, I encountered an error: %v", err), Sources: retrieved, Context: formatted}
	}
	return SourcedAnswer{Response: text, Sources: retrieved, Context: formatted}
}

// DocumentInfo summarizes one ingested document's presence in the store.
type DocumentInfo struct {
	ID     string
	Chunks int
}

// Documents lists ingested document ids with their chunk counts, sorted by
// id.
func (s *Service) Documents() []DocumentInfo {
	return ListDocuments(s.store)
}

// ListDocuments derives the ingested documents from a store's keys; usable
// without a full service when no provider clients are wanted.
func ListDocuments(store vectorstore.Store) []DocumentInfo {
	counts := make(map[string]int)
	for _, key := range store.Keys() {
		if id := domain.DocumentIDFromKey(key); id != "" {
			counts[id]++
		}
	}
	infos := make([]DocumentInfo, 0, len(counts))
	for id, n := range counts {
		infos = append(infos, DocumentInfo{ID: id, Chunks: n})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Purge deletes every record belonging to documentID.
func (s *Service) Purge(documentID string) error {
	return s.store.RemoveByPrefix(domain.DocPrefix(documentID))
}

// Clear empties the whole store.
func (s *Service) Clear() error {
	return s.store.Clear()
}
