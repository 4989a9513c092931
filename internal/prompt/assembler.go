// Package prompt formats retrieved context and chat history into the text
// prompt handed to the generative model.
package prompt

import (
	"fmt"
	"strings"

	"docchat/internal/domain"
	"docchat/internal/vectorstore"
)

// RelevanceThreshold is the minimum similarity a retrieved chunk needs to
// be included as context. Below it the chunk is dropped entirely so an
// unrelated store never pollutes the prompt.
const RelevanceThreshold = 0.05

// HistoryWindow bounds how many trailing chat messages are rendered.
const HistoryWindow = 5

// The model is asked, not forced, to stay inside the provided context.
const systemInstruction = "You are an assistant answering questions about an uploaded document. " +
	"Base answers only on provided context. If unknown, say you lack the info."

// Assembler builds prompts from retrieval results and history.
type Assembler struct{}

// New returns a prompt assembler.
func New() *Assembler { return &Assembler{} }

// FormatContext renders the retained chunks in given order, each annotated
// with its 1-based position and two-decimal similarity, blank-line
// separated. Chunks at or below the relevance threshold are dropped;
// positions count the original order, dropped chunks included.
func (a *Assembler) FormatContext(retrieved []vectorstore.Result) string {
	var sections []string
	for i, r := range retrieved {
		if r.Similarity > RelevanceThreshold {
			sections = append(sections, fmt.Sprintf("[Chunk %d sim=%.2f]\n%s", i+1, r.Similarity, r.Text))
		}
	}
	return strings.Join(sections, "\n\n")
}

// Assemble builds the full prompt: system instruction, context (if any),
// the trailing history window (if any), then the question and an answer cue.
func (a *Assembler) Assemble(question string, retrieved []vectorstore.Result, history []domain.ChatMessage) string {
	parts := []string{systemInstruction}

	if context := a.FormatContext(retrieved); context != "" {
		parts = append(parts, "\nContext:\n"+context)
	}

	if len(history) > 0 {
		parts = append(parts, "\nRecent conversation:")
		start := len(history) - HistoryWindow
		if start < 0 {
			start = 0
		}
		for _, m := range history[start:] {
			parts = append(parts, fmt.Sprintf("%s: %s", m.Role, m.Content))
		}
	}

	parts = append(parts, fmt.Sprintf("\nQuestion: %s\nAnswer:", question))
	return strings.Join(parts, "\n")
}
