// Package embedding defines the embedding provider boundary.
package embedding

import "context"

// Purpose distinguishes document-side from query-side embeddings; some
// models optimize the two differently.
type Purpose string

const (
	PurposeDocument Purpose = "document"
	PurposeQuery    Purpose = "query"
)

// Embedder converts text into a fixed-dimensionality vector.
//
// Implementations return errors; callers convert failures into a zero
// vector of Dimension() length so one failed item never aborts a batch.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string, purpose Purpose) ([]float64, error)
}
