// Package generation defines the generative model boundary.
package generation

import (
	"context"
	"iter"
)

// Generator produces model responses for an assembled prompt, either whole
// or as a lazy sequence of text fragments.
//
// Stream sequences are finite, not restartable, and consumed exactly once;
// the caller stops pulling to cancel. A mid-stream failure surfaces as the
// sequence's final error, never as a panic past the consumer.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) iter.Seq2[string, error]
}
