package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSelectsBoundedSentences(t *testing.T) {
	text := "Go routines are lightweight threads. Channels connect goroutines together. " +
		"Goroutines and channels form Go concurrency. The weather was nice yesterday. " +
		"Lunch was served at noon. Concurrency in Go uses goroutines and channels."

	s := NewFrequency()
	out, err := s.Summarize(text, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, len(strings.Split(out, ". ")))
	// Topic sentences dominate the frequency ranking.
	assert.Contains(t, strings.ToLower(out), "goroutine")
}

func TestSummarizePreservesOriginalOrder(t *testing.T) {
	text := "Alpha systems boot first. Irrelevant filler here today. Alpha systems shut down last."
	s := NewFrequency()
	out, err := s.Summarize(text, 2)
	require.NoError(t, err)

	first := strings.Index(out, "boot first")
	second := strings.Index(out, "shut down last")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestSummarizeNoSentencePunctuation(t *testing.T) {
	s := NewFrequency()
	out, err := s.Summarize("  just a fragment without punctuation  ", 3)
	require.NoError(t, err)
	assert.Equal(t, "just a fragment without punctuation", out)
}

func TestSummarizeFewerSentencesThanRequested(t *testing.T) {
	s := NewFrequency()
	out, err := s.Summarize("Only one sentence here.", 5)
	require.NoError(t, err)
	assert.Equal(t, "Only one sentence here.", out)
}

func TestSummarizeNonPositiveMax(t *testing.T) {
	s := NewFrequency()
	_, err := s.Summarize("One. Two. Three.", 0)
	assert.NoError(t, err)
}
