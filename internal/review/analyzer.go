package review

import (
	"context"
	"fmt"
	"log"
	"sync"

	"clausesync/internal/chunk"
	"clausesync/internal/config"
	"clausesync/internal/domain"
	"clausesync/internal/llm"
	"clausesync/internal/port"
)

// Analyzer drives the chunk → completion → merge pipeline for one contract.
// Chunk requests fan out over a bounded worker pool; with concurrency 1 (the
// default) they are issued strictly one at a time. Results are folded in
// original chunk order regardless of completion order.
type Analyzer struct {
	client      port.CompletionClient
	maxTokens   int
	concurrency int
}

// NewAnalyzer creates an Analyzer from a completion client and review settings.
func NewAnalyzer(client port.CompletionClient, cfg *config.ReviewConfig) *Analyzer {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = chunk.DefaultMaxTokens
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Analyzer{
		client:      client,
		maxTokens:   maxTokens,
		concurrency: concurrency,
	}
}

// Analyze splits the contract text, requests an analysis for every chunk, and
// merges the replies into one report. A failed chunk contributes nothing to
// the report, only a warning; even if every chunk fails the caller still gets
// the default report plus one warning per failure.
func (a *Analyzer) Analyze(ctx context.Context, contractText string) (*domain.Report, []domain.Warning) {
	chunks := chunk.Split(contractText, a.maxTokens)
	if len(chunks) == 0 {
		report, _ := Merge(nil)
		return report, nil
	}

	systemPrompt := llm.ReviewSystemPrompt()

	replies := make([]string, len(chunks))
	failures := make([]error, len(chunks))

	sem := make(chan struct{}, a.concurrency)
	var wg sync.WaitGroup
	for i, c := range chunks {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int, chunkText string) {
			defer wg.Done()
			defer func() { <-sem }() // release

			reply, err := a.client.Complete(ctx, systemPrompt, llm.ReviewUserPrompt(chunkText))
			if err != nil {
				failures[i] = err
				return
			}
			replies[i] = reply
		}(i, c)
	}
	wg.Wait()

	var warnings []domain.Warning
	results := make([]ChunkResult, 0, len(chunks))
	for i := range chunks {
		if failures[i] != nil {
			log.Printf("review.Analyzer: chunk %d/%d failed: %v", i+1, len(chunks), failures[i])
			warnings = append(warnings, domain.Warning{
				Stage:   "completion",
				Chunk:   i + 1,
				Message: fmt.Sprintf("completion failed: %v", failures[i]),
			})
			continue
		}
		results = append(results, ChunkResult{Chunk: i + 1, Text: replies[i]})
	}

	report, mergeWarnings := Merge(results)
	return report, append(warnings, mergeWarnings...)
}
