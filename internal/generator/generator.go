// Package generator prompts the completion service for future front pages
// and story threads and turns the replies into typed records.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"futurenews/internal/metrics"
	"futurenews/internal/model"
	"futurenews/pkg/llm"
)

type Generator struct {
	llm     llm.Completer
	timeout time.Duration
}

// New returns a Generator. A zero timeout leaves completion calls bounded
// only by the caller's context.
func New(completer llm.Completer, timeout time.Duration) *Generator {
	return &Generator{llm: completer, timeout: timeout}
}

func (g *Generator) GenerateBatch(ctx context.Context, year int, lang string) ([]model.Story, error) {
	start := time.Now()

	text, err := g.complete(ctx, llm.CompletionRequest{
		Prompt:      buildBatchPrompt(year, lang),
		Temperature: batchTemperature,
		MaxTokens:   batchMaxTokens,
	})
	if err != nil {
		metrics.ObserveGeneration(metrics.KindBatch, metrics.OutcomeUpstreamError, time.Since(start))
		return nil, fmt.Errorf("generate batch: %w", err)
	}

	var raw []rawStory
	if err := llm.DecodeJSON(text, &raw); err != nil {
		metrics.ObserveGeneration(metrics.KindBatch, metrics.OutcomeParseError, time.Since(start))
		return nil, fmt.Errorf("parse batch: %w", err)
	}

	stories := normalizeStories(raw)
	if len(stories) < model.BatchSize {
		slog.Warn("model returned a short batch", "year", year, "lang", lang, "count", len(stories))
	}

	metrics.ObserveGeneration(metrics.KindBatch, metrics.OutcomeSuccess, time.Since(start))
	return stories, nil
}

func (g *Generator) GenerateDetail(ctx context.Context, story model.Story) (*model.StoryDetail, error) {
	start := time.Now()

	text, err := g.complete(ctx, llm.CompletionRequest{
		Prompt:      buildDetailPrompt(story),
		Temperature: detailTemperature,
		MaxTokens:   detailMaxTokens,
	})
	if err != nil {
		metrics.ObserveGeneration(metrics.KindDetail, metrics.OutcomeUpstreamError, time.Since(start))
		return nil, fmt.Errorf("generate detail: %w", err)
	}

	var detail model.StoryDetail
	if err := llm.DecodeJSON(text, &detail); err != nil {
		metrics.ObserveGeneration(metrics.KindDetail, metrics.OutcomeParseError, time.Since(start))
		return nil, fmt.Errorf("parse detail: %w", err)
	}

	metrics.ObserveGeneration(metrics.KindDetail, metrics.OutcomeSuccess, time.Since(start))
	return &detail, nil
}

func (g *Generator) complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	return g.llm.Complete(ctx, req)
}
