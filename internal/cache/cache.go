// Package cache holds the most recent story batch per (year, language) so
// detail lookups can reuse it without prompting the model again.
package cache

import (
	"context"
	"fmt"
	"sync"

	"futurenews/internal/model"
)

type Cache interface {
	Put(ctx context.Context, year int, lang string, stories []model.Story)
	Get(ctx context.Context, year int, lang string) []model.Story
}

func Key(year int, lang string) string {
	return fmt.Sprintf("%d_%s", year, lang)
}

// FindStory returns the cached story with the given id, or a placeholder
// built from id when the batch or the story is missing.
func FindStory(ctx context.Context, c Cache, year int, lang string, id int) model.Story {
	for _, s := range c.Get(ctx, year, lang) {
		if s.ID == id {
			return s
		}
	}
	return Placeholder(id)
}

func Placeholder(id int) model.Story {
	return model.Story{
		ID:    id,
		Title: fmt.Sprintf("Future Story #%d", id),
		URL:   model.PlaceholderURL,
	}
}

// Memory is a process-local Cache. Entries live until the process exits.
type Memory struct {
	mu      sync.RWMutex
	batches map[string][]model.Story
}

func NewMemory() *Memory {
	return &Memory{batches: make(map[string][]model.Story)}
}

func (m *Memory) Put(_ context.Context, year int, lang string, stories []model.Story) {
	batch := make([]model.Story, len(stories))
	copy(batch, stories)

	m.mu.Lock()
	m.batches[Key(year, lang)] = batch
	m.mu.Unlock()
}

func (m *Memory) Get(_ context.Context, year int, lang string) []model.Story {
	m.mu.RLock()
	batch := m.batches[Key(year, lang)]
	m.mu.RUnlock()

	if batch == nil {
		return nil
	}

	out := make([]model.Story, len(batch))
	copy(out, batch)
	return out
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.batches)
}
