package skillboard

import (
	"context"

	"skillboard/internal/model"
)

// SuggestionSource produces learning resources for a skill.
// Implementations must return promptly once ctx is done.
type SuggestionSource interface {
	Fetch(ctx context.Context, skillName string, level model.Level) ([]model.ContentSuggestion, error)
}

// SuggestionCache keeps the most recently fetched suggestions. Each save
// replaces the previous list.
type SuggestionCache struct {
	storage Storage
	logger  Logger
}

func NewSuggestionCache(storage Storage, logger Logger) *SuggestionCache {
	return &SuggestionCache{storage: storage, logger: logger}
}

// Load returns the cached suggestions, or an empty list if nothing is cached.
func (c *SuggestionCache) Load() ([]model.ContentSuggestion, error) {
	var suggestions []model.ContentSuggestion
	if _, err := readDocument(c.storage, KeySuggestions, &suggestions); err != nil {
		return nil, err
	}
	if suggestions == nil {
		suggestions = []model.ContentSuggestion{}
	}
	return suggestions, nil
}

// Save replaces the cached suggestions.
func (c *SuggestionCache) Save(suggestions []model.ContentSuggestion) error {
	if suggestions == nil {
		suggestions = []model.ContentSuggestion{}
	}
	if err := writeDocument(c.storage, KeySuggestions, suggestions); err != nil {
		return err
	}
	c.logger.Debug("suggestions cached", "count", len(suggestions))
	return nil
}
