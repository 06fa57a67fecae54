// Package suggest provides the built-in content suggestion source: a
// static catalog of well-known courses with simulated network latency.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillboard/internal/model"
	"skillboard/internal/skillboard"
)

// PlaceholderSkillID is attached to every suggestion the catalog returns.
// Suggestions are looked up by skill name, not by skill, so they do not
// carry the id of the skill they were fetched for.
const PlaceholderSkillID = "mock-skill-id"

// DefaultDelay is the simulated round-trip time of a fetch.
const DefaultDelay = time.Second

type entry struct {
	title   string
	url     string
	minutes int
	kind    model.ContentType
}

var catalog = map[string][]entry{
	"JavaScript": {
		{"JavaScript Fundamentals", "https://www.freecodecamp.org/learn/javascript-algorithms-and-data-structures/", 300, model.ContentCourse},
		{"Modern JavaScript Tutorial", "https://javascript.info/", 480, model.ContentCourse},
		{"JavaScript30 - 30 Day Challenge", "https://javascript30.com/", 900, model.ContentCourse},
	},
	"Python": {
		{"Python for Everybody Specialization", "https://www.coursera.org/specializations/python", 480, model.ContentCourse},
		{"Automate the Boring Stuff with Python", "https://automatetheboringstuff.com/", 720, model.ContentCourse},
		{"Python Crash Course", "https://ehmatthes.github.io/pcc/", 600, model.ContentCourse},
	},
	"React": {
		{"React Documentation", "https://react.dev/learn", 240, model.ContentCourse},
		{"Epic React by Kent C. Dodds", "https://epicreact.dev/", 1200, model.ContentCourse},
		{"React Projects Course", "https://www.freecodecamp.org/learn/front-end-development-libraries/", 300, model.ContentCourse},
	},
}

// Catalog is a SuggestionSource backed by a fixed table keyed by exact skill
// name. Unknown names get a generic course search and a video search.
type Catalog struct {
	delay time.Duration
	idgen skillboard.IDGenerator
}

var _ skillboard.SuggestionSource = (*Catalog)(nil)

func NewCatalog(delay time.Duration, idgen skillboard.IDGenerator) *Catalog {
	return &Catalog{delay: delay, idgen: idgen}
}

// Fetch waits out the simulated latency and returns the suggestions for
// skillName. It returns early if ctx is done first.
func (c *Catalog) Fetch(ctx context.Context, skillName string, level model.Level) ([]model.ContentSuggestion, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	entries, ok := catalog[skillName]
	if !ok {
		entries = fallback(skillName, level)
	}

	out := make([]model.ContentSuggestion, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.ContentSuggestion{
			ID:       c.idgen.New(),
			Title:    e.title,
			URL:      e.url,
			Duration: e.minutes,
			Type:     e.kind,
			SkillID:  PlaceholderSkillID,
		})
	}
	return out, nil
}

func (c *Catalog) wait(ctx context.Context) error {
	if c.delay <= 0 {
		return ctxErr(ctx)
	}

	timer := time.NewTimer(c.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctxErr(ctx)
	}
}

// ctxErr maps a finished context onto the suggestion error kinds.
func ctxErr(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("fetching suggestions: %w: %w", skillboard.ErrTimeout, err)
	default:
		return fmt.Errorf("fetching suggestions: %w", err)
	}
}

func fallback(skillName string, level model.Level) []entry {
	return []entry{
		{
			title:   skillName + " Fundamentals Course",
			url:     "https://www.coursera.org/search?query=" + encodeURIComponent(skillName),
			minutes: 480,
			kind:    model.ContentCourse,
		},
		{
			title:   "Learn " + skillName + " - Full Tutorial",
			url:     "https://www.youtube.com/results?search_query=" + encodeURIComponent(fmt.Sprintf("learn %s %s tutorial", skillName, level)),
			minutes: 120,
			kind:    model.ContentVideo,
		},
	}
}

// encodeURIComponent escapes everything except letters, digits and
// -_.!~*'(), the same set browsers leave alone. Spaces become %20.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isUnreserved(b) {
			out = append(out, b)
			continue
		}
		out = append(out, '%', hex[b>>4], hex[b&0x0f])
	}
	return string(out)
}

func isUnreserved(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	switch b {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
