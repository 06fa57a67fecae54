package skillboard

import (
	"errors"
	"fmt"
	"strings"

	"skillboard/internal/model"
)

func validateSkillFields(name string, level model.Level, status model.Status) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("skill name is empty: %w", ErrValidation)
	}
	if !level.Valid() {
		return fmt.Errorf("unknown level %q: %w", level, ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}
	return nil
}

func validateSessionFields(zeroDate bool, duration int) error {
	if zeroDate {
		return fmt.Errorf("session date is missing: %w", ErrValidation)
	}
	if duration <= 0 {
		return fmt.Errorf("session duration %d must be positive: %w", duration, ErrValidation)
	}
	return nil
}

func validateTaskText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("task text is empty: %w", ErrValidation)
	}
	return nil
}

// validateSkillRecord checks a complete skill as it would be persisted.
// The returned error is not classified; callers attach ErrValidation or
// ErrInvalidFormat depending on where the record came from.
func validateSkillRecord(s model.Skill) error {
	if s.ID == "" {
		return errors.New("skill id is empty")
	}
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("skill name is empty")
	}
	if !s.Level.Valid() {
		return fmt.Errorf("unknown level %q", s.Level)
	}
	if !s.Status.Valid() {
		return fmt.Errorf("unknown status %q", s.Status)
	}

	seen := make(map[string]bool, len(s.Sessions))
	for _, sess := range s.Sessions {
		if sess.ID == "" {
			return errors.New("session id is empty")
		}
		if seen[sess.ID] {
			return fmt.Errorf("duplicate session id %s", sess.ID)
		}
		seen[sess.ID] = true
		if sess.Date.IsZero() {
			return fmt.Errorf("session %s has no date", sess.ID)
		}
		if sess.Duration <= 0 {
			return fmt.Errorf("session %s duration %d must be positive", sess.ID, sess.Duration)
		}
	}

	seen = make(map[string]bool, len(s.Tasks))
	for _, task := range s.Tasks {
		if task.ID == "" {
			return errors.New("task id is empty")
		}
		if seen[task.ID] {
			return fmt.Errorf("duplicate task id %s", task.ID)
		}
		seen[task.ID] = true
	}
	return nil
}
