package app

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Operation tracks the CLI command a SkillboardApp was opened for.
// Its ID tags every log line written during the command.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
	Status    string // "success" or "error"
}

// NewOperation creates an operation record that starts out successful.
func NewOperation(name string, now time.Time) *Operation {
	return &Operation{
		ID:        ulid.Make().String(),
		Name:      name,
		StartedAt: now,
		Status:    "success",
	}
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = "error"
}
