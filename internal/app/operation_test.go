package app

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestNewOperation(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		operation string
	}{
		{name: "mutating command", operation: "AddSkill"},
		{name: "read-only command", operation: "ListSkills"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation(tt.operation, now)

			if op.Name != tt.operation {
				t.Errorf("Name = %q, want %q", op.Name, tt.operation)
			}
			if op.Status != "success" {
				t.Errorf("Status = %q, want %q", op.Status, "success")
			}
			if !op.StartedAt.Equal(now) {
				t.Errorf("StartedAt = %v, want %v", op.StartedAt, now)
			}
			if _, err := ulid.ParseStrict(op.ID); err != nil {
				t.Errorf("ID %q is not a ULID: %v", op.ID, err)
			}
		})
	}
}

func TestOperation_Fail(t *testing.T) {
	op := NewOperation("Import", time.Now())
	op.Fail()
	if op.Status != "error" {
		t.Errorf("Status = %q, want %q", op.Status, "error")
	}
}

func TestNewOperation_uniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewOperation("AddSkill", time.Now()).ID
		if seen[id] {
			t.Fatalf("duplicate operation id %q", id)
		}
		seen[id] = true
	}
}
