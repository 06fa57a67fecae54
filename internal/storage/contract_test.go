package storage

import (
	"bytes"
	"testing"

	"skillboard/internal/skillboard"
)

// exerciseStorage runs the behaviour every backend must share.
func exerciseStorage(t *testing.T, s skillboard.Storage) {
	t.Helper()

	if _, ok, err := s.Read(skillboard.KeySkills); err != nil || ok {
		t.Fatalf("Read() of unwritten key = ok %v, err %v; want false, nil", ok, err)
	}

	tests := []struct {
		name string
		key  string
		data []byte
	}{
		{name: "skills", key: skillboard.KeySkills, data: []byte(`[{"id":"id-1"}]`)},
		{name: "preferences", key: skillboard.KeyPreferences, data: []byte(`{"darkMode":true}`)},
		{name: "overwrite skills", key: skillboard.KeySkills, data: []byte(`[]`)},
		{name: "large document", key: skillboard.KeySuggestions, data: bytes.Repeat([]byte("x"), 100000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Write(tt.key, tt.data); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			got, ok, err := s.Read(tt.key)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !ok {
				t.Fatal("Read() ok = false after Write")
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("Read() = %d bytes, want %d bytes", len(got), len(tt.data))
			}
		})
	}

	if err := s.ValidateSetup(); err != nil {
		t.Errorf("ValidateSetup() error = %v", err)
	}
}
