package skillboard

import (
	"encoding/json"
	"fmt"
)

// readDocument decodes the JSON value stored under key into dst.
// It reports false without touching dst when the key is absent.
func readDocument(s Storage, key string, dst any) (bool, error) {
	data, ok, err := s.Read(key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w: %w", key, ErrStorageUnavailable, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decoding %s: %w: %w", key, ErrInvalidFormat, err)
	}
	return true, nil
}

// writeDocument replaces the value stored under key with the JSON encoding of v.
func writeDocument(s Storage, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Write(key, data); err != nil {
		return fmt.Errorf("writing %s: %w: %w", key, ErrStorageUnavailable, err)
	}
	return nil
}
