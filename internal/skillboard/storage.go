package skillboard

// Well-known storage keys. The names match the keys the earlier browser
// build used, so exported documents and copied storage stay interchangeable.
const (
	KeySkills      = "skillboard_skills"
	KeyPreferences = "skillboard_preferences"
	KeySuggestions = "skillboard_suggestions"
)

// Storage is the persistence backend: a flat key-value store of whole JSON
// documents. Every Write replaces the value stored under key in full.
//
// There is no locking across processes. Two writers that interleave a
// read-modify-write cycle will silently lose one of the updates.
type Storage interface {
	// Read returns the value stored under key.
	// A key that has never been written yields ok == false and a nil error.
	Read(key string) (data []byte, ok bool, err error)

	// Write replaces the value stored under key.
	Write(key string, data []byte) error

	// ValidateSetup verifies that the backend is reachable and writable.
	ValidateSetup() error

	// Close releases any resources held by the backend.
	Close() error
}
