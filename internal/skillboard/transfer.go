package skillboard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"skillboard/internal/model"
)

// Archive is the export document: every skill plus the preferences.
// Suggestions are not part of it.
type Archive struct {
	Skills      []model.Skill     `json:"skills"`
	Preferences model.Preferences `json:"preferences"`
}

// ImportResult describes which parts of an archive were applied.
type ImportResult struct {
	SkillsImported      bool
	SkillCount          int
	PreferencesImported bool
}

// Transfer moves the skill collection and preferences in and out of a
// single JSON document.
type Transfer struct {
	storage Storage
	skills  *SkillRepository
	prefs   *PreferencesStore
	logger  Logger
}

func NewTransfer(storage Storage, skills *SkillRepository, prefs *PreferencesStore, logger Logger) *Transfer {
	return &Transfer{
		storage: storage,
		skills:  skills,
		prefs:   prefs,
		logger:  logger,
	}
}

// Export renders the current state as indented JSON.
func (t *Transfer) Export() (string, error) {
	skills, err := t.skills.List()
	if err != nil {
		return "", err
	}
	prefs, err := t.prefs.Get()
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(Archive{Skills: skills, Preferences: prefs}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding archive: %w", err)
	}
	return string(data), nil
}

// Import applies an archive produced by Export. A present "skills" array
// replaces the whole collection and a present "preferences" object replaces
// the preferences; an absent or null key leaves that part untouched.
//
// The document is validated completely before anything is written. If the
// skills were written and writing the preferences then fails, the previous
// skills are restored.
func (t *Transfer) Import(payload string) (ImportResult, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return ImportResult{}, fmt.Errorf("parsing archive: %w: %w", ErrInvalidFormat, err)
	}
	if doc == nil {
		return ImportResult{}, fmt.Errorf("archive is not an object: %w", ErrInvalidFormat)
	}

	var (
		skills    []model.Skill
		prefs     model.Preferences
		haveSkill = present(doc["skills"])
		havePrefs = present(doc["preferences"])
	)

	if haveSkill {
		if err := json.Unmarshal(doc["skills"], &skills); err != nil {
			return ImportResult{}, fmt.Errorf("parsing skills: %w: %w", ErrInvalidFormat, err)
		}
		if err := checkImportedSkills(skills); err != nil {
			return ImportResult{}, err
		}
		if skills == nil {
			skills = []model.Skill{}
		}
		for i := range skills {
			skills[i] = normalizeSkill(skills[i])
		}
	}

	if havePrefs {
		if !isObject(doc["preferences"]) {
			return ImportResult{}, fmt.Errorf("preferences is not an object: %w", ErrInvalidFormat)
		}
		prefs = model.DefaultPreferences()
		if err := json.Unmarshal(doc["preferences"], &prefs); err != nil {
			return ImportResult{}, fmt.Errorf("parsing preferences: %w: %w", ErrInvalidFormat, err)
		}
	}

	var result ImportResult
	if haveSkill {
		previous, hadPrevious, err := t.storage.Read(KeySkills)
		if err != nil {
			return ImportResult{}, fmt.Errorf("reading %s: %w: %w", KeySkills, ErrStorageUnavailable, err)
		}
		if err := writeDocument(t.storage, KeySkills, skills); err != nil {
			return ImportResult{}, err
		}
		result.SkillsImported = true
		result.SkillCount = len(skills)

		if havePrefs {
			if err := t.prefs.Set(prefs); err != nil {
				t.restoreSkills(previous, hadPrevious)
				return ImportResult{}, err
			}
			result.PreferencesImported = true
		}
	} else if havePrefs {
		if err := t.prefs.Set(prefs); err != nil {
			return ImportResult{}, err
		}
		result.PreferencesImported = true
	}

	t.logger.Info("archive imported",
		"skills", result.SkillsImported,
		"count", result.SkillCount,
		"preferences", result.PreferencesImported)
	return result, nil
}

func (t *Transfer) restoreSkills(previous []byte, hadPrevious bool) {
	if !hadPrevious {
		previous = []byte("[]")
	}
	if err := t.storage.Write(KeySkills, previous); err != nil {
		t.logger.Error("restoring skills after failed import", "error", err)
		return
	}
	t.logger.Warn("import rolled back")
}

func checkImportedSkills(skills []model.Skill) error {
	ids := make(map[string]bool, len(skills))
	for i, s := range skills {
		if err := validateSkillRecord(s); err != nil {
			return fmt.Errorf("skill %d: %w: %w", i, ErrInvalidFormat, err)
		}
		if ids[s.ID] {
			return fmt.Errorf("skill %d: duplicate id %s: %w", i, s.ID, ErrInvalidFormat)
		}
		ids[s.ID] = true
	}
	return nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
