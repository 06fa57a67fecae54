package skillboard

import "skillboard/internal/model"

// PreferencesStore persists the single preferences record.
type PreferencesStore struct {
	storage Storage
	logger  Logger
}

func NewPreferencesStore(storage Storage, logger Logger) *PreferencesStore {
	return &PreferencesStore{storage: storage, logger: logger}
}

// Get returns the stored preferences, or the defaults if none were saved.
// Fields missing from the stored document keep their default values.
func (p *PreferencesStore) Get() (model.Preferences, error) {
	prefs := model.DefaultPreferences()
	if _, err := readDocument(p.storage, KeyPreferences, &prefs); err != nil {
		return model.Preferences{}, err
	}
	return prefs, nil
}

// Set replaces the stored preferences wholesale.
// ReminderTime is stored as given.
func (p *PreferencesStore) Set(prefs model.Preferences) error {
	if err := writeDocument(p.storage, KeyPreferences, prefs); err != nil {
		return err
	}
	p.logger.Info("preferences saved",
		"darkMode", prefs.DarkMode,
		"reminderEnabled", prefs.ReminderEnabled,
		"reminderTime", prefs.ReminderTime)
	return nil
}
