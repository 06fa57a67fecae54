package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"skillboard/internal/config"
	"skillboard/internal/encryption"
	"skillboard/internal/model"
	"skillboard/internal/skillboard"
	"skillboard/internal/storage"
	"skillboard/internal/suggest"
)

// Deps are the collaborators a SkillboardApp is built from.
type Deps struct {
	Storage skillboard.Storage
	Source  skillboard.SuggestionSource
	Logger  skillboard.Logger
	Clock   skillboard.Clock
	IDs     skillboard.IDGenerator

	// SuggestTimeout bounds a single suggestion fetch. Zero means no limit.
	SuggestTimeout time.Duration
}

// Options tune NewSkillboardApp.
type Options struct {
	// Passphrase is called once when encrypted storage must be unlocked.
	Passphrase func() (string, error)

	// Verbose mirrors log output to stderr.
	Verbose bool
}

// SkillboardApp is the application layer between the CLI and the core.
// It owns a cached copy of the skills, preferences and last fetched
// suggestions. Every mutation is delegated to the core and followed by a
// full reload of the skill collection, so the cache always matches what was
// last written.
//
// Readers receive copies and may modify them freely.
type SkillboardApp struct {
	storage  skillboard.Storage
	skills   *skillboard.SkillRepository
	prefs    *skillboard.PreferencesStore
	cache    *skillboard.SuggestionCache
	transfer *skillboard.Transfer
	source   skillboard.SuggestionSource
	logger   skillboard.Logger
	timeout  time.Duration

	mu          sync.RWMutex
	skillList   []model.Skill
	preferences model.Preferences
	suggestions []model.ContentSuggestion

	pending sync.WaitGroup
	op      *Operation
	logFile *os.File
}

// New builds a SkillboardApp from explicit dependencies and loads the
// initial skills and preferences.
func New(d Deps) (*SkillboardApp, error) {
	if d.Storage == nil {
		return nil, errors.New("storage is required")
	}
	if d.Logger == nil {
		d.Logger = skillboard.NewNopLogger()
	}
	if d.Clock == nil {
		d.Clock = skillboard.RealClock{}
	}
	if d.IDs == nil {
		d.IDs = skillboard.UUIDGenerator{}
	}
	if d.Source == nil {
		d.Source = suggest.NewCatalog(suggest.DefaultDelay, d.IDs)
	}

	skills := skillboard.NewSkillRepository(d.Storage, d.Logger, d.Clock, d.IDs)
	prefs := skillboard.NewPreferencesStore(d.Storage, d.Logger)
	a := &SkillboardApp{
		storage:  d.Storage,
		skills:   skills,
		prefs:    prefs,
		cache:    skillboard.NewSuggestionCache(d.Storage, d.Logger),
		transfer: skillboard.NewTransfer(d.Storage, skills, prefs, d.Logger),
		source:   d.Source,
		logger:   d.Logger,
		timeout:  d.SuggestTimeout,
	}

	if err := a.Refresh(); err != nil {
		return nil, fmt.Errorf("loading skills: %w", err)
	}
	if err := a.refreshPreferences(); err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	cached, err := a.cache.Load()
	if err != nil {
		a.logger.Warn("ignoring unreadable suggestion cache", "error", err)
		cached = []model.ContentSuggestion{}
	}
	a.suggestions = cached

	return a, nil
}

// NewSkillboardApp creates a fully wired SkillboardApp from the given config.
// operation identifies the CLI command being run (e.g. "AddSkill", "Import").
// The caller must call Close when done.
func NewSkillboardApp(cfg *config.Config, operation string, opts Options) (*SkillboardApp, error) {
	clock := skillboard.RealClock{}
	op := NewOperation(operation, clock.Now())

	logger, logFile, err := newLogger(cfg.LogDir, op.ID, cfg.LogLevel, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	log := &slogAdapter{l: logger}

	st, err := openStorage(cfg, opts)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	if err := st.ValidateSetup(); err != nil {
		st.Close()
		logFile.Close()
		return nil, fmt.Errorf("validating storage: %w", err)
	}

	ids := skillboard.UUIDGenerator{}
	delay := time.Duration(cfg.Suggestions.DelayMS) * time.Millisecond
	a, err := New(Deps{
		Storage:        st,
		Source:         suggest.NewCatalog(delay, ids),
		Logger:         log,
		Clock:          clock,
		IDs:            ids,
		SuggestTimeout: time.Duration(cfg.Suggestions.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		st.Close()
		logFile.Close()
		return nil, err
	}

	a.op = op
	a.logFile = logFile
	log.Debug("operation started", "operation", op.Name, "storage", cfg.Storage.Type)
	return a, nil
}

// openStorage builds the configured backend, wrapped for encryption when enabled.
func openStorage(cfg *config.Config, opts Options) (skillboard.Storage, error) {
	st, err := storage.NewStorageFromConfig(context.Background(), cfg.Storage, skillboard.RealClock{})
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return st, nil
	}
	if !enc.IsConfigured() {
		st.Close()
		return nil, errors.New("encryption keys not found (run `skillboard config init --encrypt`)")
	}
	if opts.Passphrase == nil {
		st.Close()
		return nil, storage.ErrLocked
	}

	passphrase, err := opts.Passphrase()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}
	wrapped := storage.NewEncryptedStorage(st, enc, nil)
	if err := wrapped.Unlock(passphrase); err != nil {
		st.Close()
		return nil, fmt.Errorf("unlocking storage: %w", err)
	}
	return wrapped, nil
}

// Refresh reloads the skill collection from storage into the cache.
func (a *SkillboardApp) Refresh() error {
	skills, err := a.skills.List()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.skillList = skills
	a.mu.Unlock()
	return nil
}

func (a *SkillboardApp) refreshPreferences() error {
	prefs, err := a.prefs.Get()
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.preferences = prefs
	a.mu.Unlock()
	return nil
}

// Skills returns the cached skill collection in stored order.
func (a *SkillboardApp) Skills() []model.Skill {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.Skill, len(a.skillList))
	for i, s := range a.skillList {
		out[i] = s.Clone()
	}
	return out
}

// Skill returns the cached skill with the given id.
func (a *SkillboardApp) Skill(id string) (model.Skill, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, s := range a.skillList {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return model.Skill{}, fmt.Errorf("skill %s: %w", id, skillboard.ErrNotFound)
}

// AddSkill creates a skill and refreshes the cache.
func (a *SkillboardApp) AddSkill(fields model.NewSkill) (model.Skill, error) {
	skill, err := a.skills.Add(fields)
	if err != nil {
		return model.Skill{}, a.failed(err)
	}
	return skill, a.Refresh()
}

// UpdateSkill replaces a stored skill wholesale and refreshes the cache.
func (a *SkillboardApp) UpdateSkill(skill model.Skill) (model.Skill, error) {
	updated, err := a.skills.Update(skill)
	if err != nil {
		return model.Skill{}, a.failed(err)
	}
	return updated, a.Refresh()
}

// DeleteSkill removes a skill and refreshes the cache.
func (a *SkillboardApp) DeleteSkill(id string) error {
	if err := a.skills.Delete(id); err != nil {
		return a.failed(err)
	}
	return a.Refresh()
}

// AddSession logs a session against a skill and refreshes the cache.
func (a *SkillboardApp) AddSession(skillID string, fields model.NewSession) (model.Session, error) {
	session, err := a.skills.AddSession(skillID, fields)
	if err != nil {
		return model.Session{}, a.failed(err)
	}
	return session, a.Refresh()
}

// DeleteSession removes a session and refreshes the cache.
func (a *SkillboardApp) DeleteSession(skillID, sessionID string) error {
	if err := a.skills.DeleteSession(skillID, sessionID); err != nil {
		return a.failed(err)
	}
	return a.Refresh()
}

// AddTask appends a task to a skill and refreshes the cache.
func (a *SkillboardApp) AddTask(skillID, text string) (model.Task, error) {
	task, err := a.skills.AddTask(skillID, text)
	if err != nil {
		return model.Task{}, a.failed(err)
	}
	return task, a.Refresh()
}

// UpdateTask sets a task's completed flag and refreshes the cache.
func (a *SkillboardApp) UpdateTask(skillID, taskID string, completed bool) error {
	if err := a.skills.UpdateTask(skillID, taskID, completed); err != nil {
		return a.failed(err)
	}
	return a.Refresh()
}

// DeleteTask removes a task and refreshes the cache.
func (a *SkillboardApp) DeleteTask(skillID, taskID string) error {
	if err := a.skills.DeleteTask(skillID, taskID); err != nil {
		return a.failed(err)
	}
	return a.Refresh()
}

// TogglePin flips a skill's pinned flag and refreshes the cache.
func (a *SkillboardApp) TogglePin(id string) (model.Skill, error) {
	skill, err := a.skills.TogglePin(id)
	if err != nil {
		return model.Skill{}, a.failed(err)
	}
	return skill, a.Refresh()
}

// Preferences returns the cached preferences.
func (a *SkillboardApp) Preferences() model.Preferences {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.preferences
}

// UpdatePreferences replaces the stored preferences and refreshes the cache.
func (a *SkillboardApp) UpdatePreferences(prefs model.Preferences) error {
	if err := a.prefs.Set(prefs); err != nil {
		return a.failed(err)
	}
	a.logger.Info("preferences updated")
	return a.refreshPreferences()
}

// Suggestions returns the last fetched batch of suggestions.
func (a *SkillboardApp) Suggestions() []model.ContentSuggestion {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]model.ContentSuggestion{}, a.suggestions...)
}

// FetchSuggestions asks the suggestion source for resources on a skill and
// caches the result. A failed fetch is logged and leaves the previous batch
// in place; ok reports whether the returned list is fresh.
func (a *SkillboardApp) FetchSuggestions(ctx context.Context, skillName string, level model.Level) (suggestions []model.ContentSuggestion, ok bool) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	fetched, err := a.source.Fetch(ctx, skillName, level)
	if err != nil {
		a.logger.Warn("fetching suggestions failed", "skill", skillName, "error", err)
		return a.Suggestions(), false
	}

	a.mu.Lock()
	a.suggestions = append([]model.ContentSuggestion{}, fetched...)
	a.mu.Unlock()

	if err := a.cache.Save(fetched); err != nil {
		a.logger.Warn("caching suggestions failed", "error", err)
	}
	a.logger.Info("suggestions fetched", "skill", skillName, "count", len(fetched))
	return a.Suggestions(), true
}

// FetchSuggestionsAsync runs FetchSuggestions in the background. The
// returned channel is closed once the outcome has been applied to the cache.
func (a *SkillboardApp) FetchSuggestionsAsync(ctx context.Context, skillName string, level model.Level) <-chan struct{} {
	done := make(chan struct{})
	a.pending.Add(1)
	go func() {
		defer a.pending.Done()
		defer close(done)
		a.FetchSuggestions(ctx, skillName, level)
	}()
	return done
}

// Export renders skills and preferences as a JSON document.
func (a *SkillboardApp) Export() (string, error) {
	return a.transfer.Export()
}

// Import applies an exported document and refreshes the cache.
func (a *SkillboardApp) Import(payload string) (skillboard.ImportResult, error) {
	result, err := a.transfer.Import(payload)
	if err != nil {
		return result, a.failed(err)
	}
	if err := a.Refresh(); err != nil {
		return result, err
	}
	return result, a.refreshPreferences()
}

// Fail marks the current operation as failed. The status is logged on Close.
func (a *SkillboardApp) Fail() {
	if a.op != nil {
		a.op.Fail()
	}
}

func (a *SkillboardApp) failed(err error) error {
	a.Fail()
	return err
}

// Close waits for background fetches, then closes storage and the log file.
func (a *SkillboardApp) Close() error {
	a.pending.Wait()

	var firstErr error
	if err := a.storage.Close(); err != nil {
		firstErr = fmt.Errorf("closing storage: %w", err)
	}

	if a.op != nil {
		a.logger.Debug("operation finished", "operation", a.op.Name, "status", a.op.Status)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
