package skillboard

import (
	"fmt"

	"skillboard/internal/model"
)

// SkillRepository owns the skill collection and everything embedded in it.
//
// Every operation reads the whole collection from storage, mutates it in
// memory and writes the whole collection back. Nothing is cached between
// calls, so a repository never serves stale data, but two repositories over
// the same storage can overwrite each other's changes.
type SkillRepository struct {
	storage Storage
	logger  Logger
	clock   Clock
	idgen   IDGenerator
}

// NewSkillRepository creates a repository over the given storage.
func NewSkillRepository(storage Storage, logger Logger, clock Clock, idgen IDGenerator) *SkillRepository {
	return &SkillRepository{
		storage: storage,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
	}
}

// List returns every stored skill in stored order.
// An empty store yields an empty, non-nil slice.
func (r *SkillRepository) List() ([]model.Skill, error) {
	return r.load()
}

// Get returns the skill with the given id.
func (r *SkillRepository) Get(id string) (model.Skill, error) {
	skills, err := r.load()
	if err != nil {
		return model.Skill{}, err
	}
	i := indexOfSkill(skills, id)
	if i < 0 {
		return model.Skill{}, fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}
	return skills[i], nil
}

// Add creates a skill from the caller's fields. The id, timestamps, total
// time, pin flag and empty session/task lists are assigned here.
func (r *SkillRepository) Add(fields model.NewSkill) (model.Skill, error) {
	if err := validateSkillFields(fields.Name, fields.Level, fields.Status); err != nil {
		return model.Skill{}, err
	}

	skills, err := r.load()
	if err != nil {
		return model.Skill{}, err
	}

	now := r.clock.Now()
	skill := model.Skill{
		ID:        r.idgen.New(),
		Name:      fields.Name,
		Level:     fields.Level,
		Status:    fields.Status,
		TotalTime: 0,
		CreatedAt: now,
		UpdatedAt: now,
		Pinned:    false,
		Sessions:  []model.Session{},
		Tasks:     []model.Task{},
	}

	skills = append(skills, skill)
	if err := r.save(skills); err != nil {
		return model.Skill{}, err
	}

	r.logger.Info("skill added", "id", skill.ID, "name", skill.Name)
	return skill.Clone(), nil
}

// Update replaces the stored skill that has the same id with the given
// record. Fields are not merged: the caller passes the complete skill. The
// total time is re-derived from the sessions so a stale value cannot be
// written back.
func (r *SkillRepository) Update(skill model.Skill) (model.Skill, error) {
	if err := validateSkillRecord(skill); err != nil {
		return model.Skill{}, fmt.Errorf("skill %s: %w: %w", skill.ID, ErrValidation, err)
	}

	updated, err := r.mutate(skill.ID, func(s *model.Skill) error {
		*s = normalizeSkill(skill.Clone())
		return nil
	})
	if err != nil {
		return model.Skill{}, err
	}

	r.logger.Info("skill updated", "id", updated.ID)
	return updated, nil
}

// Delete removes a skill together with its sessions and tasks.
func (r *SkillRepository) Delete(id string) error {
	skills, err := r.load()
	if err != nil {
		return err
	}
	i := indexOfSkill(skills, id)
	if i < 0 {
		return fmt.Errorf("skill %s: %w", id, ErrNotFound)
	}

	skills = append(skills[:i], skills[i+1:]...)
	if err := r.save(skills); err != nil {
		return err
	}

	r.logger.Info("skill deleted", "id", id)
	return nil
}

// AddSession logs a session against a skill and adds its duration to the
// skill's total time.
func (r *SkillRepository) AddSession(skillID string, fields model.NewSession) (model.Session, error) {
	if err := validateSessionFields(fields.Date.IsZero(), fields.Duration); err != nil {
		return model.Session{}, err
	}

	session := model.Session{
		Date:     fields.Date,
		Duration: fields.Duration,
		Notes:    fields.Notes,
	}
	_, err := r.mutate(skillID, func(s *model.Skill) error {
		session.ID = r.idgen.New()
		s.Sessions = append(s.Sessions, session)
		s.TotalTime += session.Duration
		return nil
	})
	if err != nil {
		return model.Session{}, err
	}

	r.logger.Info("session added", "skill", skillID, "session", session.ID, "minutes", session.Duration)
	return session, nil
}

// DeleteSession removes a session and subtracts exactly its stored duration
// from the skill's total time.
func (r *SkillRepository) DeleteSession(skillID, sessionID string) error {
	_, err := r.mutate(skillID, func(s *model.Skill) error {
		for i, sess := range s.Sessions {
			if sess.ID == sessionID {
				s.TotalTime -= sess.Duration
				s.Sessions = append(s.Sessions[:i], s.Sessions[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("session %s of skill %s: %w", sessionID, skillID, ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Info("session deleted", "skill", skillID, "session", sessionID)
	return nil
}

// AddTask appends an open checklist task to a skill.
func (r *SkillRepository) AddTask(skillID, text string) (model.Task, error) {
	if err := validateTaskText(text); err != nil {
		return model.Task{}, err
	}

	task := model.Task{Text: text, Completed: false}
	_, err := r.mutate(skillID, func(s *model.Skill) error {
		task.ID = r.idgen.New()
		s.Tasks = append(s.Tasks, task)
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}

	r.logger.Info("task added", "skill", skillID, "task", task.ID)
	return task, nil
}

// UpdateTask sets the completed flag of a task.
func (r *SkillRepository) UpdateTask(skillID, taskID string, completed bool) error {
	_, err := r.mutate(skillID, func(s *model.Skill) error {
		for i := range s.Tasks {
			if s.Tasks[i].ID == taskID {
				s.Tasks[i].Completed = completed
				return nil
			}
		}
		return fmt.Errorf("task %s of skill %s: %w", taskID, skillID, ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Info("task updated", "skill", skillID, "task", taskID, "completed", completed)
	return nil
}

// DeleteTask removes a task from a skill's checklist.
func (r *SkillRepository) DeleteTask(skillID, taskID string) error {
	_, err := r.mutate(skillID, func(s *model.Skill) error {
		for i := range s.Tasks {
			if s.Tasks[i].ID == taskID {
				s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("task %s of skill %s: %w", taskID, skillID, ErrNotFound)
	})
	if err != nil {
		return err
	}

	r.logger.Info("task deleted", "skill", skillID, "task", taskID)
	return nil
}

// TogglePin flips the pinned flag of a skill and returns the updated record.
func (r *SkillRepository) TogglePin(skillID string) (model.Skill, error) {
	updated, err := r.mutate(skillID, func(s *model.Skill) error {
		s.Pinned = !s.Pinned
		return nil
	})
	if err != nil {
		return model.Skill{}, err
	}

	r.logger.Info("skill pin toggled", "id", skillID, "pinned", updated.Pinned)
	return updated, nil
}

// mutate applies fn to the skill with the given id, stamps UpdatedAt and
// persists the collection. Nothing is written when fn fails.
func (r *SkillRepository) mutate(skillID string, fn func(s *model.Skill) error) (model.Skill, error) {
	skills, err := r.load()
	if err != nil {
		return model.Skill{}, err
	}
	i := indexOfSkill(skills, skillID)
	if i < 0 {
		return model.Skill{}, fmt.Errorf("skill %s: %w", skillID, ErrNotFound)
	}

	if err := fn(&skills[i]); err != nil {
		return model.Skill{}, err
	}
	skills[i].UpdatedAt = r.clock.Now()

	if err := r.save(skills); err != nil {
		return model.Skill{}, err
	}
	return skills[i].Clone(), nil
}

func (r *SkillRepository) load() ([]model.Skill, error) {
	var skills []model.Skill
	if _, err := readDocument(r.storage, KeySkills, &skills); err != nil {
		return nil, err
	}
	if skills == nil {
		return []model.Skill{}, nil
	}
	for i := range skills {
		if skills[i].Sessions == nil {
			skills[i].Sessions = []model.Session{}
		}
		if skills[i].Tasks == nil {
			skills[i].Tasks = []model.Task{}
		}
	}
	return skills, nil
}

func (r *SkillRepository) save(skills []model.Skill) error {
	return writeDocument(r.storage, KeySkills, skills)
}

func indexOfSkill(skills []model.Skill, id string) int {
	for i := range skills {
		if skills[i].ID == id {
			return i
		}
	}
	return -1
}

// normalizeSkill replaces nil slices with empty ones and re-derives the
// total time from the sessions.
func normalizeSkill(s model.Skill) model.Skill {
	if s.Sessions == nil {
		s.Sessions = []model.Session{}
	}
	if s.Tasks == nil {
		s.Tasks = []model.Task{}
	}
	s.TotalTime = s.SessionMinutes()
	return s
}
