package model

import "time"

// Level is how far along a learner considers themselves in a skill.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Status is the learning state of a skill.
// The wire values match the documents written by earlier versions, so
// "Not Started" keeps its space.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusLearning   Status = "Learning"
	StatusMastered   Status = "Mastered"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusLearning, StatusMastered:
		return true
	}
	return false
}

// Skill is the unit of tracking. Sessions and tasks are owned by the skill
// and have no existence outside of it.
type Skill struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Level     Level     `json:"level"`
	Status    Status    `json:"status"`
	TotalTime int       `json:"totalTime"` // minutes, always the sum of Sessions[].Duration
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Pinned    bool      `json:"pinned"`
	Sessions  []Session `json:"sessions"`
	Tasks     []Task    `json:"tasks"`
}

// SessionMinutes sums the durations of the skill's sessions.
func (s *Skill) SessionMinutes() int {
	total := 0
	for _, sess := range s.Sessions {
		total += sess.Duration
	}
	return total
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s Skill) Clone() Skill {
	c := s
	c.Sessions = append([]Session{}, s.Sessions...)
	c.Tasks = append([]Task{}, s.Tasks...)
	return c
}

// NewSkill holds the caller-supplied fields of a skill being created.
// Everything else is assigned by the repository.
type NewSkill struct {
	Name   string
	Level  Level
	Status Status
}

// Session is a single timed learning sitting.
type Session struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"` // minutes
	Notes    string    `json:"notes"`
}

// NewSession holds the caller-supplied fields of a session being logged.
type NewSession struct {
	Date     time.Time
	Duration int
	Notes    string
}

// Task is a checklist entry attached to a skill.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Preferences is the single user preferences record.
type Preferences struct {
	DarkMode        bool   `json:"darkMode"`
	ReminderEnabled bool   `json:"reminderEnabled"`
	ReminderTime    string `json:"reminderTime"` // HH:MM, stored as given
}

// DefaultPreferences returns the preferences used before any have been saved.
func DefaultPreferences() Preferences {
	return Preferences{
		DarkMode:        false,
		ReminderEnabled: true,
		ReminderTime:    "19:00",
	}
}

// ContentType classifies a suggested resource.
type ContentType string

const (
	ContentVideo   ContentType = "video"
	ContentArticle ContentType = "article"
	ContentCourse  ContentType = "course"
)

// ContentSuggestion is an external learning resource proposed for a skill.
// Suggestions are regenerated on every fetch and are never authoritative.
type ContentSuggestion struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	URL      string      `json:"url"`
	Duration int         `json:"duration"` // estimated minutes
	Type     ContentType `json:"type"`
	SkillID  string      `json:"skillId"`
}
