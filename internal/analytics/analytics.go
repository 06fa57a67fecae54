// Package analytics derives the dashboard and analytics figures from the
// skill collection. Every function is pure: it reads the skills it is given
// and never touches storage.
package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"skillboard/internal/model"
)

// Summary holds the dashboard headline numbers.
type Summary struct {
	TotalMinutes int
	Learning     int
	Mastered     int
	Pinned       []model.Skill
}

// Summarize totals the time of every skill and counts skills per status.
func Summarize(skills []model.Skill) Summary {
	sum := Summary{Pinned: []model.Skill{}}
	for _, s := range skills {
		sum.TotalMinutes += s.TotalTime
		switch s.Status {
		case model.StatusLearning:
			sum.Learning++
		case model.StatusMastered:
			sum.Mastered++
		}
		if s.Pinned {
			sum.Pinned = append(sum.Pinned, s)
		}
	}
	return sum
}

// RecentSession is a session tagged with the skill it belongs to.
type RecentSession struct {
	model.Session
	SkillID   string
	SkillName string
}

// RecentWindow and RecentLimit are the dashboard's recent activity bounds.
const (
	RecentWindow = 7 * 24 * time.Hour
	RecentLimit  = 5
)

// RecentSessions returns up to limit sessions dated strictly after
// now-window, newest first.
func RecentSessions(skills []model.Skill, now time.Time, window time.Duration, limit int) []RecentSession {
	cutoff := now.Add(-window)

	var out []RecentSession
	for _, s := range skills {
		for _, sess := range s.Sessions {
			if sess.Date.After(cutoff) {
				out = append(out, RecentSession{Session: sess, SkillID: s.ID, SkillName: s.Name})
			}
		}
	}

	slices.SortStableFunc(out, func(a, b RecentSession) int {
		return b.Date.Compare(a.Date)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []RecentSession{}
	}
	return out
}

// Range is an analytics time range.
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// Days returns how many calendar days the range covers, ending today.
// "all" is capped at 90 days.
func (r Range) Days() int {
	switch r {
	case RangeWeek:
		return 7
	case RangeMonth:
		return 30
	default:
		return 90
	}
}

// ParseRange accepts "week", "month" or "all".
func ParseRange(s string) (Range, error) {
	switch r := Range(s); r {
	case RangeWeek, RangeMonth, RangeAll:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q (want week, month or all)", s)
}

// DayMinutes is the learning time logged on one calendar day.
type DayMinutes struct {
	Date    string // yyyy-mm-dd in the requested location
	Minutes int
}

// DailyMinutes returns one bucket per calendar day for the days ending
// today, oldest first. Sessions are assigned to days in loc; sessions
// outside the buckets are ignored.
func DailyMinutes(skills []model.Skill, now time.Time, days int, loc *time.Location) []DayMinutes {
	if days <= 0 {
		return []DayMinutes{}
	}
	today := now.In(loc)
	start := time.Date(today.Year(), today.Month(), today.Day()-(days-1), 0, 0, 0, 0, loc)

	out := make([]DayMinutes, days)
	index := make(map[string]int, days)
	for i := range out {
		key := start.AddDate(0, 0, i).Format(time.DateOnly)
		out[i].Date = key
		index[key] = i
	}

	for _, s := range skills {
		for _, sess := range s.Sessions {
			if i, ok := index[sess.Date.In(loc).Format(time.DateOnly)]; ok {
				out[i].Minutes += sess.Duration
			}
		}
	}
	return out
}

// Palette colors the distribution entries in order, wrapping around.
var Palette = []string{"#4361EE", "#7209B7", "#4CC9F0", "#38B000", "#FFBE0B", "#EF233C", "#3A86FF", "#FB8500"}

// Share is one skill's slice of the time distribution.
type Share struct {
	SkillID   string
	SkillName string
	Minutes   int
	Color     string
}

// Distribution sums each skill's sessions dated at or after
// now-(days-1)*24h. Skills without time in the window are dropped; the rest
// are ordered by minutes, largest first.
func Distribution(skills []model.Skill, now time.Time, days int) []Share {
	start := now.AddDate(0, 0, -(days - 1))

	out := []Share{}
	for _, s := range skills {
		minutes := 0
		for _, sess := range s.Sessions {
			if !sess.Date.Before(start) {
				minutes += sess.Duration
			}
		}
		if minutes > 0 {
			out = append(out, Share{SkillID: s.ID, SkillName: s.Name, Minutes: minutes})
		}
	}

	slices.SortStableFunc(out, func(a, b Share) int {
		return b.Minutes - a.Minutes
	})
	for i := range out {
		out[i].Color = Palette[i%len(Palette)]
	}
	return out
}

// MostFocused returns the skill with the largest share, if any.
func MostFocused(dist []Share) (Share, bool) {
	if len(dist) == 0 {
		return Share{}, false
	}
	return dist[0], true
}

// TotalMinutes sums a distribution.
func TotalMinutes(dist []Share) int {
	total := 0
	for _, s := range dist {
		total += s.Minutes
	}
	return total
}

// Filter keeps the skills whose name contains query (case-insensitive) and
// whose status and level match. An empty status or level matches all.
func Filter(skills []model.Skill, query string, status model.Status, level model.Level) []model.Skill {
	q := strings.ToLower(query)
	out := []model.Skill{}
	for _, s := range skills {
		if !strings.Contains(strings.ToLower(s.Name), q) {
			continue
		}
		if status != "" && s.Status != status {
			continue
		}
		if level != "" && s.Level != level {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SortForDisplay returns a copy of skills with pinned skills first, each
// group ordered by name using English collation.
func SortForDisplay(skills []model.Skill) []model.Skill {
	out := slices.Clone(skills)
	c := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b model.Skill) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return c.CompareString(a.Name, b.Name)
	})
	return out
}

// FormatMinutes renders a duration as "45 min", "2 hr" or "1 hr 30 min".
func FormatMinutes(minutes int) string {
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", mins)
	case mins == 0:
		return fmt.Sprintf("%d hr", hours)
	default:
		return fmt.Sprintf("%d hr %d min", hours, mins)
	}
}
