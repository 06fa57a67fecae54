package analytics

import (
	"testing"
	"time"

	"skillboard/internal/model"
)

var now = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func daysAgo(d int, hour int) time.Time {
	return time.Date(2024, 1, 15-d, hour, 0, 0, 0, time.UTC)
}

func skill(id, name string, status model.Status, pinned bool, sessions ...model.Session) model.Skill {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return model.Skill{
		ID: id, Name: name, Level: model.LevelBeginner, Status: status,
		TotalTime: total, Pinned: pinned, Sessions: sessions, Tasks: []model.Task{},
	}
}

func session(id string, date time.Time, minutes int) model.Session {
	return model.Session{ID: id, Date: date, Duration: minutes}
}

func fixture() []model.Skill {
	return []model.Skill{
		skill("go", "Go", model.StatusLearning, true,
			session("g1", daysAgo(0, 8), 30),
			session("g2", daysAgo(2, 9), 60),
			session("g3", daysAgo(40, 9), 120)),
		skill("rust", "Rust", model.StatusMastered, false,
			session("r1", daysAgo(1, 20), 45),
			session("r2", daysAgo(10, 20), 15)),
		skill("zig", "Zig", model.StatusNotStarted, false),
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(fixture())

	if got.TotalMinutes != 270 {
		t.Errorf("TotalMinutes = %d, want 270", got.TotalMinutes)
	}
	if got.Learning != 1 || got.Mastered != 1 {
		t.Errorf("Learning, Mastered = %d, %d; want 1, 1", got.Learning, got.Mastered)
	}
	if len(got.Pinned) != 1 || got.Pinned[0].ID != "go" {
		t.Errorf("Pinned = %v, want [go]", got.Pinned)
	}

	empty := Summarize(nil)
	if empty.TotalMinutes != 0 || empty.Pinned == nil {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}

func TestRecentSessions(t *testing.T) {
	tests := []struct {
		name   string
		limit  int
		window time.Duration
		want   []string
	}{
		{name: "last week", limit: RecentLimit, window: RecentWindow, want: []string{"g1", "r1", "g2"}},
		{name: "limit", limit: 2, window: RecentWindow, want: []string{"g1", "r1"}},
		{name: "two weeks", limit: RecentLimit, window: 14 * 24 * time.Hour, want: []string{"g1", "r1", "g2", "r2"}},
		{name: "nothing in window", limit: RecentLimit, window: time.Hour, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecentSessions(fixture(), now, tt.window, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("RecentSessions() returned %d, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}

	got := RecentSessions(fixture(), now, RecentWindow, RecentLimit)
	if got[1].SkillID != "rust" || got[1].SkillName != "Rust" {
		t.Errorf("[1] tagged %q/%q, want rust/Rust", got[1].SkillID, got[1].SkillName)
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		in      string
		days    int
		wantErr bool
	}{
		{"week", 7, false},
		{"month", 30, false},
		{"all", 90, false},
		{"year", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRange(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && r.Days() != tt.days {
				t.Errorf("Days() = %d, want %d", r.Days(), tt.days)
			}
		})
	}
}

func TestDailyMinutes(t *testing.T) {
	got := DailyMinutes(fixture(), now, 7, time.UTC)

	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	if got[0].Date != "2024-01-09" || got[6].Date != "2024-01-15" {
		t.Errorf("range = %s..%s, want 2024-01-09..2024-01-15", got[0].Date, got[6].Date)
	}
	want := map[string]int{"2024-01-15": 30, "2024-01-14": 45, "2024-01-13": 60}
	for _, d := range got {
		if d.Minutes != want[d.Date] {
			t.Errorf("%s = %d min, want %d", d.Date, d.Minutes, want[d.Date])
		}
	}
}

func TestDailyMinutes_Location(t *testing.T) {
	// 20:00 UTC on the 14th is already the 15th in UTC+5.
	loc := time.FixedZone("UTC+5", 5*60*60)
	got := DailyMinutes(fixture(), now, 2, loc)

	if got[1].Date != "2024-01-15" {
		t.Fatalf("last bucket = %s, want 2024-01-15", got[1].Date)
	}
	if got[1].Minutes != 75 {
		t.Errorf("2024-01-15 = %d min, want 75", got[1].Minutes)
	}
	if got[0].Minutes != 0 {
		t.Errorf("2024-01-14 = %d min, want 0", got[0].Minutes)
	}
}

func TestDistribution(t *testing.T) {
	tests := []struct {
		name string
		days int
		want []Share
	}{
		{
			name: "week",
			days: 7,
			want: []Share{
				{SkillID: "go", SkillName: "Go", Minutes: 90, Color: "#4361EE"},
				{SkillID: "rust", SkillName: "Rust", Minutes: 45, Color: "#7209B7"},
			},
		},
		{
			name: "quarter",
			days: 90,
			want: []Share{
				{SkillID: "go", SkillName: "Go", Minutes: 210, Color: "#4361EE"},
				{SkillID: "rust", SkillName: "Rust", Minutes: 60, Color: "#7209B7"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distribution(fixture(), now, tt.days)
			if len(got) != len(tt.want) {
				t.Fatalf("Distribution() = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
			if top, ok := MostFocused(got); !ok || top.SkillID != "go" {
				t.Errorf("MostFocused() = %+v, %v", top, ok)
			}
		})
	}
}

func TestDistribution_PaletteWraps(t *testing.T) {
	var skills []model.Skill
	for i := 0; i < len(Palette)+2; i++ {
		id := string(rune('a' + i))
		skills = append(skills, skill(id, id, model.StatusLearning, false, session(id, now, 100-i)))
	}

	got := Distribution(skills, now, 7)
	if got[len(Palette)].Color != Palette[0] {
		t.Errorf("color %d = %s, want %s", len(Palette), got[len(Palette)].Color, Palette[0])
	}
	if TotalMinutes(got) != 100*len(got)-(len(got)-1)*len(got)/2 {
		t.Errorf("TotalMinutes() = %d", TotalMinutes(got))
	}
}

func TestMostFocused_Empty(t *testing.T) {
	if _, ok := MostFocused(nil); ok {
		t.Error("MostFocused(nil) ok = true")
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status model.Status
		level  model.Level
		want   []string
	}{
		{name: "everything", want: []string{"go", "rust", "zig"}},
		{name: "case-insensitive query", query: "RU", want: []string{"rust"}},
		{name: "status", status: model.StatusMastered, want: []string{"rust"}},
		{name: "query and status miss", query: "go", status: model.StatusMastered, want: []string{}},
		{name: "level", level: model.LevelAdvanced, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(fixture(), tt.query, tt.status, tt.level)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter() returned %d skills, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestSortForDisplay(t *testing.T) {
	skills := []model.Skill{
		{ID: "1", Name: "rust"},
		{ID: "2", Name: "Zig", Pinned: true},
		{ID: "3", Name: "Go"},
		{ID: "4", Name: "ada", Pinned: true},
	}

	got := SortForDisplay(skills)
	want := []string{"4", "2", "3", "1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("[%d] = %s (%s), want %s", i, got[i].ID, got[i].Name, id)
		}
	}
	if skills[0].ID != "1" {
		t.Error("SortForDisplay() reordered its input")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0 min"},
		{45, "45 min"},
		{60, "1 hr"},
		{120, "2 hr"},
		{90, "1 hr 30 min"},
		{61, "1 hr 1 min"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMinutes(tt.in); got != tt.want {
				t.Errorf("FormatMinutes(%d) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
