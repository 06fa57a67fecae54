package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"skillboard/internal/analytics"
	"skillboard/internal/app"
	"skillboard/internal/model"
	"skillboard/internal/skillboard"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var levels = []model.Level{model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced}

var statuses = []model.Status{model.StatusNotStarted, model.StatusLearning, model.StatusMastered}

// parseLevel accepts a level in any letter case.
func parseLevel(s string) (model.Level, error) {
	for _, l := range levels {
		if strings.EqualFold(s, string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", s)
}

// parseStatus accepts a status in any letter case, with "-" or "_" for the space.
func parseStatus(s string) (model.Status, error) {
	norm := strings.NewReplacer("-", " ", "_", " ").Replace(s)
	for _, st := range statuses {
		if strings.EqualFold(norm, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want not-started, learning or mastered)", s)
}

// resolveSkill finds a skill by id, falling back to a case-insensitive name match.
func resolveSkill(a *app.SkillboardApp, ref string) (model.Skill, error) {
	if s, err := a.Skill(ref); err == nil {
		return s, nil
	}
	var match *model.Skill
	skills := a.Skills()
	for i := range skills {
		if strings.EqualFold(skills[i].Name, ref) {
			if match != nil {
				return model.Skill{}, fmt.Errorf("%q matches more than one skill; use the id", ref)
			}
			match = &skills[i]
		}
	}
	if match == nil {
		return model.Skill{}, fmt.Errorf("skill %q: %w", ref, skillboard.ErrNotFound)
	}
	return *match, nil
}

// parseDate accepts RFC 3339 or a plain local date. Empty means now.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", s)
	}
	return t.UTC(), nil
}

// skill command
var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage skills",
}

var skillAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")
		statusFlag, _ := cmd.Flags().GetString("status")

		level, err := parseLevel(levelFlag)
		if err != nil {
			return err
		}
		status, err := parseStatus(statusFlag)
		if err != nil {
			return err
		}

		a, err := newApp("AddSkill")
		if err != nil {
			return err
		}
		defer a.Close()

		skill, err := a.AddSkill(model.NewSkill{Name: args[0], Level: level, Status: status})
		if err != nil {
			return fmt.Errorf("adding skill: %w", err)
		}
		fmt.Printf("Added skill %s (%s)\n", skill.Name, skill.ID)
		return nil
	},
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		statusFlag, _ := cmd.Flags().GetString("status")
		levelFlag, _ := cmd.Flags().GetString("level")

		var (
			status model.Status
			level  model.Level
			err    error
		)
		if statusFlag != "" {
			if status, err = parseStatus(statusFlag); err != nil {
				return err
			}
		}
		if levelFlag != "" {
			if level, err = parseLevel(levelFlag); err != nil {
				return err
			}
		}

		a, err := newApp("ListSkills")
		if err != nil {
			return err
		}
		defer a.Close()

		skills := analytics.SortForDisplay(analytics.Filter(a.Skills(), query, status, level))
		if len(skills) == 0 {
			fmt.Println("No skills found.")
			return nil
		}
		for _, s := range skills {
			pin := " "
			if s.Pinned {
				pin = "*"
			}
			fmt.Printf("%s %-36s  %-24s  %-12s  %-11s  %s\n",
				pin, s.ID, s.Name, s.Level, s.Status, analytics.FormatMinutes(s.TotalTime))
		}
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show SKILL",
	Short: "Show a skill with its sessions and tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ShowSkill")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", s.Name, s.ID)
		fmt.Printf("Level:   %s\n", s.Level)
		fmt.Printf("Status:  %s\n", s.Status)
		fmt.Printf("Total:   %s\n", analytics.FormatMinutes(s.TotalTime))
		fmt.Printf("Pinned:  %t\n", s.Pinned)
		fmt.Printf("Created: %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"))
		fmt.Printf("Updated: %s\n", humanize.Time(s.UpdatedAt))

		fmt.Printf("\nSessions (%d):\n", len(s.Sessions))
		for _, sess := range s.Sessions {
			fmt.Printf("  %s  %s  %-10s  %s\n",
				sess.ID, sess.Date.Local().Format("2006-01-02"), analytics.FormatMinutes(sess.Duration), sess.Notes)
		}

		fmt.Printf("\nTasks (%d):\n", len(s.Tasks))
		for _, t := range s.Tasks {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			fmt.Printf("  %s %s  %s\n", box, t.ID, t.Text)
		}
		return nil
	},
}

var skillEditCmd = &cobra.Command{
	Use:   "edit SKILL",
	Short: "Change a skill's name, level or status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("UpdateSkill")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			s.Name, _ = flags.GetString("name")
		}
		if flags.Changed("level") {
			v, _ := flags.GetString("level")
			if s.Level, err = parseLevel(v); err != nil {
				return err
			}
		}
		if flags.Changed("status") {
			v, _ := flags.GetString("status")
			if s.Status, err = parseStatus(v); err != nil {
				return err
			}
		}

		updated, err := a.UpdateSkill(s)
		if err != nil {
			return fmt.Errorf("updating skill: %w", err)
		}
		fmt.Printf("Updated skill %s (%s, %s)\n", updated.Name, updated.Level, updated.Status)
		return nil
	},
}

var skillDeleteCmd = &cobra.Command{
	Use:   "delete SKILL",
	Short: "Delete a skill with all its sessions and tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteSkill")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}
		if err := a.DeleteSkill(s.ID); err != nil {
			return fmt.Errorf("deleting skill: %w", err)
		}
		fmt.Printf("Deleted skill %s\n", s.Name)
		return nil
	},
}

var skillPinCmd = &cobra.Command{
	Use:   "pin SKILL",
	Short: "Pin or unpin a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("TogglePin")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}
		updated, err := a.TogglePin(s.ID)
		if err != nil {
			return fmt.Errorf("toggling pin: %w", err)
		}
		if updated.Pinned {
			fmt.Printf("Pinned %s\n", updated.Name)
		} else {
			fmt.Printf("Unpinned %s\n", updated.Name)
		}
		return nil
	},
}

// session command
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Log learning sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add SKILL",
	Short: "Log a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, _ := cmd.Flags().GetInt("minutes")
		dateFlag, _ := cmd.Flags().GetString("date")
		notes, _ := cmd.Flags().GetString("notes")

		date, err := parseDate(dateFlag)
		if err != nil {
			return err
		}

		a, err := newApp("AddSession")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}
		session, err := a.AddSession(s.ID, model.NewSession{Date: date, Duration: minutes, Notes: notes})
		if err != nil {
			return fmt.Errorf("adding session: %w", err)
		}
		updated, _ := a.Skill(s.ID)
		fmt.Printf("Logged %s of %s (%s), total %s\n",
			analytics.FormatMinutes(session.Duration), s.Name, session.ID, analytics.FormatMinutes(updated.TotalTime))
		return nil
	},
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete SKILL SESSION_ID",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteSession")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}
		if err := a.DeleteSession(s.ID, args[1]); err != nil {
			return fmt.Errorf("deleting session: %w", err)
		}
		fmt.Printf("Deleted session %s\n", args[1])
		return nil
	},
}

// task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage a skill's checklist",
}

var taskAddCmd = &cobra.Command{
	Use:   "add SKILL TEXT",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddTask")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}
		task, err := a.AddTask(s.ID, strings.Join(args[1:], " "))
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}
		fmt.Printf("Added task %s to %s\n", task.ID, s.Name)
		return nil
	},
}

// newTaskStateCmd builds the done and undo commands, which differ only in the flag they set.
func newTaskStateCmd(use, short, operation string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SKILL TASK_ID",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(operation)
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := resolveSkill(a, args[0])
			if err != nil {
				return err
			}
			if err := a.UpdateTask(s.ID, args[1], completed); err != nil {
				return fmt.Errorf("updating task: %w", err)
			}
			fmt.Printf("Task %s: completed=%t\n", args[1], completed)
			return nil
		},
	}
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete SKILL TASK_ID",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteTask")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}
		if err := a.DeleteTask(s.ID, args[1]); err != nil {
			if errors.Is(err, skillboard.ErrNotFound) {
				return fmt.Errorf("no task %s on %s", args[1], s.Name)
			}
			return fmt.Errorf("deleting task: %w", err)
		}
		fmt.Printf("Deleted task %s\n", args[1])
		return nil
	},
}

func init() {
	skillCmd.AddCommand(skillAddCmd)
	skillAddCmd.Flags().StringP("level", "l", string(model.LevelBeginner), "Level: beginner, intermediate or advanced")
	skillAddCmd.Flags().StringP("status", "s", "not-started", "Status: not-started, learning or mastered")

	skillCmd.AddCommand(skillListCmd)
	skillListCmd.Flags().StringP("query", "q", "", "Only skills whose name contains this text")
	skillListCmd.Flags().StringP("status", "s", "", "Only skills with this status")
	skillListCmd.Flags().StringP("level", "l", "", "Only skills at this level")

	skillCmd.AddCommand(skillShowCmd)

	skillCmd.AddCommand(skillEditCmd)
	skillEditCmd.Flags().String("name", "", "New name")
	skillEditCmd.Flags().StringP("level", "l", "", "New level")
	skillEditCmd.Flags().StringP("status", "s", "", "New status")

	skillCmd.AddCommand(skillDeleteCmd)
	skillCmd.AddCommand(skillPinCmd)

	sessionCmd.AddCommand(sessionAddCmd)
	sessionAddCmd.Flags().IntP("minutes", "m", 0, "Duration in minutes")
	sessionAddCmd.Flags().StringP("date", "d", "", "Date of the session (default now)")
	sessionAddCmd.Flags().StringP("notes", "n", "", "Notes")
	sessionAddCmd.MarkFlagRequired("minutes")

	sessionCmd.AddCommand(sessionDeleteCmd)

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(newTaskStateCmd("done", "Mark a task completed", "CompleteTask", true))
	taskCmd.AddCommand(newTaskStateCmd("undo", "Mark a task not completed", "ReopenTask", false))
	taskCmd.AddCommand(taskDeleteCmd)
}
