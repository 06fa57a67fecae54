package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"regexp"

	"skillboard/internal/analytics"
	"skillboard/internal/model"

	"github.com/spf13/cobra"
)

var reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "View or change preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GetPreferences")
		if err != nil {
			return err
		}
		defer a.Close()

		p := a.Preferences()
		fmt.Printf("Dark mode:     %t\n", p.DarkMode)
		fmt.Printf("Reminder:      %t\n", p.ReminderEnabled)
		fmt.Printf("Reminder time: %s\n", p.ReminderTime)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("dark-mode") && !flags.Changed("reminder") && !flags.Changed("reminder-time") {
			return errors.New("nothing to change (use --dark-mode, --reminder or --reminder-time)")
		}

		a, err := newApp("UpdatePreferences")
		if err != nil {
			return err
		}
		defer a.Close()

		p := a.Preferences()
		if flags.Changed("dark-mode") {
			p.DarkMode, _ = flags.GetBool("dark-mode")
		}
		if flags.Changed("reminder") {
			p.ReminderEnabled, _ = flags.GetBool("reminder")
		}
		if flags.Changed("reminder-time") {
			p.ReminderTime, _ = flags.GetString("reminder-time")
			if !reminderTimePattern.MatchString(p.ReminderTime) {
				return fmt.Errorf("invalid reminder time %q (want HH:MM)", p.ReminderTime)
			}
		}

		if err := a.UpdatePreferences(p); err != nil {
			return fmt.Errorf("saving preferences: %w", err)
		}
		fmt.Println("Preferences saved.")
		return nil
	},
}

// suggest command
var suggestCmd = &cobra.Command{
	Use:   "suggest [SKILL]",
	Short: "Suggest learning resources for a skill",
	Long:  "Fetch resources for a skill. Without a skill the last fetched suggestions are shown.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("FetchSuggestions")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 0 {
			printSuggestions(a.Suggestions())
			return nil
		}

		s, err := resolveSkill(a, args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Fprintf(os.Stderr, "Fetching suggestions for %s...\n", s.Name)
		suggestions, ok := a.FetchSuggestions(ctx, s.Name, s.Level)
		if !ok {
			fmt.Fprintln(os.Stderr, "Could not fetch suggestions; showing the last ones.")
		}
		printSuggestions(suggestions)
		return nil
	},
}

func printSuggestions(suggestions []model.ContentSuggestion) {
	if len(suggestions) == 0 {
		fmt.Println("No suggestions.")
		return
	}
	for _, s := range suggestions {
		fmt.Printf("%-8s %-10s %s\n         %s\n", s.Type, analytics.FormatMinutes(s.Duration), s.Title, s.URL)
	}
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsSetCmd.Flags().Bool("dark-mode", false, "Use the dark theme")
	prefsSetCmd.Flags().Bool("reminder", true, "Enable the daily reminder")
	prefsSetCmd.Flags().String("reminder-time", "", "Reminder time as HH:MM")
}
