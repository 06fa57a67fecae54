package main

import (
	"fmt"
	"strings"
	"time"

	"skillboard/internal/analytics"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// barWidth is the width of the longest bar in the daily chart.
const barWidth = 40

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning totals and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		rangeFlag, _ := cmd.Flags().GetString("range")
		r, err := analytics.ParseRange(rangeFlag)
		if err != nil {
			return err
		}

		a, err := newApp("Stats")
		if err != nil {
			return err
		}
		defer a.Close()

		skills := a.Skills()
		now := time.Now()

		sum := analytics.Summarize(skills)
		fmt.Printf("Total time: %s\n", analytics.FormatMinutes(sum.TotalMinutes))
		fmt.Printf("Learning:   %d\n", sum.Learning)
		fmt.Printf("Mastered:   %d\n", sum.Mastered)
		if len(sum.Pinned) > 0 {
			names := make([]string, len(sum.Pinned))
			for i, s := range analytics.SortForDisplay(sum.Pinned) {
				names[i] = s.Name
			}
			fmt.Printf("Pinned:     %s\n", strings.Join(names, ", "))
		}

		recent := analytics.RecentSessions(skills, now, analytics.RecentWindow, analytics.RecentLimit)
		fmt.Println("\nRecent sessions:")
		if len(recent) == 0 {
			fmt.Println("  none in the last 7 days")
		}
		for _, rs := range recent {
			fmt.Printf("  %-14s  %-24s  %s\n", humanize.Time(rs.Date), rs.SkillName, analytics.FormatMinutes(rs.Duration))
		}

		days := analytics.DailyMinutes(skills, now, r.Days(), time.Local)
		peak := 0
		for _, d := range days {
			peak = max(peak, d.Minutes)
		}
		fmt.Printf("\nDaily minutes (%s):\n", r)
		for _, d := range days {
			bar := 0
			if peak > 0 {
				bar = d.Minutes * barWidth / peak
			}
			fmt.Printf("  %s  %-*s %d\n", d.Date, barWidth, strings.Repeat("#", bar), d.Minutes)
		}

		dist := analytics.Distribution(skills, now, r.Days())
		total := analytics.TotalMinutes(dist)
		fmt.Println("\nTime by skill:")
		if len(dist) == 0 {
			fmt.Println("  no sessions in range")
		}
		for _, sh := range dist {
			fmt.Printf("  %-24s  %-12s  %3d%%  %s\n",
				sh.SkillName, analytics.FormatMinutes(sh.Minutes), sh.Minutes*100/total, sh.Color)
		}
		if top, ok := analytics.MostFocused(dist); ok {
			fmt.Printf("\nMost focused: %s\n", top.SkillName)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("range", "r", string(analytics.RangeWeek), "Range: week, month or all")
}
