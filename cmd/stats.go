package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teachsim/internal/profile"
	"teachsim/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats <email>",
	Short: "Show a trainee's training statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		user, err := s.ProfileRepo().GetByEmail(ctx, strings.ToLower(args[0]))
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		snap := user.Snapshot()
		p := snap.Progress

		fmt.Printf("Trainee:    %s <%s>\n", user.DisplayName, user.Email)
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("Sessions:   %d\n", p.TotalSessions)
		fmt.Printf("Average:    %d\n", p.AverageScore)
		fmt.Printf("Streak:     %d day(s)\n", p.Streak)
		fmt.Printf("Time:       %s\n", formatDuration(p.TotalTimeMs))
		if !p.LastSessionAt.IsZero() {
			fmt.Printf("Last:       %s\n", p.LastSessionAt.Local().Format("2006-01-02 15:04"))
		}

		fmt.Println()
		fmt.Println("Skills")
		fmt.Println(strings.Repeat("─", 48))
		for _, skill := range profile.AllSkills() {
			score, ok := snap.Skills[skill]
			if !ok {
				fmt.Printf("%-20s  %s\n", skill.DisplayName(), "(not yet scored)")
				continue
			}
			fmt.Printf("%-20s  %3d  %s\n", skill.DisplayName(), score, bar(score))
		}

		if len(snap.Achievements) > 0 {
			fmt.Println()
			fmt.Println("Achievements")
			fmt.Println(strings.Repeat("─", 48))
			for _, def := range profile.Definitions() {
				if a, ok := snap.Achievements[def.ID]; ok {
					fmt.Printf("%s  %-18s  %s\n", a.Icon, a.Title, a.UnlockedAt.Local().Format("2006-01-02"))
				}
			}
		}

		return nil
	},
}

func bar(score int) string {
	filled := score / 5
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

func formatDuration(ms int64) string {
	minutes := ms / 60000
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
