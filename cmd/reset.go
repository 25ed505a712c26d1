package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teachsim/internal/profile"
	"teachsim/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset <email>",
	Short: "Reset a trainee's training data",
	Long:  "Reset clears progress, skills and achievements for the account. The account itself and its session log are kept.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to reset without --yes")
		}

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
		email := strings.ToLower(args[0])
		user, err := s.ProfileRepo().GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		err = s.ProfileRepo().Apply(ctx, user.ID, func(profile.Snapshot) (profile.Snapshot, error) {
			return profile.NewSnapshot(), nil
		})
		if err != nil {
			return fmt.Errorf("reset profile: %w", err)
		}

		fmt.Printf("Training data reset for %s\n", email)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
