package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage sessions stored by the sqlite session backend",
}

var sessionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired session records",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.SessionRepo().Prune(cmd.Context(), time.Now())
		if err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired session(s).\n", n)
		return nil
	},
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear <session-key>",
	Short: "Delete one session record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.SessionRepo().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsPruneCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)
}
