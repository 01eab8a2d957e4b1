package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/scholar/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lessons and graded responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		repo := s.EventRepo()

		lessons, err := repo.QueryLessons(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query lessons: %w", err)
		}
		analyses, err := repo.QueryAnalyses(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query analyses: %w", err)
		}

		if len(lessons) == 0 && len(analyses) == 0 {
			fmt.Fprintln(out, "Nothing studied yet.")
			return nil
		}

		fmt.Fprintln(out, "Lessons")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		fmt.Fprintf(out, "%-19s  %-14s  %-18s  %-28s  %6s  %-8s\n",
			"Timestamp", "Level", "Subject", "Topic", "Words", "Source")
		for _, e := range lessons {
			fmt.Fprintf(out, "%-19s  %-14s  %-18s  %-28s  %6d  %-8s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.AcademicLevel, 14),
				truncate(e.Subject, 18),
				truncate(e.Topic, 28),
				e.WordCount,
				e.Source,
			)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Responses")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		fmt.Fprintf(out, "%-19s  %-28s  %5s  %6s  %-8s  %s\n",
			"Timestamp", "Topic", "Grade", "Words", "Source", "Passed")
		for _, e := range analyses {
			ok := "✗"
			if e.CanProceed {
				ok = "✓"
			}
			fmt.Fprintf(out, "%-19s  %-28s  %2d/10  %6d  %-8s  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Topic, 28),
				e.Grade,
				e.ResponseWords,
				e.Source,
				ok,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of rows per table")
}
