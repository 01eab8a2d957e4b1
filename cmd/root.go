package cmd

import (
	"github.com/abhisek/scholar/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "AI tutor that teaches a topic and grades your explanation",
	Long: "Scholar generates a structured lesson for any subject and topic, then " +
		"critiques your explanation of it with a grade out of ten.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, studyFlags{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SCHOLAR_DB env var)")
	rootCmd.PersistentFlags().String("log-mode", "", "Log format: dev or prod (overrides SCHOLAR_LOG_MODE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SCHOLAR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event log selected by --db.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
