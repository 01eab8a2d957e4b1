package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/tutor"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Generate a lesson and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, subject, topic, err := lessonFlags(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		workflow := tutor.NewWorkflow(d.pipeline, session.NewMemoryStore(0),
			tutor.WithEventRepo(d.store.EventRepo()),
			tutor.WithLogger(d.log),
		)
		st, err := workflow.StartLesson(cmd.Context(), uuid.NewString(), level, subject, topic)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, st.Content)
		}
		printLesson(out, st.Content)
		return nil
	},
}

func init() {
	addLessonFlags(lessonCmd)
	lessonCmd.Flags().Bool("json", false, "Print the lesson as JSON")
}

func addLessonFlags(c *cobra.Command) {
	c.Flags().StringP("level", "l", "undergraduate", "Academic level: high_school, undergraduate or graduate")
	c.Flags().StringP("subject", "s", "", "Subject, e.g. Biology")
	c.Flags().StringP("topic", "t", "", "Topic")
}

func lessonFlags(cmd *cobra.Command) (level, subject, topic string, err error) {
	level, _ = cmd.Flags().GetString("level")
	subject, _ = cmd.Flags().GetString("subject")
	topic, _ = cmd.Flags().GetString("topic")
	var missing []string
	for _, f := range []struct{ name, value string }{{"level", level}, {"subject", subject}, {"topic", topic}} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, "--"+f.name)
		}
	}
	if len(missing) > 0 {
		return "", "", "", fmt.Errorf("required flags not set: %s", strings.Join(missing, ", "))
	}
	return level, subject, topic, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLesson(w io.Writer, c *lesson.Content) {
	sep := strings.Repeat("─", 60)

	if c.Source == lesson.SourceFallback {
		fmt.Fprintln(w, "(placeholder lesson: the LLM provider was unavailable)")
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, c.Body)

	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Key points (%d)\n", len(c.KeyPoints))
	for _, p := range c.KeyPoints {
		fmt.Fprintf(w, "  - %s\n", p)
	}

	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "References")
	for _, r := range c.References {
		fmt.Fprintf(w, "  %s [%s]\n    %s\n", r.Title, r.Type, r.URL)
	}
	fmt.Fprintf(w, "\n%d words\n", c.WordCount)
}
