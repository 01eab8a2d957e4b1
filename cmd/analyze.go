package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/scholar/internal/lesson"
	"github.com/abhisek/scholar/internal/sections"
	"github.com/abhisek/scholar/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Grade an explanation of a topic",
	Long: "Grade an explanation of a topic. The explanation comes from --response, " +
		"or from --file (use - for stdin).",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, subject, topic, err := lessonFlags(cmd)
		if err != nil {
			return err
		}
		response, err := readResponse(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		a, err := d.pipeline.AnalyzeResponse(ctx, response, nil, level, subject, topic)
		if err != nil {
			return err
		}

		if err := d.store.EventRepo().AppendAnalysisEvent(ctx, store.AnalysisEventData{
			Topic:         topic,
			Source:        string(a.Source),
			Grade:         a.Grade,
			CanProceed:    a.CanProceed,
			ResponseWords: sections.WordCount(response),
		}); err != nil {
			d.log.Warn("failed to record analysis event", "error", err)
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, a)
		}
		printAnalysis(out, a)
		return nil
	},
}

func init() {
	addLessonFlags(analyzeCmd)
	analyzeCmd.Flags().StringP("response", "r", "", "Your explanation")
	analyzeCmd.Flags().StringP("file", "f", "", "Read the explanation from a file, or - for stdin")
	analyzeCmd.Flags().Bool("json", false, "Print the analysis as JSON")
}

func readResponse(cmd *cobra.Command) (string, error) {
	response, _ := cmd.Flags().GetString("response")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case response != "" && file != "":
		return "", fmt.Errorf("use either --response or --file, not both")
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		response = string(b)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read response file: %w", err)
		}
		response = string(b)
	}

	if strings.TrimSpace(response) == "" {
		return "", fmt.Errorf("no response provided")
	}
	return response, nil
}

func printAnalysis(w io.Writer, a *lesson.Analysis) {
	sep := strings.Repeat("─", 60)

	if a.Source == lesson.SourceFallback {
		fmt.Fprintln(w, "(placeholder analysis: the LLM provider was unavailable)")
	}
	verdict := "review and try again"
	if a.CanProceed {
		verdict = "ready to move on"
	}
	fmt.Fprintf(w, "Grade: %d/10 (%s)\n", a.Grade, verdict)
	if a.GradeExplanation != "" {
		fmt.Fprintln(w, a.GradeExplanation)
	}

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, title)
		for _, it := range items {
			fmt.Fprintf(w, "  - %s\n", it)
		}
	}
	list("Strengths", a.Strengths)
	list("False points", a.FalsePoints)
	list("Missing points", a.MissingPoints)
	list("Areas lacking", a.AreasLacking)
	list("Improvements", a.Improvements)

	for _, s := range []struct{ title, body string }{
		{"Examples", a.ExamplesQuality},
		{"Feedback", a.DetailedFeedback},
		{"Next steps", a.NextSteps},
	} {
		if s.body == "" {
			continue
		}
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, s.title)
		fmt.Fprintln(w, s.body)
	}
}
