package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/scholar/internal/app"
	"github.com/abhisek/scholar/internal/screen"
	"github.com/abhisek/scholar/internal/screens/setup"
	"github.com/abhisek/scholar/internal/session"
	"github.com/abhisek/scholar/internal/tutor"
)

type studyFlags struct {
	level, subject, topic string
}

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Study a topic in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f studyFlags
		f.level, _ = cmd.Flags().GetString("level")
		f.subject, _ = cmd.Flags().GetString("subject")
		f.topic, _ = cmd.Flags().GetString("topic")
		return runStudy(cmd, f)
	},
}

func init() {
	studyCmd.Flags().String("level", "", "Academic level: high_school, undergraduate or graduate")
	studyCmd.Flags().String("subject", "", "Subject, e.g. Biology")
	studyCmd.Flags().String("topic", "", "Topic to study")
}

// runStudy launches the terminal client over an in-memory session.
func runStudy(cmd *cobra.Command, f studyFlags) error {
	d, err := loadDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	workflow := tutor.NewWorkflow(d.pipeline, session.NewMemoryStore(0),
		tutor.WithEventRepo(d.store.EventRepo()),
		tutor.WithLogger(d.log),
	)

	study := screen.Study{Tutor: workflow, Key: uuid.NewString()}
	return app.Run(cmd.Context(), study, setup.Defaults{
		AcademicLevel: f.level,
		Subject:       f.subject,
		Topic:         f.topic,
	})
}
