package tutor

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/scholar/internal/lesson"
)

const (
	celebrationEmojis   = "🥳🎉🎊"
	celebrationDuration = 3000 // milliseconds
)

var celebrationTemplates = []string{
	"🎉 Outstanding work on %s! You've mastered this topic brilliantly!",
	"👏 Exceptional understanding of %s! Your knowledge is impressive!",
	"🏆 Fantastic job! You've demonstrated excellent mastery of %s!",
	"✨ Brilliant work! Your understanding of %s is truly commendable!",
}

// Celebration is the banner shown after a passing grade.
type Celebration struct {
	Show       bool   `json:"show_celebration"`
	Message    string `json:"message"`
	Emojis     string `json:"emojis"`
	DurationMs int    `json:"duration"`
}

// NewCelebration builds the banner for grade. Below lesson.ProceedGrade it
// is the zero value. r picks the message; nil uses the global source.
func NewCelebration(grade int, topic string, r *rand.Rand) Celebration {
	if !lesson.Passed(grade) {
		return Celebration{}
	}
	var i int
	if r != nil {
		i = r.IntN(len(celebrationTemplates))
	} else {
		i = rand.IntN(len(celebrationTemplates))
	}
	return Celebration{
		Show:       true,
		Message:    fmt.Sprintf(celebrationTemplates[i], topic),
		Emojis:     celebrationEmojis,
		DurationMs: celebrationDuration,
	}
}
