package tutor

import (
	"math/rand/v2"
	"strings"
	"testing"
)

func TestNewCelebration_BelowThreshold(t *testing.T) {
	for grade := 1; grade <= 8; grade++ {
		c := NewCelebration(grade, "Algebra", nil)
		if c != (Celebration{}) {
			t.Fatalf("grade %d: expected zero celebration, got %+v", grade, c)
		}
	}
}

func TestNewCelebration_Passing(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		c := NewCelebration(9+i%2, "Algebra", r)
		if !c.Show || c.Emojis != "🥳🎉🎊" || c.DurationMs != 3000 {
			t.Fatalf("unexpected celebration: %+v", c)
		}
		if !strings.Contains(c.Message, "Algebra") {
			t.Fatalf("message does not mention topic: %q", c.Message)
		}
		seen[c.Message] = true
	}
	if len(seen) != len(celebrationTemplates) {
		t.Fatalf("expected all %d messages over 200 draws, saw %d", len(celebrationTemplates), len(seen))
	}
}

func TestNewCelebration_Deterministic(t *testing.T) {
	a := NewCelebration(10, "Rome", rand.New(rand.NewPCG(7, 7)))
	b := NewCelebration(10, "Rome", rand.New(rand.NewPCG(7, 7)))
	if a != b {
		t.Fatalf("same seed gave %q and %q", a.Message, b.Message)
	}
}
