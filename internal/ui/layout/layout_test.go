package layout

import (
	"strings"
	"testing"
)

func TestClip(t *testing.T) {
	doc := "a\nb\nc\nd\ne"

	got, off := Clip(doc, 1, 2)
	if got != "b\nc" || off != 1 {
		t.Fatalf("Clip(1,2) = %q,%d", got, off)
	}

	got, off = Clip(doc, 10, 2)
	if got != "d\ne" || off != 3 {
		t.Fatalf("offset past the end should clamp, got %q,%d", got, off)
	}

	got, off = Clip(doc, -3, 10)
	if got != doc || off != 0 {
		t.Fatalf("short document should render whole, got %q,%d", got, off)
	}
}

func TestReadingWidth(t *testing.T) {
	if got := ReadingWidth(300); got != MaxReadingWidth {
		t.Errorf("ReadingWidth(300) = %d", got)
	}
	if got := ReadingWidth(80); got != 76 {
		t.Errorf("ReadingWidth(80) = %d", got)
	}
	if got := ReadingWidth(5); got != 20 {
		t.Errorf("ReadingWidth(5) = %d", got)
	}
}

func TestRenderHeaderShowsBrandAndContext(t *testing.T) {
	h := RenderHeader("Lesson", "Biology · Cells", 90)
	for _, want := range []string{"Scholar", "Lesson", "Biology · Cells"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q:\n%s", want, h)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should be accepted")
	}
}
