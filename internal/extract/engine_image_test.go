package extract

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"item-scanner/internal/learning"
	"item-scanner/internal/ocr"
	"item-scanner/pkg/geometry"

	"gocv.io/x/gocv"
)

// fakeBackend returns canned recognition output regardless of input.
type fakeBackend struct {
	text   string
	tokens []ocr.Token
	err    error
}

func (f *fakeBackend) Recognize(img gocv.Mat) (string, []ocr.Token, error) {
	return f.text, f.tokens, f.err
}

func (f *fakeBackend) Close() error { return nil }

// tooltipMat draws a rough light-on-dark tooltip so every preprocessing
// technique has real structure to work on.
func tooltipMat(t *testing.T) gocv.Mat {
	t.Helper()
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(30, 30, 30, 0), 120, 240, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&img, image.Rect(20, 30, 200, 50), color.RGBA{R: 220, G: 220, B: 220, A: 0}, -1)
	gocv.Rectangle(&img, image.Rect(20, 70, 160, 90), color.RGBA{R: 220, G: 220, B: 220, A: 0}, -1)
	return img
}

func TestExtractFromImageRecordsOutcomes(t *testing.T) {
	backend := &fakeBackend{
		text: "+73 to maximum Life",
		tokens: []ocr.Token{
			{Text: "+73", Confidence: 91, Bounds: geometry.NewRectInt(20, 30, 40, 20)},
			{Text: "to", Confidence: 89, Bounds: geometry.NewRectInt(70, 30, 20, 20)},
			{Text: "maximum", Confidence: 90, Bounds: geometry.NewRectInt(100, 30, 60, 20)},
			{Text: "Life", Confidence: 90, Bounds: geometry.NewRectInt(170, 30, 30, 20)},
		},
	}
	store := learning.NewMemoryStore(0)
	engine, err := New(backend, WithStore(store))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	img := tooltipMat(t)
	defer img.Close()

	matches := engine.Extract(img, nil)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Name != "Life" {
		t.Errorf("Name = %q, want Life", matches[0].Name)
	}

	stats := store.Stats()
	s, ok := stats["Life"]
	if !ok {
		t.Fatalf("no Life history recorded: %+v", stats)
	}
	if s.Count != 1 || s.SuccessRate != 1.0 {
		t.Errorf("stats = %+v, want count 1 success rate 1", s)
	}
}

func TestExtractBackendFailureYieldsNothing(t *testing.T) {
	backend := &fakeBackend{err: errors.New("tesseract unavailable")}
	store := learning.NewMemoryStore(0)
	engine, err := New(backend, WithStore(store))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	img := tooltipMat(t)
	defer img.Close()

	if matches := engine.Extract(img, nil); matches != nil {
		t.Errorf("got %v, want nil", matches)
	}
	if stats := store.Stats(); len(stats) != 0 {
		t.Errorf("failed run recorded outcomes: %+v", stats)
	}
}

func TestExtractEmptyImageYieldsNothing(t *testing.T) {
	engine, err := New(&fakeBackend{text: "+73 to maximum Life"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	empty := gocv.NewMat()
	defer empty.Close()

	if matches := engine.Extract(empty, nil); matches != nil {
		t.Errorf("got %v, want nil", matches)
	}
}

func TestExtractNilBackendYieldsNothing(t *testing.T) {
	engine, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	img := tooltipMat(t)
	defer img.Close()

	if matches := engine.Extract(img, nil); matches != nil {
		t.Errorf("got %v, want nil", matches)
	}
}
