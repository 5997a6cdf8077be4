package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/deckwise/deckbrief/internal/ai"
	"github.com/deckwise/deckbrief/internal/config"
	"github.com/deckwise/deckbrief/internal/deck"
	"github.com/deckwise/deckbrief/internal/logger"
	"github.com/deckwise/deckbrief/pkg/raster"
)

type fakeReader struct {
	deck *deck.Deck
	err  error
}

func (r *fakeReader) Open(path string) (*deck.Deck, error) {
	return r.deck, r.err
}

type stageCall struct {
	path string
	mime string
}

type fakeService struct {
	stages      []stageCall
	submissions []string
	narratives  []string
	failReady   string
}

func (s *fakeService) Stage(ctx context.Context, path, mimeType string) (ai.StagedFile, error) {
	if _, err := os.Stat(path); err != nil {
		return ai.StagedFile{}, fmt.Errorf("staged file missing: %w", err)
	}
	s.stages = append(s.stages, stageCall{path: path, mime: mimeType})
	stem := strings.TrimSuffix(filepath.Base(path), ".png")
	return ai.StagedFile{Name: "files/" + stem, URI: "uri/" + stem, MIMEType: mimeType}, nil
}

func (s *fakeService) AwaitReady(ctx context.Context, files []ai.StagedFile) error {
	for _, f := range files {
		if s.failReady != "" && strings.Contains(f.Name, s.failReady) {
			return fmt.Errorf("file %s failed to process", f.Name)
		}
	}
	return nil
}

func (s *fakeService) Submit(ctx context.Context, files []ai.StagedFile, instructions string) (string, error) {
	s.submissions = append(s.submissions, instructions)
	if len(s.narratives) == 0 {
		return "narrative", nil
	}
	n := s.narratives[0]
	s.narratives = s.narratives[1:]
	return n, nil
}

const inch = deck.EMU(914400)

func pictureShape(t *testing.T, c color.Color) deck.Shape {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, raster.Canvas(12, 12, c)); err != nil {
		t.Fatal(err)
	}
	return deck.Shape{
		Kind:    deck.KindPicture,
		Picture: buf.Bytes(),
		Box:     deck.Box{Width: inch, Height: inch},
	}
}

// twoSlideDeck is the canonical scenario: slide 1 has two pictures and
// the text "Hello", slide 2 has no pictures and the text "World".
func twoSlideDeck(t *testing.T) *deck.Deck {
	t.Helper()
	return &deck.Deck{
		PageWidth:  10 * inch,
		PageHeight: 7 * inch,
		Slides: []deck.Slide{
			{
				Number: 1,
				Shapes: []deck.Shape{
					{Kind: deck.KindText, Text: "Hello"},
					pictureShape(t, color.White),
					pictureShape(t, color.Black),
				},
			},
			{
				Number: 2,
				Shapes: []deck.Shape{
					{Kind: deck.KindText, Text: "World"},
				},
			},
		},
	}
}

func testConfig(t *testing.T, combine bool) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Gemini.APIKey = "test-key"
	cfg.Analysis.CombineImages = combine
	cfg.Paths.Temp = t.TempDir()
	return cfg
}

func newTestAnalyzer(t *testing.T, d *deck.Deck, svc ai.Service, combine bool) Analyzer {
	t.Helper()
	return New(testConfig(t, combine), &fakeReader{deck: d}, svc, logger.New("error"))
}

func TestAnalyzeCombined(t *testing.T) {
	svc := &fakeService{narratives: []string{"first narrative", "second narrative"}}

	results, err := newTestAnalyzer(t, twoSlideDeck(t), svc, true).Analyze(context.Background(), "deck.pptx")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// Slide 1: one composite + one snapshot. Slide 2: snapshot only.
	if len(svc.stages) != 3 {
		t.Fatalf("staged images = %d, want 3", len(svc.stages))
	}
	wantStems := []string{"combined_image_0", "snapshot_1", "snapshot_2"}
	for i, call := range svc.stages {
		if got := strings.TrimSuffix(filepath.Base(call.path), ".png"); got != wantStems[i] {
			t.Errorf("stage %d stem = %q, want %q", i, got, wantStems[i])
		}
		if call.mime != "image/png" {
			t.Errorf("stage %d mime = %q", i, call.mime)
		}
	}

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Narrative != "first narrative" || results[1].Narrative != "second narrative" {
		t.Errorf("narratives = %q, %q", results[0].Narrative, results[1].Narrative)
	}
	if !reflect.DeepEqual(results[0].Submitted, []string{"IMG_1_1", "IMG_1_2", "snapshot_1"}) {
		t.Errorf("slide 1 submitted = %v", results[0].Submitted)
	}
	if !reflect.DeepEqual(results[1].Submitted, []string{"snapshot_2"}) {
		t.Errorf("slide 2 submitted = %v", results[1].Submitted)
	}
}

func TestAnalyzeDiscrete(t *testing.T) {
	svc := &fakeService{}

	if _, err := newTestAnalyzer(t, twoSlideDeck(t), svc, false).Analyze(context.Background(), "deck.pptx"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// Slide 1: two discrete images + snapshot. Slide 2: snapshot only.
	wantStems := []string{"temp_image_1_1", "temp_image_1_2", "snapshot_1", "snapshot_2"}
	if len(svc.stages) != len(wantStems) {
		t.Fatalf("staged images = %d, want %d", len(svc.stages), len(wantStems))
	}
	for i, call := range svc.stages {
		if got := strings.TrimSuffix(filepath.Base(call.path), ".png"); got != wantStems[i] {
			t.Errorf("stage %d stem = %q, want %q", i, got, wantStems[i])
		}
	}
}

func TestAnalyzeCleansTempFiles(t *testing.T) {
	svc := &fakeService{}
	cfg := testConfig(t, true)
	a := New(cfg, &fakeReader{deck: twoSlideDeck(t)}, svc, logger.New("error"))

	if _, err := a.Analyze(context.Background(), "deck.pptx"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for _, call := range svc.stages {
		if _, err := os.Stat(call.path); !os.IsNotExist(err) {
			t.Errorf("temp file %s still exists after run", call.path)
		}
	}

	entries, err := os.ReadDir(cfg.Paths.Temp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dir not removed, %d entries left", len(entries))
	}
}

func TestAnalyzeInstructions(t *testing.T) {
	svc := &fakeService{}

	if _, err := newTestAnalyzer(t, twoSlideDeck(t), svc, true).Analyze(context.Background(), "deck.pptx"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(svc.submissions) != 2 {
		t.Fatalf("submissions = %d, want 2", len(svc.submissions))
	}

	first := svc.submissions[0]
	for _, want := range []string{
		"Individual images extracted from the slides (IMG_X_X)",
		"Full slide snapshots (snapshot_X)",
		`[image src=IMG_X_X.png caption="Your caption here"]`,
		"left to right they are: IMG_1_1, IMG_1_2",
		"Slide 1:\nHello",
	} {
		if !strings.Contains(first, want) {
			t.Errorf("slide 1 instructions missing %q", want)
		}
	}

	second := svc.submissions[1]
	if !strings.Contains(second, "Slide 2:\nWorld") {
		t.Errorf("slide 2 instructions missing slide text")
	}
	if strings.Contains(second, "left to right") {
		t.Error("slide without pictures should not mention a composite")
	}
}

func TestAnalyzeReadinessFailureAbortsRun(t *testing.T) {
	svc := &fakeService{failReady: "snapshot_1"}

	results, err := newTestAnalyzer(t, twoSlideDeck(t), svc, true).Analyze(context.Background(), "deck.pptx")
	if err == nil {
		t.Fatal("Analyze() should propagate the readiness failure")
	}
	if results != nil {
		t.Error("a failed run must not return partial results")
	}
	// Slide 2 was never reached.
	if len(svc.submissions) != 0 {
		t.Errorf("submissions = %d, want 0", len(svc.submissions))
	}
}

func TestAnalyzeOpenFailure(t *testing.T) {
	svc := &fakeService{}
	a := New(testConfig(t, true), &fakeReader{err: fmt.Errorf("no such file")}, svc, logger.New("error"))

	if _, err := a.Analyze(context.Background(), "missing.pptx"); err == nil {
		t.Fatal("Analyze() should fail when the deck cannot be opened")
	}
	if len(svc.stages) != 0 {
		t.Error("nothing should be staged when the deck cannot be opened")
	}
}

func TestAnalyzeCorruptImageAbortsRun(t *testing.T) {
	d := &deck.Deck{
		PageWidth:  10 * inch,
		PageHeight: 7 * inch,
		Slides: []deck.Slide{
			{Number: 1, Shapes: []deck.Shape{{Kind: deck.KindPicture, Picture: []byte("garbage")}}},
		},
	}
	svc := &fakeService{}

	if _, err := newTestAnalyzer(t, d, svc, true).Analyze(context.Background(), "deck.pptx"); err == nil {
		t.Fatal("Analyze() should propagate the decode error")
	}
	if len(svc.stages) != 0 {
		t.Error("nothing should be staged for a slide that failed extraction")
	}
}
