// Package analyzer orchestrates the per-slide pipeline: extract the
// slide's units, label them, package them, stage the images with the
// analysis service, wait for readiness and collect the narrative.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deckwise/deckbrief/internal/ai"
	"github.com/deckwise/deckbrief/internal/deck"
	"github.com/deckwise/deckbrief/internal/extractor"
	"github.com/deckwise/deckbrief/internal/label"
	"github.com/deckwise/deckbrief/internal/packager"
	"github.com/deckwise/deckbrief/internal/report"
	"github.com/deckwise/deckbrief/pkg/raster"
)

const imageMIMEType = "image/png"

// Analyze processes the deck strictly one slide at a time; each slide
// completes through Collect before the next begins. The first error
// aborts the run and propagates to the caller, which owns the
// continue/abort decision.
func (a *implAnalyzer) Analyze(ctx context.Context, deckPath string) ([]SlideResult, error) {
	d, err := a.reader.Open(deckPath)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}

	a.logger.Info(ctx, "Analyzing %s: %d slides", deckPath, len(d.Slides))

	ex := extractor.New(d.PageWidth, d.PageHeight, true)
	lab := label.New(a.cfg.Analysis.AddLabels)

	// Scratch space for the temporary PNGs handed to the staging call.
	// Each file is removed right after its staging call; the deferred
	// removal covers every exit path, staging failures included.
	tempDir, err := os.MkdirTemp(a.cfg.Paths.Temp, "deckbrief-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	var results []SlideResult
	for _, slide := range d.Slides {
		result, err := a.analyzeSlide(ctx, slide, ex, lab, tempDir)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", slide.Number, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (a *implAnalyzer) analyzeSlide(ctx context.Context, slide deck.Slide, ex extractor.Extractor, lab label.Labeler, tempDir string) (SlideResult, error) {
	content, err := ex.Extract(slide)
	if err != nil {
		return SlideResult{}, fmt.Errorf("extract: %w", err)
	}

	units := make([]packager.Unit, len(content.Images))
	for i, u := range content.Images {
		units[i] = packager.Unit{Image: lab.Apply(u.Image, u.ID), ID: u.ID}
	}

	var snapshot *packager.Unit
	if content.Snapshot != nil {
		snapshot = &packager.Unit{
			Image: lab.Apply(content.Snapshot.Image, content.Snapshot.ID),
			ID:    content.Snapshot.ID,
		}
	}

	items, err := packager.Build(slide.Number, units, snapshot, a.cfg.Analysis.CombineImages)
	if err != nil {
		return SlideResult{}, fmt.Errorf("package: %w", err)
	}

	staged := make([]ai.StagedFile, 0, len(items))
	var submitted []string
	for _, item := range items {
		submitted = append(submitted, item.IDs...)

		path := filepath.Join(tempDir, item.Stem+".png")
		if err := raster.WritePNG(path, item.Image); err != nil {
			return SlideResult{}, fmt.Errorf("stage: %w", err)
		}

		handle, stageErr := a.service.Stage(ctx, path, imageMIMEType)

		// The local copy only exists to satisfy the staging call.
		if err := os.Remove(path); err != nil {
			a.logger.Warn(ctx, "Failed to remove temp file %s: %v", path, err)
		}

		if stageErr != nil {
			return SlideResult{}, fmt.Errorf("stage %s: %w", item.Stem, stageErr)
		}
		staged = append(staged, handle)
	}

	if err := a.service.AwaitReady(ctx, staged); err != nil {
		return SlideResult{}, fmt.Errorf("await ready: %w", err)
	}

	instructions := buildInstructions(slide.Number, content.Text, items, a.cfg.Analysis.CombineImages)

	narrative, err := a.service.Submit(ctx, staged, instructions)
	if err != nil {
		return SlideResult{}, fmt.Errorf("submit: %w", err)
	}

	if unknown := report.UnknownRefs(narrative, submitted); len(unknown) > 0 {
		a.logger.Warn(ctx, "Slide %d narrative references unsubmitted images: %v", slide.Number, unknown)
	}

	a.logger.Info(ctx, "Slide %d analyzed (%d images submitted)", slide.Number, len(staged))

	return SlideResult{
		Slide:     slide.Number,
		Narrative: narrative,
		Submitted: submitted,
	}, nil
}
