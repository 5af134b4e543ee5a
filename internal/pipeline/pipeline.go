package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vqagen/vqagen/internal/dataset"
	"github.com/vqagen/vqagen/internal/images"
	"github.com/vqagen/vqagen/internal/vqa"
)

// detailLimit caps how much raw model output is logged per failure
const detailLimit = 100

// Annotator produces the question/answer pairs for one image
type Annotator interface {
	Annotate(ctx context.Context, imagePath string) ([]vqa.QA, error)
}

// Runner processes an image tree one file at a time, checkpointing the dataset after each success
type Runner struct {
	ImageDir      string
	OutputFile    string
	Shuffle       bool
	IncludeLevels bool
	Annotator     Annotator
}

// Summary describes the outcome of a run
type Summary struct {
	Found     int
	Skipped   int
	Processed int
	Failed    int
	Total     int
	Failures  map[string]int
}

// Run loads previous results, enumerates images and annotates every image not yet recorded.
// Only a missing image directory or a failed final save is returned as an error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	ds := dataset.Load(r.OutputFile)
	ds.Shuffle = r.Shuffle

	slog.Info("Scanning image directory", "dir", r.ImageDir)
	paths, err := images.Enumerate(r.ImageDir)
	if err != nil {
		return nil, err
	}
	slog.Info("Found images", "count", len(paths))

	summary := &Summary{
		Found:    len(paths),
		Failures: make(map[string]int),
	}

	for i, path := range paths {
		if ctx.Err() != nil {
			slog.Warn("Run interrupted, stopping before next image", "remaining", len(paths)-i)
			break
		}

		if ds.Has(path) {
			slog.Info("Image already in dataset, skipping", "path", path)
			summary.Skipped++
			continue
		}

		slog.Info("Processing new image", "path", path, "progress", fmt.Sprintf("%d/%d", i+1, len(paths)))
		if err := r.processOne(ctx, ds, path); err != nil {
			var failure *vqa.Failure
			if !errors.As(err, &failure) {
				// The record is kept in memory and rewritten by the next checkpoint.
				slog.Error("Failed to checkpoint dataset", "path", path, "output", r.OutputFile, "error", err)
				summary.Processed++
				continue
			}
			slog.Warn("Skipping image", "path", path, "reason", failure.Reason, "error", failure.Err, "detail", failure.Detail(detailLimit))
			summary.Failed++
			summary.Failures[failure.Reason]++
			continue
		}
		summary.Processed++
	}

	if err := ds.Save(); err != nil {
		return summary, fmt.Errorf("failed to save dataset: %w", err)
	}

	summary.Total = ds.Len()
	return summary, nil
}

// processOne annotates, flattens and checkpoints a single image
func (r *Runner) processOne(ctx context.Context, ds *dataset.Dataset, path string) error {
	pairs, err := r.Annotator.Annotate(ctx, path)
	if err != nil {
		return err
	}

	rec, err := vqa.Flatten(path, pairs, r.IncludeLevels)
	if err != nil {
		return err
	}

	return ds.Append(rec)
}
