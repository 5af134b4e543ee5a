package vqa

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vqagen/vqagen/internal/images"
	"github.com/vqagen/vqagen/internal/providers"
)

// Annotator asks a vision model for the question/answer pairs of one image
type Annotator struct {
	Provider    providers.Provider
	Model       string
	Temperature *float32
	// Timeout bounds each model call; zero waits indefinitely.
	Timeout time.Duration
}

// Annotate makes exactly one model call for imagePath. Every error it returns is a *Failure.
func (a *Annotator) Annotate(ctx context.Context, imagePath string) ([]QA, error) {
	img, err := images.Load(imagePath)
	if err != nil {
		return nil, &Failure{Reason: ReasonImageOpen, Err: err}
	}
	slog.Debug("Loaded image", "path", imagePath, "width", img.Width, "height", img.Height, "bytes", len(img.Data))

	callCtx := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	text, err := a.Provider.Generate(callCtx, providers.Request{
		Model:       a.Model,
		Temperature: a.Temperature,
		Prompt:      Prompt,
		Image:       img.Data,
		MIMEType:    img.MIMEType,
	})
	if err != nil {
		if errors.Is(err, providers.ErrEmptyResponse) {
			return nil, &Failure{Reason: ReasonUnknown, Err: err}
		}
		return nil, &Failure{Reason: ReasonAPICall, Raw: err.Error(), Err: err}
	}

	return ParseResponse(text)
}
