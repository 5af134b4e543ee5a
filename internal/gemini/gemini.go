package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/vqagen/vqagen/internal/providers"
	"google.golang.org/api/option"
)

// Gemini is a provider for Google Gemini
type Gemini struct {
	client *genai.Client
}

// New returns a new Gemini provider authenticated with apiKey
func New(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create new gemini client: %w", err)
	}

	return &Gemini{client: client}, nil
}

// Close releases the underlying client
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Generate sends the image and prompt to Gemini and returns the text of the first candidate
func (g *Gemini) Generate(ctx context.Context, req providers.Request) (string, error) {
	model := g.client.GenerativeModel(req.Model)
	if req.Temperature != nil {
		model.SetTemperature(*req.Temperature)
	}

	var parts []genai.Part
	if len(req.Image) > 0 {
		parts = append(parts, genai.ImageData(imageFormat(req.MIMEType), req.Image))
	}
	parts = append(parts, genai.Text(req.Prompt))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", generateError(err)
	}

	return responseText(resp)
}

// generateError wraps a GenerateContent error. A blocked prompt or candidate
// carries no usable text, so it is reported as an empty response.
func generateError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return fmt.Errorf("gemini blocked the request: %w: %w", err, providers.ErrEmptyResponse)
	}
	return fmt.Errorf("failed to generate content: %w", err)
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini: %w", providers.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini: %w", providers.ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response format from Gemini: %w", providers.ErrEmptyResponse)
	}

	return sb.String(), nil
}

// imageFormat converts a MIME type like "image/png" into the short form genai expects
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(mimeType, "image/")
	if format == "" {
		return "jpeg"
	}
	return format
}
