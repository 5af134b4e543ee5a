package providers

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a model answers without any text content
var ErrEmptyResponse = errors.New("empty response from model")

// Request represents a single multimodal generation request
type Request struct {
	Model       string
	Temperature *float32
	Prompt      string
	Image       []byte
	MIMEType    string
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
