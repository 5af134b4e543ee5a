package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/vqagen/vqagen/internal/providers"
)

// Ollama is a provider for a local or remote Ollama server
type Ollama struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a new Ollama provider using OLLAMA_URL or OLLAMA_HOST
func New() *Ollama {
	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = os.Getenv("OLLAMA_HOST")
	}
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	return &Ollama{
		BaseURL:    ollamaURL,
		HTTPClient: &http.Client{},
	}
}

// Generate sends the prompt and image to the Ollama generate endpoint
func (o *Ollama) Generate(ctx context.Context, req providers.Request) (string, error) {
	requestBody := map[string]interface{}{
		"model":  req.Model,
		"prompt": req.Prompt,
		"stream": false,
	}
	if len(req.Image) > 0 {
		requestBody["images"] = []string{base64.StdEncoding.EncodeToString(req.Image)}
	}
	if req.Temperature != nil {
		requestBody["options"] = map[string]interface{}{
			"temperature": *req.Temperature,
		}
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call Ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API returned status %d: %s", resp.StatusCode, string(body))
	}

	var ollamaResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ollamaResp); err != nil {
		return "", fmt.Errorf("failed to decode Ollama response: %w", err)
	}

	if ollamaResp.Response == "" {
		return "", fmt.Errorf("ollama returned no text: %w", providers.ErrEmptyResponse)
	}

	return ollamaResp.Response, nil
}
