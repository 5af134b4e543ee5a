package vqa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QA is one question/answer pair as returned by the model.
// Question and Answer are nil when the model omitted the key.
type QA struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Level    Level   `json:"level"`
}

// Level is the difficulty tier reported by the model. Models sometimes quote the number,
// so both 3 and "3" decode; anything else decodes to 0.
type Level int

func (l *Level) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		*l = 0
		return nil
	}
	*l = Level(n)
	return nil
}

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// StripFence removes surrounding whitespace and a ```json ... ``` wrapper when both markers are present
func StripFence(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= len(fenceOpen)+len(fenceClose) &&
		strings.HasPrefix(text, fenceOpen) && strings.HasSuffix(text, fenceClose) {
		text = strings.TrimSpace(text[len(fenceOpen) : len(text)-len(fenceClose)])
	}
	return text
}

// ParseResponse converts raw model text into exactly PairCount pairs, in the order returned.
// Anything that is not a JSON list of PairCount objects is rejected with a ReasonParse failure.
func ParseResponse(text string) ([]QA, error) {
	body := StripFence(text)

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, &Failure{Reason: ReasonParse, Raw: text, Err: fmt.Errorf("invalid JSON list: %w", err)}
	}
	if len(items) != PairCount {
		return nil, &Failure{Reason: ReasonParse, Raw: text, Err: fmt.Errorf("expected %d items, got %d", PairCount, len(items))}
	}

	pairs := make([]QA, 0, PairCount)
	for i, item := range items {
		if t := bytes.TrimSpace(item); len(t) == 0 || t[0] != '{' {
			return nil, &Failure{Reason: ReasonParse, Raw: text, Err: fmt.Errorf("item %d is not an object", i+1)}
		}
		var qa QA
		if err := json.Unmarshal(item, &qa); err != nil {
			return nil, &Failure{Reason: ReasonParse, Raw: text, Err: fmt.Errorf("item %d: %w", i+1, err)}
		}
		pairs = append(pairs, qa)
	}

	return pairs, nil
}
