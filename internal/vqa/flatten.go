package vqa

import (
	"fmt"

	"github.com/vqagen/vqagen/internal/dataset"
)

// Flatten builds the dataset record for imagePath from the parsed pairs, keeping the model's order.
// The level is dropped unless includeLevels is set, which keeps the legacy output schema by default.
func Flatten(imagePath string, pairs []QA, includeLevels bool) (dataset.ImageRecord, error) {
	rec := dataset.ImageRecord{ImagePath: imagePath}
	if len(pairs) != PairCount {
		return rec, &Failure{Reason: ReasonMalformed, Err: fmt.Errorf("expected %d pairs, got %d", PairCount, len(pairs))}
	}

	for i, qa := range pairs {
		if qa.Question == nil || qa.Answer == nil {
			return rec, &Failure{Reason: ReasonMalformed, Err: fmt.Errorf("pair %d is missing a question or answer", i+1)}
		}
		q, a, l := rec.Pair(i + 1)
		*q = *qa.Question
		*a = *qa.Answer
		if includeLevels {
			level := int(qa.Level)
			*l = &level
		}
	}

	return rec, nil
}
