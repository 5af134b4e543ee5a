package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
)

// Dataset is the in-memory list of records backed by a single JSON file,
// together with the set of image paths it already covers. Records are kept as
// raw JSON so entries loaded from disk are rewritten exactly as they were found,
// including hand-edited or unknown fields.
type Dataset struct {
	Path    string
	Records []json.RawMessage
	Shuffle bool

	processed map[string]struct{}
}

// New returns an empty dataset that will be written to path
func New(path string) *Dataset {
	return &Dataset{
		Path:      path,
		Records:   make([]json.RawMessage, 0),
		Shuffle:   true,
		processed: make(map[string]struct{}),
	}
}

// Load reads a previous output file so a run can resume. A missing file, a file that is
// not valid JSON, or a top-level value that is not a list is never fatal: it is logged and
// the dataset starts empty. Any valid list is kept whole, whatever its elements look like.
func Load(path string) *Dataset {
	d := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("Output file does not exist, starting a new dataset", "path", path)
		} else {
			slog.Warn("Output file is unreadable, starting a new dataset", "path", path, "error", err)
		}
		return d
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil || records == nil {
		if err == nil {
			err = fmt.Errorf("top-level value is not a list")
		}
		slog.Warn("Output file is invalid or empty, starting a new dataset", "path", path, "error", err)
		return d
	}

	d.Records = records
	for _, raw := range records {
		if imagePath, ok := recordImagePath(raw); ok {
			d.processed[imagePath] = struct{}{}
		}
	}

	slog.Info("Loaded existing records", "path", path, "records", len(d.Records), "images", len(d.processed))
	return d
}

// recordImagePath returns the image_path of a raw record when it is an object with a string image_path
func recordImagePath(raw json.RawMessage) (string, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", false
	}
	value, ok := fields["image_path"]
	if !ok {
		return "", false
	}
	var imagePath string
	if err := json.Unmarshal(value, &imagePath); err != nil {
		return "", false
	}
	return imagePath, true
}

// Read strictly decodes a dataset file into typed records. Unlike Load it fails on
// any element that does not match ImageRecord.
func Read(path string) ([]ImageRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var records []ImageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("failed to decode dataset: top-level value is not a list")
	}

	return records, nil
}

// Has reports whether imagePath already has a record
func (d *Dataset) Has(imagePath string) bool {
	_, ok := d.processed[imagePath]
	return ok
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Append adds a record, reshuffles when enabled and checkpoints the whole file.
// The record stays in memory even if the write fails; the next checkpoint retries it.
func (d *Dataset) Append(rec ImageRecord) error {
	raw, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	d.Records = append(d.Records, raw)
	d.processed[rec.ImagePath] = struct{}{}

	if d.Shuffle {
		rand.Shuffle(len(d.Records), func(i, j int) {
			d.Records[i], d.Records[j] = d.Records[j], d.Records[i]
		})
	}

	return d.Save()
}

// Save rewrites the output file with 4-space indentation and literal non-ASCII text.
// The file is replaced via rename so an interrupted write leaves the previous checkpoint intact.
func (d *Dataset) Save() error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "    ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(d.Records); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	dir := filepath.Dir(d.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close dataset file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set dataset permissions: %w", err)
	}
	if err := os.Rename(tmpPath, d.Path); err != nil {
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}

	slog.Debug("Saved dataset", "path", d.Path, "records", len(d.Records))
	return nil
}

// marshalRecord encodes a new record without HTML escaping so it matches the file format
func marshalRecord(rec ImageRecord) (json.RawMessage, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return json.RawMessage(bytes.TrimSpace(buf.Bytes())), nil
}
