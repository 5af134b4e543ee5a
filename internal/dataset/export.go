package dataset

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
)

// ExportParquet writes records to a Parquet file with one row per image
func ExportParquet(records []ImageRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ImageRecord](file)
	n, err := writer.Write(records)
	if err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}

	slog.Debug("Exported parquet", "path", path, "rows", n)
	return nil
}
