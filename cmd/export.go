package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vqagen/vqagen/internal/dataset"
)

func newExportCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the VQA dataset to Parquet",
		Long: `Converts the JSON dataset into a Parquet file with one row per image and the
same column names (image_path, q1, a1, ... q5, a5).

Unlike generate, export refuses to run on a malformed dataset file.`,
		Example: `  vqagen export --input vqa.json --output vqa.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := dataset.Read(input)
			if err != nil {
				return err
			}

			slog.Info("Exporting dataset", "input", input, "output", output, "records", len(records))
			if err := dataset.ExportParquet(records, output); err != nil {
				return err
			}

			fmt.Printf("Exported %d records to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "vqa.json", "JSON dataset file")
	cmd.Flags().StringVar(&output, "output", "vqa.parquet", "Parquet output file")

	return cmd
}
