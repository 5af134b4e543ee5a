package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vqagen/vqagen/internal/dataset"
	"gopkg.in/yaml.v3"
)

func newInspectCmd() *cobra.Command {
	var input string
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a VQA dataset file",
		Example: `  # Count records and incomplete entries
  vqagen inspect --input vqa.json

  # Also print the first 3 records
  vqagen inspect --input vqa.json --limit 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := dataset.Read(input)
			if err != nil {
				return err
			}

			stats := dataset.Summarize(records)
			fmt.Printf("Records:              %d\n", stats.Records)
			fmt.Printf("Unique images:        %d\n", stats.UniqueImages)
			fmt.Printf("Duplicate images:     %d\n", stats.Duplicates)
			fmt.Printf("Incomplete records:   %d\n", stats.Incomplete)
			fmt.Printf("Records with levels:  %d\n", stats.WithLevels)

			if limit <= 0 {
				return nil
			}
			if limit > len(records) {
				limit = len(records)
			}

			fmt.Println()
			encoder := yaml.NewEncoder(os.Stdout)
			encoder.SetIndent(2)
			defer encoder.Close()
			return encoder.Encode(records[:limit])
		},
	}

	cmd.Flags().StringVar(&input, "input", "vqa.json", "JSON dataset file")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of records to print as YAML")

	return cmd
}
