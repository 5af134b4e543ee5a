package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "vqagen",
		Short: "Generate Vietnamese VQA training data from images with a vision LLM",
		Long: `vqagen walks an image directory, asks a multimodal model for five Vietnamese
question/answer pairs per image and stores them in a JSON dataset.

Runs are resumable: images already present in the output file are skipped,
and the file is checkpointed after every image.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}
