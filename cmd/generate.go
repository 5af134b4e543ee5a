package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
	"github.com/vqagen/vqagen/internal/config"
	"github.com/vqagen/vqagen/internal/gemini"
	"github.com/vqagen/vqagen/internal/ollama"
	"github.com/vqagen/vqagen/internal/openai"
	"github.com/vqagen/vqagen/internal/pipeline"
	"github.com/vqagen/vqagen/internal/providers"
	"github.com/vqagen/vqagen/internal/vqa"
)

func newGenerateCmd() *cobra.Command {
	var configPath string
	var temperature float32

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Annotate every new image and update the VQA dataset",
		Long: `Scans the image directory recursively for .jpg, .jpeg, .png, .webp and .gif files,
sends each image not yet present in the output file to the model, and rewrites
the output file after every successfully annotated image.

Settings are read from vqagen.yaml (or --config), then the environment, then flags.
The model API key is read from GEMINI_API_KEY or OPENAI_API_KEY.`,
		Example: `  # Annotate ./images into ./vqa.json with Gemini
  vqagen generate

  # Use a different tree and output file
  vqagen generate --images ./photos --output ./photos_vqa.json

  # Use a local Ollama vision model with a per-request timeout
  vqagen generate --provider ollama --model llava:13b --timeout 2m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("images") {
				cfg.ImageDir, _ = flags.GetString("images")
			}
			if flags.Changed("output") {
				cfg.OutputFile, _ = flags.GetString("output")
			}
			if flags.Changed("provider") {
				cfg.Provider, _ = flags.GetString("provider")
			}
			if flags.Changed("model") {
				cfg.Model, _ = flags.GetString("model")
			}
			if flags.Changed("temperature") {
				cfg.Temperature = &temperature
			}
			if flags.Changed("timeout") {
				cfg.RequestTimeout, _ = flags.GetDuration("timeout")
			}
			if flags.Changed("shuffle") {
				cfg.Shuffle, _ = flags.GetBool("shuffle")
			}
			if flags.Changed("include-levels") {
				cfg.IncludeLevels, _ = flags.GetBool("include-levels")
			}
			cfg.ResolveModel()

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return executeGenerate(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file (default vqagen.yaml if present)")
	cmd.Flags().String("images", "images", "Root directory to scan for images")
	cmd.Flags().String("output", "vqa.json", "Output JSON dataset file")
	cmd.Flags().String("provider", "gemini", "LLM provider (gemini, openai, or ollama)")
	cmd.Flags().String("model", "", "Model name (defaults to provider's default)")
	cmd.Flags().Float32Var(&temperature, "temperature", 0, "Sampling temperature (model default when unset)")
	cmd.Flags().Duration("timeout", 0, "Timeout per model request (0 waits indefinitely)")
	cmd.Flags().Bool("shuffle", true, "Shuffle records before each write")
	cmd.Flags().Bool("include-levels", false, "Also store the difficulty level of each pair as l1..l5")

	return cmd
}

func executeGenerate(ctx context.Context, cfg *config.Config) error {
	slog.Info("Starting VQA generation", "images", cfg.ImageDir, "output", cfg.OutputFile, "provider", cfg.Provider, "model", cfg.Model)

	provider, closeProvider, err := newProvider(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to configure model: %w", err)
	}
	defer closeProvider()

	runner := &pipeline.Runner{
		ImageDir:      cfg.ImageDir,
		OutputFile:    cfg.OutputFile,
		Shuffle:       cfg.Shuffle,
		IncludeLevels: cfg.IncludeLevels,
		Annotator: &vqa.Annotator{
			Provider:    provider,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.RequestTimeout,
		},
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(cfg.OutputFile, summary)
	return nil
}

func newProvider(ctx context.Context, cfg *config.Config) (providers.Provider, func(), error) {
	switch cfg.Provider {
	case "gemini":
		g, err := gemini.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return g, func() {
			if err := g.Close(); err != nil {
				slog.Warn("Failed to close Gemini client", "error", err)
			}
		}, nil
	case "openai":
		o, err := openai.New(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return o, func() {}, nil
	case "ollama":
		return ollama.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

func printSummary(output string, summary *pipeline.Summary) {
	fmt.Println("\n========================================")
	fmt.Println("VQA Generation Summary")
	fmt.Println("========================================")
	fmt.Printf("Images found:       %d\n", summary.Found)
	fmt.Printf("Already processed:  %d\n", summary.Skipped)
	fmt.Printf("Newly processed:    %d\n", summary.Processed)
	fmt.Printf("Failed:             %d\n", summary.Failed)

	if len(summary.Failures) > 0 {
		var reasons []string
		for reason := range summary.Failures {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Printf("  %s: %d\n", reason, summary.Failures[reason])
		}
	}

	fmt.Println()
	fmt.Printf("Saved %d VQA records to %s\n", summary.Total, output)
	fmt.Println("========================================")
}
