package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vqagen/vqagen/internal/dataset"
)

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "export", "inspect"})
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "vqa.json")
	output := filepath.Join(dir, "vqa.parquet")
	require.NoError(t, os.WriteFile(input, []byte(`[{"image_path": "images/a.jpg", "q1": "Màu gì?", "a1": "Đỏ"}]`), 0644))

	root := NewRootCmd()
	root.SetArgs([]string{"export", "--input", input, "--output", output})
	require.NoError(t, root.ExecuteContext(context.Background()))

	rows, err := parquet.ReadFile[dataset.ImageRecord](output)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Đỏ", rows[0].A1)
}

func TestExportRejectsCorruptDataset(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	input := filepath.Join(dir, "vqa.json")
	require.NoError(t, os.WriteFile(input, []byte(`[{"image_path": `), 0644))

	root := NewRootCmd()
	root.SetArgs([]string{"export", "--input", input, "--output", filepath.Join(dir, "out.parquet")})
	root.SilenceErrors = true
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestGenerateRequiresAPIKey(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("VQA_PROVIDER", "")

	root := NewRootCmd()
	root.SetArgs([]string{"generate"})
	root.SilenceErrors = true
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	_, statErr := os.Stat(filepath.Join(dir, "vqa.json"))
	assert.True(t, os.IsNotExist(statErr), "no output is written when the model cannot be configured")
}
