package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(path string) ImageRecord {
	return ImageRecord{
		ImagePath: path,
		Q1:        "Lá cờ trong hình có màu gì?",
		A1:        "Đỏ",
		Q2:        "Trong hình có bao nhiêu đèn lồng?",
		A2:        "Năm",
		Q3:        "Cây cầu này tên là gì?",
		A3:        "Cầu Rồng",
		Q4:        "Lễ hội nào đang diễn ra?",
		A4:        "Lễ hội <Cồng chiêng> & Tây Nguyên",
		Q5:        "Hai cây cầu bắc qua sông nào?",
		A5:        "sông Hương",
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa.json")

	d := Load(path)
	assert.Equal(t, 0, d.Len())
	assert.NotNil(t, d.Records)
	assert.False(t, d.Has("images/a.jpg"))
}

func TestLoadTolerance(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `[{"image_path": "images/a.jpg", "q1": "x"`},
		{"empty file", ""},
		{"object instead of list", `{"image_path": "images/a.jpg"}`},
		{"null", "null"},
		{"string", `"images/a.jpg"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "vqa.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			d := Load(path)
			assert.Equal(t, 0, d.Len())
			assert.False(t, d.Has("images/a.jpg"))
		})
	}
}

func TestLoadBuildsProcessedSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa.json")
	content := `[
		{"image_path": "images/a.jpg", "q1": "q", "a1": "a"},
		{"q1": "no path"},
		{"image_path": "images/sub/b.png"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	d := Load(path)
	assert.Equal(t, 3, d.Len())
	assert.True(t, d.Has("images/a.jpg"))
	assert.True(t, d.Has("images/sub/b.png"))
	assert.False(t, d.Has(""))
	assert.False(t, d.Has("images/c.jpg"))
}

func TestLoadKeepsOffSchemaRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa.json")
	content := `[
		{"image_path": "images/old1.jpg", "q1": "q", "a1": 2024},
		{"image_path": 7, "q1": "numeric path"},
		"stray string",
		{"image_path": "images/a.jpg", "q1": "q", "a1": "a", "reviewed": true}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	d := Load(path)
	require.Equal(t, 4, d.Len())
	assert.True(t, d.Has("images/old1.jpg"))
	assert.True(t, d.Has("images/a.jpg"))
	assert.False(t, d.Has("7"))

	d.Shuffle = false
	require.NoError(t, d.Append(record("images/new.jpg")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw []any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 5)

	assert.Equal(t, map[string]any{"image_path": "images/old1.jpg", "q1": "q", "a1": float64(2024)}, raw[0])
	assert.Equal(t, map[string]any{"image_path": float64(7), "q1": "numeric path"}, raw[1])
	assert.Equal(t, "stray string", raw[2])
	assert.Equal(t, map[string]any{"image_path": "images/a.jpg", "q1": "q", "a1": "a", "reviewed": true}, raw[3])

	added, ok := raw[4].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "images/new.jpg", added["image_path"])
	assert.Len(t, added, 11)
}

func TestSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa.json")
	d := New(path)
	d.Shuffle = false
	require.NoError(t, d.Append(record("images/a.jpg")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "[\n    {\n        \"image_path\": \"images/a.jpg\",\n        \"q1\": "))
	assert.Contains(t, text, "Lá cờ trong hình có màu gì?")
	assert.Contains(t, text, "Lễ hội <Cồng chiêng> & Tây Nguyên")
	assert.NotContains(t, text, `\u`)
	assert.NotContains(t, text, "l1")
	assert.False(t, strings.HasSuffix(text, "\n"))

	keys := []string{`"image_path"`, `"q1"`, `"a1"`, `"q2"`, `"a2"`, `"q3"`, `"a3"`, `"q4"`, `"a4"`, `"q5"`, `"a5"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(text, k)
		require.Greater(t, idx, last, "key %s out of order", k)
		last = idx
	}
}

func TestSaveEmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa.json")
	require.NoError(t, New(path).Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	d := New(filepath.Join(dir, "vqa.json"))
	require.NoError(t, d.Append(record("images/a.jpg")))
	require.NoError(t, d.Append(record("images/b.jpg")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vqa.json", entries[0].Name())
}

func TestAppendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vqa.json")
	d := New(path)
	for _, p := range []string{"images/a.jpg", "images/b.jpg", "images/c.jpg"} {
		require.NoError(t, d.Append(record(p)))
	}
	assert.True(t, d.Has("images/b.jpg"))

	reloaded := Load(path)
	require.Equal(t, 3, reloaded.Len())

	records, err := Read(path)
	require.NoError(t, err)

	var paths []string
	for _, r := range records {
		paths = append(paths, r.ImagePath)
		assert.Equal(t, record(r.ImagePath), r)
	}
	assert.ElementsMatch(t, []string{"images/a.jpg", "images/b.jpg", "images/c.jpg"}, paths)
}

func TestLevelsPersistWhenSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa.json")
	rec := record("images/a.jpg")
	for n := 1; n <= 5; n++ {
		_, _, l := rec.Pair(n)
		level := n
		*l = &level
	}

	d := New(path)
	require.NoError(t, d.Append(rec))

	var raw []map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, float64(1), raw[0]["l1"])
	assert.Equal(t, float64(5), raw[0]["l5"])
}

func TestReadStrict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vqa.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), 0644))

	_, err := Read(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`[{"image_path": "images/a.jpg", "a1": 2024}]`), 0644))
	_, err = Read(path)
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecordPairAndComplete(t *testing.T) {
	rec := record("images/a.jpg")
	assert.True(t, rec.Complete())

	q, a, _ := rec.Pair(3)
	assert.Equal(t, "Cây cầu này tên là gì?", *q)
	assert.Equal(t, "Cầu Rồng", *a)

	*a = ""
	assert.False(t, rec.Complete())

	q, a, l := rec.Pair(6)
	assert.Nil(t, q)
	assert.Nil(t, a)
	assert.Nil(t, l)
}
