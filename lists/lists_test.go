package lists

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []string{"a", "b", "c", "d", "e"}

func TestDumpLoadList(t *testing.T) {
	for _, ext := range []string{".txt", ".gob", ".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "frames"+ext)
			require.NoError(t, DumpList(sample, path))

			loaded, err := LoadList(path)
			require.NoError(t, err)
			assert.Equal(t, sample, loaded)
		})
	}
}

func TestDumpList_TextLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.txt")
	require.NoError(t, DumpList([]string{"img/0001.jpg", "img/0002.jpg"}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "img/0001.jpg\nimg/0002.jpg\n", string(data))
}

func TestLoadList_TrimsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.txt")
	require.NoError(t, os.WriteFile(path, []byte("  a\r\nb \n"), 0o644))

	loaded, err := LoadList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, loaded)
}

func TestUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames.csv")

	err := DumpList(sample, path)
	assert.True(t, errors.Is(err, ErrUnsupportedExtension))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing is written for unsupported extensions")

	_, err = LoadList(path)
	assert.True(t, errors.Is(err, ErrUnsupportedExtension))
}

func TestLoadList_Missing(t *testing.T) {
	_, err := LoadList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSplitIntoChunks(t *testing.T) {
	chunks, err := SplitIntoChunks(sample, 2, false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, chunks)

	chunks, err = SplitIntoChunks(sample, 10, false, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{sample}, chunks)

	chunks, err = SplitIntoChunks(nil, 3, false, nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = SplitIntoChunks(sample, 0, false, nil)
	assert.Error(t, err)
}

func TestSplitIntoChunks_Shuffle(t *testing.T) {
	input := append([]string(nil), sample...)

	chunks, err := SplitIntoChunks(input, 2, true, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, sample, input, "input is not reordered")

	var flat []string
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 2)
		flat = append(flat, c...)
	}
	sort.Strings(flat)
	assert.Equal(t, sample, flat, "shuffle keeps every element")

	again, err := SplitIntoChunks(input, 2, true, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, chunks, again, "same seed gives the same split")
}

func TestSplitIntoChunks_ChunksDoNotAlias(t *testing.T) {
	chunks, err := SplitIntoChunks(sample, 2, false, nil)
	require.NoError(t, err)

	chunks[0] = append(chunks[0], "z")
	assert.Equal(t, "c", chunks[1][0])
}

func TestSplitListIntoPieces(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frames_train.txt")
	require.NoError(t, DumpList(sample, src))

	outDir := filepath.Join(dir, "splits", "train")
	written, err := SplitListIntoPieces(src, 2, outDir, false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(outDir, "frames_train_000000.txt"),
		filepath.Join(outDir, "frames_train_000001.txt"),
		filepath.Join(outDir, "frames_train_000002.txt"),
	}, written)

	last, err := LoadList(written[2])
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, last)
}

func TestSplitListIntoPieces_Gob(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "frames.gob")
	require.NoError(t, DumpList(sample, src))

	written, err := SplitListIntoPieces(src, 3, dir, true, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, written, 2)

	first, err := LoadList(written[0])
	require.NoError(t, err)
	assert.Len(t, first, 3)
}
