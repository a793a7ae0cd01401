package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := []string{
		"a.jpg",
		"b.png",
		"README",
		"sub/c.jpg",
		"sub/deeper/d.txt",
		"sub/deeper/e.JPG",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o644))
	}
	return root
}

func TestGetFileListRecursively(t *testing.T) {
	root := makeTree(t)

	files, err := GetFileListRecursively(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.jpg"),
		filepath.Join(root, "b.png"),
		filepath.Join(root, "sub", "c.jpg"),
		filepath.Join(root, "sub", "deeper", "d.txt"),
		filepath.Join(root, "sub", "deeper", "e.JPG"),
	}, files, "files without extension are skipped")
}

func TestGetFileListRecursively_FilterExtensions(t *testing.T) {
	root := makeTree(t)

	files, err := GetFileListRecursively(root, []string{".jpg"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.jpg"),
		filepath.Join(root, "sub", "c.jpg"),
	}, files, "extension match is case-sensitive")
}

func TestGetFileListRecursively_Missing(t *testing.T) {
	_, err := GetFileListRecursively(filepath.Join(t.TempDir(), "nope"), nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	root := makeTree(t)
	_, err = GetFileListRecursively(filepath.Join(root, "a.jpg"), nil)
	assert.Error(t, err)
}

func TestLoadImageFiles(t *testing.T) {
	root := makeTree(t)
	paths, err := GetFileListRecursively(root, []string{".png", ".jpg"})
	require.NoError(t, err)

	images, err := LoadImageFiles(paths)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "b.png", string(images[1].Data))

	_, err = LoadImageFiles([]string{filepath.Join(root, "missing.jpg")})
	assert.Error(t, err)
}
