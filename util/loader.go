package util

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
)

// progressEvery is how many matches are found between progress log lines.
const progressEvery = 1000

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
}

// GetFileListRecursively lists every file under topDir.
//
// Files without an extension are skipped. When allowedExt is non-empty only
// files whose extension (with the leading dot, case-sensitive) is in the list
// are kept.
//
// Arguments:
// - topDir: Root of the hierarchy.
// - allowedExt: Extensions to keep, e.g. []string{".jpg", ".png"}.
//
// Returns:
// - []string: Full paths of the matching files, in lexical walk order.
// - error: Error if topDir does not exist or cannot be walked.
func GetFileListRecursively(topDir string, allowedExt []string) ([]string, error) {
	info, err := os.Stat(topDir)
	if err != nil {
		return nil, errors.Wrapf(err, "directory %q does not exist", topDir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%q is not a directory", topDir)
	}

	var files []string
	err = filepath.WalkDir(topDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(d.Name())
		if ext == "" || (len(allowedExt) > 0 && !slices.Contains(allowedExt, ext)) {
			return nil
		}

		files = append(files, path)
		if len(files)%progressEvery == 0 {
			log.Printf("📋 [%s] - currently found %06d files", topDir, len(files))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %q", topDir)
	}

	return files, nil
}

// LoadImageFiles reads every file listed in paths.
//
// Arguments:
// - paths: Files to read, typically from GetFileListRecursively.
//
// Returns:
// - []ImageFile: Slice of ImageFile, each containing the raw bytes of an image file.
// - error: Error if any file cannot be read.
func LoadImageFiles(paths []string) ([]ImageFile, error) {
	images := make([]ImageFile, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %q", path)
		}
		images = append(images, ImageFile{Path: path, Data: data})
	}
	return images, nil
}
