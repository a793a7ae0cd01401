// Package lists - flat list dumps and chunking for dataset partitioning.
package lists

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedExtension is returned for dump files that are not .txt, .gob or .yaml.
var ErrUnsupportedExtension = errors.New(`file extension not supported, allowed: {".txt", ".gob", ".yaml"}`)

// DumpFormat is a list dump encoding, selected by file extension.
type DumpFormat string

const (
	// FormatText writes one element per line.
	FormatText DumpFormat = ".txt"
	// FormatGob writes a gob-encoded []string.
	FormatGob DumpFormat = ".gob"
	// FormatYAML writes a YAML sequence.
	FormatYAML DumpFormat = ".yaml"
)

func formatOf(path string) (DumpFormat, error) {
	ext := filepath.Ext(path)
	switch DumpFormat(ext) {
	case FormatText, FormatGob, FormatYAML:
		return DumpFormat(ext), nil
	case ".yml":
		return FormatYAML, nil
	}
	return "", errors.Wrapf(ErrUnsupportedExtension, "provided: %q", ext)
}

// DumpList writes items to path. The encoding is chosen from the extension.
//
// Arguments:
//   - items: The list to dump.
//   - path: The dump file, ending in .txt, .gob or .yaml.
//
// Returns:
//   - error: ErrUnsupportedExtension, or an error if the file cannot be written.
func DumpList(items []string, path string) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %q", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	switch format {
	case FormatText:
		for _, item := range items {
			if _, err := fmt.Fprintln(w, item); err != nil {
				return errors.Wrapf(err, "failed to write %q", path)
			}
		}
	case FormatGob:
		err = gob.NewEncoder(w).Encode(items)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if items == nil {
			items = []string{}
		}
		err = enc.Encode(items)
		if err == nil {
			err = enc.Close()
		}
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %q", path)
	}

	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "failed to write %q", path)
	}
	return f.Close()
}

// LoadList reads a list written by DumpList. Text lines are trimmed of
// surrounding whitespace.
func LoadList(path string) ([]string, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "file %q does not exist", path)
	}
	defer f.Close()

	var items []string
	switch format {
	case FormatText:
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			items = append(items, strings.TrimSpace(scanner.Text()))
		}
		err = scanner.Err()
	case FormatGob:
		err = gob.NewDecoder(f).Decode(&items)
	case FormatYAML:
		err = yaml.NewDecoder(f).Decode(&items)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %q", path)
	}
	return items, nil
}

// SplitIntoChunks splits items into consecutive chunks of at most maxElements.
//
// When shuffle is set the chunks are taken from a shuffled copy; items itself
// is never reordered. A nil rng is seeded from the clock.
//
// @example
//
//	chunks, _ := SplitIntoChunks([]string{"a", "b", "c", "d", "e"}, 2, false, nil)
//	// [[a b] [c d] [e]]
func SplitIntoChunks(items []string, maxElements int, shuffle bool, rng *rand.Rand) ([][]string, error) {
	if maxElements <= 0 {
		return nil, errors.Errorf("max elements must be positive, got %d", maxElements)
	}

	list := items
	if shuffle {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		list = append([]string(nil), items...)
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
	}

	chunks := make([][]string, 0, (len(list)+maxElements-1)/maxElements)
	for offset := 0; offset < len(list); offset += maxElements {
		end := min(offset+maxElements, len(list))
		chunks = append(chunks, list[offset:end:end])
	}
	return chunks, nil
}

// SplitListIntoPieces loads the list dumped at path, splits it with
// SplitIntoChunks and dumps every chunk to outputDir as <name>_%06d<ext>,
// counting from zero. The output directory is created if needed.
//
// Returns:
//   - []string: The written chunk files in order.
//   - error: An error if loading, splitting or dumping fails.
func SplitListIntoPieces(path string, maxElements int, outputDir string, shuffle bool, rng *rand.Rand) ([]string, error) {
	items, err := LoadList(path)
	if err != nil {
		return nil, err
	}

	chunks, err := SplitIntoChunks(items, maxElements, shuffle, rng)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %q", outputDir)
	}

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)

	written := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out := filepath.Join(outputDir, fmt.Sprintf("%s_%06d%s", name, i, ext))
		if err := DumpList(chunk, out); err != nil {
			return written, err
		}
		written = append(written, out)
	}

	log.Printf("✅ Split %d elements from %s into %d chunks in %s", len(items), path, len(chunks), outputDir)
	return written, nil
}
