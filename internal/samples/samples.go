package samples

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/common"
)

// Sample is one image file selected for a comparison run.
type Sample struct {
	Stem string // file name without extension, used as the result file key
	Path string // full path to the image file
	Ext  string // lower-case extension including the dot
	Size int64  // file size in bytes
}

// List enumerates the image files in dir, sorted by file name, and returns the
// first n as the sample set. The same list value is shared by the runner and
// the report generator so both phases always agree on what was sampled.
func List(dir string, n int) ([]Sample, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}

	var all []Sample
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !common.ImageExtensions[ext] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		all = append(all, Sample{
			Stem: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path: filepath.Join(dir, entry.Name()),
			Ext:  ext,
			Size: info.Size(),
		})
	}

	// os.ReadDir already sorts by name, but the truncation semantics depend on
	// a stable order, so sort explicitly rather than relying on it.
	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })

	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}
