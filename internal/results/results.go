package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists per-model OCR output files under a base directory. Each model
// gets its own subdirectory, holding one text file per processed image stem.
type Store struct {
	baseDir string
}

// NewStore creates a result store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// SanitizeModel turns a model identifier into a filesystem-safe directory name.
// Ollama model names contain '/' and ':' which are not path safe.
func SanitizeModel(model string) string {
	s := strings.ReplaceAll(model, "/", "_")
	return strings.ReplaceAll(s, ":", "_")
}

// ModelDir returns the output directory for the given model.
func (s *Store) ModelDir(model string) string {
	return filepath.Join(s.baseDir, SanitizeModel(model))
}

// WriteText stores the extracted text for (model, stem), creating the model
// directory if needed. Re-running a comparison overwrites the previous result,
// so there is never more than one file per image.
func (s *Store) WriteText(model, stem, text string) (string, error) {
	dir := s.ModelDir(model)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("ensure model dir: %w", err)
	}
	path := filepath.Join(dir, stem+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}
	return path, nil
}

// ReadText loads the stored text for (model, stem). The second return value
// reports whether a result file exists at all; a missing file is not an error.
func (s *Store) ReadText(model, stem string) (string, bool, error) {
	path := filepath.Join(s.ModelDir(model), stem+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read result: %w", err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// HasModelDir reports whether any output directory exists for the model.
func (s *Store) HasModelDir(model string) bool {
	info, err := os.Stat(s.ModelDir(model))
	return err == nil && info.IsDir()
}
