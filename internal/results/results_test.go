package results

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeModel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"deepseek-ocr:latest", "deepseek-ocr_latest"},
		{"yasserrmd/Nanonets-OCR-s:latest", "yasserrmd_Nanonets-OCR-s_latest"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := SanitizeModel(c.in); got != c.want {
			t.Fatalf("SanitizeModel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStore_WriteAndReadBack(t *testing.T) {
	s := NewStore(t.TempDir())

	path, err := s.WriteText("yasserrmd/Nanonets-OCR-s:latest", "receipt-01", "TOTAL 12.40")
	if err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if filepath.Base(path) != "receipt-01.txt" {
		t.Fatalf("unexpected result file name: %q", path)
	}
	if filepath.Base(filepath.Dir(path)) != "yasserrmd_Nanonets-OCR-s_latest" {
		t.Fatalf("model dir not sanitized: %q", path)
	}

	text, found, err := s.ReadText("yasserrmd/Nanonets-OCR-s:latest", "receipt-01")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if !found {
		t.Fatalf("result should exist")
	}
	if text != "TOTAL 12.40" {
		t.Fatalf("round-trip mismatch: %q", text)
	}
}

func TestStore_OverwriteKeepsSingleFile(t *testing.T) {
	s := NewStore(t.TempDir())

	if _, err := s.WriteText("m", "img", "first"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if _, err := s.WriteText("m", "img", "second"); err != nil {
		t.Fatalf("WriteText overwrite: %v", err)
	}

	entries, err := os.ReadDir(s.ModelDir("m"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one result file, got %d", len(entries))
	}
	text, _, err := s.ReadText("m", "img")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if text != "second" {
		t.Fatalf("overwrite not applied: %q", text)
	}
}

func TestStore_MissingResult(t *testing.T) {
	s := NewStore(t.TempDir())

	_, found, err := s.ReadText("m", "absent")
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if found {
		t.Fatalf("absent result reported as found")
	}
	if s.HasModelDir("m") {
		t.Fatalf("model dir should not exist before any write")
	}
}
