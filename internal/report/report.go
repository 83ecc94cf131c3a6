package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/common"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/results"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/samples"
)

// Generator assembles the comparison report from result files on disk. It
// never calls the inference endpoint: everything it embeds was written by the
// runner, and anything the runner could not write shows up as a marker.
type Generator struct {
	Log     *slog.Logger
	Results *results.Store
}

func New(log *slog.Logger, store *results.Store) *Generator {
	return &Generator{Log: log, Results: store}
}

// Generate writes the markdown report for the given models and sample list to
// path. When htmlPath is non-empty, an HTML rendering is written there too.
// The sample list must be the same one the runner consumed.
func (g *Generator) Generate(models []string, list []samples.Sample, path, htmlPath string) error {
	md := g.render(models, list)

	if err := writeFile(path, md); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	g.Log.Info("comparison report generated", "path", path)

	if htmlPath != "" {
		html, err := renderHTML(md)
		if err != nil {
			return fmt.Errorf("render html report: %w", err)
		}
		if err := writeFile(htmlPath, html); err != nil {
			return fmt.Errorf("write html report: %w", err)
		}
		g.Log.Info("html report generated", "path", htmlPath)
	}
	return nil
}

func (g *Generator) render(models []string, list []samples.Sample) []byte {
	var b bytes.Buffer
	b.WriteString("### Ollama OCR model comparison\n\n")
	b.WriteString("Side-by-side extraction results of the configured OCR models.\n\n")

	if len(list) == 0 {
		b.WriteString("No sample images processed to include in report.\n")
		return b.Bytes()
	}

	for _, model := range models {
		fmt.Fprintf(&b, "#### %s\n\n", model)

		if !g.Results.HasModelDir(model) {
			b.WriteString("**Status:** OCR run failed or output directory not found.\n\n")
			continue
		}

		for _, sample := range list {
			fmt.Fprintf(&b, "##### Image: %s%s (%s)\n\n", sample.Stem, sample.Ext, humanize.Bytes(uint64(sample.Size)))

			text, found, err := g.Results.ReadText(model, sample.Stem)
			switch {
			case err != nil:
				g.Log.Warn("read result", "model", model, "image", sample.Stem, "err", err)
				fmt.Fprintf(&b, "**Error reading OCR output:** %v\n\n", err)
			case !found:
				fmt.Fprintf(&b, "**Extracted text:** %s\n\n", common.MarkerNotFound)
				b.WriteString("**Evaluation:** no result file; the model failed on this image or the run errored.\n\n")
			case text == "":
				fmt.Fprintf(&b, "**Extracted text:** %s\n\n", common.MarkerEmpty)
			default:
				b.WriteString("**Extracted text:**\n\n```\n")
				b.WriteString(text)
				b.WriteString("\n```\n\n")
				b.WriteString("**Evaluation:** manual review required; judge how faithfully this model read the image.\n\n")
			}
		}
		b.WriteString("---\n\n")
	}

	b.WriteString("**Overall summary:**\n")
	b.WriteString("Detailed per-model evaluation has to be done manually against the per-image " +
		"results above. Overall quality can be judged from the amount and accuracy of the extracted text.\n")
	return b.Bytes()
}

func renderHTML(md []byte) ([]byte, error) {
	gm := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var out bytes.Buffer
	if err := gm.Convert(md, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("ensure report dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
