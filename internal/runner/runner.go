package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/ocr"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/results"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/runlog"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/samples"
)

// Runner executes the OCR batch: every model against every sample image,
// strictly sequentially, persisting each extraction to the result store.
type Runner struct {
	Log     *slog.Logger
	Client  ocr.Client
	Results *results.Store
	History runlog.Store // optional; nil disables run history
}

func New(log *slog.Logger, client ocr.Client, store *results.Store, history runlog.Store) *Runner {
	return &Runner{
		Log:     log,
		Client:  client,
		Results: store,
		History: history,
	}
}

// Run processes all models against the shared sample list. Per-item failures
// are logged and recorded but never abort the batch; the return value reports
// whether every extraction succeeded.
func (r *Runner) Run(ctx context.Context, runID string, models []string, list []samples.Sample) bool {
	if len(list) == 0 {
		r.Log.Error("no image samples to process")
		return false
	}
	allOK := true
	for _, model := range models {
		if !r.RunModel(ctx, runID, model, list) {
			allOK = false
		}
	}
	return allOK
}

// RunModel processes one model against the sample list and returns whether
// every image succeeded for it.
func (r *Runner) RunModel(ctx context.Context, runID, model string, list []samples.Sample) bool {
	log := r.Log.With("model", model)
	log.Info("running OCR batch", "samples", len(list))

	ok := true
	for _, sample := range list {
		if err := r.processSample(ctx, runID, model, sample); err != nil {
			log.Error("extraction failed", "image", sample.Stem, "err", err)
			ok = false
			continue
		}
		log.Info("extraction saved", "image", sample.Stem)
	}
	return ok
}

func (r *Runner) processSample(ctx context.Context, runID, model string, sample samples.Sample) error {
	start := time.Now()

	text, err := r.extract(ctx, model, sample)
	if err != nil {
		r.record(runID, model, sample.Stem, err, 0, time.Since(start))
		return err
	}

	path, err := r.Results.WriteText(model, sample.Stem, text)
	if err != nil {
		err = fmt.Errorf("save result: %w", err)
		r.record(runID, model, sample.Stem, err, 0, time.Since(start))
		return err
	}

	r.record(runID, model, sample.Stem, nil, int64(len(text)), time.Since(start))
	r.Log.Debug("result written", "model", model, "path", path)
	return nil
}

func (r *Runner) extract(ctx context.Context, model string, sample samples.Sample) (string, error) {
	f, err := os.Open(sample.Path)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	text, err := r.Client.ExtractText(ctx, model, f)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

func (r *Runner) record(runID, model, stem string, itemErr error, outputBytes int64, duration time.Duration) {
	if r.History == nil {
		return
	}
	a := &runlog.Attempt{
		RunID:       runID,
		Model:       model,
		ImageStem:   stem,
		Status:      runlog.StatusCompleted,
		OutputBytes: outputBytes,
		Duration:    duration,
	}
	if itemErr != nil {
		a.Status = runlog.StatusFailed
		msg := itemErr.Error()
		a.ErrorMessage = &msg
	}
	if err := r.History.RecordAttempt(a); err != nil {
		r.Log.Warn("record attempt", "model", model, "image", stem, "err", err)
	}
}
