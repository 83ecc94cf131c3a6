package mock

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/config"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/ocr"
)

var _ ocr.Client = (*Client)(nil)

// Client is a fake OCR provider for tests and dry runs. It returns a
// deterministic string derived from the model name and image size.
type Client struct {
	delay  time.Duration
	prefix string
}

// New creates a mock OCR client.
func New(cfg config.MockSettings) *Client {
	return &Client{delay: cfg.Delay, prefix: cfg.Prefix}
}

func (c *Client) ExtractText(ctx context.Context, model string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.delay):
		}
	}
	return fmt.Sprintf("%s [model=%s bytes=%d]", c.prefix, model, len(data)), nil
}
