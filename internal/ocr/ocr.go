package ocr

import (
	"context"
	"io"
)

// Client defines the capability to extract text from an image using a named model.
type Client interface {
	// ExtractText reads an image from r (seek not required) and returns the
	// plain text the given model extracted from it.
	ExtractText(ctx context.Context, model string, r io.Reader) (string, error)
}
