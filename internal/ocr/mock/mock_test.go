package mock

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/config"
)

func TestMock_ExtractText(t *testing.T) {
	c := New(config.MockSettings{Delay: 0, Prefix: "MockPrefix"})

	img := bytes.NewBufferString("fakeimagedata")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	text, err := c.ExtractText(ctx, "deepseek-ocr:latest", img)
	if err != nil {
		t.Fatalf("ExtractText error: %v", err)
	}
	if !strings.Contains(text, "MockPrefix") {
		t.Fatalf("ExtractText missing prefix, got: %q", text)
	}
	if !strings.Contains(text, "deepseek-ocr:latest") {
		t.Fatalf("ExtractText missing model info, got: %q", text)
	}
}

func TestMock_RespectsContextCancel(t *testing.T) {
	c := New(config.MockSettings{Delay: 200 * time.Millisecond, Prefix: "x"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := c.ExtractText(ctx, "m", bytes.NewBufferString("img")); err == nil {
		t.Fatalf("expected context error")
	}
}
