package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/YangKyeongHoon/tool-ocr-2/internal/common"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/config"
	"github.com/YangKyeongHoon/tool-ocr-2/internal/ocr"
)

var _ ocr.Client = (*Client)(nil)

const defaultTimeout = 10 * time.Minute

// Client implements ocr.Client by calling the Ollama generate API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	prompt     string
}

// New creates a new Ollama OCR client.
func New(cfg config.OllamaSettings) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = common.DefaultOllamaBaseURL
	}
	prompt := strings.TrimSpace(cfg.Prompt)
	if prompt == "" {
		prompt = common.ExtractionPrompt
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		prompt:     prompt,
	}
}

// ExtractText sends a non-streaming generate request carrying the base64 image
// and returns the model's trimmed response text.
func (c *Client) ExtractText(ctx context.Context, model string, r io.Reader) (string, error) {
	imgData, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(imgData) == 0 {
		return "", fmt.Errorf("image is empty")
	}

	reqBody := generateRequest{
		Model:  model,
		Prompt: c.prompt,
		Stream: false,
		Images: []string{base64.StdEncoding.EncodeToString(imgData)},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	u, err := url.JoinPath(c.baseURL, common.PathGenerate)
	if err != nil {
		return "", fmt.Errorf("join url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set(common.HeaderContentType, common.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, truncate(string(respBytes), common.ErrorSnippetLimit))
	}

	var gen generateResponse
	if err := json.Unmarshal(respBytes, &gen); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	return strings.TrimSpace(gen.Response), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Ollama generate API request/response types

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Stream bool     `json:"stream"`
	Images []string `json:"images"`
}

type generateResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}
