package common

// Shared constants to enforce DRY and avoid magic strings/numbers.

// HTTP headers and content types
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Inference endpoint
const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	PathGenerate         = "/api/generate"
)

// Prompt sent with every extraction request.
const ExtractionPrompt = "Extract all text from this image. Provide only the extracted text."

// Defaults and limits
const (
	DefaultSampleCount = 3
	ErrorSnippetLimit  = 400
	SQLiteBusyTimeout  = 5000
)

// Default filesystem layout of a comparison run.
const (
	DefaultImageDir   = "resources/receipts"
	DefaultOutputDir  = "result/ocr_outputs"
	DefaultReportPath = "result/ollama_ocr_comparison_results.md"
)

// Report markers used when a result file is empty or missing.
const (
	MarkerEmpty    = "_(empty)_"
	MarkerNotFound = "_(file not found)_"
)

// ImageExtensions lists the raster extensions accepted as samples (lower case, with dot).
var ImageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}
