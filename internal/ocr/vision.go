package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	VisionName         = "vision"
	visionDefaultModel = "gpt-4o"
)

// visionPrompt instructs the model to emit detections as strict JSON.
const visionPrompt = `You are an OCR engine. Read every visible text fragment in the image and
return ONLY a JSON object (no markdown, no commentary) of the form:

{"width": <image width px>, "height": <image height px>,
 "detections": [{"text": "...", "confidence": 0.0-1.0,
                 "box": [[x,y],[x,y],[x,y],[x,y]]}, ...]}

The box lists the four corners of the fragment's bounding polygon in pixel
coordinates, clockwise from the top-left. Report one detection per word or
short cell entry, not per line.`

// visionResponseSchema validates the model's structured output before it is
// trusted as a detection page.
const visionResponseSchema = `{
  "type": "object",
  "required": ["detections"],
  "properties": {
    "width": {"type": "integer", "minimum": 0},
    "height": {"type": "integer", "minimum": 0},
    "detections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text", "confidence", "box"],
        "properties": {
          "text": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "box": {
            "type": "array",
            "minItems": 4,
            "maxItems": 4,
            "items": {
              "type": "array",
              "minItems": 2,
              "maxItems": 2,
              "items": {"type": "number"}
            }
          }
        }
      }
    }
  }
}`

// VisionConfig configures the OpenAI vision recognizer.
type VisionConfig struct {
	APIKey     string
	Model      string
	Timeout    time.Duration
	BaseURL    string       // Optional (tests)
	HTTPClient *http.Client // Optional (tests)
}

// Vision recognizes text by asking a vision model for positioned detections.
// It is a fallback for scans where Tesseract struggles; bounding boxes are
// model-estimated and less precise than engine-reported ones.
type Vision struct {
	model  string
	client openai.Client
	schema *jsonschema.Schema
}

// NewVision creates an OpenAI-backed vision recognizer.
func NewVision(cfg VisionConfig) (*Vision, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("vision recognizer requires an API key")
	}
	if cfg.Model == "" {
		cfg.Model = visionDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	schema, err := compileVisionSchema()
	if err != nil {
		return nil, err
	}

	return &Vision{
		model:  cfg.Model,
		client: openai.NewClient(opts...),
		schema: schema,
	}, nil
}

// Name returns "vision".
func (v *Vision) Name() string { return VisionName }

// Recognize sends the image to the vision model and parses the structured
// detection response.
func (v *Vision) Recognize(ctx context.Context, img []byte) (*Page, error) {
	dataURL := imageDataURL(img)

	resp, err := v.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(v.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(visionPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vision OCR request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision OCR returned no choices")
	}

	page, err := v.parseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	// The model may not report dimensions; fall back to the real image.
	if page.Width == 0 || page.Height == 0 {
		if cfgImg, _, derr := image.DecodeConfig(bytes.NewReader(img)); derr == nil {
			page.Width = cfgImg.Width
			page.Height = cfgImg.Height
		}
	}

	return sanitize(page), nil
}

// parseResponse extracts, validates, and decodes the model's JSON output.
func (v *Vision) parseResponse(content string) (*Page, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return nil, fmt.Errorf("vision OCR output is not valid JSON: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode vision output: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("vision output does not match detection schema: %w", err)
	}

	var wire struct {
		Width      int `json:"width"`
		Height     int `json:"height"`
		Detections []struct {
			Text       string       `json:"text"`
			Confidence float64      `json:"confidence"`
			Box        [4][2]float64 `json:"box"`
		} `json:"detections"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode vision detections: %w", err)
	}

	page := &Page{
		Detections: make([]Detection, 0, len(wire.Detections)),
		Width:      wire.Width,
		Height:     wire.Height,
	}
	for _, d := range wire.Detections {
		det := Detection{Text: d.Text, Confidence: d.Confidence}
		for i, pt := range d.Box {
			det.Box[i] = Point{X: pt[0], Y: pt[1]}
		}
		page.Detections = append(page.Detections, det)
	}

	return page, nil
}

func compileVisionSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("detections.json", strings.NewReader(visionResponseSchema)); err != nil {
		return nil, fmt.Errorf("failed to load detection schema: %w", err)
	}
	schema, err := compiler.Compile("detections.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile detection schema: %w", err)
	}
	return schema, nil
}

// extractJSON parses JSON from model output, with lightweight recovery for
// markdown code fences and surrounding text.
func extractJSON(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty output")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" {
		candidates = append(candidates, stripped)
	}
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			candidates = append(candidates, content[start:end+1])
		}
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if json.Valid([]byte(candidate)) {
			return json.RawMessage(candidate), nil
		}
	}

	return nil, fmt.Errorf("no JSON object found in output")
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func imageDataURL(img []byte) string {
	mime := http.DetectContentType(img)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img)
}
