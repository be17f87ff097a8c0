package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/models"
)

// systemInstruction constrains the model to a single 3-field JSON object; the
// response schema below enforces the shape, the instruction the semantics.
const systemInstruction = `You are an expert expense tracker API. Your sole function is to extract details from the provided image or text and return a single, valid JSON object.
RULES:
1. Category MUST be one of: 'Food', 'Travel', 'Study', 'Shopping', 'Utility', 'Subscription', 'Other'.
2. Amount MUST be a string containing ONLY the total numerical value in INR (e.g., "150.75"). Do NOT include the currency symbol. Always find the final TOTAL.
3. Description should be a brief, one-line summary.
4. If extraction fails, return: {"Category": "ERROR", "Description": "Failed to process input.", "Amount": "0.00"}`

// DefaultPrompt is the instructional text attached when an image arrives
// without a caption.
const DefaultPrompt = "Extract expense details from this bill/receipt image."

// Part is one element of an extraction prompt: either text or tagged bytes.
type Part struct {
	Text string
	Data []byte
	MIME string
}

// TextPart builds a text prompt part.
func TextPart(text string) Part { return Part{Text: text} }

// ImagePart builds an inline-bytes prompt part.
func ImagePart(data []byte, mimeType string) Part { return Part{Data: data, MIME: mimeType} }

// Result is the model's structured output. Amount stays a decimal string; the
// orchestrator owns numeric validation because the model is best-effort.
type Result struct {
	Category    string `json:"Category"`
	Description string `json:"Description"`
	Amount      string `json:"Amount"`
}

// Failed reports whether the model returned the error sentinel.
func (r *Result) Failed() bool { return r.Category == models.CategoryError }

// Engine calls the Gemini API with a fixed system instruction and a strict
// output schema.
type Engine struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewEngine creates a Gemini-backed extraction engine. The client is created
// once at startup and reused for every request.
func NewEngine(ctx context.Context, apiKey, model string, httpClient *http.Client, log zerolog.Logger) (*Engine, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Engine{client: client, model: model, log: log}, nil
}

// Extract sends the prompt parts to the model and decodes its JSON output.
func (e *Engine) Extract(ctx context.Context, parts []Part) (*Result, error) {
	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Data != nil {
			genaiParts = append(genaiParts, &genai.Part{
				InlineData: &genai.Blob{MIMEType: p.MIME, Data: p.Data},
			})
			continue
		}
		genaiParts = append(genaiParts, &genai.Part{Text: p.Text})
	}

	contents := []*genai.Content{{Role: "user", Parts: genaiParts}}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"Category":    {Type: genai.TypeString},
				"Description": {Type: genai.TypeString},
				"Amount":      {Type: genai.TypeString},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	result, err := decodeResult(raw)
	if err != nil {
		e.log.Warn().Str("raw", raw).Err(err).Msg("unparsable model output")
		return nil, err
	}
	return result, nil
}

// decodeResult parses the model's JSON output, tolerating Markdown fences the
// model sometimes adds despite instructions.
func decodeResult(raw string) (*Result, error) {
	clean := cleanModelJSON(raw)

	var result Result
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}
	return &result, nil
}

func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Keep only the outermost object if junk surrounds the JSON.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	return strings.TrimSpace(s)
}
