package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"campus-assist-be/pkg/llm"
	"campus-assist-be/pkg/sse"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Models to try for generation, in priority order. The newest flash model is
// preferred; older ones cover regions where it is not yet rolled out.
var generationModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
}

type GeminiProvider struct {
	ApiKey  string
	BaseURL string
	Client  *http.Client
}

var _ llm.StreamProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		ApiKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiChunk struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// StreamChat opens a live SSE completion. Models are tried in priority order
// inside the adapter; the chain above only sees the final outcome.
func (g *GeminiProvider) StreamChat(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (llm.TokenStream, error) {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	contents := make([]geminiContent, 0, len(history))
	for _, msg := range history {
		// Gemini uses "model" where everyone else says "assistant".
		role := msg.Role
		if role == llm.RoleAssistant {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Parts: []geminiPart{{Text: msg.Content}},
			Role:  role,
		})
	}

	payload := geminiRequest{
		Contents: contents,
		GenerationConfig: &generationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}
	if system != "" {
		payload.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: system}},
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	models := generationModels
	if options.Model != "" {
		models = []string{options.Model}
	}

	var lastErr error
	for _, model := range models {
		endpoint := fmt.Sprintf(
			"%s/v1beta/models/%s:streamGenerateContent?alt=sse",
			g.BaseURL, model,
		)

		req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("x-goog-api-key", g.ApiKey)
		req.Header.Set("Content-Type", "application/json")

		res, err := g.Client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("gemini request failed: %w", err)
			continue
		}

		if res.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
			res.Body.Close()
			lastErr = &llm.StatusError{Provider: g.Name() + "/" + model, Code: res.StatusCode, Body: string(body)}
			continue
		}

		return &geminiStream{
			body:    res.Body,
			scanner: sse.NewLineScanner(res.Body),
		}, nil
	}

	return nil, lastErr
}

// geminiStream decodes the backend-native SSE chunks. End of body is the
// completion signal; Gemini sends no explicit sentinel.
type geminiStream struct {
	body    io.ReadCloser
	scanner *sse.LineScanner
}

func (s *geminiStream) Recv() (string, error) {
	for {
		line, err := s.scanner.Next()
		if err != nil {
			return "", err
		}

		payload, ok := sse.DataPayload(line)
		if !ok || payload == "" {
			continue
		}

		var chunk geminiChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			// Partial frame split by the transport; the scanner will have
			// buffered any unterminated tail, so a bad complete line is
			// just skipped.
			continue
		}
		if len(chunk.Candidates) == 0 || len(chunk.Candidates[0].Content.Parts) == 0 {
			continue
		}
		text := chunk.Candidates[0].Content.Parts[0].Text
		if text == "" {
			continue
		}
		return text, nil
	}
}

func (s *geminiStream) Close() error {
	return s.body.Close()
}
