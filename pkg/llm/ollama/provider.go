package ollama

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

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

// Ensure OllamaProvider implements StreamProvider
var _ llm.StreamProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434" // Default
	}
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 300 * time.Second, // Model loading on first request can be slow
		},
	}
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}

// --- Request/Response structs (Internal to this package) ---

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *ollamaOptions  `json:"options,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChunk struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

func (o *OllamaProvider) StreamChat(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (llm.TokenStream, error) {
	options := &llm.Options{Temperature: 0.7}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]ollamaMessage, 0, len(history)+1)
	if system != "" {
		messages = append(messages, ollamaMessage{Role: llm.RoleSystem, Content: system})
	}
	for _, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		messages = append(messages, ollamaMessage{Role: role, Content: msg.Content})
	}

	model := o.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := ollamaChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
		Options: &ollamaOptions{
			Temperature: options.Temperature,
		},
	}
	if options.MaxTokens > 0 {
		reqPayload.Options.NumPredict = options.MaxTokens
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := o.BaseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &llm.StatusError{Provider: o.Name(), Code: resp.StatusCode, Body: string(body)}
	}

	return &ndjsonStream{
		body:    resp.Body,
		scanner: sse.NewLineScanner(resp.Body),
	}, nil
}

// ndjsonStream decodes Ollama's newline-delimited JSON stream. A chunk with
// done=true is the completion signal.
type ndjsonStream struct {
	body    io.ReadCloser
	scanner *sse.LineScanner
	done    bool
}

func (s *ndjsonStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for {
		line, err := s.scanner.Next()
		if err != nil {
			return "", err
		}
		if line == "" {
			continue
		}

		var chunk ollamaChunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			continue
		}
		if chunk.Done {
			s.done = true
			if chunk.Message.Content != "" {
				return chunk.Message.Content, nil
			}
			return "", io.EOF
		}
		if chunk.Message.Content == "" {
			continue
		}
		return chunk.Message.Content, nil
	}
}

func (s *ndjsonStream) Close() error {
	return s.body.Close()
}
