package openaicompat

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

// Provider talks to any OpenAI-compatible chat completions endpoint
// (HuggingFace router, OpenRouter, vLLM, and most hosted gateways).
type Provider struct {
	name    string
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.StreamProvider = &Provider{}

func NewProvider(name, apiKey, baseURL, model string) *Provider {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/v1" // Default Router URL
	}
	return &Provider{
		name:    name,
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (p *Provider) Name() string {
	return p.name
}

// Request Payload Structure (OpenAI Compatible)
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func (p *Provider) StreamChat(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (llm.TokenStream, error) {
	options := &llm.Options{
		Model:     p.model,
		MaxTokens: 2048,
	}
	for _, o := range opts {
		o(options)
	}

	messages := make([]chatMessage, 0, len(history)+1)
	if system != "" {
		messages = append(messages, chatMessage{Role: llm.RoleSystem, Content: system})
	}
	for _, msg := range history {
		role := msg.Role
		if role == "model" {
			role = llm.RoleAssistant
		}
		messages = append(messages, chatMessage{Role: role, Content: msg.Content})
	}

	reqBody := chatRequest{
		Model:       options.Model,
		Messages:    messages,
		Stream:      true,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", p.name, err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &llm.StatusError{Provider: p.name, Code: resp.StatusCode, Body: string(body)}
	}

	return &chunkStream{
		body:    resp.Body,
		scanner: sse.NewLineScanner(resp.Body),
	}, nil
}

type chunkStream struct {
	body    io.ReadCloser
	scanner *sse.LineScanner
}

func (s *chunkStream) Recv() (string, error) {
	for {
		line, err := s.scanner.Next()
		if err != nil {
			return "", err
		}

		payload, ok := sse.DataPayload(line)
		if !ok || payload == "" {
			continue
		}
		if payload == sse.DoneSentinel {
			return "", io.EOF
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		content := chunk.Choices[0].Delta.Content
		if content == "" {
			continue
		}
		return content, nil
	}
}

func (s *chunkStream) Close() error {
	return s.body.Close()
}
