package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DalleGenerator uses the OpenAI images API. It is skipped when no API key
// is configured.
type DalleGenerator struct {
	ApiKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewDalleGenerator(apiKey string) *DalleGenerator {
	return &DalleGenerator{
		ApiKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Model:   "dall-e-3",
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *DalleGenerator) Name() string { return "dalle" }

func (g *DalleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.ApiKey == "" {
		return "", fmt.Errorf("openai api key not configured")
	}

	payload := map[string]any{
		"model":           g.Model,
		"prompt":          prompt,
		"n":               1,
		"size":            "1024x1024",
		"response_format": "url",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.ApiKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("dalle returned %d: %s", resp.StatusCode, string(b))
	}

	var parsed struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Data) == 0 || parsed.Data[0].URL == "" {
		return "", fmt.Errorf("dalle returned no image")
	}
	return parsed.Data[0].URL, nil
}
