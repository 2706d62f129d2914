package imagegen

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Generator produces an image for a prompt and returns a URL the client can
// load. Implementations return an error when they cannot produce one; the
// caller may then try the next tier.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// PollinationsGenerator uses image.pollinations.ai, which needs no API key.
// Several models are tried in order since individual ones go down often.
type PollinationsGenerator struct {
	BaseURL string
	Models  []string
	Client  *http.Client
}

func NewPollinationsGenerator() *PollinationsGenerator {
	return &PollinationsGenerator{
		BaseURL: "https://image.pollinations.ai",
		Models:  []string{"flux-schnell", "flux", "turbo"},
		Client:  &http.Client{Timeout: 40 * time.Second},
	}
}

func (g *PollinationsGenerator) Name() string { return "pollinations" }

func (g *PollinationsGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if len(prompt) > 500 {
		prompt = prompt[:500]
	}
	encoded := url.PathEscape(prompt)

	var lastErr error
	for _, model := range g.Models {
		imgURL := fmt.Sprintf("%s/prompt/%s?width=1024&height=768&nologo=true&model=%s", g.BaseURL, encoded, model)

		ok, err := g.probe(ctx, imgURL)
		if err != nil {
			lastErr = err
			continue
		}
		if ok {
			return imgURL, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no pollinations model produced an image")
	}
	return "", lastErr
}

// probe fetches the URL to confirm the service actually renders an image
// before the URL is handed to the client.
func (g *PollinationsGenerator) probe(ctx context.Context, imgURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return false, err
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("pollinations returned %d", resp.StatusCode)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "image") {
		return false, nil
	}
	return true, nil
}

// FallbackGenerator tries each tier in order and returns the first URL.
type FallbackGenerator struct {
	tiers  []Generator
	logger *log.Logger
}

func NewFallbackGenerator(logger *log.Logger, tiers ...Generator) *FallbackGenerator {
	return &FallbackGenerator{tiers: tiers, logger: logger}
}

func (g *FallbackGenerator) Name() string { return "fallback" }

func (g *FallbackGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	for _, tier := range g.tiers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		imgURL, err := tier.Generate(ctx, prompt)
		if err != nil {
			g.logger.Printf("[IMAGE] Tier %q failed: %v", tier.Name(), err)
			continue
		}
		if imgURL != "" {
			return imgURL, nil
		}
	}
	return "", fmt.Errorf("all image generators failed")
}
