package chain

import (
	"context"
	"log"

	"campus-assist-be/pkg/llm"
)

// Chain tries an ordered list of backends with first-success-wins semantics.
// A backend "succeeds" once it hands back a live TokenStream; any error
// before that point falls through to the next backend. When every backend
// has failed, the caller gets one generic unavailable error. The exception
// is a terminal backend failing with a rate-limit or quota status, which is
// surfaced verbatim so the user sees an actionable message.
type Chain struct {
	providers []llm.StreamProvider
	logger    *log.Logger
}

var _ llm.StreamProvider = &Chain{}

func New(logger *log.Logger, providers ...llm.StreamProvider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logger,
	}
}

func (c *Chain) Name() string {
	return "chain"
}

// Backends returns the names of the configured backends in priority order.
func (c *Chain) Backends() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

func (c *Chain) StreamChat(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (llm.TokenStream, error) {
	stream, _, err := c.StreamChatWithBackend(ctx, system, history, opts...)
	return stream, err
}

// StreamChatWithBackend also reports which backend won, for logging and
// completion events.
func (c *Chain) StreamChatWithBackend(ctx context.Context, system string, history []llm.Message, opts ...llm.Option) (llm.TokenStream, string, error) {
	if len(c.providers) == 0 {
		return nil, "", llm.ErrAllBackendsFailed
	}

	var lastErr error
	for i, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		stream, err := provider.StreamChat(ctx, system, history, opts...)
		if err == nil {
			if i > 0 {
				c.logger.Printf("[CHAIN] Backend %q took over after %d failed attempt(s)", provider.Name(), i)
			}
			return stream, provider.Name(), nil
		}

		// Per-backend errors are logged, never surfaced individually.
		c.logger.Printf("[CHAIN] Backend %q failed (%d/%d): %v", provider.Name(), i+1, len(c.providers), err)
		lastErr = err
	}

	if llm.IsRateLimited(lastErr) || llm.IsQuotaExceeded(lastErr) {
		return nil, "", lastErr
	}
	return nil, "", llm.ErrAllBackendsFailed
}
