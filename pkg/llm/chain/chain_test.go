package chain

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"testing"

	"campus-assist-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStream struct {
	tokens []string
	pos    int
}

func (s *stubStream) Recv() (string, error) {
	if s.pos >= len(s.tokens) {
		return "", io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *stubStream) Close() error { return nil }

type stubProvider struct {
	name   string
	err    error
	tokens []string
	calls  int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) StreamChat(_ context.Context, _ string, _ []llm.Message, _ ...llm.Option) (llm.TokenStream, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &stubStream{tokens: p.tokens}, nil
}

func drain(t *testing.T, stream llm.TokenStream) string {
	t.Helper()
	var out string
	for {
		tok, err := stream.Recv()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out += tok
	}
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestChainFirstBackendWins(t *testing.T) {
	first := &stubProvider{name: "gemini", tokens: []string{"a", "b"}}
	second := &stubProvider{name: "ollama", tokens: []string{"unused"}}

	chain := New(testLogger(), first, second)
	stream, backend, err := chain.StreamChatWithBackend(context.Background(), "sys", nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini", backend)
	assert.Equal(t, "ab", drain(t, stream))
	assert.Equal(t, 0, second.calls, "later backends must not be attempted after a success")
}

func TestChainFallsThroughToNextBackend(t *testing.T) {
	first := &stubProvider{name: "gemini", err: &llm.StatusError{Provider: "gemini", Code: 500, Body: "boom"}}
	second := &stubProvider{name: "huggingface", tokens: []string{"ok"}}

	chain := New(testLogger(), first, second)
	stream, backend, err := chain.StreamChatWithBackend(context.Background(), "sys", nil)
	require.NoError(t, err)
	assert.Equal(t, "huggingface", backend)
	assert.Equal(t, "ok", drain(t, stream))
}

func TestChainAllFailedYieldsGenericError(t *testing.T) {
	first := &stubProvider{name: "gemini", err: errors.New("dial tcp: connection refused")}
	second := &stubProvider{name: "ollama", err: &llm.StatusError{Provider: "ollama", Code: 500, Body: "oops"}}

	chain := New(testLogger(), first, second)
	_, _, err := chain.StreamChatWithBackend(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, llm.ErrAllBackendsFailed)
}

func TestChainTerminalRateLimitSurfacedVerbatim(t *testing.T) {
	first := &stubProvider{name: "gemini", err: errors.New("transient")}
	second := &stubProvider{name: "huggingface", err: &llm.StatusError{
		Provider: "huggingface",
		Code:     http.StatusTooManyRequests,
		Body:     `{"error":"rate limit exceeded"}`,
	}}

	chain := New(testLogger(), first, second)
	_, _, err := chain.StreamChatWithBackend(context.Background(), "sys", nil)

	require.True(t, llm.IsRateLimited(err))
	var se *llm.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, `{"error":"rate limit exceeded"}`, se.Body)
}

func TestChainTerminalQuotaSurfacedVerbatim(t *testing.T) {
	only := &stubProvider{name: "huggingface", err: &llm.StatusError{
		Provider: "huggingface",
		Code:     http.StatusPaymentRequired,
		Body:     "insufficient credits",
	}}

	chain := New(testLogger(), only)
	_, _, err := chain.StreamChatWithBackend(context.Background(), "sys", nil)
	assert.True(t, llm.IsQuotaExceeded(err))
}

func TestChainNonTerminalRateLimitNotSurfaced(t *testing.T) {
	// A 429 on an earlier backend is just a fall-through; only the last
	// attempt's status decides what the caller sees.
	first := &stubProvider{name: "gemini", err: &llm.StatusError{Provider: "gemini", Code: 429, Body: "limited"}}
	second := &stubProvider{name: "ollama", err: errors.New("connection refused")}

	chain := New(testLogger(), first, second)
	_, _, err := chain.StreamChatWithBackend(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, llm.ErrAllBackendsFailed)
}

func TestChainEmptyProviders(t *testing.T) {
	chain := New(testLogger())
	_, _, err := chain.StreamChatWithBackend(context.Background(), "sys", nil)
	assert.ErrorIs(t, err, llm.ErrAllBackendsFailed)
}

func TestChainHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &stubProvider{name: "gemini", tokens: []string{"x"}}
	chain := New(testLogger(), provider)
	_, _, err := chain.StreamChatWithBackend(ctx, "sys", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.calls)
}
