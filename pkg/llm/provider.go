package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// TokenStream yields incremental text deltas from a live completion.
// Recv returns io.EOF once the backend signals completion.
type TokenStream interface {
	Recv() (string, error)
	Close() error
}

// StreamProvider defines the contract for any streaming LLM backend.
// Each adapter translates its own request shape and wire format but exposes
// the same token-delta sequence.
type StreamProvider interface {
	// Name identifies the backend in logs and health reports.
	Name() string

	// StreamChat opens a live completion for the system prompt plus history.
	// A returned error means the backend could not start streaming; once a
	// TokenStream is returned the attempt counts as successful.
	StreamChat(ctx context.Context, system string, history []Message, options ...Option) (TokenStream, error)
}

// StatusError is a non-2xx response from a backend. Rate-limit and quota
// responses are distinguished so the chain can surface them verbatim when
// they occur on the terminal backend.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Body)
}

// IsRateLimited reports whether err is an HTTP 429 from any backend.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusTooManyRequests
}

// IsQuotaExceeded reports whether err is an HTTP 402 from any backend.
func IsQuotaExceeded(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusPaymentRequired
}

// ErrAllBackendsFailed is returned when every backend in the chain failed
// for reasons other than a terminal rate/quota limit.
var ErrAllBackendsFailed = errors.New("all generation backends are unavailable")
