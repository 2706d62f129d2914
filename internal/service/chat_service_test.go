package service

import (
	"errors"
	"testing"
	"unicode/utf8"

	"campus-assist-be/internal/pkg/serverutils"
	"campus-assist-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", truncateTitle("short", 60))
	assert.Equal(t, "abcde", truncateTitle("abcdefgh", 5))

	// Multi-byte content must be cut on a rune boundary, never mid-sequence.
	truncated := truncateTitle("छात्रवृत्ति आवेदन की अंतिम तिथि क्या है और किसे संपर्क करें", 10)
	assert.True(t, utf8.ValidString(truncated))
	assert.Equal(t, 10, len([]rune(truncated)))
}

func TestMapChainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "terminal rate limit keeps provider body",
			err:         &llm.StatusError{Provider: "huggingface", Code: 429, Body: `{"error":"rate limit exceeded"}`},
			wantCode:    fiber.StatusTooManyRequests,
			wantMessage: `{"error":"rate limit exceeded"}`,
		},
		{
			name:        "terminal quota keeps provider body",
			err:         &llm.StatusError{Provider: "huggingface", Code: 402, Body: "insufficient credits"},
			wantCode:    fiber.StatusPaymentRequired,
			wantMessage: "insufficient credits",
		},
		{
			name:        "everything else maps to unavailable",
			err:         llm.ErrAllBackendsFailed,
			wantCode:    fiber.StatusServiceUnavailable,
			wantMessage: "all generation backends are currently unavailable",
		},
		{
			name:        "plain errors map to unavailable",
			err:         errors.New("dial tcp: connection refused"),
			wantCode:    fiber.StatusServiceUnavailable,
			wantMessage: "all generation backends are currently unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapChainError(tt.err)

			var appErr *serverutils.AppError
			require.ErrorAs(t, mapped, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantMessage, appErr.Message)
		})
	}
}
