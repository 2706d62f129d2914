package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFrame(t *testing.T) {
	sim := 0.82

	tests := []struct {
		name      string
		payload   string
		wantMeta  bool
		wantDelta string
		wantDone  bool
		wantErr   bool
	}{
		{
			name:     "done sentinel",
			payload:  "[DONE]",
			wantDone: true,
		},
		{
			name:     "metadata frame",
			payload:  `{"type":"metadata","sources":[],"generatedImage":null}`,
			wantMeta: true,
		},
		{
			name:      "token frame",
			payload:   `{"choices":[{"delta":{"content":"Hello"}}]}`,
			wantDelta: "Hello",
		},
		{
			name:    "empty choices yields nothing",
			payload: `{"choices":[]}`,
		},
		{
			name:    "malformed json",
			payload: `{"choices":[{"delta"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, delta, done, err := DecodeFrame([]byte(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMeta, meta != nil)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, tt.wantDone, done)
		})
	}

	t.Run("metadata round trip", func(t *testing.T) {
		image := "https://example.com/out.png"
		in := NewMetadata([]SourceRef{{
			ID:         "a1",
			Title:      "TA Application Guidelines",
			Category:   "academic",
			Source:     "CS Department Circular, August 2025",
			Similarity: &sim,
		}}, &image)

		payload, err := json.Marshal(in)
		require.NoError(t, err)

		meta, delta, done, err := DecodeFrame(payload)
		require.NoError(t, err)
		require.NotNil(t, meta)
		assert.Empty(t, delta)
		assert.False(t, done)
		assert.Equal(t, in, *meta)
	})
}

func TestNewMetadataNormalizesNilSources(t *testing.T) {
	meta := NewMetadata(nil, nil)
	assert.NotNil(t, meta.Sources)
	assert.Len(t, meta.Sources, 0)
	assert.Equal(t, "metadata", meta.Type)
	assert.Nil(t, meta.GeneratedImage)
}

func TestEncodeToken(t *testing.T) {
	payload, err := EncodeToken("partial ")
	require.NoError(t, err)

	meta, delta, done, err := DecodeFrame(payload)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.False(t, done)
	assert.Equal(t, "partial ", delta)
}
