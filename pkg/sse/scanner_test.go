package sse

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedReader returns its content in fixed-size reads to simulate a
// transport that splits frames at arbitrary byte boundaries.
type chunkedReader struct {
	data string
	size int
	off  int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	end := r.off + r.size
	if end > len(r.data) {
		end = len(r.data)
	}
	n := copy(p, r.data[r.off:end])
	r.off += n
	return n, nil
}

func collectLines(t *testing.T, r io.Reader) []string {
	t.Helper()
	scanner := NewLineScanner(r)
	var lines []string
	for {
		line, err := scanner.Next()
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestLineScannerSplitBoundaryInvariance(t *testing.T) {
	stream := "data: {\"a\":1}\n\n: heartbeat\n\ndata: [DONE]\n\n"
	want := collectLines(t, strings.NewReader(stream))

	for size := 1; size <= len(stream); size++ {
		got := collectLines(t, &chunkedReader{data: stream, size: size})
		assert.Equal(t, want, got, "chunk size %d", size)
	}
}

func TestLineScannerStripsCarriageReturn(t *testing.T) {
	lines := collectLines(t, strings.NewReader("data: x\r\n\r\ndata: y\n"))
	assert.Equal(t, []string{"data: x", "", "data: y"}, lines)
}

func TestLineScannerUnterminatedTail(t *testing.T) {
	lines := collectLines(t, strings.NewReader("data: complete\ndata: tail-without-newline"))
	assert.Equal(t, []string{"data: complete", "data: tail-without-newline"}, lines)
}

func TestDataPayload(t *testing.T) {
	tests := []struct {
		line    string
		payload string
		ok      bool
	}{
		{"data: {\"a\":1}", `{"a":1}`, true},
		{"data:[DONE]", "[DONE]", true},
		{"data:   spaced", "spaced", true},
		{"", "", false},
		{": heartbeat", "", false},
		{"event: message", "", false},
	}

	for _, tt := range tests {
		payload, ok := DataPayload(tt.line)
		assert.Equal(t, tt.ok, ok, "line %q", tt.line)
		assert.Equal(t, tt.payload, payload, "line %q", tt.line)
	}
}
