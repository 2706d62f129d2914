package sse

import (
	"io"
	"strings"
)

// LineScanner splits a byte stream into SSE lines. It tolerates frames split
// at arbitrary byte boundaries by the transport: an unterminated tail is held
// back and re-prefixed onto the next read instead of being surfaced early.
// Both the server-side normalizer and the client consumer use it so framing
// stays in agreement.
type LineScanner struct {
	r       io.Reader
	buf     []byte
	pending string
	eof     bool
}

// NewLineScanner wraps r with line-oriented buffering.
func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{
		r:   r,
		buf: make([]byte, 4096),
	}
}

// Next returns the next complete line with the trailing newline and any
// carriage return stripped. It returns io.EOF once the stream is exhausted;
// a non-empty unterminated tail is returned as a final line before EOF.
func (s *LineScanner) Next() (string, error) {
	for {
		if idx := strings.IndexByte(s.pending, '\n'); idx >= 0 {
			line := strings.TrimSuffix(s.pending[:idx], "\r")
			s.pending = s.pending[idx+1:]
			return line, nil
		}

		if s.eof {
			if s.pending != "" {
				line := strings.TrimSuffix(s.pending, "\r")
				s.pending = ""
				return line, nil
			}
			return "", io.EOF
		}

		n, err := s.r.Read(s.buf)
		if n > 0 {
			s.pending += string(s.buf[:n])
		}
		if err == io.EOF {
			s.eof = true
			continue
		}
		if err != nil {
			return "", err
		}
	}
}

// DataPayload strips the SSE "data: " prefix from a line. Blank lines and
// comment lines (leading ':', used for heartbeats) yield ok=false and must
// be skipped by callers.
func DataPayload(line string) (payload string, ok bool) {
	if line == "" || strings.HasPrefix(line, ":") {
		return "", false
	}
	if !strings.HasPrefix(line, "data:") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "data:")), true
}
