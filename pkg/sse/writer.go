package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
)

// Writer emits canonical SSE frames onto the response body. Every frame is
// flushed immediately so tokens reach the client as they are produced.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps the response body writer.
func NewWriter(w *bufio.Writer) *Writer {
	return &Writer{w: w}
}

// WriteMetadata emits the metadata frame.
func (w *Writer) WriteMetadata(meta Metadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata frame: %w", err)
	}
	return w.writeData(payload)
}

// WriteToken emits one incremental text delta.
func (w *Writer) WriteToken(delta string) error {
	payload, err := EncodeToken(delta)
	if err != nil {
		return fmt.Errorf("marshal token frame: %w", err)
	}
	return w.writeData(payload)
}

// WriteDone emits the terminal sentinel.
func (w *Writer) WriteDone() error {
	return w.writeData([]byte(DoneSentinel))
}

// WriteComment emits a heartbeat comment line, ignored by consumers.
func (w *Writer) WriteComment(text string) error {
	if _, err := fmt.Fprintf(w.w, ": %s\n\n", text); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) writeData(payload []byte) error {
	if _, err := fmt.Fprintf(w.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.w.Flush()
}
