package sse

import (
	"context"
	"io"
)

// Callbacks receives stream events. OnDelta carries incremental text only;
// accumulation is the caller's responsibility. Exactly one of OnDone or
// OnError fires per stream, so finalization (persisting partial text,
// releasing UI state) belongs in those two.
type Callbacks struct {
	OnDelta    func(delta string)
	OnMetadata func(meta Metadata)
	OnDone     func()
	OnError    func(err error)
}

// Consumer parses a canonical SSE stream and drives callbacks. It mirrors the
// server-side framing exactly: newline splitting, comment/blank skipping,
// "data: " payloads.
type Consumer struct{}

// NewConsumer creates a stream consumer.
func NewConsumer() *Consumer {
	return &Consumer{}
}

// Consume reads body until the done sentinel, an error, or ctx cancellation.
// Cancellation is cooperative: the read is abandoned at the next frame
// boundary and OnError fires once with ctx.Err(). The metadata callback is
// invoked at most once; repeated metadata frames are ignored.
func (c *Consumer) Consume(ctx context.Context, body io.Reader, cb Callbacks) error {
	scanner := NewLineScanner(body)

	metadataSeen := false
	held := "" // payload that failed to parse, re-prefixed onto the next data line

	fail := func(err error) error {
		if cb.OnError != nil {
			cb.OnError(err)
		}
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		line, err := scanner.Next()
		if err == io.EOF {
			// A payload still held at end of stream is a truncated frame;
			// drop it silently.
			return fail(io.ErrUnexpectedEOF)
		}
		if err != nil {
			return fail(err)
		}

		payload, ok := DataPayload(line)
		if !ok {
			continue
		}

		if held != "" {
			payload = held + payload
			held = ""
		}

		meta, delta, done, err := DecodeFrame([]byte(payload))
		if err != nil {
			// Treat as a frame split mid-line by the transport: hold it back
			// and try again with the next data line appended.
			held = payload
			continue
		}

		switch {
		case done:
			if cb.OnDone != nil {
				cb.OnDone()
			}
			return nil
		case meta != nil:
			if !metadataSeen {
				metadataSeen = true
				if cb.OnMetadata != nil {
					cb.OnMetadata(*meta)
				}
			}
		case delta != "":
			if cb.OnDelta != nil {
				cb.OnDelta(delta)
			}
		}
	}
}
