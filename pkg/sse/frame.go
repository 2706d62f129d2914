package sse

import (
	"encoding/json"
	"fmt"
)

// DoneSentinel is the literal payload of the terminal frame.
const DoneSentinel = "[DONE]"

// SourceRef is the wire representation of a retrieved document citation.
// Content is intentionally not carried over the wire; the client only needs
// enough to render the citation card.
type SourceRef struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Source     string   `json:"source"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// Metadata is the single side-channel frame sent per response. It may be
// empty (no sources, no image) but is always sent exactly once.
type Metadata struct {
	Type           string      `json:"type"`
	Sources        []SourceRef `json:"sources"`
	GeneratedImage *string     `json:"generatedImage"`
}

// NewMetadata builds a metadata frame. A nil sources slice is normalized to
// an empty one so the wire always carries a JSON array.
func NewMetadata(sources []SourceRef, generatedImage *string) Metadata {
	if sources == nil {
		sources = []SourceRef{}
	}
	return Metadata{
		Type:           "metadata",
		Sources:        sources,
		GeneratedImage: generatedImage,
	}
}

// tokenFrame mirrors the OpenAI-compatible streaming chunk shape. Only the
// delta content field is meaningful on this wire.
type tokenFrame struct {
	Choices []tokenChoice `json:"choices"`
}

type tokenChoice struct {
	Delta tokenDelta `json:"delta"`
}

type tokenDelta struct {
	Content string `json:"content"`
}

// EncodeToken encodes an incremental text delta as a canonical token frame.
func EncodeToken(delta string) ([]byte, error) {
	return json.Marshal(tokenFrame{
		Choices: []tokenChoice{{Delta: tokenDelta{Content: delta}}},
	})
}

// DecodeFrame classifies one data payload. Exactly one of the returns is
// meaningful: a metadata frame, a token delta, or the done flag.
func DecodeFrame(payload []byte) (meta *Metadata, delta string, done bool, err error) {
	if string(payload) == DoneSentinel {
		return nil, "", true, nil
	}

	// Peek at the type discriminator first; token frames carry no "type".
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return nil, "", false, fmt.Errorf("malformed frame: %w", err)
	}

	if head.Type == "metadata" {
		var m Metadata
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, "", false, fmt.Errorf("malformed metadata frame: %w", err)
		}
		return &m, "", false, nil
	}

	var tf tokenFrame
	if err := json.Unmarshal(payload, &tf); err != nil {
		return nil, "", false, fmt.Errorf("malformed token frame: %w", err)
	}
	if len(tf.Choices) == 0 {
		return nil, "", false, nil
	}
	return nil, tf.Choices[0].Delta.Content, false, nil
}
