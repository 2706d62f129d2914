package service

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"campus-assist-be/internal/dto"
	"campus-assist-be/pkg/sse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedStream struct {
	tokens []string
	err    error // returned after tokens run out, io.EOF by default
	pos    int
	closed bool
}

func (s *scriptedStream) Recv() (string, error) {
	if s.pos >= len(s.tokens) {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *scriptedStream) Close() error {
	s.closed = true
	return nil
}

func newTestStream(t *testing.T, tokens []string, streamErr error, imgCh chan *string) (*ChatStream, *scriptedStream) {
	t.Helper()
	stream := &scriptedStream{tokens: tokens, err: streamErr}
	_, cancel := context.WithCancel(context.Background())
	return &ChatStream{
		cs: &chatService{
			llmLogger: log.New(io.Discard, "", 0),
		},
		request: &dto.ChatRequest{},
		userMsg: "question",
		stream:  stream,
		backend: "gemini",
		imgCh:   imgCh,
		cancel:  cancel,
	}, stream
}

// serveToWire runs Serve and decodes the emitted frames.
func serveToWire(t *testing.T, cs *ChatStream) (metas []sse.Metadata, deltas []string, done bool) {
	t.Helper()
	var buf bytes.Buffer
	cs.Serve(bufio.NewWriter(&buf))

	err := sse.NewConsumer().Consume(context.Background(), strings.NewReader(buf.String()), sse.Callbacks{
		OnDelta:    func(d string) { deltas = append(deltas, d) },
		OnMetadata: func(m sse.Metadata) { metas = append(metas, m) },
		OnDone:     func() { done = true },
	})
	require.NoError(t, err)
	return metas, deltas, done
}

func TestServeMetadataPrecedesTokensAndDone(t *testing.T) {
	cs, stream := newTestStream(t, []string{"Hello", " there"}, nil, nil)

	metas, deltas, done := serveToWire(t, cs)

	require.Len(t, metas, 1)
	assert.Equal(t, "metadata", metas[0].Type)
	assert.Nil(t, metas[0].GeneratedImage)
	assert.NotNil(t, metas[0].Sources)
	assert.Equal(t, []string{"Hello", " there"}, deltas)
	assert.True(t, done)
	assert.True(t, stream.closed)
}

func TestServeCarriesGeneratedImage(t *testing.T) {
	url := "https://image.example/prompt.png"
	imgCh := make(chan *string, 1)
	imgCh <- &url

	cs, _ := newTestStream(t, []string{"ok"}, nil, imgCh)
	metas, _, done := serveToWire(t, cs)

	require.Len(t, metas, 1)
	require.NotNil(t, metas[0].GeneratedImage)
	assert.Equal(t, url, *metas[0].GeneratedImage)
	assert.True(t, done)
}

func TestServeImageFailureYieldsNullImage(t *testing.T) {
	imgCh := make(chan *string, 1)
	imgCh <- nil

	cs, _ := newTestStream(t, []string{"ok"}, nil, imgCh)
	metas, _, _ := serveToWire(t, cs)

	require.Len(t, metas, 1)
	assert.Nil(t, metas[0].GeneratedImage)
}

func TestServeProviderFailureStillTerminates(t *testing.T) {
	cs, _ := newTestStream(t, []string{"partial"}, errors.New("backend dropped connection"), nil)

	metas, deltas, done := serveToWire(t, cs)

	require.Len(t, metas, 1)
	assert.Equal(t, []string{"partial"}, deltas)
	assert.True(t, done, "the stream must end with the done sentinel even when the provider fails mid-answer")
}

func TestServeEmptyAnswer(t *testing.T) {
	cs, _ := newTestStream(t, nil, nil, nil)

	metas, deltas, done := serveToWire(t, cs)

	require.Len(t, metas, 1)
	assert.Empty(t, deltas)
	assert.True(t, done)
}
