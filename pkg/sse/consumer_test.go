package sse

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type consumed struct {
	deltas []string
	metas  []Metadata
	done   bool
	err    error
}

func consume(t *testing.T, stream string) consumed {
	t.Helper()
	var out consumed
	err := NewConsumer().Consume(context.Background(), strings.NewReader(stream), Callbacks{
		OnDelta:    func(d string) { out.deltas = append(out.deltas, d) },
		OnMetadata: func(m Metadata) { out.metas = append(out.metas, m) },
		OnDone:     func() { out.done = true },
		OnError:    func(err error) { out.err = err },
	})
	if err == nil {
		require.True(t, out.done)
	}
	return out
}

func canonicalStream(t *testing.T, deltas ...string) string {
	t.Helper()
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	w := NewWriter(bw)
	require.NoError(t, w.WriteMetadata(NewMetadata(nil, nil)))
	for _, d := range deltas {
		require.NoError(t, w.WriteToken(d))
	}
	require.NoError(t, w.WriteDone())
	return buf.String()
}

func TestConsumerHappyPath(t *testing.T) {
	out := consume(t, canonicalStream(t, "Hello", " world"))

	assert.Equal(t, []string{"Hello", " world"}, out.deltas)
	require.Len(t, out.metas, 1)
	assert.Equal(t, "metadata", out.metas[0].Type)
	assert.True(t, out.done)
	assert.NoError(t, out.err)
}

func TestConsumerMetadataFiresOnce(t *testing.T) {
	image := "https://example.com/img.png"
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	w := NewWriter(bw)
	require.NoError(t, w.WriteMetadata(NewMetadata(nil, &image)))
	require.NoError(t, w.WriteMetadata(NewMetadata(nil, nil)))
	require.NoError(t, w.WriteDone())

	out := consume(t, buf.String())
	require.Len(t, out.metas, 1)
	require.NotNil(t, out.metas[0].GeneratedImage)
	assert.Equal(t, image, *out.metas[0].GeneratedImage)
}

func TestConsumerSkipsHeartbeats(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	w := NewWriter(bw)
	require.NoError(t, w.WriteComment("keepalive"))
	require.NoError(t, w.WriteToken("hi"))
	require.NoError(t, w.WriteComment("keepalive"))
	require.NoError(t, w.WriteDone())

	out := consume(t, buf.String())
	assert.Equal(t, []string{"hi"}, out.deltas)
	assert.True(t, out.done)
}

func TestConsumerTruncatedStream(t *testing.T) {
	out := consume(t, "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n\n")

	assert.Equal(t, []string{"hi"}, out.deltas)
	assert.False(t, out.done)
	assert.ErrorIs(t, out.err, io.ErrUnexpectedEOF)
}

func TestConsumerReassemblesSplitFrame(t *testing.T) {
	// A frame split across two data lines by a misbehaving proxy: the first
	// half fails to parse and is held back until the second half arrives.
	stream := "data: {\"choices\":[{\"delta\":\ndata: {\"content\":\"joined\"}}]}\n\ndata: [DONE]\n\n"

	out := consume(t, stream)
	assert.Equal(t, []string{"joined"}, out.deltas)
	assert.True(t, out.done)
}

func TestConsumerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	err := NewConsumer().Consume(ctx, strings.NewReader(canonicalStream(t, "x")), Callbacks{
		OnError: func(err error) { gotErr = err },
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, gotErr, context.Canceled)
}
