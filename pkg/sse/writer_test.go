package sse

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWireFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(bufio.NewWriter(&buf))

	require.NoError(t, w.WriteMetadata(NewMetadata(nil, nil)))
	require.NoError(t, w.WriteToken("hi"))
	require.NoError(t, w.WriteComment("keepalive"))
	require.NoError(t, w.WriteDone())

	want := "data: {\"type\":\"metadata\",\"sources\":[],\"generatedImage\":null}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n\n" +
		": keepalive\n\n" +
		"data: [DONE]\n\n"
	assert.Equal(t, want, buf.String())
}
