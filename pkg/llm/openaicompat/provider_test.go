package openaicompat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-assist-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamChatDecodesChunks(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewProvider("huggingface", "test-key", server.URL, "meta-llama/Llama-3.1-8B-Instruct")
	stream, err := provider.StreamChat(context.Background(), "be helpful", []llm.Message{
		{Role: llm.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	defer stream.Close()

	var out string
	for {
		tok, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out += tok
	}
	assert.Equal(t, "Hello", out)

	require.True(t, gotReq.Stream)
	assert.Equal(t, "meta-llama/Llama-3.1-8B-Instruct", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, llm.RoleSystem, gotReq.Messages[0].Role)
	assert.Equal(t, "be helpful", gotReq.Messages[0].Content)
}

func TestStreamChatStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"slow down"}`)
	}))
	defer server.Close()

	provider := NewProvider("huggingface", "", server.URL, "m")
	_, err := provider.StreamChat(context.Background(), "", nil)

	var se *llm.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Equal(t, `{"error":"slow down"}`, se.Body)
	assert.Equal(t, "huggingface", se.Provider)
	assert.True(t, llm.IsRateLimited(err))
}

func TestStreamChatMapsModelRole(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	provider := NewProvider("huggingface", "", server.URL, "m")
	stream, err := provider.StreamChat(context.Background(), "", []llm.Message{
		{Role: "model", Content: "earlier answer"},
		{Role: llm.RoleUser, Content: "follow up"},
	})
	require.NoError(t, err)
	stream.Close()

	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, llm.RoleAssistant, gotReq.Messages[0].Role)
}
