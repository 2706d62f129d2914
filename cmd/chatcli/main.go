package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"campus-assist-be/internal/dto"
	"campus-assist-be/pkg/sse"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8000/api", "API base URL")
	noRag := flag.Bool("no-rag", false, "Disable knowledge retrieval")
	category := flag.String("category", "", "Restrict retrieval to one category")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	color.Cyan("🎓 Campus SmartAssist CLI")
	color.Cyan("Type a question and press Enter. Ctrl+C to quit.\n")

	sessionId := createSession(*baseURL)
	if sessionId != nil {
		color.HiBlack("session: %s\n", sessionId)
	} else {
		color.Yellow("Warn: session creation failed; chat history will not be saved\n")
	}

	var history []dto.ChatTurn
	stdin := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(color.HiGreenString("you> "))
		if !stdin.Scan() {
			return
		}
		question := strings.TrimSpace(stdin.Text())
		if question == "" {
			continue
		}

		history = append(history, dto.ChatTurn{Role: "user", Content: question})
		reply, ok := streamTurn(ctx, *baseURL, dto.ChatRequest{
			Messages:  history,
			UseRag:    boolPtr(!*noRag),
			Category:  *category,
			SessionId: sessionId,
		})
		if ctx.Err() != nil {
			fmt.Println()
			color.Yellow("Interrupted")
			return
		}
		if !ok {
			// Keep the failed turn out of history so retries start clean.
			history = history[:len(history)-1]
			continue
		}
		history = append(history, dto.ChatTurn{Role: "assistant", Content: reply})
	}
}

// streamTurn sends one chat request and renders the SSE response. Returns the
// accumulated assistant reply and whether the turn completed.
func streamTurn(ctx context.Context, baseURL string, request dto.ChatRequest) (string, bool) {
	payload, _ := json.Marshal(request)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/v1/stream", bytes.NewBuffer(payload))
	if err != nil {
		color.Red("Failed: %v", err)
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		color.Red("Failed: %v", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = resp.Status
		}
		color.Red("Error (%d): %s", resp.StatusCode, errBody.Error)
		return "", false
	}

	fmt.Print(color.HiBlueString("assistant> "))

	var reply strings.Builder
	var meta *sse.Metadata
	err = sse.NewConsumer().Consume(ctx, resp.Body, sse.Callbacks{
		OnDelta: func(delta string) {
			reply.WriteString(delta)
			fmt.Print(delta)
		},
		OnMetadata: func(m sse.Metadata) {
			meta = &m
		},
		OnDone: func() {
			fmt.Println()
		},
	})
	if err != nil {
		fmt.Println()
		color.Red("Stream failed: %v", err)
		return reply.String(), false
	}

	if meta != nil {
		printMetadata(*meta)
	}
	fmt.Println()
	return reply.String(), true
}

func printMetadata(meta sse.Metadata) {
	if len(meta.Sources) > 0 {
		color.HiBlack("sources:")
		for _, src := range meta.Sources {
			if src.Similarity != nil {
				color.HiBlack("  - %s [%s, %.0f%%] (%s)", src.Title, src.Category, *src.Similarity*100, src.Source)
			} else {
				color.HiBlack("  - %s [%s] (%s)", src.Title, src.Category, src.Source)
			}
		}
	}
	if meta.GeneratedImage != nil {
		color.HiMagenta("image: %s", *meta.GeneratedImage)
	}
}

func createSession(baseURL string) *uuid.UUID {
	resp, err := http.Post(baseURL+"/chat/v1/session", "application/json", nil)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil
	}

	var body struct {
		Data dto.ChatSessionResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}
	if body.Data.Id == uuid.Nil {
		return nil
	}
	return &body.Data.Id
}

func boolPtr(v bool) *bool { return &v }
