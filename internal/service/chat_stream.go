package service

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"campus-assist-be/internal/constant"
	"campus-assist-be/internal/dto"
	"campus-assist-be/internal/pkg/serverutils"
	"campus-assist-be/pkg/imagegen"
	"campus-assist-be/pkg/llm"
	"campus-assist-be/pkg/rag/decide"
	"campus-assist-be/pkg/rag/prompt"
	"campus-assist-be/pkg/rag/search"
	"campus-assist-be/pkg/sse"
)

// ChatStream is an accepted chat request with a live token stream behind it.
// OpenStream does everything that can fail with an HTTP status (retrieval,
// backend selection); Serve only pumps frames.
type ChatStream struct {
	cs      *chatService
	request *dto.ChatRequest
	userMsg string
	stream  llm.TokenStream
	backend string
	sources []search.SourceDocument
	imgCh   <-chan *string // nil when no image was requested
	cancel  context.CancelFunc
}

// OpenStream validates the request, runs retrieval, picks a backend and
// kicks off image generation. The returned ChatStream is ready to Serve.
//
// The token stream runs on a detached context: the fasthttp request context
// dies when the handler returns, before the body stream writer runs.
func (cs *chatService) OpenStream(ctx context.Context, request *dto.ChatRequest) (*ChatStream, error) {
	userMsg := request.LatestUserMessage()
	if strings.TrimSpace(userMsg) == "" {
		return nil, serverutils.NewBadRequest("request carries no user message")
	}

	// Retrieval. A failure here degrades to an ungrounded answer instead of
	// failing the chat.
	var sources []search.SourceDocument
	useRag := request.UseRag == nil || *request.UseRag
	if useRag {
		if d := decide.ShouldGround(userMsg); !d.NeedRetrieval {
			cs.llmLogger.Printf("[CHAT] Skipping retrieval: %s", d.Reason)
		} else {
			uow := cs.uowFactory.NewUnitOfWork(ctx)
			found, err := cs.orchestrator.Execute(ctx, uow.KnowledgeRepository(), userMsg, request.Category, cs.searchConfig)
			if err != nil {
				cs.llmLogger.Printf("[CHAT] Retrieval failed, answering ungrounded: %v", err)
			} else {
				sources = found
			}
		}
	}

	system := prompt.NewSystemBuilder(constant.AssistantPersona).
		WithKnowledgeContext(search.BuildContext(sources)).
		Build()

	history := make([]llm.Message, 0, len(request.Messages))
	for _, turn := range request.Messages {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}

	streamCtx, cancel := context.WithCancel(context.Background())

	stream, backend, err := cs.llmChain.StreamChatWithBackend(streamCtx, system, history)
	if err != nil {
		cancel()
		return nil, mapChainError(err)
	}

	var imgCh chan *string
	if cs.imageGenerator != nil && imagegen.DetectImageRequest(userMsg) {
		imgCh = make(chan *string, 1)
		go func() {
			imgCtx, imgCancel := context.WithTimeout(streamCtx, 45*time.Second)
			defer imgCancel()

			imgPrompt := imagegen.BuildPrompt(userMsg, cs.campusContext)
			url, genErr := cs.imageGenerator.Generate(imgCtx, imgPrompt)
			if genErr != nil {
				cs.llmLogger.Printf("[IMAGE] Generation failed: %v", genErr)
				imgCh <- nil
				return
			}
			imgCh <- &url
		}()
	}

	return &ChatStream{
		cs:      cs,
		request: request,
		userMsg: userMsg,
		stream:  stream,
		backend: backend,
		sources: sources,
		imgCh:   imgCh,
		cancel:  cancel,
	}, nil
}

// mapChainError turns backend chain failures into HTTP-mappable errors.
// Rate-limit and quota statuses from the terminal backend keep their body
// so the client sees the provider's own message.
func mapChainError(err error) error {
	var statusErr *llm.StatusError
	body := ""
	if errors.As(err, &statusErr) {
		body = statusErr.Body
	}

	if llm.IsRateLimited(err) {
		if body == "" {
			body = "rate limit exceeded on all backends"
		}
		return serverutils.NewTooManyRequests(body)
	}
	if llm.IsQuotaExceeded(err) {
		if body == "" {
			body = "quota exceeded on all backends"
		}
		return serverutils.NewPaymentRequired(body)
	}
	return serverutils.NewServiceUnavailable("all generation backends are currently unavailable")
}

type tokenResult struct {
	delta string
	err   error
}

// Serve pumps the normalized SSE frames onto the response body. The
// metadata frame goes out before the first token when image generation wins
// the race, otherwise with a best-effort image check; it always precedes
// the done sentinel. Persistence and the completion event run after the
// wire is closed.
func (s *ChatStream) Serve(w *bufio.Writer) {
	defer s.cancel()
	defer s.stream.Close()

	writer := sse.NewWriter(w)

	firstCh := make(chan tokenResult, 1)
	go func() {
		delta, err := s.stream.Recv()
		firstCh <- tokenResult{delta: delta, err: err}
	}()

	var img *string
	var first tokenResult
	if s.imgCh != nil {
		select {
		case img = <-s.imgCh:
			first = <-firstCh
		case first = <-firstCh:
			// Token arrived first; take the image only if it is already done.
			select {
			case img = <-s.imgCh:
			default:
			}
		}
	} else {
		first = <-firstCh
	}

	clientGone := false
	if err := writer.WriteMetadata(sse.NewMetadata(s.sourceRefs(), img)); err != nil {
		clientGone = true
	}

	var full strings.Builder
	providerFailed := false

	delta, err := first.delta, first.err
	for !clientGone {
		if err != nil {
			if err != io.EOF {
				s.cs.llmLogger.Printf("[CHAT] Token stream ended early: %v", err)
				providerFailed = true
			}
			break
		}
		if delta != "" {
			full.WriteString(delta)
			if werr := writer.WriteToken(delta); werr != nil {
				clientGone = true
				break
			}
		}
		delta, err = s.stream.Recv()
	}

	if !clientGone {
		if werr := writer.WriteDone(); werr != nil {
			clientGone = true
		}
	}

	aborted := clientGone || providerFailed

	sessionId := ""
	if s.request.SessionId != nil {
		sessionId = s.request.SessionId.String()
		s.cs.persistExchange(*s.request.SessionId, s.userMsg, full.String(), aborted, s.sources)
	}
	s.cs.publishCompletion(sessionId, len(s.sources), s.backend, aborted)
}

func (s *ChatStream) sourceRefs() []sse.SourceRef {
	refs := make([]sse.SourceRef, 0, len(s.sources))
	for _, src := range s.sources {
		refs = append(refs, sse.SourceRef{
			ID:         src.Document.Id.String(),
			Title:      src.Document.Title,
			Category:   string(src.Document.Category),
			Source:     src.Document.Source,
			Similarity: src.Similarity,
		})
	}
	return refs
}
