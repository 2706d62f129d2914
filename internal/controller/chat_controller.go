package controller

import (
	"bufio"

	"campus-assist-be/internal/dto"
	"campus-assist-be/internal/pkg/serverutils"
	"campus-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("stream", c.Stream)
	h.Post("session", c.CreateSession)
	h.Get("session", c.GetAllSessions)
	h.Get("session/:id/history", c.GetChatHistory)
	h.Delete("session/:id", c.DeleteSession)
}

// Stream answers a chat request as a server-sent event stream. Failures
// while opening the stream (bad request, exhausted backends) map to HTTP
// statuses; after the stream writer starts, the status is already 200 and
// errors can only end the body early.
func (c *chatController) Stream(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	stream, err := c.chatService.OpenStream(ctx.Context(), &req)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		stream.Serve(w)
	}))

	return nil
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.chatService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetAllSessions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid session id")
	}

	res, err := c.chatService.GetChatHistory(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show history", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("invalid session id")
	}

	if err := c.chatService.DeleteSession(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}
