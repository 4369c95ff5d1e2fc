package controller

import (
	"strconv"

	"liveshop-chat-be/internal/dto"
	"liveshop-chat-be/internal/pkg/serverutils"
	"liveshop-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IChatController is the polling surface over the same message log the
// realtime gateway writes. Clients without a websocket poll GET with an
// advancing afterId cursor.
type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ListMessages(ctx *fiber.Ctx) error
	PostMessage(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
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
	h := r.Group("/rooms/:roomId/messages")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.ListMessages)
	h.Post("", c.PostMessage)
	h.Delete(":messageId", c.DeleteMessage)
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return serverutils.NewValidationError("invalid room id")
	}

	limit := ctx.QueryInt("limit", 0)
	afterId, err := parseCursor(ctx.Query("afterId"))
	if err != nil {
		return serverutils.NewValidationError("invalid afterId cursor")
	}
	beforeId, err := parseCursor(ctx.Query("beforeId"))
	if err != nil {
		return serverutils.NewValidationError("invalid beforeId cursor")
	}

	res, err := c.chatService.ListMessages(ctx.Context(), roomId, afterId, beforeId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

func (c *chatController) PostMessage(ctx *fiber.Ctx) error {
	caller, err := serverutils.CallerFromCtx(ctx)
	if err != nil {
		return err
	}

	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return serverutils.NewValidationError("invalid room id")
	}

	var req dto.PostMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.PostMessage(ctx.Context(), roomId, caller, req.Body)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create message", res))
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	caller, err := serverutils.CallerFromCtx(ctx)
	if err != nil {
		return err
	}

	roomId, err := uuid.Parse(ctx.Params("roomId"))
	if err != nil {
		return serverutils.NewValidationError("invalid room id")
	}
	messageId, err := strconv.ParseInt(ctx.Params("messageId"), 10, 64)
	if err != nil || messageId <= 0 {
		return serverutils.NewValidationError("invalid message id")
	}

	if err := c.chatService.DeleteMessage(ctx.Context(), roomId, caller, messageId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete message", nil))
}

func parseCursor(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
