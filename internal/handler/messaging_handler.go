package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/middleware"
	"hunian-marketplace/internal/service/messaging"
)

type MessagingHandler struct {
	messagingService messaging.Service
}

func NewMessagingHandler(messagingService messaging.Service) *MessagingHandler {
	return &MessagingHandler{messagingService: messagingService}
}

func (h *MessagingHandler) Send(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(input.Body) == "" {
		return middleware.BadRequest("Message body is required")
	}

	msg, err := h.messagingService.Send(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *MessagingHandler) ListByThread(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	threadID, err := uuid.Parse(c.Params("threadId"))
	if err != nil {
		return middleware.BadRequest("Invalid thread ID")
	}

	params := getPaginationParams(c)

	result, err := h.messagingService.ListByThread(c.Context(), userID, threadID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *MessagingHandler) ListByProperty(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	propertyID, err := uuid.Parse(c.Params("propertyId"))
	if err != nil {
		return middleware.BadRequest("Invalid property ID")
	}

	params := getPaginationParams(c)

	result, err := h.messagingService.ListByProperty(c.Context(), userID, propertyID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
