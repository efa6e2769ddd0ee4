package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/middleware"
	"hunian-marketplace/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var ntype *domain.NotificationType
	if t := c.Query("type"); t != "" {
		nt := domain.NotificationType(t)
		ntype = &nt
	}
	unreadOnly := c.Query("unread_only") == "true"

	params := getPaginationParams(c)

	result, err := h.notifService.List(c.Context(), userID, ntype, unreadOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// GetCounter returns the cached unread counters. It never recounts the
// ledger; the counters are kept in step transactionally.
func (h *NotificationHandler) GetCounter(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	counter, err := h.notifService.GetCounter(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(counter)
}

type notificationIDsInput struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input notificationIDsInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.IDs) == 0 {
		return middleware.BadRequest("ids is required")
	}

	updated, err := h.notifService.MarkAsRead(c.Context(), userID, input.IDs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"updated": updated})
}

func (h *NotificationHandler) MarkAsUnread(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input notificationIDsInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.IDs) == 0 {
		return middleware.BadRequest("ids is required")
	}

	updated, err := h.notifService.MarkAsUnread(c.Context(), userID, input.IDs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"updated": updated})
}

func (h *NotificationHandler) MarkAsReadByType(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		Types []domain.NotificationType `json:"types"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.Types) == 0 {
		return middleware.BadRequest("types is required")
	}

	updated, err := h.notifService.MarkAsReadByType(c.Context(), userID, input.Types)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"updated": updated})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input notificationIDsInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(input.IDs) == 0 {
		return middleware.BadRequest("ids is required")
	}

	deleted, err := h.notifService.Delete(c.Context(), userID, input.IDs)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": deleted})
}
