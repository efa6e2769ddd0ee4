package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/middleware"
	"hunian-marketplace/internal/service/broadcast"
)

type BroadcastHandler struct {
	broadcastService broadcast.Service
}

func NewBroadcastHandler(broadcastService broadcast.Service) *BroadcastHandler {
	return &BroadcastHandler{broadcastService: broadcastService}
}

func (h *BroadcastHandler) Send(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.BroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.DeveloperOrgID == uuid.Nil {
		return middleware.BadRequest("developer_org_id is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		return middleware.BadRequest("Broadcast body is required")
	}

	result, err := h.broadcastService.Send(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *BroadcastHandler) ListDeliveries(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	developerOrgID, err := uuid.Parse(c.Query("developer_org_id"))
	if err != nil {
		return middleware.BadRequest("developer_org_id is required")
	}

	params := getPaginationParams(c)

	result, err := h.broadcastService.ListDeliveries(c.Context(), userID, developerOrgID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
