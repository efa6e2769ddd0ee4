package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/middleware"
	"hunian-marketplace/internal/service/thread"
)

type ThreadHandler struct {
	threadService thread.Service
}

func NewThreadHandler(threadService thread.Service) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

// ResolveDirect returns the direct thread for the caller and a peer,
// creating it on first contact. Repeated calls return the same thread.
func (h *ThreadHandler) ResolveDirect(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input struct {
		RecipientID uuid.UUID  `json:"recipient_id"`
		PropertyID  *uuid.UUID `json:"property_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	th, err := h.threadService.ResolveDirect(c.Context(), domain.DirectThreadSpec{
		UserA:      userID,
		UserB:      input.RecipientID,
		PropertyID: input.PropertyID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(th)
}

func (h *ThreadHandler) CreateGroup(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateGroupThreadInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	th, err := h.threadService.CreateGroup(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(th)
}

func (h *ThreadHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	params := getPaginationParams(c)

	result, err := h.threadService.List(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
