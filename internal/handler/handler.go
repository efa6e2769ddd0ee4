package handler

import (
	"github.com/gofiber/fiber/v2"

	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/service"
)

type Handlers struct {
	Thread       *ThreadHandler
	Messaging    *MessagingHandler
	Broadcast    *BroadcastHandler
	Notification *NotificationHandler
	Attachment   *AttachmentHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Thread:       NewThreadHandler(services.Thread),
		Messaging:    NewMessagingHandler(services.Messaging),
		Broadcast:    NewBroadcastHandler(services.Broadcast),
		Notification: NewNotificationHandler(services.Notification),
		Attachment:   NewAttachmentHandler(services.Attachment),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	params.Validate()
	return params
}
