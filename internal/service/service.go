package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"hunian-marketplace/internal/config"
	"hunian-marketplace/internal/repository"
	"hunian-marketplace/internal/service/attachment"
	"hunian-marketplace/internal/service/broadcast"
	"hunian-marketplace/internal/service/email"
	"hunian-marketplace/internal/service/messaging"
	"hunian-marketplace/internal/service/notification"
	"hunian-marketplace/internal/service/thread"
)

type Services struct {
	Thread       thread.Service
	Messaging    messaging.Service
	Broadcast    broadcast.Service
	Notification notification.Service
	Email        email.Service
	Attachment   attachment.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	threadService := thread.NewService(repos.Thread, repos.Organization, redis)
	messagingService := messaging.NewService(repos.Message, repos.Thread, repos.Organization, repos.User, threadService, emailService)
	broadcastService := broadcast.NewService(repos.Organization, repos.DeliveryLog, threadService, messagingService, cfg.BroadcastWorkers, cfg.BroadcastTimeout)
	notificationService := notification.NewService(repos.Notification)
	attachmentService := attachment.NewService(repos.Thread, minioClient, cfg)

	return &Services{
		Thread:       threadService,
		Messaging:    messagingService,
		Broadcast:    broadcastService,
		Notification: notificationService,
		Email:        emailService,
		Attachment:   attachmentService,
	}
}
