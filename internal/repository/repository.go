package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Organization OrganizationRepository
	Thread       ThreadRepository
	Message      MessageRepository
	Notification NotificationRepository
	DeliveryLog  DeliveryLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Organization: NewOrganizationRepository(db),
		Thread:       NewThreadRepository(db),
		Message:      NewMessageRepository(db),
		Notification: NewNotificationRepository(db),
		DeliveryLog:  NewDeliveryLogRepository(db),
	}
}
