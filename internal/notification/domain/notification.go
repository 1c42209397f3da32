package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeEmail   NotificationType = "EMAIL"
	NotificationTypeWebhook NotificationType = "WEBHOOK"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is the durable record of a message sent to a user about their
// order activity.
type Notification struct {
	gorm.Model
	UserID       uint               `gorm:"column:user_id;index;not null" json:"user_id"`
	Type         NotificationType   `gorm:"column:type;type:varchar(20);not null" json:"type"`
	Subject      string             `gorm:"column:subject;type:varchar(255)" json:"subject"`
	Content      string             `gorm:"column:content;type:text" json:"content"`
	Target       string             `gorm:"column:target;type:varchar(255)" json:"target"`
	Status       NotificationStatus `gorm:"column:status;type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	ErrorMessage string             `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	SentAt       *time.Time         `gorm:"column:sent_at" json:"sent_at,omitempty"`
}

func (Notification) TableName() string { return "notifications" }

type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID uint) ([]*Notification, error)
}

// Sender delivers a notification to its target. Delivery failures are
// recorded on the row, not retried here.
type Sender interface {
	Send(ctx context.Context, n *Notification) error
}
