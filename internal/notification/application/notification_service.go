package application

import (
	"context"
	"time"

	"github.com/wyfcoding/eshop/internal/notification/domain"
	"github.com/wyfcoding/pkg/logging"
)

type NotificationService struct {
	repo   domain.NotificationRepository
	sender domain.Sender
}

func NewNotificationService(repo domain.NotificationRepository, sender domain.Sender) *NotificationService {
	return &NotificationService{repo: repo, sender: sender}
}

// Notify delivers a message and records the outcome. A delivery failure is
// persisted as FAILED rather than propagated; the notification log must not
// fail the event that triggered it.
func (s *NotificationService) Notify(ctx context.Context, userID uint, typ domain.NotificationType, subject, content, target string) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Subject: subject,
		Content: content,
		Target:  target,
		Status:  domain.NotificationStatusPending,
	}

	if err := s.sender.Send(ctx, n); err != nil {
		logging.Warn(ctx, "notification delivery failed",
			"user_id", userID, "subject", subject, "error", err)
		n.Status = domain.NotificationStatusFailed
		n.ErrorMessage = err.Error()
	} else {
		now := time.Now()
		n.Status = domain.NotificationStatusSent
		n.SentAt = &now
	}

	return s.repo.Save(ctx, n)
}

func (s *NotificationService) ListByUser(ctx context.Context, userID uint) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}
