package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/ishitasahu1112-gif/PrettyYou-Website/common/errors"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/repository"
)

const notifyAttempts = 3

// EmailDispatcher triggers the external email hook for a decided order.
type EmailDispatcher interface {
	SendDecision(ctx context.Context, order *models.Order) error
}

// NotificationService creates in-app notifications and best-effort triggers
// the email webhook. It never fails a committed order decision: every
// downstream failure is reported as degraded delivery instead.
type NotificationService struct {
	repo         repository.NotificationRepository
	email        EmailDispatcher
	logger       *zap.Logger
	retryBackoff time.Duration
}

func NewNotificationService(repo repository.NotificationRepository, email EmailDispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:         repo,
		email:        email,
		logger:       logger,
		retryBackoff: time.Second,
	}
}

// NotifyDecision creates exactly one notification for the order's owner and
// then fires the email webhook. The notification write is part of the
// decision and is retried on failure; the webhook is fire-and-forget. The
// returned warning describes any degraded delivery.
func (s *NotificationService) NotifyDecision(ctx context.Context, order *models.Order) (bool, string) {
	notification := buildDecisionNotification(order)

	var warning string
	if err := s.createWithRetry(ctx, notification); err != nil {
		s.logger.Error("notification create failed, decision stands",
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID),
			zap.Error(err),
		)
		warning = "in-app notification could not be delivered"
	}

	if err := s.email.SendDecision(ctx, order); err != nil {
		s.logger.Warn("email webhook failed, decision stands",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		if warning != "" {
			warning += "; "
		}
		warning += "email notification could not be delivered"
	}

	return warning != "", warning
}

func (s *NotificationService) createWithRetry(ctx context.Context, notification *models.Notification) error {
	var lastErr error
	for attempt := 0; attempt < notifyAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * s.retryBackoff)
		}

		if lastErr = s.repo.Create(ctx, notification); lastErr == nil {
			return nil
		}

		s.logger.Warn("notification create attempt failed",
			zap.String("user_id", notification.UserID),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}
	return lastErr
}

// ListForUser returns the user's notifications newest first, plus the
// derived unread count. The count is never stored.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]models.Notification, int, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	return notifications, unread, nil
}

// MarkRead flips one notification to read. Marking an already-read
// notification succeeds as a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	matched, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if matched == 0 {
		return apperrors.Wrap(apperrors.ErrNotFound,
			fmt.Errorf("notification %s not found", notificationID))
	}
	return nil
}

// MarkAllRead flips every unread notification for the user. A second call
// matches nothing and succeeds.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if _, err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}

// Watch streams notifications created for the user from now on.
func (s *NotificationService) Watch(ctx context.Context, userID string) (<-chan models.Notification, error) {
	if userID == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, errors.New("user id is required"))
	}
	stream, err := s.repo.Watch(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return stream, nil
}

// buildDecisionNotification derives the customer-facing copy from the
// decided order.
func buildDecisionNotification(order *models.Order) *models.Notification {
	var notifType, message string
	switch order.Status {
	case models.StatusApproved:
		notifType = models.TypeOrderApproved
		message = "Your order has been approved and is being processed!"
		if order.AdminComment != "" {
			message += " Store Note: " + order.AdminComment
		}
	case models.StatusRejected:
		notifType = models.TypeOrderRejected
		message = "Your order has been rejected."
		if order.AdminComment != "" {
			message += " Reason: " + order.AdminComment
		} else {
			message += " Please contact support for more details."
		}
	default:
		notifType = models.TypeGeneric
		message = "Your order status has been updated to " + order.Status + "."
	}

	return &models.Notification{
		ID:      uuid.NewString(),
		UserID:  order.UserID,
		Title:   "Order " + order.Status,
		Message: message,
		Type:    notifType,
		OrderID: order.ID,
		Read:    false,
	}
}
