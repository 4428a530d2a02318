package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/ishitasahu1112-gif/PrettyYou-Website/common/errors"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
)

// ---- in-memory notification repo ----

type memNotifRepo struct {
	notifications []models.Notification
	createCalls   int
	failFirstN    int
	createErr     error
}

func (m *memNotifRepo) Create(_ context.Context, n *models.Notification) error {
	m.createCalls++
	if m.createCalls <= m.failFirstN {
		return m.createErr
	}
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memNotifRepo) FindByUserID(_ context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNotifRepo) MarkRead(_ context.Context, userID, notificationID string) (int64, error) {
	for i, n := range m.notifications {
		if n.UserID == userID && n.ID == notificationID {
			m.notifications[i].Read = true
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memNotifRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var modified int64
	for i, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			m.notifications[i].Read = true
			modified++
		}
	}
	return modified, nil
}

func (m *memNotifRepo) Watch(_ context.Context, _ string) (<-chan models.Notification, error) {
	ch := make(chan models.Notification)
	close(ch)
	return ch, nil
}

// ---- fake email dispatcher ----

type fakeEmail struct {
	sent []*models.Order
	err  error
}

func (f *fakeEmail) SendDecision(_ context.Context, order *models.Order) error {
	f.sent = append(f.sent, order)
	return f.err
}

func newNotifService(repo *memNotifRepo, email *fakeEmail) *NotificationService {
	svc := NewNotificationService(repo, email, zap.NewNop())
	svc.retryBackoff = 0
	return svc
}

func approvedOrder(comment string) *models.Order {
	return &models.Order{
		ID: "o1", UserID: "u1", CustomerEmail: "jane@example.com", CustomerName: "Jane",
		TotalAmount: 120, Status: models.StatusApproved, AdminComment: comment,
	}
}

// ---- fan-out tests ----

func TestNotifyDecision_Approved(t *testing.T) {
	repo := &memNotifRepo{}
	email := &fakeEmail{}
	svc := newNotifService(repo, email)

	degraded, warning := svc.NotifyDecision(context.Background(), approvedOrder("shipping soon"))

	assert.False(t, degraded)
	assert.Empty(t, warning)

	require.Len(t, repo.notifications, 1)
	n := repo.notifications[0]
	assert.Equal(t, "u1", n.UserID)
	assert.Equal(t, models.TypeOrderApproved, n.Type)
	assert.Equal(t, "Order Approved", n.Title)
	assert.Contains(t, n.Message, "shipping soon")
	assert.Contains(t, n.Message, "Store Note:")
	assert.Equal(t, "o1", n.OrderID)
	assert.False(t, n.Read)

	require.Len(t, email.sent, 1)
	assert.Equal(t, "o1", email.sent[0].ID)
}

func TestNotifyDecision_RejectedWithoutComment(t *testing.T) {
	repo := &memNotifRepo{}
	svc := newNotifService(repo, &fakeEmail{})

	order := approvedOrder("")
	order.Status = models.StatusRejected

	degraded, _ := svc.NotifyDecision(context.Background(), order)

	assert.False(t, degraded)
	require.Len(t, repo.notifications, 1)
	assert.Equal(t, models.TypeOrderRejected, repo.notifications[0].Type)
	assert.Equal(t, "Order Rejected", repo.notifications[0].Title)
	assert.Contains(t, repo.notifications[0].Message, "contact support")
}

func TestNotifyDecision_RejectedWithReason(t *testing.T) {
	repo := &memNotifRepo{}
	svc := newNotifService(repo, &fakeEmail{})

	order := approvedOrder("receipt unreadable")
	order.Status = models.StatusRejected

	svc.NotifyDecision(context.Background(), order)

	require.Len(t, repo.notifications, 1)
	assert.Contains(t, repo.notifications[0].Message, "Reason: receipt unreadable")
}

func TestNotifyDecision_RetriesTransientCreateFailure(t *testing.T) {
	repo := &memNotifRepo{failFirstN: 2, createErr: errors.New("transient")}
	svc := newNotifService(repo, &fakeEmail{})

	degraded, warning := svc.NotifyDecision(context.Background(), approvedOrder(""))

	assert.False(t, degraded)
	assert.Empty(t, warning)
	assert.Equal(t, 3, repo.createCalls)
	assert.Len(t, repo.notifications, 1)
}

func TestNotifyDecision_CreateExhaustionDegrades(t *testing.T) {
	repo := &memNotifRepo{failFirstN: 99, createErr: errors.New("down")}
	email := &fakeEmail{}
	svc := newNotifService(repo, email)

	degraded, warning := svc.NotifyDecision(context.Background(), approvedOrder(""))

	assert.True(t, degraded)
	assert.Contains(t, warning, "in-app notification")
	assert.Equal(t, notifyAttempts, repo.createCalls)

	// The webhook is still attempted; its outcome is independent.
	assert.Len(t, email.sent, 1)
}

func TestNotifyDecision_WebhookFailureDegrades(t *testing.T) {
	repo := &memNotifRepo{}
	email := &fakeEmail{err: errors.New("timeout")}
	svc := newNotifService(repo, email)

	degraded, warning := svc.NotifyDecision(context.Background(), approvedOrder(""))

	assert.True(t, degraded)
	assert.Contains(t, warning, "email notification")
	// The in-app notification was still created exactly once.
	assert.Len(t, repo.notifications, 1)
}

// ---- read-flag tests ----

func seedNotifications(repo *memNotifRepo, userID string, n int) {
	for i := 0; i < n; i++ {
		repo.notifications = append(repo.notifications, models.Notification{
			ID: userID + "-n" + string(rune('a'+i)), UserID: userID,
			Type: models.TypeGeneric,
		})
	}
}

func TestMarkAllRead(t *testing.T) {
	repo := &memNotifRepo{}
	seedNotifications(repo, "u1", 3)
	seedNotifications(repo, "u2", 1)
	svc := newNotifService(repo, &fakeEmail{})

	require.NoError(t, svc.MarkAllRead(context.Background(), "u1"))

	_, unread, err := svc.ListForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, unread)

	// Another user's notifications are untouched.
	_, unread, err = svc.ListForUser(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	// Re-invocation is a no-op success.
	require.NoError(t, svc.MarkAllRead(context.Background(), "u1"))
}

func TestMarkRead(t *testing.T) {
	repo := &memNotifRepo{}
	seedNotifications(repo, "u1", 1)
	svc := newNotifService(repo, &fakeEmail{})
	id := repo.notifications[0].ID

	require.NoError(t, svc.MarkRead(context.Background(), "u1", id))
	assert.True(t, repo.notifications[0].Read)

	// Marking an already-read notification is a no-op success.
	require.NoError(t, svc.MarkRead(context.Background(), "u1", id))

	// Unknown id is NotFound.
	err := svc.MarkRead(context.Background(), "u1", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestListForUser_DerivedUnreadCount(t *testing.T) {
	repo := &memNotifRepo{}
	seedNotifications(repo, "u1", 3)
	repo.notifications[1].Read = true
	svc := newNotifService(repo, &fakeEmail{})

	notifications, unread, err := svc.ListForUser(context.Background(), "u1")

	require.NoError(t, err)
	assert.Len(t, notifications, 3)
	assert.Equal(t, 2, unread)
}
