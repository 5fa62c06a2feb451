package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	"github.com/soniabinty/gizmorent-server/internal/service"
)

// ---------- Mocks ----------

type mockNotificationRepo struct {
	notifications []domain.Notification
}

func (m *mockNotificationRepo) Insert(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	copied := *n
	copied.ID = primitive.NewObjectID()
	m.notifications = append(m.notifications, copied)
	return &copied, nil
}

func (m *mockNotificationRepo) ListForTarget(_ context.Context, email string, includeAdmin bool) ([]domain.Notification, error) {
	out := []domain.Notification{}
	for _, n := range m.notifications {
		if n.Target == email || (includeAdmin && n.Target == domain.AdminTarget) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) (bool, error) {
	for i := range m.notifications {
		if m.notifications[i].ID.Hex() == id {
			m.notifications[i].Read = true
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, email string, includeAdmin bool) (int64, error) {
	var updated int64
	for i := range m.notifications {
		match := m.notifications[i].Target == email || (includeAdmin && m.notifications[i].Target == domain.AdminTarget)
		if match && !m.notifications[i].Read {
			m.notifications[i].Read = true
			updated++
		}
	}
	return updated, nil
}

func (m *mockNotificationRepo) Delete(_ context.Context, id string) (bool, error) {
	for i := range m.notifications {
		if m.notifications[i].ID.Hex() == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockNotificationRepo) DeleteByTarget(_ context.Context, target string) (int64, error) {
	kept := m.notifications[:0]
	var deleted int64
	for _, n := range m.notifications {
		if n.Target == target {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	m.notifications = kept
	return deleted, nil
}

// ---------- Tests ----------

func TestListForIncludesAdminBroadcastForAdmins(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	userRepo := newMockUserRepo()
	svc := service.NewNotificationService(notifRepo, userRepo)
	ctx := context.Background()

	userRepo.users["admin@example.com"] = &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin}
	userRepo.users["user@example.com"] = &domain.User{Email: "user@example.com", Role: domain.RoleUser}

	_, err := svc.Create(ctx, &domain.Notification{Target: domain.AdminTarget, Message: "new renter request"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.Notification{Target: "user@example.com", Message: "order shipped"})
	require.NoError(t, err)

	adminView, err := svc.ListFor(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Len(t, adminView, 1)
	assert.Equal(t, domain.AdminTarget, adminView[0].Target)

	userView, err := svc.ListFor(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Len(t, userView, 1)
	assert.Equal(t, "order shipped", userView[0].Message)
}

func TestCreateDefaultsTypeAndUnread(t *testing.T) {
	svc := service.NewNotificationService(&mockNotificationRepo{}, newMockUserRepo())

	created, err := svc.Create(context.Background(), &domain.Notification{Target: "u@example.com", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, domain.NotifyGeneral, created.Type)
	assert.False(t, created.Read)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestMarkReadUnknownNotification(t *testing.T) {
	svc := service.NewNotificationService(&mockNotificationRepo{}, newMockUserRepo())

	err := svc.MarkRead(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	svc := service.NewNotificationService(notifRepo, newMockUserRepo())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, &domain.Notification{Target: "u@example.com", Message: "m"})
		require.NoError(t, err)
	}

	updated, err := svc.MarkAllRead(ctx, "u@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}

func TestMarkAllReadClearsAdminBroadcastForAdmins(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	userRepo := newMockUserRepo()
	svc := service.NewNotificationService(notifRepo, userRepo)
	ctx := context.Background()

	userRepo.users["admin@example.com"] = &domain.User{Email: "admin@example.com", Role: domain.RoleAdmin}

	_, err := svc.Create(ctx, &domain.Notification{Target: domain.AdminTarget, Message: "new renter request"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.Notification{Target: "admin@example.com", Message: "direct"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.Notification{Target: "u@example.com", Message: "not yours"})
	require.NoError(t, err)

	updated, err := svc.MarkAllRead(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated, "broadcast and direct rows both marked read")

	for _, n := range notifRepo.notifications {
		if n.Target == "u@example.com" {
			assert.False(t, n.Read, "another user's rows stay unread")
		} else {
			assert.True(t, n.Read)
		}
	}
}

func TestDeleteForAdminTarget(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	svc := service.NewNotificationService(notifRepo, newMockUserRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.Notification{Target: domain.AdminTarget, Message: "a"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.Notification{Target: "u@example.com", Message: "b"})
	require.NoError(t, err)

	deleted, err := svc.DeleteForTarget(ctx, domain.AdminTarget)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, notifRepo.notifications, 1)
}
