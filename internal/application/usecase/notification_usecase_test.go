package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dventura/autogest-api/internal/application/usecase"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

// La bandeja es personal: marcar como leída o borrar un aviso ajeno no alcanza.
func TestNotification_BandejaPersonal(t *testing.T) {
	notifs := &memNotifRepo{}
	uc := usecase.NewNotificationUseCase(notifs)

	require.NoError(t, notifs.Create(&entity.Notification{ID: "n1", UserID: "u1", Type: entity.NotifSuscripcion}))

	err := uc.MarkRead("u2", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "no se marcan avisos de otro usuario")

	err = uc.Delete("u2", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "no se borran avisos de otro usuario")

	require.NoError(t, uc.MarkRead("u1", "n1"))
	assert.True(t, notifs.created[0].IsRead)

	require.NoError(t, uc.Delete("u1", "n1"))
	assert.Empty(t, notifs.created)
}

func TestNotification_MarkAllRead(t *testing.T) {
	notifs := &memNotifRepo{}
	uc := usecase.NewNotificationUseCase(notifs)

	require.NoError(t, notifs.Create(&entity.Notification{ID: "n1", UserID: "u1"}))
	require.NoError(t, notifs.Create(&entity.Notification{ID: "n2", UserID: "u1"}))
	require.NoError(t, notifs.Create(&entity.Notification{ID: "n3", UserID: "u2"}))

	require.NoError(t, uc.MarkAllRead("u1"))

	list, err := uc.List("u2", true, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1, "los avisos de u2 siguen sin leer")
}
