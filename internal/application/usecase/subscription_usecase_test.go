package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dventura/autogest-api/internal/application/usecase"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

func newSubscriptionFixture() (*usecase.SubscriptionUseCase, *memUserRepo, *memNotifRepo) {
	users := newMemUserRepo()
	notifs := &memNotifRepo{}
	return usecase.NewSubscriptionUseCase(users, notifs), users, notifs
}

// Activar eleva el rol a technician_subscribed y fija el vencimiento.
func TestActivate_ElevaRol(t *testing.T) {
	uc, users, notifs := newSubscriptionFixture()
	users.users["u1"] = &entity.User{ID: "u1", Role: entity.RoleTechnician}
	expiry := time.Now().AddDate(0, 1, 0)

	require.NoError(t, uc.Activate("u1", expiry))

	u := users.users["u1"]
	assert.Equal(t, entity.RoleTechnicianSubscribed, u.Role)
	assert.Equal(t, entity.SubscriptionActive, u.SubscriptionStatus)
	require.NotNil(t, u.SubscriptionExpiry)
	assert.True(t, u.SubscriptionExpiry.Equal(expiry))

	require.Len(t, notifs.created, 1)
	assert.Equal(t, entity.NotifSuscripcion, notifs.created[0].Type)
}

// Solo las cuentas de compraventa se suscriben.
func TestActivate_SoloCompraventa(t *testing.T) {
	uc, users, _ := newSubscriptionFixture()
	users.users["u1"] = &entity.User{ID: "u1", Role: entity.RoleUser}

	err := uc.Activate("u1", time.Now().AddDate(0, 1, 0))
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Cancelar conserva el acceso hasta el vencimiento ya pagado.
func TestCancel_ConservaAccesoHastaVencer(t *testing.T) {
	uc, users, _ := newSubscriptionFixture()
	expiry := time.Now().AddDate(0, 1, 0)
	users.users["u1"] = &entity.User{
		ID:                 "u1",
		Role:               entity.RoleTechnicianSubscribed,
		SubscriptionStatus: entity.SubscriptionActive,
		SubscriptionExpiry: &expiry,
	}

	require.NoError(t, uc.Cancel("u1"))

	u := users.users["u1"]
	assert.Equal(t, entity.SubscriptionCanceled, u.SubscriptionStatus)
	require.NotNil(t, u.SubscriptionExpiry, "el vencimiento no se adelanta al cancelar")

	active, err := uc.HasActiveSubscription("u1")
	require.NoError(t, err)
	assert.True(t, active, "cancelada pero sin vencer sigue dando acceso")
}

// Al vencer, el rol baja a technician y el acceso se corta.
func TestExpire_BajaRol(t *testing.T) {
	uc, users, _ := newSubscriptionFixture()
	expiry := time.Now().Add(-time.Hour)
	users.users["u1"] = &entity.User{
		ID:                 "u1",
		Role:               entity.RoleTechnicianSubscribed,
		SubscriptionStatus: entity.SubscriptionCanceled,
		SubscriptionExpiry: &expiry,
	}

	require.NoError(t, uc.Expire("u1"))

	u := users.users["u1"]
	assert.Equal(t, entity.RoleTechnician, u.Role)
	assert.Equal(t, entity.SubscriptionExpired, u.SubscriptionStatus)

	active, err := uc.HasActiveSubscription("u1")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestHasActiveSubscription(t *testing.T) {
	uc, users, _ := newSubscriptionFixture()
	future := time.Now().Add(48 * time.Hour)
	past := time.Now().Add(-48 * time.Hour)

	casos := []struct {
		nombre string
		user   entity.User
		quiere bool
	}{
		{"activa sin vencer", entity.User{SubscriptionStatus: entity.SubscriptionActive, SubscriptionExpiry: &future}, true},
		{"activa vencida", entity.User{SubscriptionStatus: entity.SubscriptionActive, SubscriptionExpiry: &past}, false},
		{"prueba viva", entity.User{SubscriptionStatus: entity.SubscriptionTrial, TrialEnd: &future}, true},
		{"prueba agotada", entity.User{SubscriptionStatus: entity.SubscriptionTrial, TrialEnd: &past}, false},
		{"sin suscripción", entity.User{SubscriptionStatus: entity.SubscriptionNone}, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			u := c.user
			u.ID = "u-" + c.nombre
			users.users[u.ID] = &u

			active, err := uc.HasActiveSubscription(u.ID)
			require.NoError(t, err)
			assert.Equal(t, c.quiere, active)
		})
	}
}
