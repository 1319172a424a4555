package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// SubscriptionUseCase aplica los cambios de estado de suscripción de las
// cuentas de compraventa y emite los avisos correspondientes. Las llamadas al
// proveedor de pago viven fuera; aquí solo llega el resultado.
type SubscriptionUseCase struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
}

// NewSubscriptionUseCase construye el caso de uso de suscripciones.
func NewSubscriptionUseCase(userRepo repository.UserRepository, notifRepo repository.NotificationRepository) *SubscriptionUseCase {
	return &SubscriptionUseCase{userRepo: userRepo, notifRepo: notifRepo}
}

// Activate marca la suscripción como activa hasta expiry y eleva el rol a
// technician_subscribed.
func (uc *SubscriptionUseCase) Activate(userID string, expiry time.Time) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.IsTechnician() {
		return domain.ErrForbidden
	}
	if err := uc.userRepo.SetSubscription(userID, entity.SubscriptionActive, &expiry); err != nil {
		return err
	}
	if err := uc.userRepo.SetMembership(userID, user.CompanyID, entity.RoleTechnicianSubscribed); err != nil {
		return err
	}
	uc.notify(userID, "Tu suscripción está activa.")
	return nil
}

// Cancel marca la suscripción como cancelada. El acceso se conserva hasta el
// vencimiento ya fijado.
func (uc *SubscriptionUseCase) Cancel(userID string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.SetSubscription(userID, entity.SubscriptionCanceled, user.SubscriptionExpiry); err != nil {
		return err
	}
	uc.notify(userID, "Tu suscripción ha sido cancelada.")
	return nil
}

// Expire marca la suscripción como vencida y baja el rol a technician.
func (uc *SubscriptionUseCase) Expire(userID string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.userRepo.SetSubscription(userID, entity.SubscriptionExpired, nil); err != nil {
		return err
	}
	if user.Role == entity.RoleTechnicianSubscribed {
		if err := uc.userRepo.SetMembership(userID, user.CompanyID, entity.RoleTechnician); err != nil {
			return err
		}
	}
	uc.notify(userID, "Tu suscripción ha vencido.")
	return nil
}

// HasActiveSubscription informa si la cuenta puede usar las funciones de
// compraventa: suscripción activa (o cancelada sin vencer) o prueba viva.
// Satisface el checker del middleware de suscripción.
func (uc *SubscriptionUseCase) HasActiveSubscription(userID string) (bool, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, domain.ErrUserNotFound
	}
	now := time.Now()
	switch user.SubscriptionStatus {
	case entity.SubscriptionActive, entity.SubscriptionCanceled:
		return user.SubscriptionExpiry == nil || now.Before(*user.SubscriptionExpiry), nil
	case entity.SubscriptionTrial:
		return user.TrialEnd != nil && now.Before(*user.TrialEnd), nil
	default:
		return false, nil
	}
}

func (uc *SubscriptionUseCase) notify(userID, message string) {
	_ = uc.notifRepo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      entity.NotifSuscripcion,
		Message:   message,
		CreatedAt: time.Now(),
	})
}
