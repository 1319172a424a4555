package repository

import (
	"time"

	"github.com/dventura/autogest-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdatePassword(id, passwordHash string) error
	Delete(id string) error
	ListByCompany(companyID string) ([]*entity.User, error)

	// SetMembership fija (o limpia, con nil) el equipo del usuario y su rol.
	SetMembership(userID string, companyID *string, role string) error
	// SetPermissions actualiza los flags de permisos de equipo.
	SetPermissions(userID string, canManageRoles, canExpelUsers bool) error
	// SetSubscription actualiza el estado de suscripción y su vencimiento.
	SetSubscription(userID, status string, expiry *time.Time) error

	// ClaimInvoiceNumber reserva atómicamente el siguiente número de factura
	// del usuario y lo devuelve (el contador queda incrementado). Nunca se
	// reutilizan números.
	ClaimInvoiceNumber(userID string) (int, error)
	// ClaimProformaNumber ídem para proformas.
	ClaimProformaNumber(userID string) (int, error)
}
