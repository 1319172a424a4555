package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// InvitationRepository define el puerto de persistencia para Invitation.
type InvitationRepository interface {
	Create(inv *entity.Invitation) error
	GetByToken(token string) (*entity.Invitation, error)
	GetPendingByEmailAndCompany(email, companyID string) (*entity.Invitation, error)
	Update(inv *entity.Invitation) error
	ListByCompany(companyID string) ([]*entity.Invitation, error)
	Delete(id string) error
}
