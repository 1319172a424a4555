package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// invitationTTL validez de una invitación desde su emisión.
const invitationTTL = 7 * 24 * time.Hour

// InvitationUseCase invitaciones al equipo por email con token de un solo uso.
type InvitationUseCase struct {
	invitationRepo repository.InvitationRepository
	companyRepo    repository.CompanyRepository
	userRepo       repository.UserRepository
	notifRepo      repository.NotificationRepository
	companies      *CompanyUseCase
}

// NewInvitationUseCase construye el caso de uso de invitaciones.
func NewInvitationUseCase(
	invitationRepo repository.InvitationRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	companies *CompanyUseCase,
) *InvitationUseCase {
	return &InvitationUseCase{
		invitationRepo: invitationRepo,
		companyRepo:    companyRepo,
		userRepo:       userRepo,
		notifRepo:      notifRepo,
		companies:      companies,
	}
}

// Invite emite una invitación al equipo del invitador. Si el invitador aún no
// tiene equipo se le crea uno implícitamente (es el flujo de "primera
// invitación" de una cuenta de compraventa).
func (uc *InvitationUseCase) Invite(inviterID string, in dto.InviteRequest) (*dto.InvitationResponse, error) {
	inviter, err := uc.userRepo.GetByID(inviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, domain.ErrUserNotFound
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || email == strings.ToLower(inviter.Email) {
		return nil, domain.ErrInvalidInput
	}

	var companyID string
	if inviter.HasTeam() {
		companyID = *inviter.CompanyID
		company, err := uc.companyRepo.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		// solo el propietario o quien gestiona roles invita
		if company != nil && company.OwnerID != inviterID && !inviter.CanManageRoles {
			return nil, domain.ErrForbidden
		}
	} else {
		if !inviter.IsTechnician() {
			return nil, domain.ErrForbidden
		}
		company, err := uc.companies.createFor(inviter, "")
		if err != nil {
			return nil, err
		}
		companyID = company.ID
	}

	if pending, _ := uc.invitationRepo.GetPendingByEmailAndCompany(email, companyID); pending != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	inv := &entity.Invitation{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		InviterID: inviterID,
		Email:     email,
		Token:     uuid.New().String(),
		Status:    entity.InvitationPending,
		ExpiresAt: now.Add(invitationTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.invitationRepo.Create(inv); err != nil {
		return nil, err
	}

	// si el invitado ya tiene cuenta, aviso en su bandeja
	if invitee, _ := uc.userRepo.GetByEmail(email); invitee != nil {
		_ = uc.notifRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			UserID:    invitee.ID,
			Type:      entity.NotifInvitacion,
			Message:   inviter.Name + " te ha invitado a su equipo.",
			Link:      "/invitations/" + inv.Token,
			CreatedAt: now,
		})
	}

	return toInvitationResponse(inv), nil
}

// Accept consume la invitación: liga al usuario al equipo. El token es de un
// solo uso; una invitación caducada se marca expired al intentar usarla.
func (uc *InvitationUseCase) Accept(userID, token string) error {
	inv, err := uc.invitationRepo.GetByToken(token)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	switch inv.Status {
	case entity.InvitationAccepted:
		return domain.ErrInvitationConsumed
	case entity.InvitationExpired:
		return domain.ErrInvitationExpired
	}
	now := time.Now()
	if inv.IsExpired(now) {
		inv.Status = entity.InvitationExpired
		inv.UpdatedAt = now
		_ = uc.invitationRepo.Update(inv)
		return domain.ErrInvitationExpired
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !strings.EqualFold(user.Email, inv.Email) {
		return domain.ErrForbidden
	}
	if user.HasTeam() {
		return domain.ErrConflict
	}

	// al unirse se entra como user salvo que la cuenta ya sea de compraventa
	role := entity.RoleUser
	if user.IsTechnician() {
		role = user.Role
	}
	if err := uc.userRepo.SetMembership(userID, &inv.CompanyID, role); err != nil {
		return err
	}

	inv.Status = entity.InvitationAccepted
	inv.UpdatedAt = now
	return uc.invitationRepo.Update(inv)
}

// List lista las invitaciones del equipo.
func (uc *InvitationUseCase) List(companyID string) ([]dto.InvitationResponse, error) {
	list, err := uc.invitationRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *toInvitationResponse(inv))
	}
	return out, nil
}

// Revoke retira una invitación pendiente.
func (uc *InvitationUseCase) Revoke(companyID, invitationID string) error {
	list, err := uc.invitationRepo.ListByCompany(companyID)
	if err != nil {
		return err
	}
	for _, inv := range list {
		if inv.ID == invitationID {
			return uc.invitationRepo.Delete(invitationID)
		}
	}
	return domain.ErrNotFound
}

func toInvitationResponse(i *entity.Invitation) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        i.ID,
		CompanyID: i.CompanyID,
		Email:     i.Email,
		Token:     i.Token,
		Status:    i.Status,
		ExpiresAt: i.ExpiresAt,
		CreatedAt: i.CreatedAt,
	}
}
