package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// CompanyUseCase equipos de compraventa: miembros, permisos y expulsión.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
}

// NewCompanyUseCase construye el caso de uso de equipos.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, userRepo: userRepo}
}

// Create da de alta un equipo con el usuario como propietario. Un usuario solo
// puede ser propietario de un equipo y no puede crear uno si ya pertenece a otro.
func (uc *CompanyUseCase) Create(userID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.HasTeam() {
		return nil, domain.ErrConflict
	}
	company, err := uc.createFor(user, in.Name)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// createFor crea la Company y liga al propietario conservando su rol.
func (uc *CompanyUseCase) createFor(owner *entity.User, name string) (*entity.Company, error) {
	if name == "" {
		name = "Equipo de " + owner.Name
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	if err := uc.userRepo.SetMembership(owner.ID, &company.ID, owner.Role); err != nil {
		return nil, err
	}
	return company, nil
}

// Get devuelve el equipo del usuario.
func (uc *CompanyUseCase) Get(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Members lista los miembros del equipo con sus permisos.
func (uc *CompanyUseCase) Members(companyID string) ([]dto.MemberResponse, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	users, err := uc.userRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MemberResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.MemberResponse{
			ID:             u.ID,
			Email:          u.Email,
			Name:           u.Name,
			Role:           u.Role,
			CanManageRoles: u.CanManageRoles,
			CanExpelUsers:  u.CanExpelUsers,
			IsOwner:        u.ID == company.OwnerID,
		})
	}
	return out, nil
}

// UpdatePermissions cambia los flags de un miembro. Solo el propietario o un
// miembro con CanManageRoles; los permisos del propietario no se tocan.
func (uc *CompanyUseCase) UpdatePermissions(actorID, companyID, memberID string, in dto.UpdatePermissionsRequest) error {
	company, actor, member, err := uc.loadTrio(actorID, companyID, memberID)
	if err != nil {
		return err
	}
	if actorID != company.OwnerID && !actor.CanManageRoles {
		return domain.ErrForbidden
	}
	if memberID == company.OwnerID {
		return domain.ErrForbidden
	}
	canManage := member.CanManageRoles
	canExpel := member.CanExpelUsers
	if in.CanManageRoles != nil {
		canManage = *in.CanManageRoles
	}
	if in.CanExpelUsers != nil {
		canExpel = *in.CanExpelUsers
	}
	return uc.userRepo.SetPermissions(memberID, canManage, canExpel)
}

// Expel saca a un miembro del equipo: CompanyID a NULL y rol de vuelta a user.
// Solo el propietario o un miembro con CanExpelUsers; el propietario no es
// expulsable.
func (uc *CompanyUseCase) Expel(actorID, companyID, memberID string) error {
	company, actor, _, err := uc.loadTrio(actorID, companyID, memberID)
	if err != nil {
		return err
	}
	if actorID != company.OwnerID && !actor.CanExpelUsers {
		return domain.ErrForbidden
	}
	if memberID == company.OwnerID {
		return domain.ErrForbidden
	}
	return uc.userRepo.SetMembership(memberID, nil, entity.RoleUser)
}

// Leave abandona el equipo voluntariamente. El propietario no puede irse: debe
// borrar su cuenta (la Company cae en cascada).
func (uc *CompanyUseCase) Leave(userID, companyID string) error {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	if userID == company.OwnerID {
		return domain.ErrForbidden
	}
	return uc.userRepo.SetMembership(userID, nil, entity.RoleUser)
}

// loadTrio carga equipo, actor y miembro verificando que ambos pertenecen al equipo.
func (uc *CompanyUseCase) loadTrio(actorID, companyID, memberID string) (*entity.Company, *entity.User, *entity.User, error) {
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, nil, nil, err
	}
	if company == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	actor, err := uc.userRepo.GetByID(actorID)
	if err != nil || actor == nil {
		return nil, nil, nil, domain.ErrUserNotFound
	}
	member, err := uc.userRepo.GetByID(memberID)
	if err != nil || member == nil {
		return nil, nil, nil, domain.ErrUserNotFound
	}
	if !actor.HasTeam() || *actor.CompanyID != companyID {
		return nil, nil, nil, domain.ErrForbidden
	}
	if !member.HasTeam() || *member.CompanyID != companyID {
		return nil, nil, nil, domain.ErrNotFound
	}
	return company, actor, member, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
