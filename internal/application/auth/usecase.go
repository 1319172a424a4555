package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
	"github.com/dventura/autogest-api/pkg/jwt"
	"github.com/dventura/autogest-api/pkg/spanishid"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de cuenta: registro, login, perfil, contraseña y baja.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	jwtCfg    JWTConfig
	trialDays int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, notifRepo repository.NotificationRepository, jwtCfg JWTConfig, trialDays int) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, notifRepo: notifRepo, jwtCfg: jwtCfg, trialDays: trialDays}
}

// Register crea una cuenta: hashea password con bcrypt y persiste. Las cuentas
// de compraventa (technician) arrancan con ventana de prueba y notificación.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleTechnician {
		// admin y technician_subscribed no se autoasignan en el registro
		return nil, domain.ErrInvalidInput
	}

	user := &entity.User{
		ID:                 uuid.New().String(),
		Email:              in.Email,
		PasswordHash:       string(hash),
		Name:               name,
		Role:               role,
		Status:             "active",
		SubscriptionStatus: entity.SubscriptionNone,
		InvoiceCounter:     1,
		ProformaCounter:    1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if role == entity.RoleTechnician {
		trialEnd := now.AddDate(0, 0, uc.trialDays)
		user.SubscriptionStatus = entity.SubscriptionTrial
		user.TrialStart = &now
		user.TrialEnd = &trialEnd
	}

	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	if user.SubscriptionStatus == entity.SubscriptionTrial {
		_ = uc.notifRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Type:      entity.NotifSuscripcion,
			Message:   "Tu periodo de prueba ha comenzado.",
			CreatedAt: now,
		})
	}

	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// GetProfile devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile aplica una actualización parcial del perfil. El TaxID, si
// viene, debe pasar el checksum de DNI/NIE/CIF.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.TaxID != nil {
		if *in.TaxID != "" && !spanishid.IsValid(*in.TaxID) {
			return nil, domain.ErrInvalidTaxID
		}
		user.TaxID = spanishid.Normalize(*in.TaxID)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Address != nil {
		user.Address = *in.Address
	}
	if in.Street != nil {
		user.Street = *in.Street
	}
	if in.City != nil {
		user.City = *in.City
	}
	if in.Province != nil {
		user.Province = *in.Province
	}
	if in.PostalCode != nil {
		user.PostalCode = *in.PostalCode
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// SetAvatar guarda la ruta del avatar subido.
func (uc *AuthUseCase) SetAvatar(userID, path string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.AvatarPath = path
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ChangePassword verifica la contraseña actual y fija la nueva.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(userID, string(hash))
}

// DeleteAccount da de baja la cuenta. Si el usuario es propietario de un
// equipo, la Company cae en cascada y los miembros quedan sin equipo
// (SET NULL); ambas reglas viven en el esquema.
func (uc *AuthUseCase) DeleteAccount(userID string) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(userID)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                 u.ID,
		CompanyID:          u.CompanyID,
		Email:              u.Email,
		Name:               u.Name,
		Role:               u.Role,
		Status:             u.Status,
		CanManageRoles:     u.CanManageRoles,
		CanExpelUsers:      u.CanExpelUsers,
		TaxID:              u.TaxID,
		Phone:              u.Phone,
		Address:            u.Address,
		Street:             u.Street,
		City:               u.City,
		Province:           u.Province,
		PostalCode:         u.PostalCode,
		AvatarPath:         u.AvatarPath,
		SubscriptionStatus: u.SubscriptionStatus,
		SubscriptionExpiry: u.SubscriptionExpiry,
		TrialEnd:           u.TrialEnd,
		InvoiceCounter:     u.InvoiceCounter,
		ProformaCounter:    u.ProformaCounter,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
