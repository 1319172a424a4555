package dto

import "time"

// RegisterRequest entrada de registro de cuenta.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"` // user (por defecto) o technician
}

// LoginRequest entrada de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest actualización parcial del perfil (membrete incluido).
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	TaxID      *string `json:"tax_id"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"` // campo heredado de una línea
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postal_code"`
}

// ChangePasswordRequest cambio de contraseña autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID                 string     `json:"id"`
	CompanyID          *string    `json:"company_id"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Role               string     `json:"role"`
	Status             string     `json:"status"`
	CanManageRoles     bool       `json:"can_manage_roles"`
	CanExpelUsers      bool       `json:"can_expel_users"`
	TaxID              string     `json:"tax_id"`
	Phone              string     `json:"phone"`
	Address            string     `json:"address"`
	Street             string     `json:"street"`
	City               string     `json:"city"`
	Province           string     `json:"province"`
	PostalCode         string     `json:"postal_code"`
	AvatarPath         string     `json:"avatar_path"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry"`
	TrialEnd           *time.Time `json:"trial_end"`
	InvoiceCounter     int        `json:"invoice_counter"`
	ProformaCounter    int        `json:"proforma_counter"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
