package dto

import "time"

// CreateCompanyRequest alta de un equipo.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CompanyResponse salida de un equipo.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemberResponse miembro del equipo con sus permisos.
type MemberResponse struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	CanManageRoles bool   `json:"can_manage_roles"`
	CanExpelUsers  bool   `json:"can_expel_users"`
	IsOwner        bool   `json:"is_owner"`
}

// UpdatePermissionsRequest cambia los flags de un miembro.
type UpdatePermissionsRequest struct {
	CanManageRoles *bool `json:"can_manage_roles"`
	CanExpelUsers  *bool `json:"can_expel_users"`
}

// InviteRequest invitación por email al equipo.
type InviteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// InvitationResponse salida de una invitación.
type InvitationResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
