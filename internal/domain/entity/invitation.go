package entity

import "time"

// Estados de Invitation.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationExpired  = "expired"
)

// Invitation invita por email a unirse al equipo del invitador. El token es
// único y se consume una sola vez (pending -> accepted) o caduca.
type Invitation struct {
	ID        string
	CompanyID string
	InviterID string
	Email     string
	Token     string
	Status    string // pending, accepted, expired
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired informa si la invitación ya pasó su fecha límite.
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
