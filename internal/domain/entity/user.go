package entity

import "time"

// Roles válidos para User.
const (
	RoleUser                 = "user"
	RoleAdmin                = "admin"
	RoleTechnician           = "technician"
	RoleTechnicianSubscribed = "technician_subscribed"
)

// Estados de suscripción.
const (
	SubscriptionNone     = "none"
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// User representa una cuenta del sistema. CompanyID nulo significa que no
// pertenece a ningún equipo. Los contadores de factura/proforma arrancan en 1
// y nunca se reinician.
type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // user, admin, technician, technician_subscribed
	Status       string // active, inactive, suspended

	// Permisos dentro del equipo (los concede el propietario de la Company).
	CanManageRoles bool
	CanExpelUsers  bool

	// Datos fiscales y de membrete para los documentos generados.
	TaxID      string // DNI/NIE/CIF del emisor
	Phone      string
	Address    string // campo heredado de una sola línea, fallback del membrete
	Street     string
	City       string
	Province   string
	PostalCode string
	LogoPath   string
	AvatarPath string

	// Suscripción y ventana de prueba.
	SubscriptionStatus string // ver constantes Subscription*
	SubscriptionExpiry *time.Time
	StripeCustomerID   string
	TrialStart         *time.Time
	TrialEnd           *time.Time

	// Numeración de documentos (valor a usar en el próximo documento).
	InvoiceCounter  int
	ProformaCounter int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTechnician informa si la cuenta es de compraventa (con o sin suscripción).
func (u *User) IsTechnician() bool {
	return u.Role == RoleTechnician || u.Role == RoleTechnicianSubscribed
}

// HasTeam informa si el usuario pertenece a un equipo.
func (u *User) HasTeam() bool {
	return u.CompanyID != nil && *u.CompanyID != ""
}
