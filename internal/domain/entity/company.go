package entity

import "time"

// Company representa un equipo de compraventa (multi-tenant). El propietario
// es un User; borrar al propietario borra la Company en cascada y los miembros
// quedan sin equipo (SET NULL en users.company_id).
type Company struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
