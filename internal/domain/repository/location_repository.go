package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location.
// La deduplicación sin mayúsculas/acentos vive en la capa de aplicación;
// aquí solo hay CRUD plano (no hay constraint en DB, como en el esquema original).
type LocationRepository interface {
	Create(location *entity.Location) error
	ListByUser(userID string) ([]*entity.Location, error)
	ListByCompany(companyID string) ([]*entity.Location, error)
	// Delete borra una ubicación visible por la cuenta: propia o, si
	// companyID no es nulo, del equipo. Devuelve ErrNotFound si no alcanza.
	Delete(id, userID string, companyID *string) error
}
