package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// IncidentRepository define el puerto de persistencia para Incident.
type IncidentRepository interface {
	Create(incident *entity.Incident) error
	GetByID(id string) (*entity.Incident, error)
	Update(incident *entity.Incident) error
	Delete(id string) error
	ListByCar(carID string) ([]*entity.Incident, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Incident, error)
}
