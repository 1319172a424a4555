package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// CarDocumentRepository define el puerto de persistencia para CarDocument.
type CarDocumentRepository interface {
	Create(doc *entity.CarDocument) error
	GetByID(id string) (*entity.CarDocument, error)
	ListByCar(carID string) ([]*entity.CarDocument, error)
	ListByCarAndKind(carID, kind string) ([]*entity.CarDocument, error)
	// DeleteByCar borra un documento solo si pertenece al coche indicado.
	// Devuelve ErrNotFound si no existe o es de otro coche.
	DeleteByCar(carID, id string) error
}
