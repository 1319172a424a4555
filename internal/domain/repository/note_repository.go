package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// NoteRepository define el puerto de persistencia para Note.
type NoteRepository interface {
	Create(note *entity.Note) error
	ListByCar(carID string) ([]*entity.Note, error)
	// DeleteByCarAndType borra todas las notas de un tipo (p.ej. las de
	// Reserva al cancelar) y conserva el resto.
	DeleteByCarAndType(carID, noteType string) error
	// DeleteByCar borra una nota solo si pertenece al coche indicado.
	// Devuelve ErrNotFound si no existe o es de otro coche.
	DeleteByCar(carID, id string) error
}
