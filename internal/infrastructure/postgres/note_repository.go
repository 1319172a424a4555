package postgres

import (
	"context"
	"fmt"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo implementación del puerto NoteRepository sobre PostgreSQL (usable con pool o tx).
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador de persistencia para notas. Pasar pool o tx (Querier).
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

// Create persiste una nota.
func (r *NoteRepo) Create(note *entity.Note) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO notes (id, car_id, content, type, date, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		note.ID, note.CarID, note.Content, note.Type, note.Date, note.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// ListByCar lista las notas de un coche, las más recientes primero.
func (r *NoteRepo) ListByCar(carID string) ([]*entity.Note, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, car_id, content, type, date, created_at FROM notes WHERE car_id = $1 ORDER BY date DESC`, carID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.CarID, &n.Content, &n.Type, &n.Date, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// DeleteByCarAndType borra todas las notas de un tipo de un coche. El resto de
// notas no se toca.
func (r *NoteRepo) DeleteByCarAndType(carID, noteType string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM notes WHERE car_id = $1 AND type = $2`, carID, noteType)
	if err != nil {
		return fmt.Errorf("delete notes by type: %w", err)
	}
	return nil
}

// DeleteByCar elimina una nota del coche indicado. El filtro por car_id impide
// borrar notas de otro coche aunque el ID sea válido.
func (r *NoteRepo) DeleteByCar(carID, id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM notes WHERE id = $1 AND car_id = $2`, id, carID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
