package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.CarDocumentRepository = (*CarDocumentRepo)(nil)

// CarDocumentRepo implementación del puerto CarDocumentRepository sobre PostgreSQL (usable con pool o tx).
type CarDocumentRepo struct {
	q Querier
}

// NewCarDocumentRepository construye el adaptador de persistencia para documentos de coche. Pasar pool o tx (Querier).
func NewCarDocumentRepository(q Querier) *CarDocumentRepo {
	return &CarDocumentRepo{q: q}
}

// Create persiste un documento.
func (r *CarDocumentRepo) Create(doc *entity.CarDocument) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO car_documents (id, car_id, kind, path, original_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID, doc.CarID, doc.Kind, doc.Path, doc.OriginalName, doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert car document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *CarDocumentRepo) GetByID(id string) (*entity.CarDocument, error) {
	var d entity.CarDocument
	err := r.q.QueryRow(context.Background(),
		`SELECT id, car_id, kind, path, original_name, created_at FROM car_documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.CarID, &d.Kind, &d.Path, &d.OriginalName, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get car document: %w", err)
	}
	return &d, nil
}

// ListByCar lista los documentos de un coche.
func (r *CarDocumentRepo) ListByCar(carID string) ([]*entity.CarDocument, error) {
	return r.list(`SELECT id, car_id, kind, path, original_name, created_at
		FROM car_documents WHERE car_id = $1 ORDER BY created_at DESC`, carID)
}

// ListByCarAndKind lista los documentos de un coche de una clase concreta.
func (r *CarDocumentRepo) ListByCarAndKind(carID, kind string) ([]*entity.CarDocument, error) {
	return r.list(`SELECT id, car_id, kind, path, original_name, created_at
		FROM car_documents WHERE car_id = $1 AND kind = $2 ORDER BY created_at DESC`, carID, kind)
}

// DeleteByCar elimina un documento del coche indicado. El filtro por car_id
// impide borrar documentos de otro coche aunque el ID sea válido.
func (r *CarDocumentRepo) DeleteByCar(carID, id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM car_documents WHERE id = $1 AND car_id = $2`, id, carID)
	if err != nil {
		return fmt.Errorf("delete car document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CarDocumentRepo) list(query string, args ...any) ([]*entity.CarDocument, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list car documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.CarDocument
	for rows.Next() {
		var d entity.CarDocument
		if err := rows.Scan(&d.ID, &d.CarID, &d.Kind, &d.Path, &d.OriginalName, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan car document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
