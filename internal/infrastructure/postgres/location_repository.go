package postgres

import (
	"context"
	"fmt"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación.
func (r *LocationRepo) Create(location *entity.Location) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO locations (id, user_id, company_id, name, created_at) VALUES ($1, $2, $3, $4, $5)`,
		location.ID, location.UserID, location.CompanyID, location.Name, location.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// ListByUser lista las ubicaciones del usuario.
func (r *LocationRepo) ListByUser(userID string) ([]*entity.Location, error) {
	return r.list(`SELECT id, user_id, company_id, name, created_at FROM locations WHERE user_id = $1 ORDER BY name`, userID)
}

// ListByCompany lista las ubicaciones del equipo.
func (r *LocationRepo) ListByCompany(companyID string) ([]*entity.Location, error) {
	return r.list(`SELECT id, user_id, company_id, name, created_at FROM locations WHERE company_id = $1 ORDER BY name`, companyID)
}

// Delete elimina una ubicación propia o, con equipo, una compartida del equipo.
func (r *LocationRepo) Delete(id, userID string, companyID *string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM locations
		 WHERE id = $1 AND (user_id = $2 OR ($3::uuid IS NOT NULL AND company_id = $3))`,
		id, userID, companyID)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) list(query string, args ...any) ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.UserID, &l.CompanyID, &l.Name, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
