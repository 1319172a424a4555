package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para equipos. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste un equipo nuevo.
func (r *CompanyRepo) Create(company *entity.Company) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO companies (id, name, owner_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		company.ID, company.Name, company.OwnerID, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.getOne(`SELECT id, name, owner_id, created_at, updated_at FROM companies WHERE id = $1`, id)
}

// GetByOwner obtiene el equipo del que el usuario es propietario.
func (r *CompanyRepo) GetByOwner(ownerID string) (*entity.Company, error) {
	return r.getOne(`SELECT id, name, owner_id, created_at, updated_at FROM companies WHERE owner_id = $1`, ownerID)
}

// Update actualiza el nombre del equipo.
func (r *CompanyRepo) Update(company *entity.Company) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE companies SET name = $2, updated_at = $3 WHERE id = $1`,
		company.ID, company.Name, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete elimina un equipo; los miembros quedan sin equipo por el SET NULL.
func (r *CompanyRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) getOne(query string, args ...any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.Name, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
