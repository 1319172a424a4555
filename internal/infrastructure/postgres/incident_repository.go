package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.IncidentRepository = (*IncidentRepo)(nil)

const incidentColumns = `id, car_id, license_plate, date, description, status, created_at, updated_at`

// IncidentRepo implementación del puerto IncidentRepository sobre PostgreSQL (usable con pool o tx).
type IncidentRepo struct {
	q Querier
}

// NewIncidentRepository construye el adaptador de persistencia para incidencias. Pasar pool o tx (Querier).
func NewIncidentRepository(q Querier) *IncidentRepo {
	return &IncidentRepo{q: q}
}

// Create persiste una incidencia.
func (r *IncidentRepo) Create(incident *entity.Incident) error {
	query := `
		INSERT INTO incidents (` + incidentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		incident.ID, incident.CarID, incident.LicensePlate, incident.Date,
		incident.Description, incident.Status, incident.CreatedAt, incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

// GetByID obtiene una incidencia por ID.
func (r *IncidentRepo) GetByID(id string) (*entity.Incident, error) {
	var i entity.Incident
	err := scanIncident(r.q.QueryRow(context.Background(),
		`SELECT `+incidentColumns+` FROM incidents WHERE id = $1`, id), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}
	return &i, nil
}

// Update actualiza una incidencia.
func (r *IncidentRepo) Update(incident *entity.Incident) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE incidents SET date = $2, description = $3, status = $4, updated_at = $5 WHERE id = $1`,
		incident.ID, incident.Date, incident.Description, incident.Status, incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update incident: %w", err)
	}
	return nil
}

// Delete elimina una incidencia.
func (r *IncidentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM incidents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete incident: %w", err)
	}
	return nil
}

// ListByCar lista las incidencias de un coche.
func (r *IncidentRepo) ListByCar(carID string) ([]*entity.Incident, error) {
	return r.list(`SELECT `+incidentColumns+` FROM incidents WHERE car_id = $1 ORDER BY date DESC`, carID)
}

// ListByUser lista las incidencias de los coches del usuario con paginación.
func (r *IncidentRepo) ListByUser(userID string, limit, offset int) ([]*entity.Incident, error) {
	return r.list(`SELECT i.id, i.car_id, i.license_plate, i.date, i.description, i.status, i.created_at, i.updated_at
		FROM incidents i JOIN cars c ON c.id = i.car_id
		WHERE c.user_id = $1 ORDER BY i.date DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
}

func (r *IncidentRepo) list(query string, args ...any) ([]*entity.Incident, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Incident
	for rows.Next() {
		var i entity.Incident
		if err := scanIncident(rows, &i); err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func scanIncident(row pgx.Row, i *entity.Incident) error {
	return row.Scan(&i.ID, &i.CarID, &i.LicensePlate, &i.Date, &i.Description, &i.Status, &i.CreatedAt, &i.UpdatedAt)
}
