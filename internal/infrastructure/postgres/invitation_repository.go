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

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

const invitationColumns = `id, company_id, inviter_id, email, token, status, expires_at, created_at, updated_at`

// InvitationRepo implementación del puerto InvitationRepository sobre PostgreSQL (usable con pool o tx).
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador de persistencia para invitaciones. Pasar pool o tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

// Create persiste una invitación. El token es único.
func (r *InvitationRepo) Create(inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.InviterID, inv.Email, inv.Token, inv.Status,
		inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByToken obtiene una invitación por su token.
func (r *InvitationRepo) GetByToken(token string) (*entity.Invitation, error) {
	return r.getOne(`SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token)
}

// GetPendingByEmailAndCompany obtiene la invitación pendiente de un email en un equipo.
func (r *InvitationRepo) GetPendingByEmailAndCompany(email, companyID string) (*entity.Invitation, error) {
	return r.getOne(
		`SELECT `+invitationColumns+` FROM invitations
		 WHERE lower(email) = lower($1) AND company_id = $2 AND status = 'pending'`,
		email, companyID,
	)
}

// Update actualiza el estado de la invitación.
func (r *InvitationRepo) Update(inv *entity.Invitation) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invitations SET status = $2, updated_at = $3 WHERE id = $1`,
		inv.ID, inv.Status, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	return nil
}

// ListByCompany lista las invitaciones del equipo.
func (r *InvitationRepo) ListByCompany(companyID string) ([]*entity.Invitation, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+invitationColumns+` FROM invitations WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		var i entity.Invitation
		if err := scanInvitation(rows, &i); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Delete elimina una invitación.
func (r *InvitationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepo) getOne(query string, args ...any) (*entity.Invitation, error) {
	var i entity.Invitation
	err := scanInvitation(r.q.QueryRow(context.Background(), query, args...), &i)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &i, nil
}

func scanInvitation(row pgx.Row, i *entity.Invitation) error {
	return row.Scan(&i.ID, &i.CompanyID, &i.InviterID, &i.Email, &i.Token, &i.Status,
		&i.ExpiresAt, &i.CreatedAt, &i.UpdatedAt)
}
