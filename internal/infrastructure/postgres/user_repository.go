package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, company_id, email, password_hash, name, role, status,
	can_manage_roles, can_expel_users, tax_id, phone, address, street, city, province,
	postal_code, logo_path, avatar_path, subscription_status, subscription_expiry,
	stripe_customer_id, trial_start, trial_end, invoice_counter, proforma_counter,
	created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario nuevo. Email duplicado retorna ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.CompanyID, user.Email, user.PasswordHash, user.Name, user.Role, user.Status,
		user.CanManageRoles, user.CanExpelUsers, user.TaxID, user.Phone, user.Address,
		user.Street, user.City, user.Province, user.PostalCode, user.LogoPath, user.AvatarPath,
		user.SubscriptionStatus, user.SubscriptionExpiry, user.StripeCustomerID,
		user.TrialStart, user.TrialEnd, user.InvoiceCounter, user.ProformaCounter,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	return r.getOne(`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// Update actualiza el perfil. Los contadores, la membresía y la suscripción
// tienen sus propios métodos y no se tocan aquí.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET
			name = $2, tax_id = $3, phone = $4, address = $5, street = $6, city = $7,
			province = $8, postal_code = $9, logo_path = $10, avatar_path = $11,
			stripe_customer_id = $12, status = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.TaxID, user.Phone, user.Address, user.Street, user.City,
		user.Province, user.PostalCode, user.LogoPath, user.AvatarPath,
		user.StripeCustomerID, user.Status, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword fija el nuevo hash de contraseña.
func (r *UserRepo) UpdatePassword(id, passwordHash string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Delete da de baja la cuenta; el esquema arrastra en cascada lo que corresponde.
func (r *UserRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ListByCompany lista los miembros de un equipo.
func (r *UserRepo) ListByCompany(companyID string) ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY created_at`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// SetMembership fija (o limpia, con nil) el equipo del usuario y su rol.
func (r *UserRepo) SetMembership(userID string, companyID *string, role string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET company_id = $2, role = $3, updated_at = now() WHERE id = $1`,
		userID, companyID, role,
	)
	if err != nil {
		return fmt.Errorf("set membership: %w", err)
	}
	return nil
}

// SetPermissions actualiza los flags de permisos de equipo.
func (r *UserRepo) SetPermissions(userID string, canManageRoles, canExpelUsers bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET can_manage_roles = $2, can_expel_users = $3, updated_at = now() WHERE id = $1`,
		userID, canManageRoles, canExpelUsers,
	)
	if err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	return nil
}

// SetSubscription actualiza el estado de suscripción y su vencimiento.
func (r *UserRepo) SetSubscription(userID, status string, expiry *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET subscription_status = $2, subscription_expiry = $3, updated_at = now() WHERE id = $1`,
		userID, status, expiry,
	)
	if err != nil {
		return fmt.Errorf("set subscription: %w", err)
	}
	return nil
}

// ClaimInvoiceNumber reserva atómicamente el siguiente número de factura. El
// incremento y la lectura van en la misma sentencia: dos emisiones concurrentes
// de la misma cuenta nunca comparten número.
func (r *UserRepo) ClaimInvoiceNumber(userID string) (int, error) {
	return r.claim(userID, "invoice_counter")
}

// ClaimProformaNumber ídem para proformas.
func (r *UserRepo) ClaimProformaNumber(userID string) (int, error) {
	return r.claim(userID, "proforma_counter")
}

func (r *UserRepo) claim(userID, column string) (int, error) {
	query := fmt.Sprintf(
		`UPDATE users SET %s = %s + 1, updated_at = now() WHERE id = $1 RETURNING %s - 1`,
		column, column, column,
	)
	var n int
	if err := r.q.QueryRow(context.Background(), query, userID).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("claim %s: %w", column, err)
	}
	return n, nil
}

func (r *UserRepo) getOne(query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := scanUser(r.q.QueryRow(context.Background(), query, args...), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status,
		&u.CanManageRoles, &u.CanExpelUsers, &u.TaxID, &u.Phone, &u.Address,
		&u.Street, &u.City, &u.Province, &u.PostalCode, &u.LogoPath, &u.AvatarPath,
		&u.SubscriptionStatus, &u.SubscriptionExpiry, &u.StripeCustomerID,
		&u.TrialStart, &u.TrialEnd, &u.InvoiceCounter, &u.ProformaCounter,
		&u.CreatedAt, &u.UpdatedAt,
	)
}
