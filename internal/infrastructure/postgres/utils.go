package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dventura/autogest-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// mapUniqueViolation traduce una violación de unicidad al error de dominio que
// corresponde según la constraint que saltó. Cubre la carrera que sobrevive al
// pre-chequeo de duplicados del caso de uso.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "cars_user_plate_key":
		return domain.ErrDuplicatePlate
	case "cars_vin_key":
		return domain.ErrDuplicateVIN
	case "users_email_key":
		return domain.ErrEmailAlreadyExists
	default:
		return domain.ErrDuplicate
	}
}
