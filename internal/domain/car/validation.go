package car

import (
	"regexp"
	"strings"

	"github.com/dventura/autogest-api/internal/domain"
)

var (
	// Matrícula actual (0000BBB, sin vocales) o provincial antigua (GC-1234-AB).
	plateModern = regexp.MustCompile(`^[0-9]{4}[BCDFGHJKLMNPRSTVWXYZ]{3}$`)
	plateOld    = regexp.MustCompile(`^[A-Z]{1,3}[0-9]{4}[A-Z]{0,2}$`)

	// VIN de 17 caracteres, sin I, O ni Q.
	vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
)

// NormalizePlate deja la matrícula en mayúsculas y sin espacios ni guiones.
func NormalizePlate(plate string) string {
	s := strings.ToUpper(strings.TrimSpace(plate))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// ValidatePlate valida la matrícula ya normalizada.
func ValidatePlate(plate string) error {
	s := NormalizePlate(plate)
	if s == "" {
		return domain.ErrInvalidPlate
	}
	if !plateModern.MatchString(s) && !plateOld.MatchString(s) {
		return domain.ErrInvalidPlate
	}
	return nil
}

// NormalizeVIN deja el bastidor en mayúsculas sin espacios.
func NormalizeVIN(vin string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(vin), " ", ""))
}

// ValidateVIN valida el bastidor. Vacío se admite (hay coches antiguos sin
// VIN legible); si viene, debe tener el formato estándar.
func ValidateVIN(vin string) error {
	s := NormalizeVIN(vin)
	if s == "" {
		return nil
	}
	if !vinPattern.MatchString(s) {
		return domain.ErrInvalidVIN
	}
	return nil
}
