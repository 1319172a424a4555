// Package expense contiene la proyección pura de recurrencia de gastos:
// cuándo tocaría el siguiente apunte según el tipo de recurrencia.
package expense

import (
	"time"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

// NextDate calcula la próxima fecha de recurrencia a partir de la fecha del
// gasto. Devuelve nil si la próxima fecha superaría endDate (si lo hay).
//
//   - daily:   fecha + 1 día
//   - weekly:  fecha + 7 días
//   - monthly: fecha + 1 mes natural (AddDate normaliza fin de mes)
//   - custom:  fecha + customDays días, customDays > 0
func NextDate(date time.Time, recurrenceType string, customDays *int, endDate *time.Time) (*time.Time, error) {
	var next time.Time
	switch recurrenceType {
	case entity.RecurrenceDaily:
		next = date.AddDate(0, 0, 1)
	case entity.RecurrenceWeekly:
		next = date.AddDate(0, 0, 7)
	case entity.RecurrenceMonthly:
		next = date.AddDate(0, 1, 0)
	case entity.RecurrenceCustom:
		if customDays == nil || *customDays <= 0 {
			return nil, domain.ErrInvalidInput
		}
		next = date.AddDate(0, 0, *customDays)
	default:
		return nil, domain.ErrInvalidInput
	}
	if endDate != nil && next.After(*endDate) {
		return nil, nil
	}
	return &next, nil
}
