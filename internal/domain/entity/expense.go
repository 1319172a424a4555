package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de recurrencia de un gasto.
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
	RecurrenceCustom  = "custom" // intervalo en días en RecurrenceCustomValue
)

// Categorías normalizadas de gasto. Cualquier otra cadena se conserva como
// categoría libre del usuario.
var ExpenseCategories = []string{
	"Compra",
	"Reparación",
	"Mantenimiento",
	"Seguro",
	"Impuestos",
	"Combustible",
	"Gestoría",
	"Otros",
}

// Expense apunte del libro de gastos. Append-only salvo edición explícita;
// opcionalmente ligado a un coche por matrícula (se desliga si el coche se borra).
type Expense struct {
	ID              string
	UserID          string
	CompanyID       *string
	Date            time.Time
	Category        string
	Description     string
	Amount          decimal.Decimal
	CarLicensePlate *string

	// Recurrencia: solo almacenamiento del campo proyectado; no existe un
	// job que materialice apuntes futuros.
	IsRecurring           bool
	RecurrenceType        string // daily, weekly, monthly, custom
	RecurrenceCustomValue *int   // días, solo para custom
	RecurrenceEndDate     *time.Time
	NextRecurrenceDate    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpenseAttachment justificante adjunto a un gasto.
type ExpenseAttachment struct {
	ID           string
	ExpenseID    string
	Path         string
	OriginalName string
	CreatedAt    time.Time
}
