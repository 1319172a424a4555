package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest alta de un gasto. CarLicensePlate liga el gasto a un
// coche de la misma cuenta (opcional).
type CreateExpenseRequest struct {
	Date            time.Time       `json:"date" validate:"required"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	CarLicensePlate *string         `json:"car_license_plate"`

	IsRecurring           bool       `json:"is_recurring"`
	RecurrenceType        string     `json:"recurrence_type"`
	RecurrenceCustomValue *int       `json:"recurrence_custom_value"`
	RecurrenceEndDate     *time.Time `json:"recurrence_end_date"`
}

// UpdateExpenseRequest actualización parcial de un gasto.
type UpdateExpenseRequest struct {
	Date            *time.Time       `json:"date"`
	Category        *string          `json:"category"`
	Description     *string          `json:"description"`
	Amount          *decimal.Decimal `json:"amount"`
	CarLicensePlate *string          `json:"car_license_plate"`

	IsRecurring           *bool      `json:"is_recurring"`
	RecurrenceType        *string    `json:"recurrence_type"`
	RecurrenceCustomValue *int       `json:"recurrence_custom_value"`
	RecurrenceEndDate     *time.Time `json:"recurrence_end_date"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Date            time.Time       `json:"date"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CarLicensePlate *string         `json:"car_license_plate"`

	IsRecurring           bool       `json:"is_recurring"`
	RecurrenceType        string     `json:"recurrence_type,omitempty"`
	RecurrenceCustomValue *int       `json:"recurrence_custom_value,omitempty"`
	RecurrenceEndDate     *time.Time `json:"recurrence_end_date,omitempty"`
	NextRecurrenceDate    *time.Time `json:"next_recurrence_date,omitempty"`

	Attachments []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// AttachmentResponse justificante adjunto.
type AttachmentResponse struct {
	ID           string `json:"id"`
	Path         string `json:"path"`
	OriginalName string `json:"originalname"`
}

// ExpenseListResponse lista paginada de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
