package dto

import "time"

// CreateIncidentRequest alta de una incidencia sobre un coche.
type CreateIncidentRequest struct {
	CarID       string    `json:"car_id" validate:"required"`
	Date        time.Time `json:"date"`
	Description string    `json:"description" validate:"required"`
}

// UpdateIncidentRequest actualización parcial de una incidencia.
type UpdateIncidentRequest struct {
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"` // abierta | resuelta
}

// IncidentResponse salida de una incidencia.
type IncidentResponse struct {
	ID           string    `json:"id"`
	CarID        string    `json:"car_id"`
	LicensePlate string    `json:"license_plate"`
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IncidentListResponse lista paginada de incidencias.
type IncidentListResponse struct {
	Items []IncidentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
