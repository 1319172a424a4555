package dto

import "time"

// CreateLocationRequest alta de una ubicación.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
