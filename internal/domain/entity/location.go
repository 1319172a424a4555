package entity

import "time"

// Location etiqueta de ubicación de los coches (campa, nave, exposición...).
// La deduplicación es por comparación sin mayúsculas ni acentos en la capa de
// aplicación; no hay constraint en DB.
type Location struct {
	ID        string
	UserID    string
	CompanyID *string
	Name      string
	CreatedAt time.Time
}
