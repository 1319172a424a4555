package entity

import "time"

// Estados de una incidencia.
const (
	IncidentAbierta  = "abierta"
	IncidentResuelta = "resuelta"
)

// Incident avería o problema asociado a un coche. La matrícula se desnormaliza
// para que el historial sobreviva a renombrados; la fila cae en cascada si se
// borra el coche.
type Incident struct {
	ID           string
	CarID        string
	LicensePlate string
	Date         time.Time
	Description  string
	Status       string // abierta, resuelta
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
