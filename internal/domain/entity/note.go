package entity

import "time"

// Tipos de nota sobre un coche. Las notas de tipo Reserva se eliminan al
// cancelar la reserva; el resto se conserva.
const (
	NoteGeneral  = "General"
	NoteReserva  = "Reserva"
	NoteTaller   = "Taller"
	NoteGestoria = "Gestoría"
)

// Note anotación fechada sobre un coche (tabla propia, borrado en cascada con el coche).
type Note struct {
	ID        string
	CarID     string
	Content   string
	Type      string // ver constantes Note*
	Date      time.Time
	CreatedAt time.Time
}
