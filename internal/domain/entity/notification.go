package entity

import "time"

// Tipos de notificación emitidos por el sistema.
const (
	NotifCocheSinPrecio = "coche_sin_precio"
	NotifSuscripcion    = "suscripcion"
	NotifReservaCaduca  = "reserva_caduca"
	NotifInvitacion     = "invitacion"
)

// Notification aviso en la bandeja del usuario. CarID se pone a NULL si el
// coche se borra; la fila cae en cascada con el usuario.
type Notification struct {
	ID        string
	UserID    string
	CarID     *string
	Type      string // ver constantes Notif*
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}
