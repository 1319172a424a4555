package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Coches
	ErrDuplicatePlate    = errors.New("la matrícula ya está registrada en esta cuenta")
	ErrDuplicateVIN      = errors.New("el bastidor (VIN) ya está registrado")
	ErrInvalidPlate      = errors.New("matrícula con formato inválido")
	ErrInvalidVIN        = errors.New("bastidor (VIN) con formato inválido")
	ErrInvalidTransition = errors.New("cambio de estado no permitido")
	ErrMissingSaleData   = errors.New("faltan datos de la venta")
	ErrInvalidDeposit    = errors.New("la señal de reserva debe ser mayor que cero")
	ErrInvalidTaxID      = errors.New("DNI/NIE/CIF inválido")

	// Invitaciones
	ErrInvitationExpired  = errors.New("la invitación ha caducado")
	ErrInvitationConsumed = errors.New("la invitación ya fue utilizada")

	// Suscripción
	ErrSubscriptionRequired = errors.New("se requiere una suscripción activa")
)
