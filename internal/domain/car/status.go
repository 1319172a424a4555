// Package car contiene las reglas puras del ciclo de vida de un coche:
// qué cambios de estado son legales y qué datos exige cada uno.
package car

import (
	"github.com/shopspring/decimal"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/pkg/spanishid"
)

// transitions tabla de cambios de estado permitidos. Vendido es terminal:
// no aparece como origen.
var transitions = map[string]map[string]bool{
	entity.CarEnVenta: {
		entity.CarReservado: true,
		entity.CarVendido:   true,
		entity.CarTaller:    true,
	},
	entity.CarReservado: {
		entity.CarEnVenta: true, // cancelación de la reserva
		entity.CarVendido: true,
		entity.CarTaller:  true,
	},
	entity.CarTaller: {
		entity.CarEnVenta:   true,
		entity.CarReservado: true,
		entity.CarVendido:   true,
	},
}

// CanTransition informa si el cambio de estado from -> to es legal.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	return transitions[from][to]
}

// ValidateTransition devuelve ErrInvalidTransition si el cambio no es legal.
func ValidateTransition(from, to string) error {
	if !CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}
	return nil
}

// SaleData carga obligatoria de un paso a Vendido.
type SaleData struct {
	SalePrice decimal.Decimal
	Buyer     entity.BuyerDetails
}

// Validate exige precio de venta positivo y comprador completo: nombre,
// DNI/NIE/CIF con checksum correcto, algún dato de contacto y dirección.
func (d SaleData) Validate() error {
	if !d.SalePrice.IsPositive() {
		return domain.ErrMissingSaleData
	}
	if d.Buyer.Name == "" || d.Buyer.Address == "" {
		return domain.ErrMissingSaleData
	}
	if d.Buyer.Phone == "" && d.Buyer.Email == "" {
		return domain.ErrMissingSaleData
	}
	if !spanishid.IsValid(d.Buyer.TaxID) {
		return domain.ErrInvalidTaxID
	}
	return nil
}

// ReservationData carga opcional de un paso a Reservado.
type ReservationData struct {
	Deposit *decimal.Decimal
	Note    string
}

// Validate acepta reserva sin señal; si la hay, debe ser > 0.
func (d ReservationData) Validate() error {
	if d.Deposit != nil && !d.Deposit.IsPositive() {
		return domain.ErrInvalidDeposit
	}
	return nil
}
