package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un coche. Vendido es terminal.
const (
	CarEnVenta   = "En venta"
	CarVendido   = "Vendido"
	CarReservado = "Reservado"
	CarTaller    = "Taller"
)

// BuyerDetails datos del comprador (o del reservante). Se persisten como jsonb
// en la fila del coche; solo se rellenan al vender o reservar.
type BuyerDetails struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"` // DNI/NIE o CIF, validado con checksum
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Car es la entidad central del concesionario.
//
// Invariantes de consistencia estado/campos:
//   - Vendido   => SalePrice y Buyer rellenos.
//   - Reservado => si hay señal, ReservationDeposit > 0; ReservationPDFPath asignado.
//
// La matrícula es única por cuenta (UNIQUE(user_id, license_plate)); el VIN es
// único global.
type Car struct {
	ID        string
	UserID    string
	CompanyID *string

	Make         string
	Model        string
	Version      string
	Year         int
	LicensePlate string // normalizada: mayúsculas, sin espacios ni guiones
	VIN          string // 17 caracteres, sin I/O/Q
	Kilometers   int
	Fuel         string
	Transmission string
	Color        string
	Keys         int // llaves entregadas, 1-3
	HasInsurance bool
	Location     string
	Tags         []string // jsonb

	// Precios (nil = sin informar; un alta sin Price emite notificación).
	Price         *decimal.Decimal
	PurchasePrice *decimal.Decimal

	// Venta.
	SalePrice *decimal.Decimal
	SaleDate  *time.Time
	Buyer     *BuyerDetails

	// Reserva.
	ReservationDeposit *decimal.Decimal
	ReservationExpiry  *time.Time
	ReservationPDFPath string

	// Trámites de gestoría.
	GestoriaPickupDate *time.Time
	GestoriaReturnDate *time.Time

	// Numeración estampada al generar el documento (snapshot del contador).
	InvoiceNumber  *int
	ProformaNumber *int

	Status    string // ver constantes Car*
	CreatedAt time.Time
	UpdatedAt time.Time
}
