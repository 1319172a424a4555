package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuyerDTO comprador o reservante de un coche.
type BuyerDTO struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CreateCarRequest alta de un coche. Price puede omitirse: el alta sin precio
// genera una notificación para completarlo.
type CreateCarRequest struct {
	Make          string           `json:"make" validate:"required"`
	Model         string           `json:"model" validate:"required"`
	Version       string           `json:"version"`
	Year          int              `json:"year"`
	LicensePlate  string           `json:"license_plate" validate:"required"`
	VIN           string           `json:"vin"`
	Kilometers    int              `json:"kilometers"`
	Fuel          string           `json:"fuel"`
	Transmission  string           `json:"transmission"`
	Color         string           `json:"color"`
	Keys          int              `json:"keys"`
	HasInsurance  bool             `json:"has_insurance"`
	Location      string           `json:"location"`
	Tags          []string         `json:"tags"`
	Price         *decimal.Decimal `json:"price"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
}

// UpdateCarRequest actualización parcial de los campos de ficha. El estado no
// se toca por aquí: usa el endpoint de cambio de estado.
type UpdateCarRequest struct {
	Make               *string          `json:"make"`
	Model              *string          `json:"model"`
	Version            *string          `json:"version"`
	Year               *int             `json:"year"`
	Kilometers         *int             `json:"kilometers"`
	Fuel               *string          `json:"fuel"`
	Transmission       *string          `json:"transmission"`
	Color              *string          `json:"color"`
	Keys               *int             `json:"keys"`
	HasInsurance       *bool            `json:"has_insurance"`
	Location           *string          `json:"location"`
	Tags               []string         `json:"tags"`
	Price              *decimal.Decimal `json:"price"`
	PurchasePrice      *decimal.Decimal `json:"purchase_price"`
	GestoriaPickupDate *time.Time       `json:"gestoria_pickup_date"`
	GestoriaReturnDate *time.Time       `json:"gestoria_return_date"`
}

// ChangeStatusRequest petición de cambio de estado con su carga asociada.
//   - Vendido:   SalePrice y Buyer obligatorios; SaleDate por defecto hoy.
//   - Reservado: Deposit y Note opcionales; Expiry opcional.
//   - Taller / En venta: sin carga.
type ChangeStatusRequest struct {
	Status    string           `json:"status" validate:"required"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	SaleDate  *time.Time       `json:"sale_date"`
	Buyer     *BuyerDTO        `json:"buyer"`

	Deposit *decimal.Decimal `json:"deposit"`
	Note    string           `json:"note"`
	Expiry  *time.Time       `json:"expiry"`
}

// CarResponse salida de un coche.
type CarResponse struct {
	ID                 string           `json:"id"`
	UserID             string           `json:"user_id"`
	CompanyID          *string          `json:"company_id"`
	Make               string           `json:"make"`
	Model              string           `json:"model"`
	Version            string           `json:"version"`
	Year               int              `json:"year"`
	LicensePlate       string           `json:"license_plate"`
	VIN                string           `json:"vin"`
	Kilometers         int              `json:"kilometers"`
	Fuel               string           `json:"fuel"`
	Transmission       string           `json:"transmission"`
	Color              string           `json:"color"`
	Keys               int              `json:"keys"`
	HasInsurance       bool             `json:"has_insurance"`
	Location           string           `json:"location"`
	Tags               []string         `json:"tags"`
	Price              *decimal.Decimal `json:"price"`
	PurchasePrice      *decimal.Decimal `json:"purchase_price"`
	SalePrice          *decimal.Decimal `json:"sale_price"`
	SaleDate           *time.Time       `json:"sale_date"`
	Buyer              *BuyerDTO        `json:"buyer"`
	ReservationDeposit *decimal.Decimal `json:"reservation_deposit"`
	ReservationExpiry  *time.Time       `json:"reservation_expiry"`
	ReservationPDFPath string           `json:"reservation_pdf_path"`
	GestoriaPickupDate *time.Time       `json:"gestoria_pickup_date"`
	GestoriaReturnDate *time.Time       `json:"gestoria_return_date"`
	InvoiceNumber      *int             `json:"invoice_number"`
	ProformaNumber     *int             `json:"proforma_number"`
	Status             string           `json:"status"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// CarListResponse lista paginada de coches.
type CarListResponse struct {
	Items []CarResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// CreateNoteRequest alta de una nota sobre un coche.
type CreateNoteRequest struct {
	Content string `json:"content" validate:"required"`
	Type    string `json:"type"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID      string    `json:"id"`
	CarID   string    `json:"car_id"`
	Content string    `json:"content"`
	Type    string    `json:"type"`
	Date    time.Time `json:"date"`
}

// CarDocumentResponse salida de un documento adjunto.
type CarDocumentResponse struct {
	ID           string    `json:"id"`
	CarID        string    `json:"car_id"`
	Kind         string    `json:"kind"`
	Path         string    `json:"path"`
	OriginalName string    `json:"originalname"`
	CreatedAt    time.Time `json:"created_at"`
}

// TestDriveRequest datos del conductor para el documento de prueba de vehículo.
type TestDriveRequest struct {
	DriverName    string `json:"driver_name" validate:"required"`
	DriverTaxID   string `json:"driver_tax_id" validate:"required"`
	DriverPhone   string `json:"driver_phone"`
	DriverLicense string `json:"driver_license"`
}

// GenerateInvoiceRequest parámetros de la factura o proforma.
type GenerateInvoiceRequest struct {
	Proforma      bool             `json:"proforma"`
	IGICRate      *decimal.Decimal `json:"igic_rate"` // si nil, tipo por defecto de config
	PaymentMethod string           `json:"payment_method"`
	Comments      string           `json:"comments"`
}
