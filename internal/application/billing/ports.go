package billing

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainbilling "github.com/dventura/autogest-api/internal/domain/billing"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del
// ciclo documental (coche, notas, documentos y contadores del usuario).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		carRepo repository.CarRepository,
		noteRepo repository.NoteRepository,
		docRepo repository.CarDocumentRepository,
		userRepo repository.UserRepository,
	) error) error
}

// SellerSnapshot membrete del emisor tal y como va al documento.
type SellerSnapshot struct {
	Name        string
	TaxID       string
	Phone       string
	Email       string
	AddressLine string
	LogoPath    string
}

// SnapshotSeller monta el membrete desde los campos estructurados de dirección,
// con fallback al campo heredado de una sola línea.
func SnapshotSeller(u *entity.User) SellerSnapshot {
	var parts []string
	if u.Street != "" {
		parts = append(parts, u.Street)
	}
	cityLine := strings.TrimSpace(strings.TrimLeft(u.PostalCode+" "+u.City, " "))
	if cityLine != "" {
		parts = append(parts, cityLine)
	}
	if u.Province != "" {
		parts = append(parts, u.Province)
	}
	line := strings.Join(parts, ", ")
	if line == "" {
		line = u.Address // dirección heredada de una línea
	}
	return SellerSnapshot{
		Name:        u.Name,
		TaxID:       u.TaxID,
		Phone:       u.Phone,
		Email:       u.Email,
		AddressLine: line,
		LogoPath:    u.LogoPath,
	}
}

// VehicleSnapshot identificación del vehículo en el documento.
type VehicleSnapshot struct {
	Make         string
	Model        string
	Version      string
	Year         int
	LicensePlate string
	VIN          string
	Kilometers   int
}

// SnapshotVehicle extrae la identificación del coche.
func SnapshotVehicle(c *entity.Car) VehicleSnapshot {
	return VehicleSnapshot{
		Make:         c.Make,
		Model:        c.Model,
		Version:      c.Version,
		Year:         c.Year,
		LicensePlate: c.LicensePlate,
		VIN:          c.VIN,
		Kilometers:   c.Kilometers,
	}
}

// InvoiceDocData datos completos de una factura o proforma.
type InvoiceDocData struct {
	Number        int
	Proforma      bool
	Date          time.Time
	Seller        SellerSnapshot
	Buyer         entity.BuyerDetails
	Vehicle       VehicleSnapshot
	Breakdown     domainbilling.Breakdown
	PaymentMethod string
	Comments      string
}

// ReservationDocData datos del contrato de reserva.
type ReservationDocData struct {
	Date    time.Time
	Seller  SellerSnapshot
	Buyer   entity.BuyerDetails
	Vehicle VehicleSnapshot
	Deposit *decimal.Decimal
	Expiry  *time.Time
}

// TestDriveDocData datos del documento de prueba de vehículo.
type TestDriveDocData struct {
	Date          time.Time
	Seller        SellerSnapshot
	Vehicle       VehicleSnapshot
	DriverName    string
	DriverTaxID   string
	DriverPhone   string
	DriverLicense string
}

// DocumentGenerator transforma snapshots en PDFs. Función pura de sus datos.
type DocumentGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data InvoiceDocData) ([]byte, error)
	GenerateReservationPDF(ctx context.Context, data ReservationDocData) ([]byte, error)
	GenerateTestDrivePDF(ctx context.Context, data TestDriveDocData) ([]byte, error)
}

// FileStore persiste un documento generado y devuelve su ruta relativa.
type FileStore interface {
	SaveDocument(filename string, data []byte) (string, error)
}
