package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	domainbilling "github.com/dventura/autogest-api/internal/domain/billing"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
	"github.com/dventura/autogest-api/pkg/spanishid"
)

// DocumentUseCase genera los documentos de venta (factura, proforma, prueba de
// vehículo) y gestiona la numeración por usuario.
//
// La numeración se reserva con un incremento atómico en DB dentro de la misma
// transacción que estampa el número en el coche y registra el documento, de
// forma que dos generaciones concurrentes de la misma cuenta nunca comparten
// número.
type DocumentUseCase struct {
	txRunner  TxRunner
	carRepo   repository.CarRepository
	userRepo  repository.UserRepository
	generator DocumentGenerator
	store     FileStore
	igicRate  decimal.Decimal
}

// NewDocumentUseCase construye el caso de uso documental.
func NewDocumentUseCase(
	txRunner TxRunner,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	generator DocumentGenerator,
	store FileStore,
	igicRate decimal.Decimal,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:  txRunner,
		carRepo:   carRepo,
		userRepo:  userRepo,
		generator: generator,
		store:     store,
		igicRate:  igicRate,
	}
}

// CanAccessCar informa si el usuario puede operar sobre el coche: es su dueño
// o ambos pertenecen al mismo equipo.
func CanAccessCar(car *entity.Car, userID, companyID string) bool {
	if car.UserID == userID {
		return true
	}
	return companyID != "" && car.CompanyID != nil && *car.CompanyID == companyID
}

// GenerateInvoice genera la factura (o proforma) de un coche, estampa el
// número reservado y registra el PDF como documento del coche.
//
// Retorna (pdfBytes, filename, nil) o un error de dominio: ErrNotFound,
// ErrForbidden, ErrInvalidInput (coche sin precio), ErrMissingSaleData
// (factura sin comprador).
func (uc *DocumentUseCase) GenerateInvoice(ctx context.Context, userID, companyID, carID string, in dto.GenerateInvoiceRequest) (pdfBytes []byte, filename string, err error) {
	err = uc.txRunner.Run(ctx, func(
		carRepo repository.CarRepository,
		noteRepo repository.NoteRepository,
		docRepo repository.CarDocumentRepository,
		userRepo repository.UserRepository,
	) error {
		car, err := carRepo.GetByID(carID)
		if err != nil {
			return fmt.Errorf("documentos: obtener coche: %w", err)
		}
		if car == nil {
			return domain.ErrNotFound
		}
		if !CanAccessCar(car, userID, companyID) {
			return domain.ErrForbidden
		}
		seller, err := userRepo.GetByID(car.UserID)
		if err != nil {
			return fmt.Errorf("documentos: obtener emisor: %w", err)
		}
		if seller == nil {
			return domain.ErrUserNotFound
		}
		rate := uc.igicRate
		if in.IGICRate != nil {
			rate = *in.IGICRate
		}
		pdfBytes, filename, _, err = uc.issueInvoiceInTx(ctx, carRepo, docRepo, userRepo, car, seller, issueOptions{
			Proforma:      in.Proforma,
			Rate:          rate,
			PaymentMethod: in.PaymentMethod,
			Comments:      in.Comments,
			Now:           time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, filename, nil
}

// issueOptions parámetros internos de emisión.
type issueOptions struct {
	Proforma      bool
	Rate          decimal.Decimal
	PaymentMethod string
	Comments      string
	Now           time.Time
}

// issueInvoiceInTx emite la factura/proforma usando los repositorios del
// caller (misma transacción): reserva número, estampa el coche, genera el PDF
// y registra el documento. El caller debe haber dejado el coche en el estado
// final deseado; aquí se hace el único Update de la fila.
func (uc *DocumentUseCase) issueInvoiceInTx(
	ctx context.Context,
	carRepo repository.CarRepository,
	docRepo repository.CarDocumentRepository,
	userRepo repository.UserRepository,
	car *entity.Car,
	seller *entity.User,
	opts issueOptions,
) (pdfBytes []byte, filename string, number int, err error) {
	// Precio del documento: el de venta si existe, si no el de publicación.
	var total decimal.Decimal
	switch {
	case car.SalePrice != nil:
		total = *car.SalePrice
	case car.Price != nil:
		total = *car.Price
	default:
		return nil, "", 0, fmt.Errorf("%w: el coche no tiene precio", domain.ErrInvalidInput)
	}

	var buyer entity.BuyerDetails
	if car.Buyer != nil {
		buyer = *car.Buyer
	} else if !opts.Proforma {
		// una factura sin comprador no es emitible; la proforma sí (presupuesto)
		return nil, "", 0, domain.ErrMissingSaleData
	}

	if opts.Proforma {
		number, err = userRepo.ClaimProformaNumber(car.UserID)
	} else {
		number, err = userRepo.ClaimInvoiceNumber(car.UserID)
	}
	if err != nil {
		return nil, "", 0, fmt.Errorf("documentos: reservar número: %w", err)
	}

	kind := entity.DocFacturaPDF
	prefix := "Factura"
	if opts.Proforma {
		kind = entity.DocProformaPDF
		prefix = "Proforma"
		car.ProformaNumber = &number
	} else {
		car.InvoiceNumber = &number
	}
	car.UpdatedAt = opts.Now
	if err := carRepo.Update(car); err != nil {
		return nil, "", 0, fmt.Errorf("documentos: estampar número: %w", err)
	}

	data := InvoiceDocData{
		Number:        number,
		Proforma:      opts.Proforma,
		Date:          opts.Now,
		Seller:        SnapshotSeller(seller),
		Buyer:         buyer,
		Vehicle:       SnapshotVehicle(car),
		Breakdown:     domainbilling.BackCalculate(total, opts.Rate),
		PaymentMethod: opts.PaymentMethod,
		Comments:      opts.Comments,
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, data)
	if err != nil {
		return nil, "", 0, fmt.Errorf("documentos: generar PDF: %w", err)
	}

	filename = fmt.Sprintf("%s_%d_%s.pdf", prefix, number, car.LicensePlate)
	path, err := uc.store.SaveDocument(filename, pdfBytes)
	if err != nil {
		return nil, "", 0, fmt.Errorf("documentos: guardar PDF: %w", err)
	}
	if err := docRepo.Create(&entity.CarDocument{
		ID:           uuid.New().String(),
		CarID:        car.ID,
		Kind:         kind,
		Path:         path,
		OriginalName: filename,
		CreatedAt:    opts.Now,
	}); err != nil {
		return nil, "", 0, fmt.Errorf("documentos: registrar documento: %w", err)
	}
	return pdfBytes, filename, number, nil
}

// IssueSaleInvoiceInTx emite la factura de una venta con los repos del caller
// (misma transacción que el cambio de estado a Vendido).
func (uc *DocumentUseCase) IssueSaleInvoiceInTx(
	ctx context.Context,
	carRepo repository.CarRepository,
	docRepo repository.CarDocumentRepository,
	userRepo repository.UserRepository,
	car *entity.Car,
	seller *entity.User,
	now time.Time,
) (path string, number int, err error) {
	_, filename, number, err := uc.issueInvoiceInTx(ctx, carRepo, docRepo, userRepo, car, seller, issueOptions{
		Proforma: false,
		Rate:     uc.igicRate,
		Now:      now,
	})
	if err != nil {
		return "", 0, err
	}
	return filename, number, nil
}

// GenerateTestDrive genera el documento de prueba de vehículo. No se persiste
// sobre el coche: se entrega al cliente para firmar en mano.
func (uc *DocumentUseCase) GenerateTestDrive(ctx context.Context, userID, companyID, carID string, in dto.TestDriveRequest) ([]byte, string, error) {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return nil, "", fmt.Errorf("documentos: obtener coche: %w", err)
	}
	if car == nil {
		return nil, "", domain.ErrNotFound
	}
	if !CanAccessCar(car, userID, companyID) {
		return nil, "", domain.ErrForbidden
	}
	if in.DriverName == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if !spanishid.IsValid(in.DriverTaxID) {
		return nil, "", domain.ErrInvalidTaxID
	}
	seller, err := uc.userRepo.GetByID(car.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("documentos: obtener emisor: %w", err)
	}
	if seller == nil {
		return nil, "", domain.ErrUserNotFound
	}

	dni := spanishid.Normalize(in.DriverTaxID)
	data := TestDriveDocData{
		Date:          time.Now(),
		Seller:        SnapshotSeller(seller),
		Vehicle:       SnapshotVehicle(car),
		DriverName:    in.DriverName,
		DriverTaxID:   dni,
		DriverPhone:   in.DriverPhone,
		DriverLicense: in.DriverLicense,
	}
	pdfBytes, err := uc.generator.GenerateTestDrivePDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("documentos: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("Prueba_%s_%s.pdf", car.LicensePlate, dni)
	return pdfBytes, filename, nil
}
