package cars

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	domaincar "github.com/dventura/autogest-api/internal/domain/car"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// ChangeStatusUseCase orquesta la transición de estado de un coche y sus
// efectos documentales. La venta emite su factura dentro de la misma
// transacción que cambia el estado: si el PDF o el número fallan, el coche no
// queda Vendido.
type ChangeStatusUseCase struct {
	txRunner  billing.TxRunner
	documents *billing.DocumentUseCase
	generator billing.DocumentGenerator
	store     billing.FileStore
}

// NewChangeStatusUseCase construye el caso de uso de transiciones.
func NewChangeStatusUseCase(
	txRunner billing.TxRunner,
	documents *billing.DocumentUseCase,
	generator billing.DocumentGenerator,
	store billing.FileStore,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		txRunner:  txRunner,
		documents: documents,
		generator: generator,
		store:     store,
	}
}

// ChangeStatus aplica la transición pedida. Vendido es terminal: una vez
// vendido, el coche no admite más cambios de estado.
func (uc *ChangeStatusUseCase) ChangeStatus(ctx context.Context, userID, companyID, carID string, in dto.ChangeStatusRequest) (*dto.CarResponse, error) {
	var result *dto.CarResponse
	err := uc.txRunner.Run(ctx, func(
		carRepo repository.CarRepository,
		noteRepo repository.NoteRepository,
		docRepo repository.CarDocumentRepository,
		userRepo repository.UserRepository,
	) error {
		car, err := carRepo.GetByID(carID)
		if err != nil {
			return fmt.Errorf("estado: obtener coche: %w", err)
		}
		if car == nil {
			return domain.ErrNotFound
		}
		if !billing.CanAccessCar(car, userID, companyID) {
			return domain.ErrForbidden
		}
		if err := domaincar.ValidateTransition(car.Status, in.Status); err != nil {
			return err
		}

		now := time.Now()
		previous := car.Status

		switch in.Status {
		case entity.CarVendido:
			if err := uc.sell(ctx, carRepo, docRepo, userRepo, car, in, now); err != nil {
				return err
			}
		case entity.CarReservado:
			if err := uc.reserve(ctx, carRepo, noteRepo, docRepo, userRepo, car, in, now); err != nil {
				return err
			}
		case entity.CarEnVenta:
			if previous == entity.CarReservado {
				// cancelación de reserva: se limpian señal y caducidad, se
				// borran las notas de Reserva y se conserva el PDF como histórico
				car.ReservationDeposit = nil
				car.ReservationExpiry = nil
				if err := noteRepo.DeleteByCarAndType(car.ID, entity.NoteReserva); err != nil {
					return fmt.Errorf("estado: limpiar notas de reserva: %w", err)
				}
			}
			car.Status = entity.CarEnVenta
			car.UpdatedAt = now
			if err := carRepo.Update(car); err != nil {
				return fmt.Errorf("estado: actualizar coche: %w", err)
			}
		case entity.CarTaller:
			car.Status = entity.CarTaller
			car.UpdatedAt = now
			if err := carRepo.Update(car); err != nil {
				return fmt.Errorf("estado: actualizar coche: %w", err)
			}
		}

		result = toCarResponse(car)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// sell pasa el coche a Vendido y emite la factura con el número reservado, todo
// con los repos transaccionales del caller.
func (uc *ChangeStatusUseCase) sell(
	ctx context.Context,
	carRepo repository.CarRepository,
	docRepo repository.CarDocumentRepository,
	userRepo repository.UserRepository,
	car *entity.Car,
	in dto.ChangeStatusRequest,
	now time.Time,
) error {
	if in.SalePrice == nil || in.Buyer == nil {
		return domain.ErrMissingSaleData
	}
	buyer := entity.BuyerDetails{
		Name:    in.Buyer.Name,
		TaxID:   in.Buyer.TaxID,
		Phone:   in.Buyer.Phone,
		Email:   in.Buyer.Email,
		Address: in.Buyer.Address,
	}
	sale := domaincar.SaleData{SalePrice: *in.SalePrice, Buyer: buyer}
	if err := sale.Validate(); err != nil {
		return err
	}
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	car.Status = entity.CarVendido
	car.SalePrice = in.SalePrice
	car.SaleDate = &saleDate
	car.Buyer = &buyer
	// la reserva queda consumida por la venta
	car.ReservationDeposit = nil
	car.ReservationExpiry = nil

	seller, err := userRepo.GetByID(car.UserID)
	if err != nil {
		return fmt.Errorf("estado: obtener vendedor: %w", err)
	}
	if seller == nil {
		return domain.ErrUserNotFound
	}
	// emite la factura y hace el Update del coche con estado y número juntos
	_, _, err = uc.documents.IssueSaleInvoiceInTx(ctx, carRepo, docRepo, userRepo, car, seller, now)
	return err
}

// reserve pasa el coche a Reservado, genera el contrato de reserva y lo deja
// registrado como documento del coche.
func (uc *ChangeStatusUseCase) reserve(
	ctx context.Context,
	carRepo repository.CarRepository,
	noteRepo repository.NoteRepository,
	docRepo repository.CarDocumentRepository,
	userRepo repository.UserRepository,
	car *entity.Car,
	in dto.ChangeStatusRequest,
	now time.Time,
) error {
	res := domaincar.ReservationData{Deposit: in.Deposit, Note: in.Note}
	if err := res.Validate(); err != nil {
		return err
	}
	var buyer entity.BuyerDetails
	if in.Buyer != nil {
		buyer = entity.BuyerDetails{
			Name:    in.Buyer.Name,
			TaxID:   in.Buyer.TaxID,
			Phone:   in.Buyer.Phone,
			Email:   in.Buyer.Email,
			Address: in.Buyer.Address,
		}
	}

	seller, err := userRepo.GetByID(car.UserID)
	if err != nil {
		return fmt.Errorf("estado: obtener vendedor: %w", err)
	}
	if seller == nil {
		return domain.ErrUserNotFound
	}
	pdfBytes, err := uc.generator.GenerateReservationPDF(ctx, billing.ReservationDocData{
		Date:    now,
		Seller:  billing.SnapshotSeller(seller),
		Buyer:   buyer,
		Vehicle: billing.SnapshotVehicle(car),
		Deposit: in.Deposit,
		Expiry:  in.Expiry,
	})
	if err != nil {
		return fmt.Errorf("estado: generar contrato de reserva: %w", err)
	}
	filename := fmt.Sprintf("Reserva_%s.pdf", car.LicensePlate)
	path, err := uc.store.SaveDocument(filename, pdfBytes)
	if err != nil {
		return fmt.Errorf("estado: guardar contrato de reserva: %w", err)
	}

	car.Status = entity.CarReservado
	car.ReservationDeposit = in.Deposit
	car.ReservationExpiry = in.Expiry
	car.ReservationPDFPath = path
	car.UpdatedAt = now
	if err := carRepo.Update(car); err != nil {
		return fmt.Errorf("estado: actualizar coche: %w", err)
	}

	if in.Note != "" {
		if err := noteRepo.Create(&entity.Note{
			ID:        uuid.New().String(),
			CarID:     car.ID,
			Content:   in.Note,
			Type:      entity.NoteReserva,
			Date:      now,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("estado: registrar nota de reserva: %w", err)
		}
	}

	if err := docRepo.Create(&entity.CarDocument{
		ID:           uuid.New().String(),
		CarID:        car.ID,
		Kind:         entity.DocReservaPDF,
		Path:         path,
		OriginalName: filename,
		CreatedAt:    now,
	}); err != nil {
		return fmt.Errorf("estado: registrar contrato de reserva: %w", err)
	}
	return nil
}
