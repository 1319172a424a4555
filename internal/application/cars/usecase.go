// Package cars contiene los casos de uso del inventario de vehículos: fichas,
// notas, documentos y el cambio de estado con sus efectos documentales.
package cars

import (
	"time"

	"github.com/google/uuid"

	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	domaincar "github.com/dventura/autogest-api/internal/domain/car"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// CarUseCase CRUD de fichas de coche, notas y documentos adjuntos.
type CarUseCase struct {
	carRepo     repository.CarRepository
	noteRepo    repository.NoteRepository
	docRepo     repository.CarDocumentRepository
	expenseRepo repository.ExpenseRepository
	notifRepo   repository.NotificationRepository
}

// NewCarUseCase construye el caso de uso.
func NewCarUseCase(
	carRepo repository.CarRepository,
	noteRepo repository.NoteRepository,
	docRepo repository.CarDocumentRepository,
	expenseRepo repository.ExpenseRepository,
	notifRepo repository.NotificationRepository,
) *CarUseCase {
	return &CarUseCase{
		carRepo:     carRepo,
		noteRepo:    noteRepo,
		docRepo:     docRepo,
		expenseRepo: expenseRepo,
		notifRepo:   notifRepo,
	}
}

// Create da de alta un coche en estado "En venta". La matrícula es única por
// cuenta y el VIN global; un alta sin precio emite una notificación para
// completarlo.
func (uc *CarUseCase) Create(userID string, companyID *string, in dto.CreateCarRequest) (*dto.CarResponse, error) {
	plate := domaincar.NormalizePlate(in.LicensePlate)
	if err := domaincar.ValidatePlate(plate); err != nil {
		return nil, err
	}
	vin := domaincar.NormalizeVIN(in.VIN)
	if err := domaincar.ValidateVIN(vin); err != nil {
		return nil, err
	}
	if in.Price != nil && !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	keys := in.Keys
	if keys == 0 {
		keys = 1
	}
	if keys < 1 || keys > 3 {
		return nil, domain.ErrInvalidInput
	}

	// Pre-chequeos de duplicado; la constraint cubre la carrera residual.
	if existing, _ := uc.carRepo.GetByUserAndPlate(userID, plate); existing != nil {
		return nil, domain.ErrDuplicatePlate
	}
	if vin != "" {
		if existing, _ := uc.carRepo.GetByVIN(vin); existing != nil {
			return nil, domain.ErrDuplicateVIN
		}
	}

	now := time.Now()
	car := &entity.Car{
		ID:            uuid.New().String(),
		UserID:        userID,
		CompanyID:     companyID,
		Make:          in.Make,
		Model:         in.Model,
		Version:       in.Version,
		Year:          in.Year,
		LicensePlate:  plate,
		VIN:           vin,
		Kilometers:    in.Kilometers,
		Fuel:          in.Fuel,
		Transmission:  in.Transmission,
		Color:         in.Color,
		Keys:          keys,
		HasInsurance:  in.HasInsurance,
		Location:      in.Location,
		Tags:          in.Tags,
		Price:         in.Price,
		PurchasePrice: in.PurchasePrice,
		Status:        entity.CarEnVenta,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.carRepo.Create(car); err != nil {
		return nil, err
	}

	if car.Price == nil {
		_ = uc.notifRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			CarID:     &car.ID,
			Type:      entity.NotifCocheSinPrecio,
			Message:   "El coche " + car.Make + " " + car.Model + " (" + car.LicensePlate + ") se creó sin precio de venta.",
			CreatedAt: now,
		})
	}

	return toCarResponse(car), nil
}

// GetByID obtiene un coche accesible por el usuario.
func (uc *CarUseCase) GetByID(userID, companyID, id string) (*dto.CarResponse, error) {
	car, err := uc.carRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, nil
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return nil, domain.ErrForbidden
	}
	return toCarResponse(car), nil
}

// Update aplica una actualización parcial de la ficha. Matrícula, VIN y
// estado no se tocan por aquí (el estado tiene su propio endpoint).
func (uc *CarUseCase) Update(userID, companyID, id string, in dto.UpdateCarRequest) (*dto.CarResponse, error) {
	car, err := uc.carRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, nil
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return nil, domain.ErrForbidden
	}
	if in.Make != nil {
		car.Make = *in.Make
	}
	if in.Model != nil {
		car.Model = *in.Model
	}
	if in.Version != nil {
		car.Version = *in.Version
	}
	if in.Year != nil {
		car.Year = *in.Year
	}
	if in.Kilometers != nil {
		car.Kilometers = *in.Kilometers
	}
	if in.Fuel != nil {
		car.Fuel = *in.Fuel
	}
	if in.Transmission != nil {
		car.Transmission = *in.Transmission
	}
	if in.Color != nil {
		car.Color = *in.Color
	}
	if in.Keys != nil {
		if *in.Keys < 1 || *in.Keys > 3 {
			return nil, domain.ErrInvalidInput
		}
		car.Keys = *in.Keys
	}
	if in.HasInsurance != nil {
		car.HasInsurance = *in.HasInsurance
	}
	if in.Location != nil {
		car.Location = *in.Location
	}
	if in.Tags != nil {
		car.Tags = in.Tags
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		car.Price = in.Price
	}
	if in.PurchasePrice != nil {
		car.PurchasePrice = in.PurchasePrice
	}
	if in.GestoriaPickupDate != nil {
		car.GestoriaPickupDate = in.GestoriaPickupDate
	}
	if in.GestoriaReturnDate != nil {
		car.GestoriaReturnDate = in.GestoriaReturnDate
	}
	car.UpdatedAt = time.Now()
	if err := uc.carRepo.Update(car); err != nil {
		return nil, err
	}
	return toCarResponse(car), nil
}

// List lista los coches de la cuenta; si el usuario tiene equipo, los del equipo.
func (uc *CarUseCase) List(userID, companyID string, limit, offset int) (*dto.CarListResponse, error) {
	var (
		list []*entity.Car
		err  error
	)
	if companyID != "" {
		list, err = uc.carRepo.ListByCompany(companyID, limit, offset)
	} else {
		list, err = uc.carRepo.ListByUser(userID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.CarResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCarResponse(c))
	}
	return &dto.CarListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina el coche. Las notas, documentos e incidencias caen en
// cascada; los gastos ligados por matrícula se desligan antes.
func (uc *CarUseCase) Delete(userID, companyID, id string) error {
	car, err := uc.carRepo.GetByID(id)
	if err != nil {
		return err
	}
	if car == nil {
		return domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return domain.ErrForbidden
	}
	if err := uc.expenseRepo.UnlinkPlate(car.UserID, car.LicensePlate); err != nil {
		return err
	}
	return uc.carRepo.Delete(id)
}

// ── Notas ─────────────────────────────────────────────────────────────────────

// AddNote añade una nota fechada al coche.
func (uc *CarUseCase) AddNote(userID, companyID, carID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return nil, domain.ErrForbidden
	}
	noteType := in.Type
	if noteType == "" {
		noteType = entity.NoteGeneral
	}
	now := time.Now()
	note := &entity.Note{
		ID:        uuid.New().String(),
		CarID:     carID,
		Content:   in.Content,
		Type:      noteType,
		Date:      now,
		CreatedAt: now,
	}
	if err := uc.noteRepo.Create(note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

// ListNotes lista las notas del coche.
func (uc *CarUseCase) ListNotes(userID, companyID, carID string) ([]dto.NoteResponse, error) {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return nil, domain.ErrForbidden
	}
	notes, err := uc.noteRepo.ListByCar(carID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, *toNoteResponse(n))
	}
	return out, nil
}

// DeleteNote borra una nota del coche. La nota debe pertenecer al coche y el
// coche ser accesible por el usuario.
func (uc *CarUseCase) DeleteNote(userID, companyID, carID, noteID string) error {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return err
	}
	if car == nil {
		return domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return domain.ErrForbidden
	}
	return uc.noteRepo.DeleteByCar(carID, noteID)
}

// ── Documentos adjuntos ───────────────────────────────────────────────────────

// AttachDocument registra un fichero ya guardado en disco como documento del coche.
func (uc *CarUseCase) AttachDocument(userID, companyID, carID, kind, path, originalName string) (*dto.CarDocumentResponse, error) {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return nil, domain.ErrForbidden
	}
	doc := &entity.CarDocument{
		ID:           uuid.New().String(),
		CarID:        carID,
		Kind:         kind,
		Path:         path,
		OriginalName: originalName,
		CreatedAt:    time.Now(),
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// ListDocuments lista los documentos del coche.
func (uc *CarUseCase) ListDocuments(userID, companyID, carID string) ([]dto.CarDocumentResponse, error) {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return nil, domain.ErrForbidden
	}
	docs, err := uc.docRepo.ListByCar(carID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CarDocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, *toDocumentResponse(d))
	}
	return out, nil
}

// DeleteDocument borra un documento adjunto. El documento debe pertenecer al
// coche y el coche ser accesible por el usuario.
func (uc *CarUseCase) DeleteDocument(userID, companyID, carID, docID string) error {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return err
	}
	if car == nil {
		return domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return domain.ErrForbidden
	}
	return uc.docRepo.DeleteByCar(carID, docID)
}

// ── mapeos ────────────────────────────────────────────────────────────────────

func toCarResponse(c *entity.Car) *dto.CarResponse {
	if c == nil {
		return nil
	}
	var buyer *dto.BuyerDTO
	if c.Buyer != nil {
		buyer = &dto.BuyerDTO{
			Name:    c.Buyer.Name,
			TaxID:   c.Buyer.TaxID,
			Phone:   c.Buyer.Phone,
			Email:   c.Buyer.Email,
			Address: c.Buyer.Address,
		}
	}
	return &dto.CarResponse{
		ID:                 c.ID,
		UserID:             c.UserID,
		CompanyID:          c.CompanyID,
		Make:               c.Make,
		Model:              c.Model,
		Version:            c.Version,
		Year:               c.Year,
		LicensePlate:       c.LicensePlate,
		VIN:                c.VIN,
		Kilometers:         c.Kilometers,
		Fuel:               c.Fuel,
		Transmission:       c.Transmission,
		Color:              c.Color,
		Keys:               c.Keys,
		HasInsurance:       c.HasInsurance,
		Location:           c.Location,
		Tags:               c.Tags,
		Price:              c.Price,
		PurchasePrice:      c.PurchasePrice,
		SalePrice:          c.SalePrice,
		SaleDate:           c.SaleDate,
		Buyer:              buyer,
		ReservationDeposit: c.ReservationDeposit,
		ReservationExpiry:  c.ReservationExpiry,
		ReservationPDFPath: c.ReservationPDFPath,
		GestoriaPickupDate: c.GestoriaPickupDate,
		GestoriaReturnDate: c.GestoriaReturnDate,
		InvoiceNumber:      c.InvoiceNumber,
		ProformaNumber:     c.ProformaNumber,
		Status:             c.Status,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		ID:      n.ID,
		CarID:   n.CarID,
		Content: n.Content,
		Type:    n.Type,
		Date:    n.Date,
	}
}

func toDocumentResponse(d *entity.CarDocument) *dto.CarDocumentResponse {
	return &dto.CarDocumentResponse{
		ID:           d.ID,
		CarID:        d.CarID,
		Kind:         d.Kind,
		Path:         d.Path,
		OriginalName: d.OriginalName,
		CreatedAt:    d.CreatedAt,
	}
}
