package cars_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/application/cars"
	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCarRepo struct {
	cars map[string]*entity.Car
}

func (r *fakeCarRepo) Create(car *entity.Car) error           { r.cars[car.ID] = car; return nil }
func (r *fakeCarRepo) GetByID(id string) (*entity.Car, error) { return r.cars[id], nil }
func (r *fakeCarRepo) GetByUserAndPlate(userID, plate string) (*entity.Car, error) {
	for _, c := range r.cars {
		if c.UserID == userID && c.LicensePlate == plate {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCarRepo) GetByVIN(vin string) (*entity.Car, error) {
	for _, c := range r.cars {
		if c.VIN != "" && c.VIN == vin {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCarRepo) Update(car *entity.Car) error { r.cars[car.ID] = car; return nil }
func (r *fakeCarRepo) Delete(id string) error       { delete(r.cars, id); return nil }
func (r *fakeCarRepo) ListByUser(userID string, _, _ int) ([]*entity.Car, error) {
	var out []*entity.Car
	for _, c := range r.cars {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *fakeCarRepo) ListByCompany(string, int, int) ([]*entity.Car, error) { return nil, nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) UpdatePassword(string, string) error     { return nil }
func (r *fakeUserRepo) Delete(id string) error                  { delete(r.users, id); return nil }
func (r *fakeUserRepo) ListByCompany(string) ([]*entity.User, error)             { return nil, nil }
func (r *fakeUserRepo) SetMembership(string, *string, string) error              { return nil }
func (r *fakeUserRepo) SetPermissions(string, bool, bool) error                  { return nil }
func (r *fakeUserRepo) SetSubscription(string, string, *time.Time) error         { return nil }
func (r *fakeUserRepo) ClaimInvoiceNumber(userID string) (int, error) {
	u, ok := r.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	n := u.InvoiceCounter
	u.InvoiceCounter++
	return n, nil
}
func (r *fakeUserRepo) ClaimProformaNumber(userID string) (int, error) {
	u, ok := r.users[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	n := u.ProformaCounter
	u.ProformaCounter++
	return n, nil
}

type fakeNoteRepo struct {
	notes []*entity.Note
}

func (r *fakeNoteRepo) Create(n *entity.Note) error { r.notes = append(r.notes, n); return nil }
func (r *fakeNoteRepo) ListByCar(carID string) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range r.notes {
		if n.CarID == carID {
			out = append(out, n)
		}
	}
	return out, nil
}
func (r *fakeNoteRepo) DeleteByCarAndType(carID, noteType string) error {
	kept := r.notes[:0]
	for _, n := range r.notes {
		if !(n.CarID == carID && n.Type == noteType) {
			kept = append(kept, n)
		}
	}
	r.notes = kept
	return nil
}
func (r *fakeNoteRepo) DeleteByCar(carID, id string) error {
	for i, n := range r.notes {
		if n.ID == id && n.CarID == carID {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeDocRepo struct {
	docs []*entity.CarDocument
}

func (r *fakeDocRepo) Create(d *entity.CarDocument) error          { r.docs = append(r.docs, d); return nil }
func (r *fakeDocRepo) GetByID(string) (*entity.CarDocument, error) { return nil, nil }
func (r *fakeDocRepo) ListByCar(carID string) ([]*entity.CarDocument, error) {
	var out []*entity.CarDocument
	for _, d := range r.docs {
		if d.CarID == carID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDocRepo) ListByCarAndKind(carID, kind string) ([]*entity.CarDocument, error) {
	var out []*entity.CarDocument
	for _, d := range r.docs {
		if d.CarID == carID && d.Kind == kind {
			out = append(out, d)
		}
	}
	return out, nil
}
func (r *fakeDocRepo) DeleteByCar(carID, id string) error {
	for i, d := range r.docs {
		if d.ID == id && d.CarID == carID {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeTxRunner struct {
	cars  *fakeCarRepo
	notes *fakeNoteRepo
	docs  *fakeDocRepo
	users *fakeUserRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	repository.CarRepository,
	repository.NoteRepository,
	repository.CarDocumentRepository,
	repository.UserRepository,
) error) error {
	return fn(r.cars, r.notes, r.docs, r.users)
}

type fakeGenerator struct{}

func (fakeGenerator) GenerateInvoicePDF(context.Context, billing.InvoiceDocData) ([]byte, error) {
	return []byte("%PDF-factura"), nil
}
func (fakeGenerator) GenerateReservationPDF(context.Context, billing.ReservationDocData) ([]byte, error) {
	return []byte("%PDF-reserva"), nil
}
func (fakeGenerator) GenerateTestDrivePDF(context.Context, billing.TestDriveDocData) ([]byte, error) {
	return []byte("%PDF-prueba"), nil
}

type fakeStore struct{}

func (fakeStore) SaveDocument(filename string, _ []byte) (string, error) {
	return "docs/" + filename, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc    *cars.ChangeStatusUseCase
	cars  *fakeCarRepo
	notes *fakeNoteRepo
	docs  *fakeDocRepo
	users *fakeUserRepo
}

func newFixture() *fixture {
	carRepo := &fakeCarRepo{cars: map[string]*entity.Car{}}
	userRepo := &fakeUserRepo{users: map[string]*entity.User{}}
	noteRepo := &fakeNoteRepo{}
	docRepo := &fakeDocRepo{}
	store := fakeStore{}
	runner := &fakeTxRunner{cars: carRepo, notes: noteRepo, docs: docRepo, users: userRepo}
	documents := billing.NewDocumentUseCase(runner, carRepo, userRepo, fakeGenerator{}, store, decimal.NewFromInt(7))
	uc := cars.NewChangeStatusUseCase(runner, documents, fakeGenerator{}, store)
	return &fixture{uc: uc, cars: carRepo, notes: noteRepo, docs: docRepo, users: userRepo}
}

func (f *fixture) seedSeller(id string) *entity.User {
	u := &entity.User{
		ID:              id,
		Name:            "Motor Canarias SL",
		TaxID:           "B35123456",
		Role:            entity.RoleTechnician,
		InvoiceCounter:  1,
		ProformaCounter: 1,
	}
	f.users.users[id] = u
	return u
}

func (f *fixture) seedCar(id, userID, status string) *entity.Car {
	p := decimal.NewFromInt(12000)
	c := &entity.Car{
		ID:           id,
		UserID:       userID,
		Make:         "Seat",
		Model:        "León",
		Year:         2019,
		LicensePlate: "1234BCD",
		Status:       status,
		Price:        &p,
	}
	f.cars.cars[id] = c
	return c
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var buyerAna = &dto.BuyerDTO{Name: "Ana Pérez", TaxID: "45678901G", Phone: "600123456", Address: "C/ Mayor 1, Las Palmas"}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// La venta cambia el estado, estampa precio y comprador y emite la factura con
// el número reservado, todo en la misma operación.
func TestChangeStatus_VentaEmiteFactura(t *testing.T) {
	f := newFixture()
	f.seedSeller("u1")
	car := f.seedCar("c1", "u1", entity.CarEnVenta)

	resp, err := f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
		Status:    entity.CarVendido,
		SalePrice: dec(11500),
		Buyer:     buyerAna,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CarVendido, resp.Status)
	assert.Equal(t, entity.CarVendido, car.Status)
	require.NotNil(t, car.SalePrice)
	assert.True(t, car.SalePrice.Equal(decimal.NewFromInt(11500)))
	require.NotNil(t, car.Buyer)
	assert.Equal(t, "Ana Pérez", car.Buyer.Name)
	require.NotNil(t, car.SaleDate)

	require.NotNil(t, car.InvoiceNumber)
	assert.Equal(t, 1, *car.InvoiceNumber)
	assert.Equal(t, 2, f.users.users["u1"].InvoiceCounter, "la venta consume exactamente un número")

	facturas, _ := f.docs.ListByCarAndKind("c1", entity.DocFacturaPDF)
	require.Len(t, facturas, 1)
	assert.Equal(t, "Factura_1_1234BCD.pdf", facturas[0].OriginalName)
}

// Sin precio de venta o sin comprador la venta no procede y el coche no cambia.
func TestChangeStatus_VentaSinDatos(t *testing.T) {
	f := newFixture()
	f.seedSeller("u1")
	car := f.seedCar("c1", "u1", entity.CarEnVenta)

	_, err := f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
		Status: entity.CarVendido,
		Buyer:  buyerAna,
	})
	assert.ErrorIs(t, err, domain.ErrMissingSaleData)
	assert.Equal(t, 1, f.users.users["u1"].InvoiceCounter, "no se consume número si la venta falla")
	assert.Nil(t, car.InvoiceNumber)
}

// Si la ficha del vendedor no existe, la operación falla como no-encontrado y
// el coche no cambia de estado.
func TestChangeStatus_VendedorInexistente(t *testing.T) {
	f := newFixture()
	car := f.seedCar("c1", "u1", entity.CarEnVenta)

	_, err := f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
		Status:  entity.CarReservado,
		Deposit: dec(500),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, entity.CarEnVenta, car.Status)

	_, err = f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
		Status:    entity.CarVendido,
		SalePrice: dec(11500),
		Buyer:     buyerAna,
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, car.InvoiceNumber, "no se emite factura sin vendedor")
}

// Vendido es terminal: no admite ninguna transición posterior.
func TestChangeStatus_VendidoEsTerminal(t *testing.T) {
	f := newFixture()
	f.seedSeller("u1")
	f.seedCar("c1", "u1", entity.CarVendido)

	for _, destino := range []string{entity.CarEnVenta, entity.CarReservado, entity.CarTaller} {
		_, err := f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
			Status:    destino,
			SalePrice: dec(11500),
			Buyer:     buyerAna,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "desde Vendido no se permite pasar a %s", destino)
	}
}

// La reserva genera el contrato, guarda señal y caducidad y deja registrada la
// nota de reserva y el PDF como documento del coche.
func TestChangeStatus_Reserva(t *testing.T) {
	f := newFixture()
	f.seedSeller("u1")
	car := f.seedCar("c1", "u1", entity.CarEnVenta)
	expiry := time.Now().AddDate(0, 0, 15)

	resp, err := f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
		Status:  entity.CarReservado,
		Deposit: dec(500),
		Note:    "Reserva de Ana, llamar el lunes",
		Expiry:  &expiry,
		Buyer:   buyerAna,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CarReservado, resp.Status)
	require.NotNil(t, car.ReservationDeposit)
	assert.True(t, car.ReservationDeposit.Equal(decimal.NewFromInt(500)))
	require.NotNil(t, car.ReservationExpiry)
	assert.Equal(t, "docs/Reserva_1234BCD.pdf", car.ReservationPDFPath)

	notas, _ := f.notes.ListByCar("c1")
	require.Len(t, notas, 1)
	assert.Equal(t, entity.NoteReserva, notas[0].Type)

	contratos, _ := f.docs.ListByCarAndKind("c1", entity.DocReservaPDF)
	assert.Len(t, contratos, 1)
}

// Una señal negativa o cero no es una reserva válida.
func TestChangeStatus_ReservaConSenalInvalida(t *testing.T) {
	f := newFixture()
	f.seedSeller("u1")
	f.seedCar("c1", "u1", entity.CarEnVenta)

	_, err := f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
		Status:  entity.CarReservado,
		Deposit: dec(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDeposit)
}

// Cancelar una reserva limpia señal y caducidad y borra solo las notas de tipo
// Reserva; las demás notas y el PDF histórico se conservan.
func TestChangeStatus_CancelarReservaLimpiaNotas(t *testing.T) {
	f := newFixture()
	f.seedSeller("u1")
	car := f.seedCar("c1", "u1", entity.CarReservado)
	car.ReservationDeposit = dec(500)
	expiry := time.Now().AddDate(0, 0, 15)
	car.ReservationExpiry = &expiry
	car.ReservationPDFPath = "docs/Reserva_1234BCD.pdf"
	now := time.Now()
	f.notes.notes = []*entity.Note{
		{ID: "n1", CarID: "c1", Type: entity.NoteReserva, Content: "Reserva de Ana", Date: now},
		{ID: "n2", CarID: "c1", Type: entity.NoteGeneral, Content: "Cambio de aceite pendiente", Date: now},
	}

	resp, err := f.uc.ChangeStatus(context.Background(), "u1", "", "c1", dto.ChangeStatusRequest{
		Status: entity.CarEnVenta,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CarEnVenta, resp.Status)
	assert.Nil(t, car.ReservationDeposit)
	assert.Nil(t, car.ReservationExpiry)
	assert.Equal(t, "docs/Reserva_1234BCD.pdf", car.ReservationPDFPath, "el contrato se conserva como histórico")

	notas, _ := f.notes.ListByCar("c1")
	require.Len(t, notas, 1)
	assert.Equal(t, entity.NoteGeneral, notas[0].Type, "solo desaparecen las notas de Reserva")
}

// Un compañero de equipo puede operar el coche; un tercero no.
func TestChangeStatus_AccesoPorEquipo(t *testing.T) {
	f := newFixture()
	f.seedSeller("u1")
	companyID := "eq1"
	car := f.seedCar("c1", "u1", entity.CarEnVenta)
	car.CompanyID = &companyID

	_, err := f.uc.ChangeStatus(context.Background(), "u2", "eq1", "c1", dto.ChangeStatusRequest{
		Status: entity.CarTaller,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CarTaller, car.Status)

	_, err = f.uc.ChangeStatus(context.Background(), "u3", "otro", "c1", dto.ChangeStatusRequest{
		Status: entity.CarEnVenta,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
