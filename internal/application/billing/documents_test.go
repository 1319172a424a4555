package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dventura/autogest-api/internal/application/billing"
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

func (r *fakeCarRepo) Create(car *entity.Car) error { r.cars[car.ID] = car; return nil }
func (r *fakeCarRepo) GetByID(id string) (*entity.Car, error) {
	return r.cars[id], nil
}
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
		if c.VIN == vin {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCarRepo) Update(car *entity.Car) error { r.cars[car.ID] = car; return nil }
func (r *fakeCarRepo) Delete(id string) error       { delete(r.cars, id); return nil }
func (r *fakeCarRepo) ListByUser(string, int, int) ([]*entity.Car, error)    { return nil, nil }
func (r *fakeCarRepo) ListByCompany(string, int, int) ([]*entity.Car, error) { return nil, nil }

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error            { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(u *entity.User) error             { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) UpdatePassword(string, string) error     { return nil }
func (r *fakeUserRepo) Delete(id string) error                  { delete(r.users, id); return nil }
func (r *fakeUserRepo) ListByCompany(string) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) SetMembership(userID string, companyID *string, role string) error {
	u := r.users[userID]
	u.CompanyID = companyID
	u.Role = role
	return nil
}
func (r *fakeUserRepo) SetPermissions(userID string, manage, expel bool) error { return nil }
func (r *fakeUserRepo) SetSubscription(userID, status string, expiry *time.Time) error {
	u := r.users[userID]
	u.SubscriptionStatus = status
	u.SubscriptionExpiry = expiry
	return nil
}
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

func (r *fakeDocRepo) Create(d *entity.CarDocument) error { r.docs = append(r.docs, d); return nil }
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

// fakeTxRunner ejecuta el callback directamente con los repos en memoria; no
// hay transacción real que confirmar.
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

type fakeStore struct {
	saved []string
}

func (s *fakeStore) SaveDocument(filename string, _ []byte) (string, error) {
	s.saved = append(s.saved, filename)
	return "docs/" + filename, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newFixture() (*billing.DocumentUseCase, *fakeCarRepo, *fakeUserRepo, *fakeDocRepo, *fakeStore) {
	cars := &fakeCarRepo{cars: map[string]*entity.Car{}}
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	notes := &fakeNoteRepo{}
	docs := &fakeDocRepo{}
	store := &fakeStore{}
	runner := &fakeTxRunner{cars: cars, notes: notes, docs: docs, users: users}
	uc := billing.NewDocumentUseCase(runner, cars, users, fakeGenerator{}, store, decimal.NewFromInt(7))
	return uc, cars, users, docs, store
}

func seedSeller(users *fakeUserRepo, id string) *entity.User {
	u := &entity.User{
		ID:              id,
		Name:            "Motor Canarias SL",
		Email:           "ventas@motorcanarias.es",
		TaxID:           "B35123456",
		Role:            entity.RoleTechnician,
		InvoiceCounter:  1,
		ProformaCounter: 1,
	}
	users.users[id] = u
	return u
}

func seedCar(cars *fakeCarRepo, id, userID string) *entity.Car {
	c := &entity.Car{
		ID:           id,
		UserID:       userID,
		Make:         "Seat",
		Model:        "León",
		Year:         2019,
		LicensePlate: "1234BCD",
		Status:       entity.CarEnVenta,
		Price:        price(12000),
	}
	cars.cars[id] = c
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Dos facturas consecutivas de la misma cuenta reciben números consecutivos y
// el contador nunca reutiliza un número ya entregado.
func TestGenerateInvoice_NumeracionConsecutiva(t *testing.T) {
	uc, cars, users, docs, _ := newFixture()
	seedSeller(users, "u1")
	car := seedCar(cars, "c1", "u1")
	car.SalePrice = price(11500)
	car.Buyer = &entity.BuyerDetails{Name: "Ana Pérez", TaxID: "45678901G"}

	_, filename1, err := uc.GenerateInvoice(context.Background(), "u1", "", "c1", dto.GenerateInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Factura_1_1234BCD.pdf", filename1)
	require.NotNil(t, car.InvoiceNumber)
	assert.Equal(t, 1, *car.InvoiceNumber)

	_, filename2, err := uc.GenerateInvoice(context.Background(), "u1", "", "c1", dto.GenerateInvoiceRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Factura_2_1234BCD.pdf", filename2)
	assert.Equal(t, 2, *car.InvoiceNumber)
	assert.Equal(t, 3, users.users["u1"].InvoiceCounter, "el contador queda apuntando al siguiente número")

	registered, _ := docs.ListByCarAndKind("c1", entity.DocFacturaPDF)
	assert.Len(t, registered, 2, "cada emisión registra su PDF como documento del coche")
}

// La proforma es un presupuesto: se emite sin comprador y con su contador
// propio, sin consumir números de factura.
func TestGenerateInvoice_ProformaSinComprador(t *testing.T) {
	uc, cars, users, docs, _ := newFixture()
	seedSeller(users, "u1")
	car := seedCar(cars, "c1", "u1")

	_, filename, err := uc.GenerateInvoice(context.Background(), "u1", "", "c1", dto.GenerateInvoiceRequest{Proforma: true})
	require.NoError(t, err)
	assert.Equal(t, "Proforma_1_1234BCD.pdf", filename)
	require.NotNil(t, car.ProformaNumber)
	assert.Equal(t, 1, *car.ProformaNumber)
	assert.Nil(t, car.InvoiceNumber)
	assert.Equal(t, 1, users.users["u1"].InvoiceCounter, "el contador de facturas no se toca")

	registered, _ := docs.ListByCarAndKind("c1", entity.DocProformaPDF)
	assert.Len(t, registered, 1)
}

// Una factura (no proforma) sin comprador no es emitible.
func TestGenerateInvoice_FacturaSinComprador(t *testing.T) {
	uc, cars, users, _, _ := newFixture()
	seedSeller(users, "u1")
	seedCar(cars, "c1", "u1")

	_, _, err := uc.GenerateInvoice(context.Background(), "u1", "", "c1", dto.GenerateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingSaleData)
	assert.Equal(t, 1, users.users["u1"].InvoiceCounter, "no se consume número si la emisión falla")
}

// Un coche sin precio de venta ni de publicación no puede facturarse.
func TestGenerateInvoice_CocheSinPrecio(t *testing.T) {
	uc, cars, users, _, _ := newFixture()
	seedSeller(users, "u1")
	car := seedCar(cars, "c1", "u1")
	car.Price = nil

	_, _, err := uc.GenerateInvoice(context.Background(), "u1", "", "c1", dto.GenerateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un coche cuyo dueño ya no existe no puede emitir documentos; la emisión falla
// como no-encontrado en vez de con un error interno.
func TestGenerateInvoice_EmisorInexistente(t *testing.T) {
	uc, cars, _, _, _ := newFixture()
	seedCar(cars, "c1", "u1")

	_, _, err := uc.GenerateInvoice(context.Background(), "u1", "", "c1", dto.GenerateInvoiceRequest{Proforma: true})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, _, err = uc.GenerateTestDrive(context.Background(), "u1", "", "c1", dto.TestDriveRequest{
		DriverName:  "Ana Pérez",
		DriverTaxID: "45678901G",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Un usuario ajeno al coche y sin equipo común no puede generar sus documentos.
func TestGenerateInvoice_AccesoDenegado(t *testing.T) {
	uc, cars, users, _, _ := newFixture()
	seedSeller(users, "u1")
	seedCar(cars, "c1", "u1")

	_, _, err := uc.GenerateInvoice(context.Background(), "u2", "", "c1", dto.GenerateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGenerateTestDrive(t *testing.T) {
	uc, cars, users, _, _ := newFixture()
	seedSeller(users, "u1")
	seedCar(cars, "c1", "u1")

	t.Run("conductor válido", func(t *testing.T) {
		pdf, filename, err := uc.GenerateTestDrive(context.Background(), "u1", "", "c1", dto.TestDriveRequest{
			DriverName:  "Ana Pérez",
			DriverTaxID: "45678901G",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, pdf)
		assert.Equal(t, "Prueba_1234BCD_45678901G.pdf", filename)
	})

	t.Run("DNI con letra incorrecta", func(t *testing.T) {
		_, _, err := uc.GenerateTestDrive(context.Background(), "u1", "", "c1", dto.TestDriveRequest{
			DriverName:  "Ana Pérez",
			DriverTaxID: "45678901A",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTaxID)
	})

	t.Run("sin nombre", func(t *testing.T) {
		_, _, err := uc.GenerateTestDrive(context.Background(), "u1", "", "c1", dto.TestDriveRequest{
			DriverTaxID: "45678901G",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
