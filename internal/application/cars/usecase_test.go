package cars_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dventura/autogest-api/internal/application/cars"
	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

type fakeExpenseRepo struct {
	unlinked []string
}

func (r *fakeExpenseRepo) Create(*entity.Expense) error          { return nil }
func (r *fakeExpenseRepo) GetByID(string) (*entity.Expense, error) { return nil, nil }
func (r *fakeExpenseRepo) Update(*entity.Expense) error          { return nil }
func (r *fakeExpenseRepo) Delete(string) error                   { return nil }
func (r *fakeExpenseRepo) ListByUser(string, int, int) ([]*entity.Expense, error) { return nil, nil }
func (r *fakeExpenseRepo) ListByPlate(string, string) ([]*entity.Expense, error)  { return nil, nil }
func (r *fakeExpenseRepo) UnlinkPlate(userID, plate string) error {
	r.unlinked = append(r.unlinked, userID+"/"+plate)
	return nil
}
func (r *fakeExpenseRepo) AddAttachment(*entity.ExpenseAttachment) error { return nil }
func (r *fakeExpenseRepo) ListAttachments(string) ([]*entity.ExpenseAttachment, error) {
	return nil, nil
}

type fakeNotifRepo struct {
	created []*entity.Notification
}

func (r *fakeNotifRepo) Create(n *entity.Notification) error { r.created = append(r.created, n); return nil }
func (r *fakeNotifRepo) ListByUser(string, bool, int, int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotifRepo) MarkRead(string, string) error { return nil }
func (r *fakeNotifRepo) MarkAllRead(string) error      { return nil }
func (r *fakeNotifRepo) Delete(string, string) error   { return nil }

func newCarUseCase() (*cars.CarUseCase, *fakeCarRepo, *fakeNotifRepo, *fakeExpenseRepo) {
	carRepo := &fakeCarRepo{cars: map[string]*entity.Car{}}
	notifRepo := &fakeNotifRepo{}
	expenseRepo := &fakeExpenseRepo{}
	uc := cars.NewCarUseCase(carRepo, &fakeNoteRepo{}, &fakeDocRepo{}, expenseRepo, notifRepo)
	return uc, carRepo, notifRepo, expenseRepo
}

func altaBasica(plate string) dto.CreateCarRequest {
	p := decimal.NewFromInt(9900)
	return dto.CreateCarRequest{
		Make:         "Renault",
		Model:        "Clio",
		Year:         2018,
		LicensePlate: plate,
		Price:        &p,
	}
}

// La matrícula es única por cuenta: dos cuentas pueden tener el mismo coche de
// alta (compraventas que se lo revenden), la misma cuenta no.
func TestCreate_MatriculaUnicaPorCuenta(t *testing.T) {
	uc, _, _, _ := newCarUseCase()

	_, err := uc.Create("u1", nil, altaBasica("1234BCD"))
	require.NoError(t, err)

	_, err = uc.Create("u2", nil, altaBasica("1234BCD"))
	require.NoError(t, err, "otra cuenta puede registrar la misma matrícula")

	_, err = uc.Create("u1", nil, altaBasica("1234BCD"))
	assert.ErrorIs(t, err, domain.ErrDuplicatePlate)
}

// El VIN identifica el vehículo físico: es único entre todas las cuentas.
func TestCreate_VINUnicoGlobal(t *testing.T) {
	uc, _, _, _ := newCarUseCase()

	alta := altaBasica("1234BCD")
	alta.VIN = "WVWZZZ1JZ3W386752"
	_, err := uc.Create("u1", nil, alta)
	require.NoError(t, err)

	alta2 := altaBasica("5678FGH")
	alta2.VIN = "WVWZZZ1JZ3W386752"
	_, err = uc.Create("u2", nil, alta2)
	assert.ErrorIs(t, err, domain.ErrDuplicateVIN)
}

// La matrícula se normaliza antes de validar y de comprobar duplicados.
func TestCreate_NormalizaMatricula(t *testing.T) {
	uc, _, _, _ := newCarUseCase()

	resp, err := uc.Create("u1", nil, altaBasica(" 1234-bcd "))
	require.NoError(t, err)
	assert.Equal(t, "1234BCD", resp.LicensePlate)

	_, err = uc.Create("u1", nil, altaBasica("1234 BCD"))
	assert.ErrorIs(t, err, domain.ErrDuplicatePlate, "las variantes de formato son la misma matrícula")
}

func TestCreate_MatriculaInvalida(t *testing.T) {
	uc, _, _, _ := newCarUseCase()

	for _, plate := range []string{"", "XYZ", "12345BCD", "1234BCDE"} {
		_, err := uc.Create("u1", nil, altaBasica(plate))
		assert.ErrorIs(t, err, domain.ErrInvalidPlate, "matrícula %q", plate)
	}
}

// Un alta sin precio es válida pero deja un aviso para completarlo.
func TestCreate_SinPrecioNotifica(t *testing.T) {
	uc, _, notifs, _ := newCarUseCase()

	alta := altaBasica("1234BCD")
	alta.Price = nil
	resp, err := uc.Create("u1", nil, alta)
	require.NoError(t, err)
	assert.Equal(t, entity.CarEnVenta, resp.Status)

	require.Len(t, notifs.created, 1)
	assert.Equal(t, entity.NotifCocheSinPrecio, notifs.created[0].Type)
	require.NotNil(t, notifs.created[0].CarID)
	assert.Equal(t, resp.ID, *notifs.created[0].CarID)
}

// Borrar un coche desliga sus gastos de la matrícula en vez de borrarlos.
func TestDelete_DesligaGastos(t *testing.T) {
	uc, _, _, expenses := newCarUseCase()

	resp, err := uc.Create("u1", nil, altaBasica("1234BCD"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete("u1", "", resp.ID))
	assert.Equal(t, []string{"u1/1234BCD"}, expenses.unlinked)
}

func newCarUseCaseConAdjuntos() (*cars.CarUseCase, *fakeNoteRepo, *fakeDocRepo) {
	carRepo := &fakeCarRepo{cars: map[string]*entity.Car{
		"c1": {ID: "c1", UserID: "u1", LicensePlate: "1234BCD", Status: entity.CarEnVenta},
		"c2": {ID: "c2", UserID: "u2", LicensePlate: "5678FGH", Status: entity.CarEnVenta},
	}}
	noteRepo := &fakeNoteRepo{notes: []*entity.Note{
		{ID: "n1", CarID: "c1", Content: "revisar frenos", Type: entity.NoteGeneral},
	}}
	docRepo := &fakeDocRepo{docs: []*entity.CarDocument{
		{ID: "d1", CarID: "c1", Kind: entity.DocOtros, Path: "docs/ficha.pdf"},
	}}
	uc := cars.NewCarUseCase(carRepo, noteRepo, docRepo, &fakeExpenseRepo{}, &fakeNotifRepo{})
	return uc, noteRepo, docRepo
}

// Las notas solo se borran a través de un coche propio y al que pertenecen:
// ni con el ID de un coche ajeno, ni con uno inexistente, ni colgándolas de
// otro coche de la misma cuenta.
func TestDeleteNote_SoloDelPropioCoche(t *testing.T) {
	uc, notes, _ := newCarUseCaseConAdjuntos()

	err := uc.DeleteNote("u2", "", "c1", "n1")
	assert.ErrorIs(t, err, domain.ErrForbidden, "el coche es de otra cuenta")

	err = uc.DeleteNote("u2", "", "inexistente", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "un coche inexistente no da acceso")

	err = uc.DeleteNote("u2", "", "c2", "n1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "la nota no pertenece al coche c2")

	require.Len(t, notes.notes, 1, "la nota de la víctima sigue intacta")

	require.NoError(t, uc.DeleteNote("u1", "", "c1", "n1"))
	assert.Empty(t, notes.notes)
}

// Misma regla para los documentos adjuntos.
func TestDeleteDocument_SoloDelPropioCoche(t *testing.T) {
	uc, _, docs := newCarUseCaseConAdjuntos()

	err := uc.DeleteDocument("u2", "", "c1", "d1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.DeleteDocument("u2", "", "inexistente", "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.DeleteDocument("u2", "", "c2", "d1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "el documento no pertenece al coche c2")

	require.Len(t, docs.docs, 1)

	require.NoError(t, uc.DeleteDocument("u1", "", "c1", "d1"))
	assert.Empty(t, docs.docs)
}
