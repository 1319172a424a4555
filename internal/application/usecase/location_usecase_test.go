package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/application/usecase"
	"github.com/dventura/autogest-api/internal/domain"
)

// La deduplicación ignora mayúsculas, espacios y acentos: "Campa Sur",
// "campa sur" y "Campá Sur" son la misma ubicación.
func TestLocationCreate_DeduplicaSinAcentos(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	_, err := uc.Create("u1", nil, dto.CreateLocationRequest{Name: "Campa Sur"})
	require.NoError(t, err)

	for _, variante := range []string{"campa sur", "CAMPA SUR", "Campá Sur", "  Campa Sur  "} {
		_, err := uc.Create("u1", nil, dto.CreateLocationRequest{Name: variante})
		assert.ErrorIs(t, err, domain.ErrDuplicate, "variante %q", variante)
	}

	// otra cuenta no comparte el espacio de nombres
	_, err = uc.Create("u2", nil, dto.CreateLocationRequest{Name: "Campa Sur"})
	assert.NoError(t, err)
}

func TestLocationCreate_NombreVacio(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	_, err := uc.Create("u1", nil, dto.CreateLocationRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Borrar solo alcanza ubicaciones propias o, con equipo, las compartidas.
func TestLocationDelete_SoloPropiasODelEquipo(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	equipo := "eq1"

	propia, err := uc.Create("u1", nil, dto.CreateLocationRequest{Name: "Campa Sur"})
	require.NoError(t, err)
	compartida, err := uc.Create("u1", &equipo, dto.CreateLocationRequest{Name: "Nave 3"})
	require.NoError(t, err)

	err = uc.Delete("u2", nil, propia.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra cuenta no borra ubicaciones ajenas")

	otroEquipo := "eq2"
	err = uc.Delete("u2", &otroEquipo, compartida.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro equipo tampoco")

	require.NoError(t, uc.Delete("u2", &equipo, compartida.ID), "un compañero sí borra las del equipo")
	require.NoError(t, uc.Delete("u1", nil, propia.ID))

	list, err := uc.List("u1", nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Con equipo, las ubicaciones se comparten entre los miembros.
func TestLocationCreate_CompartidaEnEquipo(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	companyID := "eq1"

	_, err := uc.Create("u1", &companyID, dto.CreateLocationRequest{Name: "Nave 3"})
	require.NoError(t, err)

	_, err = uc.Create("u2", &companyID, dto.CreateLocationRequest{Name: "nave 3"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "un compañero ve la misma lista")

	list, err := uc.List("u2", &companyID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
