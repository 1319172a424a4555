package expense_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/expense"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDate_Tipos(t *testing.T) {
	base := fecha(2025, time.March, 15)
	tres := 3

	casos := []struct {
		nombre string
		tipo   string
		custom *int
		want   time.Time
	}{
		{"diaria", entity.RecurrenceDaily, nil, fecha(2025, time.March, 16)},
		{"semanal", entity.RecurrenceWeekly, nil, fecha(2025, time.March, 22)},
		{"mensual", entity.RecurrenceMonthly, nil, fecha(2025, time.April, 15)},
		{"custom 3 días", entity.RecurrenceCustom, &tres, fecha(2025, time.March, 18)},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			next, err := expense.NextDate(base, c.tipo, c.custom, nil)
			require.NoError(t, err)
			require.NotNil(t, next)
			assert.True(t, next.Equal(c.want), "next = %s, want %s", next, c.want)
		})
	}
}

func TestNextDate_FinDeMes(t *testing.T) {
	// 31 de enero + 1 mes: AddDate normaliza a 2/3 de marzo según el año.
	next, err := expense.NextDate(fecha(2025, time.January, 31), entity.RecurrenceMonthly, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.Equal(fecha(2025, time.March, 3)), "next = %s", next)
}

func TestNextDate_AcotadaPorFechaFin(t *testing.T) {
	base := fecha(2025, time.March, 15)
	fin := fecha(2025, time.March, 20)

	// Semanal se saldría del límite -> nil sin error.
	next, err := expense.NextDate(base, entity.RecurrenceWeekly, nil, &fin)
	require.NoError(t, err)
	assert.Nil(t, next)

	// Diaria cabe dentro del límite.
	next, err = expense.NextDate(base, entity.RecurrenceDaily, nil, &fin)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.Equal(fecha(2025, time.March, 16)))
}

func TestNextDate_CustomInvalido(t *testing.T) {
	cero := 0
	neg := -5

	_, err := expense.NextDate(fecha(2025, time.March, 15), entity.RecurrenceCustom, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = expense.NextDate(fecha(2025, time.March, 15), entity.RecurrenceCustom, &cero, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = expense.NextDate(fecha(2025, time.March, 15), entity.RecurrenceCustom, &neg, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNextDate_TipoDesconocido(t *testing.T) {
	_, err := expense.NextDate(fecha(2025, time.March, 15), "quincenal", nil, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
