package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dventura/autogest-api/internal/domain/billing"
)

// Vector de referencia: 121 con tipo 21% debe dar base 100 y cuota 21 exactas.
func TestBackCalculate_VectorExacto(t *testing.T) {
	b := billing.BackCalculate(decimal.NewFromInt(121), decimal.NewFromInt(21))

	assert.True(t, b.Subtotal.Equal(decimal.NewFromInt(100)), "base = %s", b.Subtotal)
	assert.True(t, b.Tax.Equal(decimal.NewFromInt(21)), "cuota = %s", b.Tax)
	assert.True(t, b.Total.Equal(decimal.NewFromInt(121)))
}

// IGIC general de Canarias (7%): 15.000 -> base 14018.69, cuota 981.31.
func TestBackCalculate_IGICCanario(t *testing.T) {
	b := billing.BackCalculate(decimal.NewFromInt(15000), decimal.NewFromInt(7))

	assert.True(t, b.Subtotal.Equal(decimal.RequireFromString("14018.69")), "base = %s", b.Subtotal)
	assert.True(t, b.Tax.Equal(decimal.RequireFromString("981.31")), "cuota = %s", b.Tax)
}

// La base más la cuota reconstruyen siempre el total, céntimo a céntimo.
func TestBackCalculate_SumaCierra(t *testing.T) {
	totales := []string{"15000", "121", "9999.99", "0.01", "333.33"}
	tipos := []string{"0", "3", "7", "9.5", "21"}
	for _, ts := range totales {
		for _, rs := range tipos {
			total := decimal.RequireFromString(ts)
			rate := decimal.RequireFromString(rs)
			b := billing.BackCalculate(total, rate)
			assert.True(t, b.Subtotal.Add(b.Tax).Equal(total),
				"total %s tipo %s: %s + %s != %s", ts, rs, b.Subtotal, b.Tax, total)
		}
	}
}

// Con tipo cero no hay cuota.
func TestBackCalculate_TipoCero(t *testing.T) {
	b := billing.BackCalculate(decimal.NewFromInt(500), decimal.Zero)
	assert.True(t, b.Subtotal.Equal(decimal.NewFromInt(500)))
	assert.True(t, b.Tax.IsZero())
}
