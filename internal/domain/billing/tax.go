// Package billing contiene el cálculo fiscal puro de los documentos de venta.
// Los precios del concesionario son "IGIC incluido": la base imponible se
// retro-calcula desde el total.
package billing

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// Breakdown desglose de un precio con impuesto incluido.
type Breakdown struct {
	Subtotal decimal.Decimal // base imponible
	Tax      decimal.Decimal // cuota de IGIC
	Total    decimal.Decimal // precio con impuesto (el de partida)
	Rate     decimal.Decimal // tipo aplicado en porcentaje
}

// BackCalculate desglosa un precio con IGIC incluido:
//
//	subtotal = total / (1 + tipo/100)
//	cuota    = total - subtotal
//
// Redondeo a 2 decimales sobre la base; la cuota absorbe el resto para que
// subtotal + cuota == total siempre.
func BackCalculate(total, rate decimal.Decimal) Breakdown {
	divisor := one.Add(rate.Div(hundred))
	subtotal := total.DivRound(divisor, 2)
	tax := total.Sub(subtotal)
	return Breakdown{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
		Rate:     rate,
	}
}
