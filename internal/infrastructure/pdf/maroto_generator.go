// Package pdf genera los documentos del concesionario con Maroto v2: factura y
// proforma de venta, contrato de reserva y autorización de prueba de vehículo.
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + NIF   │   Título + N° + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMPRADOR / RESERVANTE / CONDUCTOR                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VEHÍCULO: marca, modelo, matrícula, bastidor, km            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  IMPORTES (base / IGIC / total) o condiciones                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Texto legal + firmas                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 45, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const legalReserva = "El depósito entregado se descuenta del precio final del vehículo. " +
	"Si el comprador desiste de la compra, el vendedor podrá retener el depósito en " +
	"concepto de indemnización. Si el vendedor no entrega el vehículo en las condiciones " +
	"pactadas, devolverá el depósito íntegro."

const legalPrueba = "El conductor declara estar en posesión de permiso de conducir en vigor y " +
	"se compromete a hacer un uso diligente del vehículo durante la prueba. Las sanciones de " +
	"tráfico y los daños causados por uso negligente durante la prueba corren a cargo del conductor."

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.DocumentGenerator = (*MarotoGenerator)(nil)

// MarotoGenerator implementa billing.DocumentGenerator usando Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construye el generador.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GenerateInvoicePDF genera la factura (o proforma) y devuelve sus bytes.
func (g *MarotoGenerator) GenerateInvoicePDF(_ context.Context, data appbilling.InvoiceDocData) ([]byte, error) {
	title := "FACTURA"
	if data.Proforma {
		title = "FACTURA PROFORMA"
	}

	m := newDocument(title, data.Seller.Name)

	m.AddRows(headerRow(title, fmt.Sprintf("N° %d", data.Number), data.Date, data.Seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("COMPRADOR", data.Buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(vehicleRows(data.Vehicle)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Breakdown.Subtotal, data.Breakdown.Rate, data.Breakdown.Tax, data.Breakdown.Total))

	if data.PaymentMethod != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Forma de pago: "+data.PaymentMethod, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	if data.Comments != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Observaciones: "+data.Comments, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}

	if data.Proforma {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Documento proforma, no válido a efectos fiscales.", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	m.AddRows(signatureRow("El vendedor", "El comprador"))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateReservationPDF genera el contrato de reserva y devuelve sus bytes.
func (g *MarotoGenerator) GenerateReservationPDF(_ context.Context, data appbilling.ReservationDocData) ([]byte, error) {
	m := newDocument("CONTRATO DE RESERVA", data.Seller.Name)

	m.AddRows(headerRow("CONTRATO DE RESERVA", "", data.Date, data.Seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("RESERVANTE", data.Buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(vehicleRows(data.Vehicle)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	deposit := "sin señal"
	if data.Deposit != nil {
		deposit = formatEUR(*data.Deposit)
	}
	m.AddRows(row.New(7).Add(col.New(12).Add(
		text.New("Señal entregada: "+deposit, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
	)))
	if data.Expiry != nil {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("La reserva se mantiene hasta el "+data.Expiry.Format("02/01/2006")+".",
				props.Text{Size: 9, Top: 1}),
		)))
	}

	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New(legalReserva, props.Text{Size: 7.5, Color: colorGray, Top: 2}),
	)))
	m.AddRows(signatureRow("El vendedor", "El reservante"))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reserva: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateTestDrivePDF genera la autorización de prueba de vehículo y devuelve sus bytes.
func (g *MarotoGenerator) GenerateTestDrivePDF(_ context.Context, data appbilling.TestDriveDocData) ([]byte, error) {
	m := newDocument("AUTORIZACIÓN DE PRUEBA DE VEHÍCULO", data.Seller.Name)

	m.AddRows(headerRow("PRUEBA DE VEHÍCULO", "", data.Date, data.Seller))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(16).Add(col.New(12).Add(
		text.New("CONDUCTOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(data.DriverName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(fmt.Sprintf("DNI/NIE: %s   |   Tel: %s   |   Permiso: %s",
			data.DriverTaxID,
			nonEmpty(data.DriverPhone, "—"),
			nonEmpty(data.DriverLicense, "—"),
		), props.Text{Size: 8, Top: 12, Color: colorGray}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(vehicleRows(data.Vehicle)...)

	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New(legalPrueba, props.Text{Size: 7.5, Color: colorGray, Top: 2}),
	)))
	m.AddRows(signatureRow("El vendedor", "El conductor"))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar prueba: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: membrete del emisor (izq) y título + número + fecha (der).
func headerRow(title, number string, date time.Time, seller appbilling.SellerSnapshot) core.Row {
	left := col.New(7).Add(
		text.New(seller.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		text.New("NIF: "+nonEmpty(seller.TaxID, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
		text.New(fmt.Sprintf("%s   |   Tel: %s   |   %s",
			nonEmpty(seller.AddressLine, "—"),
			nonEmpty(seller.Phone, "—"),
			nonEmpty(seller.Email, "—"),
		), props.Text{Size: 7.5, Top: 15, Color: colorGray}),
	)
	right := col.New(5).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
		}),
	)
	if number != "" {
		right.Add(text.New(number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 8}))
	}
	right.Add(text.New("Fecha: "+date.Format("02/01/2006"), props.Text{
		Size: 8, Align: align.Right, Top: 15, Color: colorGray,
	}))
	return row.New(20).Add(left, right)
}

// partyRow: datos de la contraparte (comprador o reservante).
func partyRow(label string, party entity.BuyerDetails) core.Row {
	contact := make([]string, 0, 3)
	if party.TaxID != "" {
		contact = append(contact, "DNI/NIF: "+party.TaxID)
	}
	if party.Phone != "" {
		contact = append(contact, "Tel: "+party.Phone)
	}
	if party.Email != "" {
		contact = append(contact, party.Email)
	}
	return row.New(16).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(nonEmpty(party.Name, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(nonEmpty(strings.Join(contact, "   |   "), "—"), props.Text{Size: 8, Top: 12, Color: colorGray}),
	))
}

// vehicleRows: identificación del vehículo.
func vehicleRows(v appbilling.VehicleSnapshot) []core.Row {
	name := strings.TrimSpace(fmt.Sprintf("%s %s %s", v.Make, v.Model, v.Version))
	if v.Year > 0 {
		name = fmt.Sprintf("%s (%d)", name, v.Year)
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("VEHÍCULO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(10).Add(
			col.New(6).Add(
				text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
				text.New("Matrícula: "+v.LicensePlate, props.Text{Size: 8, Top: 7, Color: colorGray}),
			),
			col.New(6).Add(
				text.New("Bastidor: "+nonEmpty(v.VIN, "—"), props.Text{Size: 8, Align: align.Right, Top: 1, Color: colorGray}),
				text.New(fmt.Sprintf("Kilómetros: %d", v.Kilometers), props.Text{Size: 8, Align: align.Right, Top: 7, Color: colorGray}),
			),
		),
	}
}

// totalsRow: desglose base / IGIC / total con el impuesto desglosado desde el
// precio final (impuestos incluidos).
func totalsRow(subtotal, rate, tax, total decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Base imponible:"),
			label(fmt.Sprintf("IGIC (%s%%):", rate.StringFixed(0))),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(4).Add(
			value(formatEUR(subtotal)),
			value(formatEUR(tax)),
			text.New(formatEUR(total), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// signatureRow: líneas de firma a pie de documento.
func signatureRow(leftLabel, rightLabel string) core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center, Top: 14}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 20, Color: colorGray}),
		)
	}
	return row.New(26).Add(sig(leftLabel), sig(rightLabel))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatEUR formatea un importe con separador de miles, coma decimal y símbolo.
// Ej: 14018.69 → "14.018,69 €"
func formatEUR(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, decPart, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := string(buf) + "," + decPart + " €"
	if neg {
		out = "-" + out
	}
	return out
}
