package entity

import "time"

// Clases de documento adjuntas a un coche.
const (
	DocFichaTecnica       = "ficha_tecnica"
	DocPermisoCirculacion = "permiso_circulacion"
	DocOtros              = "otros"
	DocFoto               = "foto"
	DocReservaPDF         = "reserva_pdf"
	DocFacturaPDF         = "factura_pdf"
	DocProformaPDF        = "proforma_pdf"
)

// CarDocument fichero asociado a un coche: subidas del usuario (ficha técnica,
// permiso de circulación, fotos, otros) y PDFs generados por el servicio
// (contrato de reserva, factura, proforma). Cascada con el coche.
type CarDocument struct {
	ID           string
	CarID        string
	Kind         string // ver constantes Doc*
	Path         string // ruta relativa bajo el directorio público
	OriginalName string
	CreatedAt    time.Time
}
