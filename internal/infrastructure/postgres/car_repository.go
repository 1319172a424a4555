package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.CarRepository = (*CarRepo)(nil)

const carColumns = `id, user_id, company_id, make, model, version, year, license_plate, vin,
	kilometers, fuel, transmission, color, keys, has_insurance, location, tags,
	price, purchase_price, sale_price, sale_date, buyer,
	reservation_deposit, reservation_expiry, reservation_pdf_path,
	gestoria_pickup_date, gestoria_return_date, invoice_number, proforma_number,
	status, created_at, updated_at`

// CarRepo implementación del puerto CarRepository sobre PostgreSQL (usable con pool o tx).
type CarRepo struct {
	q Querier
}

// NewCarRepository construye el adaptador de persistencia para coches. Pasar pool o tx (Querier).
func NewCarRepository(q Querier) *CarRepo {
	return &CarRepo{q: q}
}

// Create persiste un coche nuevo. Las violaciones de unicidad se traducen a
// ErrDuplicatePlate / ErrDuplicateVIN según la constraint.
func (r *CarRepo) Create(car *entity.Car) error {
	query := `
		INSERT INTO cars (` + carColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32)`
	_, err := r.q.Exec(context.Background(), query,
		car.ID, car.UserID, car.CompanyID, car.Make, car.Model, car.Version, car.Year,
		car.LicensePlate, car.VIN, car.Kilometers, car.Fuel, car.Transmission, car.Color,
		car.Keys, car.HasInsurance, car.Location, car.Tags,
		car.Price, car.PurchasePrice, car.SalePrice, car.SaleDate, car.Buyer,
		car.ReservationDeposit, car.ReservationExpiry, car.ReservationPDFPath,
		car.GestoriaPickupDate, car.GestoriaReturnDate, car.InvoiceNumber, car.ProformaNumber,
		car.Status, car.CreatedAt, car.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("insert car: %w", err)
	}
	return nil
}

// GetByID obtiene un coche por ID.
func (r *CarRepo) GetByID(id string) (*entity.Car, error) {
	return r.getOne(`SELECT `+carColumns+` FROM cars WHERE id = $1`, id)
}

// GetByUserAndPlate obtiene el coche de una cuenta por matrícula normalizada.
func (r *CarRepo) GetByUserAndPlate(userID, licensePlate string) (*entity.Car, error) {
	return r.getOne(`SELECT `+carColumns+` FROM cars WHERE user_id = $1 AND license_plate = $2`, userID, licensePlate)
}

// GetByVIN obtiene un coche por VIN (único global).
func (r *CarRepo) GetByVIN(vin string) (*entity.Car, error) {
	return r.getOne(`SELECT `+carColumns+` FROM cars WHERE vin = $1`, vin)
}

// Update actualiza la fila completa salvo user_id, license_plate y vin, que son
// inmutables tras el alta.
func (r *CarRepo) Update(car *entity.Car) error {
	query := `
		UPDATE cars SET
			company_id = $2, make = $3, model = $4, version = $5, year = $6,
			kilometers = $7, fuel = $8, transmission = $9, color = $10, keys = $11,
			has_insurance = $12, location = $13, tags = $14,
			price = $15, purchase_price = $16, sale_price = $17, sale_date = $18, buyer = $19,
			reservation_deposit = $20, reservation_expiry = $21, reservation_pdf_path = $22,
			gestoria_pickup_date = $23, gestoria_return_date = $24,
			invoice_number = $25, proforma_number = $26, status = $27, updated_at = $28
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		car.ID, car.CompanyID, car.Make, car.Model, car.Version, car.Year,
		car.Kilometers, car.Fuel, car.Transmission, car.Color, car.Keys,
		car.HasInsurance, car.Location, car.Tags,
		car.Price, car.PurchasePrice, car.SalePrice, car.SaleDate, car.Buyer,
		car.ReservationDeposit, car.ReservationExpiry, car.ReservationPDFPath,
		car.GestoriaPickupDate, car.GestoriaReturnDate,
		car.InvoiceNumber, car.ProformaNumber, car.Status, car.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update car: %w", err)
	}
	return nil
}

// Delete elimina un coche; notas, documentos e incidencias caen en cascada.
func (r *CarRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	return nil
}

// ListByUser lista los coches de una cuenta con paginación.
func (r *CarRepo) ListByUser(userID string, limit, offset int) ([]*entity.Car, error) {
	return r.list(`SELECT `+carColumns+` FROM cars WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

// ListByCompany lista los coches de un equipo con paginación.
func (r *CarRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Car, error) {
	return r.list(`SELECT `+carColumns+` FROM cars WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

func (r *CarRepo) getOne(query string, args ...any) (*entity.Car, error) {
	var c entity.Car
	err := scanCar(r.q.QueryRow(context.Background(), query, args...), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get car: %w", err)
	}
	return &c, nil
}

func (r *CarRepo) list(query string, args ...any) ([]*entity.Car, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	defer rows.Close()
	var list []*entity.Car
	for rows.Next() {
		var c entity.Car
		if err := scanCar(rows, &c); err != nil {
			return nil, fmt.Errorf("scan car: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func scanCar(row pgx.Row, c *entity.Car) error {
	return row.Scan(
		&c.ID, &c.UserID, &c.CompanyID, &c.Make, &c.Model, &c.Version, &c.Year,
		&c.LicensePlate, &c.VIN, &c.Kilometers, &c.Fuel, &c.Transmission, &c.Color,
		&c.Keys, &c.HasInsurance, &c.Location, &c.Tags,
		&c.Price, &c.PurchasePrice, &c.SalePrice, &c.SaleDate, &c.Buyer,
		&c.ReservationDeposit, &c.ReservationExpiry, &c.ReservationPDFPath,
		&c.GestoriaPickupDate, &c.GestoriaReturnDate, &c.InvoiceNumber, &c.ProformaNumber,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
}
