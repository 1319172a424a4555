package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// CarRepository define el puerto de persistencia para Car.
//
// La unicidad de matrícula es por cuenta (user_id + license_plate); la del VIN
// es global. El adaptador debe traducir las violaciones de constraint a
// domain.ErrDuplicatePlate / domain.ErrDuplicateVIN.
type CarRepository interface {
	Create(car *entity.Car) error
	GetByID(id string) (*entity.Car, error)
	GetByUserAndPlate(userID, licensePlate string) (*entity.Car, error)
	GetByVIN(vin string) (*entity.Car, error)
	Update(car *entity.Car) error
	Delete(id string) error
	ListByUser(userID string, limit, offset int) ([]*entity.Car, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Car, error)
}
