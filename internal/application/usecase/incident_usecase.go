package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// IncidentUseCase incidencias (averías, problemas) ligadas a un coche.
type IncidentUseCase struct {
	incidentRepo repository.IncidentRepository
	carRepo      repository.CarRepository
}

// NewIncidentUseCase construye el caso de uso de incidencias.
func NewIncidentUseCase(incidentRepo repository.IncidentRepository, carRepo repository.CarRepository) *IncidentUseCase {
	return &IncidentUseCase{incidentRepo: incidentRepo, carRepo: carRepo}
}

// Create abre una incidencia sobre un coche accesible por el usuario.
func (uc *IncidentUseCase) Create(userID, companyID string, in dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	car, err := uc.carRepo.GetByID(in.CarID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return nil, domain.ErrForbidden
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	now := time.Now()
	inc := &entity.Incident{
		ID:           uuid.New().String(),
		CarID:        car.ID,
		LicensePlate: car.LicensePlate,
		Date:         date,
		Description:  in.Description,
		Status:       entity.IncidentAbierta,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.incidentRepo.Create(inc); err != nil {
		return nil, err
	}
	return toIncidentResponse(inc), nil
}

// Update modifica una incidencia; el estado solo admite abierta o resuelta.
func (uc *IncidentUseCase) Update(userID, companyID, id string, in dto.UpdateIncidentRequest) (*dto.IncidentResponse, error) {
	inc, err := uc.incidentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inc == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkAccess(userID, companyID, inc.CarID); err != nil {
		return nil, err
	}
	if in.Date != nil {
		inc.Date = *in.Date
	}
	if in.Description != nil {
		inc.Description = *in.Description
	}
	if in.Status != nil {
		if *in.Status != entity.IncidentAbierta && *in.Status != entity.IncidentResuelta {
			return nil, domain.ErrInvalidInput
		}
		inc.Status = *in.Status
	}
	inc.UpdatedAt = time.Now()
	if err := uc.incidentRepo.Update(inc); err != nil {
		return nil, err
	}
	return toIncidentResponse(inc), nil
}

// Resolve marca la incidencia como resuelta.
func (uc *IncidentUseCase) Resolve(userID, companyID, id string) (*dto.IncidentResponse, error) {
	resolved := entity.IncidentResuelta
	return uc.Update(userID, companyID, id, dto.UpdateIncidentRequest{Status: &resolved})
}

// Delete borra una incidencia.
func (uc *IncidentUseCase) Delete(userID, companyID, id string) error {
	inc, err := uc.incidentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if inc == nil {
		return domain.ErrNotFound
	}
	if err := uc.checkAccess(userID, companyID, inc.CarID); err != nil {
		return err
	}
	return uc.incidentRepo.Delete(id)
}

// ListByCar lista las incidencias de un coche.
func (uc *IncidentUseCase) ListByCar(userID, companyID, carID string) ([]dto.IncidentResponse, error) {
	if err := uc.checkAccess(userID, companyID, carID); err != nil {
		return nil, err
	}
	list, err := uc.incidentRepo.ListByCar(carID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IncidentResponse, 0, len(list))
	for _, i := range list {
		out = append(out, *toIncidentResponse(i))
	}
	return out, nil
}

// List lista las incidencias del usuario paginadas.
func (uc *IncidentUseCase) List(userID string, limit, offset int) (*dto.IncidentListResponse, error) {
	list, err := uc.incidentRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IncidentResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toIncidentResponse(i))
	}
	return &dto.IncidentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *IncidentUseCase) checkAccess(userID, companyID, carID string) error {
	car, err := uc.carRepo.GetByID(carID)
	if err != nil {
		return err
	}
	if car == nil {
		return domain.ErrNotFound
	}
	if !billing.CanAccessCar(car, userID, companyID) {
		return domain.ErrForbidden
	}
	return nil
}

func toIncidentResponse(i *entity.Incident) *dto.IncidentResponse {
	return &dto.IncidentResponse{
		ID:           i.ID,
		CarID:        i.CarID,
		LicensePlate: i.LicensePlate,
		Date:         i.Date,
		Description:  i.Description,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}
