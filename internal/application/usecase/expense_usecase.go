// Package usecase contiene los casos de uso CRUD que no forman parte del ciclo
// de vida del coche: gastos, incidencias, ubicaciones, notificaciones, equipos
// e invitaciones.
package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dventura/autogest-api/internal/application/dto"
	"github.com/dventura/autogest-api/internal/domain"
	domaincar "github.com/dventura/autogest-api/internal/domain/car"
	"github.com/dventura/autogest-api/internal/domain/entity"
	domainexpense "github.com/dventura/autogest-api/internal/domain/expense"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

// ExpenseUseCase libro de gastos: apuntes, recurrencia proyectada y justificantes.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
	carRepo     repository.CarRepository
}

// NewExpenseUseCase construye el caso de uso de gastos.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository, carRepo repository.CarRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo, carRepo: carRepo}
}

// normalizeCategory devuelve la categoría canónica si coincide (sin distinguir
// mayúsculas) con una del catálogo; si no, conserva la cadena libre del usuario.
func normalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "Otros"
	}
	for _, c := range entity.ExpenseCategories {
		if strings.EqualFold(trimmed, c) {
			return c
		}
	}
	return trimmed
}

// Create registra un gasto. Si viene matrícula, debe corresponder a un coche de
// la misma cuenta; si el gasto es recurrente se proyecta la próxima fecha.
func (uc *ExpenseUseCase) Create(userID string, companyID *string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var plate *string
	if in.CarLicensePlate != nil && *in.CarLicensePlate != "" {
		normalized := domaincar.NormalizePlate(*in.CarLicensePlate)
		car, err := uc.carRepo.GetByUserAndPlate(userID, normalized)
		if err != nil {
			return nil, err
		}
		if car == nil {
			return nil, domain.ErrNotFound
		}
		plate = &normalized
	}

	now := time.Now()
	exp := &entity.Expense{
		ID:              uuid.New().String(),
		UserID:          userID,
		CompanyID:       companyID,
		Date:            in.Date,
		Category:        normalizeCategory(in.Category),
		Description:     in.Description,
		Amount:          in.Amount,
		CarLicensePlate: plate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if in.IsRecurring {
		next, err := domainexpense.NextDate(in.Date, in.RecurrenceType, in.RecurrenceCustomValue, in.RecurrenceEndDate)
		if err != nil {
			return nil, err
		}
		exp.IsRecurring = true
		exp.RecurrenceType = in.RecurrenceType
		exp.RecurrenceCustomValue = in.RecurrenceCustomValue
		exp.RecurrenceEndDate = in.RecurrenceEndDate
		exp.NextRecurrenceDate = next
	}

	if err := uc.expenseRepo.Create(exp); err != nil {
		return nil, err
	}
	return toExpenseResponse(exp, nil), nil
}

// GetByID obtiene un gasto del usuario con sus justificantes.
func (uc *ExpenseUseCase) GetByID(userID, id string) (*dto.ExpenseResponse, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	if exp.UserID != userID {
		return nil, domain.ErrForbidden
	}
	atts, err := uc.expenseRepo.ListAttachments(id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(exp, atts), nil
}

// Update aplica una actualización parcial; la recurrencia se reproyecta si
// cambian sus parámetros o la fecha del apunte.
func (uc *ExpenseUseCase) Update(userID, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	if exp.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if in.Date != nil {
		exp.Date = *in.Date
	}
	if in.Category != nil {
		exp.Category = normalizeCategory(*in.Category)
	}
	if in.Description != nil {
		exp.Description = *in.Description
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		exp.Amount = *in.Amount
	}
	if in.CarLicensePlate != nil {
		if *in.CarLicensePlate == "" {
			exp.CarLicensePlate = nil
		} else {
			normalized := domaincar.NormalizePlate(*in.CarLicensePlate)
			car, err := uc.carRepo.GetByUserAndPlate(userID, normalized)
			if err != nil {
				return nil, err
			}
			if car == nil {
				return nil, domain.ErrNotFound
			}
			exp.CarLicensePlate = &normalized
		}
	}
	if in.IsRecurring != nil {
		exp.IsRecurring = *in.IsRecurring
	}
	if in.RecurrenceType != nil {
		exp.RecurrenceType = *in.RecurrenceType
	}
	if in.RecurrenceCustomValue != nil {
		exp.RecurrenceCustomValue = in.RecurrenceCustomValue
	}
	if in.RecurrenceEndDate != nil {
		exp.RecurrenceEndDate = in.RecurrenceEndDate
	}
	if exp.IsRecurring {
		next, err := domainexpense.NextDate(exp.Date, exp.RecurrenceType, exp.RecurrenceCustomValue, exp.RecurrenceEndDate)
		if err != nil {
			return nil, err
		}
		exp.NextRecurrenceDate = next
	} else {
		exp.RecurrenceType = ""
		exp.RecurrenceCustomValue = nil
		exp.RecurrenceEndDate = nil
		exp.NextRecurrenceDate = nil
	}
	exp.UpdatedAt = time.Now()
	if err := uc.expenseRepo.Update(exp); err != nil {
		return nil, err
	}
	return toExpenseResponse(exp, nil), nil
}

// Delete borra un gasto del usuario.
func (uc *ExpenseUseCase) Delete(userID, id string) error {
	exp, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if exp == nil {
		return domain.ErrNotFound
	}
	if exp.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.expenseRepo.Delete(id)
}

// List lista los gastos del usuario paginados.
func (uc *ExpenseUseCase) List(userID string, limit, offset int) (*dto.ExpenseListResponse, error) {
	list, err := uc.expenseRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e, nil))
	}
	return &dto.ExpenseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByPlate lista los gastos ligados a una matrícula del usuario.
func (uc *ExpenseUseCase) ListByPlate(userID, plate string) ([]dto.ExpenseResponse, error) {
	list, err := uc.expenseRepo.ListByPlate(userID, domaincar.NormalizePlate(plate))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toExpenseResponse(e, nil))
	}
	return out, nil
}

// AddAttachment registra un justificante ya guardado en disco.
func (uc *ExpenseUseCase) AddAttachment(userID, expenseID, path, originalName string) (*dto.AttachmentResponse, error) {
	exp, err := uc.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, domain.ErrNotFound
	}
	if exp.UserID != userID {
		return nil, domain.ErrForbidden
	}
	att := &entity.ExpenseAttachment{
		ID:           uuid.New().String(),
		ExpenseID:    expenseID,
		Path:         path,
		OriginalName: originalName,
		CreatedAt:    time.Now(),
	}
	if err := uc.expenseRepo.AddAttachment(att); err != nil {
		return nil, err
	}
	return &dto.AttachmentResponse{ID: att.ID, Path: att.Path, OriginalName: att.OriginalName}, nil
}

func toExpenseResponse(e *entity.Expense, atts []*entity.ExpenseAttachment) *dto.ExpenseResponse {
	resp := &dto.ExpenseResponse{
		ID:                    e.ID,
		UserID:                e.UserID,
		Date:                  e.Date,
		Category:              e.Category,
		Description:           e.Description,
		Amount:                e.Amount,
		CarLicensePlate:       e.CarLicensePlate,
		IsRecurring:           e.IsRecurring,
		RecurrenceType:        e.RecurrenceType,
		RecurrenceCustomValue: e.RecurrenceCustomValue,
		RecurrenceEndDate:     e.RecurrenceEndDate,
		NextRecurrenceDate:    e.NextRecurrenceDate,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
	for _, a := range atts {
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			ID:           a.ID,
			Path:         a.Path,
			OriginalName: a.OriginalName,
		})
	}
	return resp
}
