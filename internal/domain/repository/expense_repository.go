package repository

import "github.com/dventura/autogest-api/internal/domain/entity"

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	Delete(id string) error
	ListByUser(userID string, limit, offset int) ([]*entity.Expense, error)
	ListByPlate(userID, licensePlate string) ([]*entity.Expense, error)
	// UnlinkPlate desliga de la matrícula los gastos del usuario (SET NULL)
	// cuando el coche se elimina.
	UnlinkPlate(userID, licensePlate string) error

	AddAttachment(att *entity.ExpenseAttachment) error
	ListAttachments(expenseID string) ([]*entity.ExpenseAttachment, error)
}
