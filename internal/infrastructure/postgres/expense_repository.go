package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dventura/autogest-api/internal/domain/entity"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, user_id, company_id, date, category, description, amount,
	car_license_plate, is_recurring, recurrence_type, recurrence_custom_value,
	recurrence_end_date, next_recurrence_date, created_at, updated_at`

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL (usable con pool o tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de persistencia para gastos. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.UserID, expense.CompanyID, expense.Date, expense.Category,
		expense.Description, expense.Amount, expense.CarLicensePlate, expense.IsRecurring,
		expense.RecurrenceType, expense.RecurrenceCustomValue, expense.RecurrenceEndDate,
		expense.NextRecurrenceDate, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	var e entity.Expense
	err := scanExpense(r.q.QueryRow(context.Background(),
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Update actualiza un gasto.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	query := `
		UPDATE expenses SET
			date = $2, category = $3, description = $4, amount = $5, car_license_plate = $6,
			is_recurring = $7, recurrence_type = $8, recurrence_custom_value = $9,
			recurrence_end_date = $10, next_recurrence_date = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Date, expense.Category, expense.Description, expense.Amount,
		expense.CarLicensePlate, expense.IsRecurring, expense.RecurrenceType,
		expense.RecurrenceCustomValue, expense.RecurrenceEndDate, expense.NextRecurrenceDate,
		expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete elimina un gasto; los justificantes caen en cascada.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// ListByUser lista los gastos del usuario con paginación, los más recientes primero.
func (r *ExpenseRepo) ListByUser(userID string, limit, offset int) ([]*entity.Expense, error) {
	return r.list(`SELECT `+expenseColumns+` FROM expenses
		WHERE user_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
}

// ListByPlate lista los gastos ligados a una matrícula del usuario.
func (r *ExpenseRepo) ListByPlate(userID, licensePlate string) ([]*entity.Expense, error) {
	return r.list(`SELECT `+expenseColumns+` FROM expenses
		WHERE user_id = $1 AND car_license_plate = $2 ORDER BY date DESC`, userID, licensePlate)
}

// UnlinkPlate desliga de la matrícula los gastos del usuario (SET NULL) cuando
// el coche se elimina. Los apuntes se conservan.
func (r *ExpenseRepo) UnlinkPlate(userID, licensePlate string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE expenses SET car_license_plate = NULL, updated_at = now()
		 WHERE user_id = $1 AND car_license_plate = $2`,
		userID, licensePlate,
	)
	if err != nil {
		return fmt.Errorf("unlink expenses: %w", err)
	}
	return nil
}

// AddAttachment persiste un justificante.
func (r *ExpenseRepo) AddAttachment(att *entity.ExpenseAttachment) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO expense_attachments (id, expense_id, path, original_name, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		att.ID, att.ExpenseID, att.Path, att.OriginalName, att.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense attachment: %w", err)
	}
	return nil
}

// ListAttachments lista los justificantes de un gasto.
func (r *ExpenseRepo) ListAttachments(expenseID string) ([]*entity.ExpenseAttachment, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, expense_id, path, original_name, created_at
		 FROM expense_attachments WHERE expense_id = $1 ORDER BY created_at`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("list expense attachments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpenseAttachment
	for rows.Next() {
		var a entity.ExpenseAttachment
		if err := rows.Scan(&a.ID, &a.ExpenseID, &a.Path, &a.OriginalName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense attachment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) list(query string, args ...any) ([]*entity.Expense, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := scanExpense(rows, &e); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func scanExpense(row pgx.Row, e *entity.Expense) error {
	return row.Scan(
		&e.ID, &e.UserID, &e.CompanyID, &e.Date, &e.Category, &e.Description, &e.Amount,
		&e.CarLicensePlate, &e.IsRecurring, &e.RecurrenceType, &e.RecurrenceCustomValue,
		&e.RecurrenceEndDate, &e.NextRecurrenceDate, &e.CreatedAt, &e.UpdatedAt,
	)
}
