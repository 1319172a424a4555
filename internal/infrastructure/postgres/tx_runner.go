package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. Es la base del cambio de estado con emisión de documentos: estado,
// número reservado y registro del PDF confirman (o caen) juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(
	carRepo repository.CarRepository,
	noteRepo repository.NoteRepository,
	docRepo repository.CarDocumentRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	carRepo := NewCarRepository(tx)
	noteRepo := NewNoteRepository(tx)
	docRepo := NewCarDocumentRepository(tx)
	userRepo := NewUserRepository(tx)

	if err := fn(carRepo, noteRepo, docRepo, userRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
