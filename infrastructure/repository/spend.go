package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/budget-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-control-api/internal/domain"
)

// Tentativas do caminho de gravação de gasto antes de propagar um conflito de
// serialização ao chamador.
const maxSpendTxAttempts = 3

// ErrSpendConflict sinaliza que as retentativas contra conflitos transientes do
// Postgres se esgotaram sem concluir a gravação.
var ErrSpendConflict = errors.New("conflito persistente ao registrar gasto")

type SpendRepository interface {
	Record(ctx context.Context, spend *domain.Spend, brandID string) (*domain.Brand, error)
	DeleteOlderThan(ctx context.Context, cutoff string, batchSize int) (int64, error)
}

type spendRepository struct {
	conn *postgres.Connection
}

func NewSpendRepository(conn *postgres.Connection) SpendRepository {
	return &spendRepository{
		conn: conn,
	}
}

// Record grava o evento no ledger e incrementa os agregados da marca na mesma
// transação. A linha da marca é travada com SELECT ... FOR UPDATE, serializando
// escritores concorrentes da mesma marca; conflitos transientes do Postgres são
// repetidos de forma transparente. Retorna a marca já com os contadores
// incrementados, para o chamador avaliar os limites sem nova leitura.
func (r *spendRepository) Record(ctx context.Context, spend *domain.Spend, brandID string) (*domain.Brand, error) {
	var brand *domain.Brand

	var err error
	for attempt := 1; attempt <= maxSpendTxAttempts; attempt++ {
		err = r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			locked, txErr := lockBrandForUpdate(tx, brandID)
			if txErr != nil {
				return txErr
			}

			if txErr := insertSpend(tx, spend); txErr != nil {
				return txErr
			}

			locked.DailySpend = locked.DailySpend.Add(spend.Amount)
			locked.MonthlySpend = locked.MonthlySpend.Add(spend.Amount)

			if txErr := updateBrandSpend(tx, locked); txErr != nil {
				return txErr
			}

			brand = locked
			return nil
		})
		if err == nil {
			return brand, nil
		}
		if !isRetryableTxError(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrSpendConflict, err)
}

// DeleteOlderThan remove um lote de registros do ledger anteriores ao corte.
// Retorna a quantidade removida; o chamador repete até o lote voltar vazio.
func (r *spendRepository) DeleteOlderThan(ctx context.Context, cutoff string, batchSize int) (int64, error) {
	query := `
		DELETE FROM spends
		WHERE id IN (
			SELECT id FROM spends WHERE spent_at < $1 LIMIT $2
		)`

	result, err := r.conn.ExecContext(ctx, query, cutoff, batchSize)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover registros antigos do ledger: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return deleted, nil
}

func lockBrandForUpdate(tx *sql.Tx, brandID string) (*domain.Brand, error) {
	query, args, err := squirrel.
		Select(brandsColumns).
		From("brands").
		Where(squirrel.Eq{"id": brandID}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	brand, err := scanBrandRow(tx.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("marca %s não encontrada", brandID)
		}
		return nil, fmt.Errorf("erro ao travar marca para atualização: %w", err)
	}

	return brand, nil
}

func insertSpend(tx *sql.Tx, spend *domain.Spend) error {
	query, args, err := squirrel.
		Insert("spends").
		Columns("id", "campaign_id", "amount", "spent_at").
		Values(spend.ID, spend.CampaignID, spend.Amount, spend.SpentAt).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := tx.QueryRow(query, args...).Scan(&spend.CreatedAt); err != nil {
		return fmt.Errorf("erro ao inserir gasto no ledger: %w", err)
	}

	return nil
}

func updateBrandSpend(tx *sql.Tx, brand *domain.Brand) error {
	query, args, err := squirrel.
		Update("brands").
		Set("daily_spend", brand.DailySpend).
		Set("monthly_spend", brand.MonthlySpend).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": brand.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar agregados da marca: %w", err)
	}

	return nil
}

// isRetryableTxError identifica falhas transientes de concorrência do Postgres:
// serialization_failure (40001), deadlock_detected (40P01) e
// lock_not_available (55P03).
func isRetryableTxError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	switch pqErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}
