package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-control-api/internal/domain"
)

const lockBrandQuery = `SELECT (.+) FROM brands WHERE id = \$1 FOR UPDATE`

func newSpendRepositoryWithMock(t *testing.T) (SpendRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewSpendRepository(&postgres.Connection{DB: db}), mock
}

func brandRows(dailySpend, monthlySpend string) *sqlmock.Rows {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	return sqlmock.
		NewRows([]string{"id", "name", "daily_budget", "monthly_budget", "daily_spend", "monthly_spend", "is_active", "created_at", "updated_at"}).
		AddRow("BR001", "Óptica Horizonte", "150.00", "3500.00", dailySpend, monthlySpend, true, now, now)
}

func expectSpendTxSuccess(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(lockBrandQuery).
		WithArgs("BR001").
		WillReturnRows(brandRows("30.00", "400.00"))
	mock.ExpectQuery(`INSERT INTO spends`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).
			AddRow(time.Date(2026, 8, 24, 10, 0, 1, 0, time.UTC)))
	mock.ExpectExec(`UPDATE brands SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func newSpendFixture() *domain.Spend {
	return &domain.Spend{
		ID:         "SP001",
		CampaignID: "CP001",
		Amount:     decimal.RequireFromString("12.50"),
		SpentAt:    time.Date(2026, 8, 24, 9, 45, 0, 0, time.UTC),
	}
}

func TestRecord(t *testing.T) {
	t.Run("grava o gasto e devolve a marca com os agregados incrementados", func(t *testing.T) {
		repo, mock := newSpendRepositoryWithMock(t)

		expectSpendTxSuccess(mock)

		spend := newSpendFixture()
		brand, err := repo.Record(context.Background(), spend, "BR001")

		require.NoError(t, err)
		require.NotNil(t, brand)
		assert.Equal(t, "42.5", brand.DailySpend.String())
		assert.Equal(t, "412.5", brand.MonthlySpend.String())
		assert.False(t, spend.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflito de serialização é retentado em nova transação", func(t *testing.T) {
		repo, mock := newSpendRepositoryWithMock(t)

		// Primeira tentativa cai num serialization_failure ao travar a marca
		mock.ExpectBegin()
		mock.ExpectQuery(lockBrandQuery).
			WithArgs("BR001").
			WillReturnError(&pq.Error{Code: "40001"})
		mock.ExpectRollback()

		expectSpendTxSuccess(mock)

		brand, err := repo.Record(context.Background(), newSpendFixture(), "BR001")

		require.NoError(t, err)
		require.NotNil(t, brand)
		assert.Equal(t, "42.5", brand.DailySpend.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("retentativas esgotadas propagam o conflito ao chamador", func(t *testing.T) {
		repo, mock := newSpendRepositoryWithMock(t)

		for i := 0; i < maxSpendTxAttempts; i++ {
			mock.ExpectBegin()
			mock.ExpectQuery(lockBrandQuery).
				WithArgs("BR001").
				WillReturnError(&pq.Error{Code: "40P01"})
			mock.ExpectRollback()
		}

		brand, err := repo.Record(context.Background(), newSpendFixture(), "BR001")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSpendConflict)
		assert.Nil(t, brand)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("erro não transiente interrompe sem retentar", func(t *testing.T) {
		repo, mock := newSpendRepositoryWithMock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockBrandQuery).
			WithArgs("BR001").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		brand, err := repo.Record(context.Background(), newSpendFixture(), "BR001")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSpendConflict)
		assert.Nil(t, brand)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsRetryableTxError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "serialization_failure é transiente",
			err:      &pq.Error{Code: "40001"},
			expected: true,
		},
		{
			name:     "deadlock_detected é transiente",
			err:      &pq.Error{Code: "40P01"},
			expected: true,
		},
		{
			name:     "lock_not_available é transiente",
			err:      &pq.Error{Code: "55P03"},
			expected: true,
		},
		{
			name:     "erro transiente encadeado ainda é identificado",
			err:      fmt.Errorf("erro ao travar marca para atualização: %w", &pq.Error{Code: "40001"}),
			expected: true,
		},
		{
			name:     "violação de constraint não é transiente",
			err:      &pq.Error{Code: "23505"},
			expected: false,
		},
		{
			name:     "erro comum não é transiente",
			err:      errors.New("connection reset"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isRetryableTxError(tt.err))
		})
	}
}
