package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-control-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-control-api/internal/config"
	"github.com/vfg2006/budget-control-api/internal/domain"
	"github.com/vfg2006/budget-control-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-control-api/internal/usecases/dayparting"
	"go.uber.org/mock/gomock"
)

func sweepTestConfig() *config.Config {
	return &config.Config{
		BudgetSweep: config.BudgetSweep{
			CronSchedule:  "*/15 * * * *",
			Enabled:       true,
			ExpirySeconds: 60,
		},
		Jobs: config.Jobs{
			MaxAttempts:      3,
			RetryBaseSeconds: 60,
		},
	}
}

func TestRunSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reference := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	originalNow := nowFn
	originalSleep := sleepFn
	nowFn = func() time.Time { return reference }
	sleepFn = func(time.Duration) {}
	defer func() {
		nowFn = originalNow
		sleepFn = originalSleep
	}()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockScheduleRepo := mocks.NewMockScheduleRepository(ctrl)

	budgetingService := budgeting.NewService(mockBrandRepo, mockCampaignRepo, mockScheduleRepo)
	daypartingService := dayparting.NewService(mockCampaignRepo, mockScheduleRepo)

	t.Run("varredura pausa marcas estouradas e registra o resultado", func(t *testing.T) {
		service := NewBudgetSweepService(budgetingService, daypartingService, sweepTestConfig())

		over := &domain.Brand{
			ID:            "BR001",
			Name:          "Óptica Horizonte",
			DailyBudget:   decimal.RequireFromString("100.00"),
			DailySpend:    decimal.RequireFromString("105.00"),
			MonthlyBudget: decimal.RequireFromString("3000.00"),
			MonthlySpend:  decimal.RequireFromString("500.00"),
		}

		mockBrandRepo.EXPECT().
			ListBrands(true).
			Return([]*domain.Brand{over}, nil)

		mockCampaignRepo.EXPECT().
			PauseActiveByBudget("BR001").
			Return(2, nil)

		// A varredura de dayparting roda logo após a checagem de orçamento
		mockCampaignRepo.EXPECT().
			ListCampaigns().
			Return(nil, nil)

		err := service.RunSweep(context.Background(), reference)

		require.NoError(t, err)

		status := service.GetStatus()
		require.Contains(t, status, "last_budget_result")
		budgetResult := status["last_budget_result"].(*domain.BudgetCheckResult)
		assert.Equal(t, 1, budgetResult.BrandsOverDailyBudget)
		assert.Equal(t, 2, budgetResult.CampaignsPaused)
		assert.Contains(t, status, "last_dayparting_result")
	})

	t.Run("disparo vencido é descartado sem tocar o banco", func(t *testing.T) {
		service := NewBudgetSweepService(budgetingService, daypartingService, sweepTestConfig())

		staleFiredAt := reference.Add(-2 * time.Minute)

		err := service.RunSweep(context.Background(), staleFiredAt)

		require.NoError(t, err)

		status := service.GetStatus()
		assert.NotContains(t, status, "last_budget_result")
	})

	t.Run("varredura concorrente é ignorada enquanto outra roda", func(t *testing.T) {
		service := NewBudgetSweepService(budgetingService, daypartingService, sweepTestConfig())

		started := make(chan struct{})
		release := make(chan struct{})

		// Segura a primeira varredura dentro da listagem para simular uma
		// execução longa em andamento
		mockBrandRepo.EXPECT().
			ListBrands(true).
			DoAndReturn(func(bool) ([]*domain.Brand, error) {
				close(started)
				<-release
				return nil, nil
			})

		mockCampaignRepo.EXPECT().
			ListCampaigns().
			Return(nil, nil)

		firstDone := make(chan error, 1)
		go func() {
			firstDone <- service.RunSweep(context.Background(), reference)
		}()

		<-started

		status := service.GetStatus()
		assert.Equal(t, true, status["sweep_running"])

		// A segunda chamada retorna na hora, sem disparar novas consultas
		err := service.RunSweep(context.Background(), reference)
		require.NoError(t, err)

		close(release)
		require.NoError(t, <-firstDone)

		status = service.GetStatus()
		assert.Equal(t, false, status["sweep_running"])
	})

	t.Run("falha transitória na listagem é retentada", func(t *testing.T) {
		service := NewBudgetSweepService(budgetingService, daypartingService, sweepTestConfig())

		gomock.InOrder(
			mockBrandRepo.EXPECT().
				ListBrands(true).
				Return(nil, errors.New("connection reset")),
			mockBrandRepo.EXPECT().
				ListBrands(true).
				Return(nil, nil),
		)

		mockCampaignRepo.EXPECT().
			ListCampaigns().
			Return(nil, nil)

		err := service.RunSweep(context.Background(), reference)

		require.NoError(t, err)
	})
}
