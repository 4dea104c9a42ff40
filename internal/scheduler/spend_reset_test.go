package scheduler

import (
	"context"
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

func resetTestConfig() *config.Config {
	return &config.Config{
		SpendReset: config.SpendReset{
			DailyCronSchedule:   "0 0 * * *",
			MonthlyCronSchedule: "0 0 1 * *",
			Enabled:             true,
			ExpirySeconds:       60,
		},
		Jobs: config.Jobs{
			MaxAttempts:      3,
			RetryBaseSeconds: 60,
		},
	}
}

func TestRunDailyReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Congela o relógio na meia-noite UTC
	reference := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	originalNow := nowFn
	originalSleep := sleepFn
	nowFn = func() time.Time { return reference }
	sleepFn = func(time.Duration) {}
	defer func() {
		nowFn = originalNow
		sleepFn = originalSleep
	}()

	// Mocks de repositório compartilhados pelos serviços reais
	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockScheduleRepo := mocks.NewMockScheduleRepository(ctrl)

	budgetingService := budgeting.NewService(mockBrandRepo, mockCampaignRepo, mockScheduleRepo)
	daypartingService := dayparting.NewService(mockCampaignRepo, mockScheduleRepo)

	service := NewSpendResetService(mockBrandRepo, budgetingService, daypartingService, resetTestConfig())

	t.Run("zera contadores diários e reativa campanhas elegíveis", func(t *testing.T) {
		// Antes do reset: uma marca estourada no dia, outra estourada no mês e
		// uma inativa que acumulou gasto antes de ser desativada
		overDaily := &domain.Brand{
			ID:            "BR001",
			Name:          "Óptica Horizonte",
			DailyBudget:   decimal.RequireFromString("150.00"),
			DailySpend:    decimal.RequireFromString("150.00"),
			MonthlyBudget: decimal.RequireFromString("3500.00"),
			MonthlySpend:  decimal.RequireFromString("900.00"),
		}
		overMonthly := &domain.Brand{
			ID:            "BR002",
			Name:          "Vista Clara",
			DailyBudget:   decimal.RequireFromString("80.00"),
			DailySpend:    decimal.RequireFromString("80.00"),
			MonthlyBudget: decimal.RequireFromString("2000.00"),
			MonthlySpend:  decimal.RequireFromString("2000.00"),
		}
		inactive := &domain.Brand{
			ID:            "BR003",
			Name:          "Lentes do Sul",
			DailyBudget:   decimal.RequireFromString("200.00"),
			DailySpend:    decimal.RequireFromString("35.00"),
			MonthlyBudget: decimal.RequireFromString("4800.00"),
			MonthlySpend:  decimal.RequireFromString("100.00"),
			IsActive:      false,
		}

		// Depois do reset: contadores diários zerados, mensais intactos
		overDailyAfter := &domain.Brand{
			ID:            "BR001",
			Name:          "Óptica Horizonte",
			DailyBudget:   decimal.RequireFromString("150.00"),
			DailySpend:    decimal.Zero,
			MonthlyBudget: decimal.RequireFromString("3500.00"),
			MonthlySpend:  decimal.RequireFromString("900.00"),
		}
		overMonthlyAfter := &domain.Brand{
			ID:            "BR002",
			Name:          "Vista Clara",
			DailyBudget:   decimal.RequireFromString("80.00"),
			DailySpend:    decimal.Zero,
			MonthlyBudget: decimal.RequireFromString("2000.00"),
			MonthlySpend:  decimal.RequireFromString("2000.00"),
		}

		gomock.InOrder(
			mockBrandRepo.EXPECT().
				ListBrands(false).
				Return([]*domain.Brand{overDaily, overMonthly, inactive}, nil),
			mockBrandRepo.EXPECT().
				ResetDailySpend("BR001").
				Return(nil),
			mockBrandRepo.EXPECT().
				ResetDailySpend("BR002").
				Return(nil),
			mockBrandRepo.EXPECT().
				ResetDailySpend("BR003").
				Return(nil),
			mockBrandRepo.EXPECT().
				ListBrands(true).
				Return([]*domain.Brand{overDailyAfter, overMonthlyAfter}, nil),
		)

		// BR001 volta a ser elegível; BR002 segue estourada no mês e é pulada
		paused := &domain.Campaign{
			ID:               "CP001",
			BrandID:          "BR001",
			IsPausedByBudget: true,
		}
		mockCampaignRepo.EXPECT().
			ListPausedByBudget("BR001").
			Return([]*domain.Campaign{paused}, nil)

		mockScheduleRepo.EXPECT().
			ListByCampaign("CP001").
			Return(nil, nil)

		mockCampaignRepo.EXPECT().
			UpdateFlags(gomock.Any()).
			Return(nil)

		// Varredura final de dayparting sobre todas as campanhas
		mockCampaignRepo.EXPECT().
			ListCampaigns().
			Return(nil, nil)

		result, err := service.RunDailyReset(context.Background(), reference)

		require.NoError(t, err)
		assert.Equal(t, 3, result.BrandsReset)
		assert.Equal(t, 1, result.CampaignsReactivated)
		require.NotNil(t, result.DaypartingUpdates)
	})

	t.Run("disparo vencido é descartado sem tocar o banco", func(t *testing.T) {
		staleFiredAt := reference.Add(-5 * time.Minute)

		result, err := service.RunDailyReset(context.Background(), staleFiredAt)

		require.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestRunMonthlyReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reference := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
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

	service := NewSpendResetService(mockBrandRepo, budgetingService, daypartingService, resetTestConfig())

	// Marca estourada nos dois períodos na virada do mês: os dois contadores
	// precisam zerar para a reativação enxergá-la como elegível
	brand := &domain.Brand{
		ID:            "BR001",
		Name:          "Lentes do Sul",
		DailyBudget:   decimal.RequireFromString("200.00"),
		DailySpend:    decimal.RequireFromString("200.00"),
		MonthlyBudget: decimal.RequireFromString("4800.00"),
		MonthlySpend:  decimal.RequireFromString("4800.00"),
	}
	brandAfter := &domain.Brand{
		ID:            "BR001",
		Name:          "Lentes do Sul",
		DailyBudget:   decimal.RequireFromString("200.00"),
		DailySpend:    decimal.Zero,
		MonthlyBudget: decimal.RequireFromString("4800.00"),
		MonthlySpend:  decimal.Zero,
	}

	gomock.InOrder(
		mockBrandRepo.EXPECT().
			ListBrands(false).
			Return([]*domain.Brand{brand}, nil),
		mockBrandRepo.EXPECT().
			ResetDailySpend("BR001").
			Return(nil),
		mockBrandRepo.EXPECT().
			ResetMonthlySpend("BR001").
			Return(nil),
		mockBrandRepo.EXPECT().
			ListBrands(true).
			Return([]*domain.Brand{brandAfter}, nil),
	)

	paused := &domain.Campaign{
		ID:               "CP001",
		BrandID:          "BR001",
		IsPausedByBudget: true,
	}
	mockCampaignRepo.EXPECT().
		ListPausedByBudget("BR001").
		Return([]*domain.Campaign{paused}, nil)

	mockScheduleRepo.EXPECT().
		ListByCampaign("CP001").
		Return(nil, nil)

	mockCampaignRepo.EXPECT().
		UpdateFlags(gomock.Any()).
		Return(nil)

	mockCampaignRepo.EXPECT().
		ListCampaigns().
		Return(nil, nil)

	result, err := service.RunMonthlyReset(context.Background(), reference)

	require.NoError(t, err)
	assert.Equal(t, 1, result.BrandsReset)
	assert.Equal(t, 1, result.CampaignsReactivated)

	// O resultado fica disponível no status do agendador
	status := service.GetStatus()
	assert.Contains(t, status, "last_monthly_result")
	assert.NotContains(t, status, "last_daily_result")
}
