package budgeting

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/budget-control-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-control-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func brandFixture(id, name, dailyBudget, dailySpend, monthlyBudget, monthlySpend string) *domain.Brand {
	return &domain.Brand{
		ID:            id,
		Name:          name,
		DailyBudget:   decimal.RequireFromString(dailyBudget),
		DailySpend:    decimal.RequireFromString(dailySpend),
		MonthlyBudget: decimal.RequireFromString(monthlyBudget),
		MonthlySpend:  decimal.RequireFromString(monthlySpend),
		IsActive:      true,
	}
}

func TestCheckAllBudgets(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Mocks
	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockScheduleRepo := mocks.NewMockScheduleRepository(ctrl)

	// Service
	service := &Service{
		brandRepository:    mockBrandRepo,
		campaignRepository: mockCampaignRepo,
		scheduleRepository: mockScheduleRepo,
	}

	// Instante de referência: segunda-feira, 10:00 UTC
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, result *domain.BudgetCheckResult)
	}{
		{
			name: "marca que atingiu o limite diário tem campanhas pausadas",
			setup: func() {
				// 60.00 + 45.00 = 105.00 contra limite de 100.00
				over := brandFixture("BR001", "Óptica Horizonte", "100.00", "105.00", "3000.00", "500.00")

				mockBrandRepo.EXPECT().
					ListBrands(true).
					Return([]*domain.Brand{over}, nil)

				mockCampaignRepo.EXPECT().
					PauseActiveByBudget("BR001").
					Return(2, nil)
			},
			validate: func(t *testing.T, result *domain.BudgetCheckResult) {
				assert.Equal(t, 1, result.BrandsChecked)
				assert.Equal(t, 1, result.BrandsOverDailyBudget)
				assert.Equal(t, 0, result.BrandsOverMonthlyBudget)
				assert.Equal(t, 2, result.CampaignsPaused)
				assert.Equal(t, 0, result.CampaignsReactivated)
			},
		},
		{
			name: "gasto exatamente igual ao limite também pausa",
			setup: func() {
				exact := brandFixture("BR002", "Vista Clara", "80.00", "80.00", "2000.00", "100.00")

				mockBrandRepo.EXPECT().
					ListBrands(true).
					Return([]*domain.Brand{exact}, nil)

				mockCampaignRepo.EXPECT().
					PauseActiveByBudget("BR002").
					Return(1, nil)
			},
			validate: func(t *testing.T, result *domain.BudgetCheckResult) {
				assert.Equal(t, 1, result.BrandsOverDailyBudget)
				assert.Equal(t, 1, result.CampaignsPaused)
			},
		},
		{
			name: "limite mensal estourado pausa mesmo com diário folgado",
			setup: func() {
				monthly := brandFixture("BR003", "Lentes do Sul", "200.00", "10.00", "4800.00", "4800.00")

				mockBrandRepo.EXPECT().
					ListBrands(true).
					Return([]*domain.Brand{monthly}, nil)

				mockCampaignRepo.EXPECT().
					PauseActiveByBudget("BR003").
					Return(3, nil)
			},
			validate: func(t *testing.T, result *domain.BudgetCheckResult) {
				assert.Equal(t, 0, result.BrandsOverDailyBudget)
				assert.Equal(t, 1, result.BrandsOverMonthlyBudget)
				assert.Equal(t, 3, result.CampaignsPaused)
			},
		},
		{
			name: "marca dentro do orçamento reativa campanha pausada e em janela",
			setup: func() {
				under := brandFixture("BR004", "Foco Urbano", "120.00", "30.00", "2600.00", "400.00")

				mockBrandRepo.EXPECT().
					ListBrands(true).
					Return([]*domain.Brand{under}, nil)

				paused := &domain.Campaign{
					ID:               "CP001",
					BrandID:          "BR004",
					IsActive:         false,
					IsPausedByBudget: true,
				}
				mockCampaignRepo.EXPECT().
					ListPausedByBudget("BR004").
					Return([]*domain.Campaign{paused}, nil)

				// Sem agendas: sempre em janela
				mockScheduleRepo.EXPECT().
					ListByCampaign("CP001").
					Return(nil, nil)

				mockCampaignRepo.EXPECT().
					UpdateFlags(gomock.Any()).
					DoAndReturn(func(campaign *domain.Campaign) error {
						assert.False(t, campaign.IsPausedByBudget)
						assert.False(t, campaign.IsPausedByDayparting)
						assert.True(t, campaign.IsActive)
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.BudgetCheckResult) {
				assert.Equal(t, 0, result.CampaignsPaused)
				assert.Equal(t, 1, result.CampaignsReactivated)
			},
		},
		{
			name: "reativação fora da janela limpa a pausa de orçamento mas não ativa",
			setup: func() {
				under := brandFixture("BR005", "Foco Urbano", "120.00", "30.00", "2600.00", "400.00")

				mockBrandRepo.EXPECT().
					ListBrands(true).
					Return([]*domain.Brand{under}, nil)

				paused := &domain.Campaign{
					ID:               "CP002",
					BrandID:          "BR005",
					IsActive:         false,
					IsPausedByBudget: true,
				}
				mockCampaignRepo.EXPECT().
					ListPausedByBudget("BR005").
					Return([]*domain.Campaign{paused}, nil)

				// Janela só no sábado: fora no instante de referência (segunda)
				mockScheduleRepo.EXPECT().
					ListByCampaign("CP002").
					Return([]*domain.DaypartingSchedule{
						{
							DayOfWeek: domain.DaySaturday,
							StartTime: 9 * 3600,
							EndTime:   18 * 3600,
							IsActive:  true,
						},
					}, nil)

				mockCampaignRepo.EXPECT().
					UpdateFlags(gomock.Any()).
					DoAndReturn(func(campaign *domain.Campaign) error {
						assert.False(t, campaign.IsPausedByBudget)
						assert.True(t, campaign.IsPausedByDayparting)
						assert.False(t, campaign.IsActive)
						return nil
					})
			},
			validate: func(t *testing.T, result *domain.BudgetCheckResult) {
				// A pausa de orçamento foi limpa, mas a campanha não voltou ao ar
				assert.Equal(t, 0, result.CampaignsReactivated)
			},
		},
		{
			name: "varredura repetida sem novos gastos é idempotente",
			setup: func() {
				under := brandFixture("BR006", "Vista Clara", "80.00", "20.00", "2000.00", "100.00")

				mockBrandRepo.EXPECT().
					ListBrands(true).
					Return([]*domain.Brand{under}, nil)

				// Nenhuma campanha pausada por orçamento restante
				mockCampaignRepo.EXPECT().
					ListPausedByBudget("BR006").
					Return(nil, nil)
			},
			validate: func(t *testing.T, result *domain.BudgetCheckResult) {
				assert.Equal(t, 0, result.CampaignsPaused)
				assert.Equal(t, 0, result.CampaignsReactivated)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			result, err := service.checkAllBudgetsWithTime(context.Background(), now)

			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestCheckBrandBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockScheduleRepo := mocks.NewMockScheduleRepository(ctrl)

	service := &Service{
		brandRepository:    mockBrandRepo,
		campaignRepository: mockCampaignRepo,
		scheduleRepository: mockScheduleRepo,
	}

	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	t.Run("identificador vazio é rejeitado", func(t *testing.T) {
		result, err := service.checkBrandBudgetWithTime(context.Background(), "", now)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrBrandIDRequired)
	})

	t.Run("marca inexistente retorna erro de não encontrada", func(t *testing.T) {
		mockBrandRepo.EXPECT().
			GetBrandByID("XXXXXX").
			Return(nil, nil)

		result, err := service.checkBrandBudgetWithTime(context.Background(), "XXXXXX", now)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrBrandNotFound)
	})

	t.Run("marca acima do limite retorna contagem de pausadas", func(t *testing.T) {
		over := brandFixture("BR001", "Óptica Horizonte", "100.00", "105.00", "3000.00", "500.00")

		mockBrandRepo.EXPECT().
			GetBrandByID("BR001").
			Return(over, nil)

		mockCampaignRepo.EXPECT().
			PauseActiveByBudget("BR001").
			Return(2, nil)

		result, err := service.checkBrandBudgetWithTime(context.Background(), "BR001", now)

		require.NoError(t, err)
		assert.True(t, result.DailyExceeded)
		assert.False(t, result.MonthlyExceeded)
		assert.Equal(t, "0", result.RemainingDaily)
		require.NotNil(t, result.CampaignsPaused)
		assert.Equal(t, 2, *result.CampaignsPaused)
		assert.Nil(t, result.CampaignsReactivated)
	})

	t.Run("marca dentro do limite retorna contagem de reativadas", func(t *testing.T) {
		under := brandFixture("BR002", "Vista Clara", "80.00", "20.00", "2000.00", "100.00")

		mockBrandRepo.EXPECT().
			GetBrandByID("BR002").
			Return(under, nil)

		mockCampaignRepo.EXPECT().
			ListPausedByBudget("BR002").
			Return(nil, nil)

		result, err := service.checkBrandBudgetWithTime(context.Background(), "BR002", now)

		require.NoError(t, err)
		assert.False(t, result.DailyExceeded)
		assert.Equal(t, "60", result.RemainingDaily)
		require.NotNil(t, result.CampaignsReactivated)
		assert.Equal(t, 0, *result.CampaignsReactivated)
		assert.Nil(t, result.CampaignsPaused)
	})
}

func TestForceBrandReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := mocks.NewMockBrandRepository(ctrl)
	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	mockScheduleRepo := mocks.NewMockScheduleRepository(ctrl)

	service := &Service{
		brandRepository:    mockBrandRepo,
		campaignRepository: mockCampaignRepo,
		scheduleRepository: mockScheduleRepo,
	}

	t.Run("tipo de reset inválido é rejeitado", func(t *testing.T) {
		result, err := service.ForceBrandReset(context.Background(), "BR001", domain.ResetType("weekly"))

		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrInvalidResetType)
	})

	t.Run("reset diário zera apenas o contador diário", func(t *testing.T) {
		brand := brandFixture("BR001", "Óptica Horizonte", "100.00", "105.00", "3000.00", "500.00")

		mockBrandRepo.EXPECT().
			GetBrandByID("BR001").
			Return(brand, nil)

		mockBrandRepo.EXPECT().
			ResetDailySpend("BR001").
			Return(nil)

		// Depois do reset a marca volta a ser elegível para reativação
		mockCampaignRepo.EXPECT().
			ListPausedByBudget("BR001").
			Return(nil, nil)

		result, err := service.ForceBrandReset(context.Background(), "BR001", domain.ResetTypeDaily)

		require.NoError(t, err)
		assert.Equal(t, domain.ResetTypeDaily, result.ResetType)
		assert.True(t, brand.DailySpend.IsZero())
		assert.Equal(t, "500", brand.MonthlySpend.String())
	})

	t.Run("reset completo zera os dois contadores e dispara dayparting", func(t *testing.T) {
		brand := brandFixture("BR002", "Vista Clara", "80.00", "80.00", "2000.00", "2000.00")

		updater := &stubDaypartingUpdater{
			result: &domain.DaypartingUpdateResult{CampaignsChecked: 6},
		}
		service := (&Service{
			brandRepository:    mockBrandRepo,
			campaignRepository: mockCampaignRepo,
			scheduleRepository: mockScheduleRepo,
		}).WithDaypartingUpdater(updater)

		mockBrandRepo.EXPECT().
			GetBrandByID("BR002").
			Return(brand, nil)

		mockBrandRepo.EXPECT().
			ResetDailySpend("BR002").
			Return(nil)

		mockBrandRepo.EXPECT().
			ResetMonthlySpend("BR002").
			Return(nil)

		paused := &domain.Campaign{
			ID:               "CP001",
			BrandID:          "BR002",
			IsPausedByBudget: true,
		}
		mockCampaignRepo.EXPECT().
			ListPausedByBudget("BR002").
			Return([]*domain.Campaign{paused}, nil)

		mockScheduleRepo.EXPECT().
			ListByCampaign("CP001").
			Return(nil, nil)

		mockCampaignRepo.EXPECT().
			UpdateFlags(gomock.Any()).
			Return(nil)

		result, err := service.ForceBrandReset(context.Background(), "BR002", domain.ResetTypeBoth)

		require.NoError(t, err)
		assert.True(t, brand.DailySpend.IsZero())
		assert.True(t, brand.MonthlySpend.IsZero())
		assert.Equal(t, 1, result.CampaignsReactivated)
		require.NotNil(t, result.DaypartingUpdates)
		assert.Equal(t, 6, result.DaypartingUpdates.CampaignsChecked)
		assert.True(t, updater.called)
	})
}

type stubDaypartingUpdater struct {
	called bool
	result *domain.DaypartingUpdateResult
}

func (s *stubDaypartingUpdater) UpdateAllCampaigns(_ context.Context) (*domain.DaypartingUpdateResult, error) {
	s.called = true
	return s.result, nil
}
