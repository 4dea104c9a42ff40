// Package budgeting implementa a reconciliação de orçamento por marca: pausa
// campanhas de marcas que estouraram o limite e reativa as demais.
package budgeting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/infrastructure/repository"
	"github.com/vfg2006/budget-control-api/internal/domain"
)

type BudgetingService interface {
	CheckAllBudgets(ctx context.Context) (*domain.BudgetCheckResult, error)
	CheckBrandBudget(ctx context.Context, brandID string) (*domain.BrandBudgetResult, error)
	GetBudgetSummary() (*domain.BudgetSummary, error)
	ReactivateCampaigns(ctx context.Context, brand *domain.Brand) (int, error)
	ForceBrandReset(ctx context.Context, brandID string, resetType domain.ResetType) (*domain.BrandResetResult, error)
}

// DaypartingUpdater é o subconjunto do serviço de dayparting necessário para o
// reset forçado reavaliar janelas depois de zerar os contadores.
type DaypartingUpdater interface {
	UpdateAllCampaigns(ctx context.Context) (*domain.DaypartingUpdateResult, error)
}

type Service struct {
	brandRepository    repository.BrandRepository
	campaignRepository repository.CampaignRepository
	scheduleRepository repository.ScheduleRepository
	daypartingUpdater  DaypartingUpdater
}

func NewService(
	brandRepo repository.BrandRepository,
	campaignRepo repository.CampaignRepository,
	scheduleRepo repository.ScheduleRepository,
) *Service {
	return &Service{
		brandRepository:    brandRepo,
		campaignRepository: campaignRepo,
		scheduleRepository: scheduleRepo,
	}
}

// WithDaypartingUpdater habilita a varredura de dayparting ao final do reset
// forçado de uma marca.
func (s *Service) WithDaypartingUpdater(updater DaypartingUpdater) *Service {
	s.daypartingUpdater = updater
	return s
}

// CheckAllBudgets varre todas as marcas ativas e reconcilia o estado das
// campanhas com os contadores correntes. A operação é idempotente: varreduras
// consecutivas sem novos gastos convergem para o mesmo estado.
func (s *Service) CheckAllBudgets(ctx context.Context) (*domain.BudgetCheckResult, error) {
	return s.checkAllBudgetsWithTime(ctx, time.Now().UTC())
}

func (s *Service) checkAllBudgetsWithTime(ctx context.Context, now time.Time) (*domain.BudgetCheckResult, error) {
	brands, err := s.brandRepository.ListBrands(true)
	if err != nil {
		logrus.Error("Erro ao listar marcas para varredura de orçamento", map[string]any{
			"error": err,
		})
		return nil, err
	}

	result := &domain.BudgetCheckResult{
		BrandsChecked: len(brands),
		Timestamp:     now.Format(time.RFC3339),
	}

	for _, brand := range brands {
		dailyExceeded := brand.IsDailyBudgetExceeded()
		monthlyExceeded := brand.IsMonthlyBudgetExceeded()

		if dailyExceeded {
			result.BrandsOverDailyBudget++
		}
		if monthlyExceeded {
			result.BrandsOverMonthlyBudget++
		}

		if dailyExceeded || monthlyExceeded {
			paused, err := s.campaignRepository.PauseActiveByBudget(brand.ID)
			if err != nil {
				logrus.Error("Erro ao pausar campanhas da marca", map[string]any{
					"brandID": brand.ID,
					"error":   err,
				})
				return nil, err
			}
			if paused > 0 {
				logrus.Info("Campanhas pausadas por orçamento", map[string]any{
					"brandID":         brand.ID,
					"brandName":       brand.Name,
					"campaignsPaused": paused,
					"dailyExceeded":   dailyExceeded,
					"monthlyExceeded": monthlyExceeded,
				})
			}
			result.CampaignsPaused += paused
			continue
		}

		reactivated, err := s.reactivateCampaignsWithTime(ctx, brand, now)
		if err != nil {
			return nil, err
		}
		result.CampaignsReactivated += reactivated
	}

	return result, nil
}

// CheckBrandBudget reconcilia uma única marca e retorna o detalhamento da ação
// tomada: ou campanhas pausadas, ou campanhas reativadas, nunca ambos.
func (s *Service) CheckBrandBudget(ctx context.Context, brandID string) (*domain.BrandBudgetResult, error) {
	return s.checkBrandBudgetWithTime(ctx, brandID, time.Now().UTC())
}

func (s *Service) checkBrandBudgetWithTime(ctx context.Context, brandID string, now time.Time) (*domain.BrandBudgetResult, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}

	brand, err := s.brandRepository.GetBrandByID(brandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("%w: %s", ErrBrandNotFound, brandID)
	}

	result := &domain.BrandBudgetResult{
		BrandID:          brand.ID,
		BrandName:        brand.Name,
		DailyBudget:      brand.DailyBudget.String(),
		DailySpend:       brand.DailySpend.String(),
		MonthlyBudget:    brand.MonthlyBudget.String(),
		MonthlySpend:     brand.MonthlySpend.String(),
		DailyExceeded:    brand.IsDailyBudgetExceeded(),
		MonthlyExceeded:  brand.IsMonthlyBudgetExceeded(),
		RemainingDaily:   brand.RemainingDailyBudget().String(),
		RemainingMonthly: brand.RemainingMonthlyBudget().String(),
		Timestamp:        now.Format(time.RFC3339),
	}

	if result.DailyExceeded || result.MonthlyExceeded {
		paused, err := s.campaignRepository.PauseActiveByBudget(brand.ID)
		if err != nil {
			return nil, err
		}
		result.CampaignsPaused = &paused
		return result, nil
	}

	reactivated, err := s.reactivateCampaignsWithTime(ctx, brand, now)
	if err != nil {
		return nil, err
	}
	result.CampaignsReactivated = &reactivated

	return result, nil
}

// ReactivateCampaigns limpa a pausa por orçamento das campanhas da marca e
// reavalia a janela de dayparting de cada uma. Uma campanha fora de janela tem
// a pausa de orçamento removida mas permanece inativa.
func (s *Service) ReactivateCampaigns(ctx context.Context, brand *domain.Brand) (int, error) {
	return s.reactivateCampaignsWithTime(ctx, brand, time.Now().UTC())
}

func (s *Service) reactivateCampaignsWithTime(_ context.Context, brand *domain.Brand, now time.Time) (int, error) {
	campaigns, err := s.campaignRepository.ListPausedByBudget(brand.ID)
	if err != nil {
		logrus.Error("Erro ao listar campanhas pausadas por orçamento", map[string]any{
			"brandID": brand.ID,
			"error":   err,
		})
		return 0, err
	}

	reactivated := 0
	for _, campaign := range campaigns {
		schedules, err := s.scheduleRepository.ListByCampaign(campaign.ID)
		if err != nil {
			return reactivated, err
		}

		campaign.IsPausedByBudget = false
		campaign.ApplyDaypartingStatus(domain.IsInDaypartingWindow(schedules, now))

		if err := s.campaignRepository.UpdateFlags(campaign); err != nil {
			return reactivated, err
		}

		if campaign.IsActive {
			reactivated++
		}
	}

	if reactivated > 0 {
		logrus.Info("Campanhas reativadas", map[string]any{
			"brandID":              brand.ID,
			"brandName":            brand.Name,
			"campaignsReactivated": reactivated,
		})
	}

	return reactivated, nil
}

// GetBudgetSummary agrega o estado de orçamento de todas as marcas ativas,
// somando os valores monetários em decimal exato.
func (s *Service) GetBudgetSummary() (*domain.BudgetSummary, error) {
	brands, err := s.brandRepository.ListBrands(true)
	if err != nil {
		return nil, err
	}

	summary := &domain.BudgetSummary{
		TotalBrands:  len(brands),
		BrandDetails: make([]domain.BrandDetail, 0, len(brands)),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	totalDailySpend := decimal.Zero
	totalMonthlySpend := decimal.Zero
	totalDailyBudget := decimal.Zero
	totalMonthlyBudget := decimal.Zero

	for _, brand := range brands {
		active, paused, err := s.campaignRepository.CountByBrandAndState(brand.ID)
		if err != nil {
			return nil, err
		}

		dailyExceeded := brand.IsDailyBudgetExceeded()
		monthlyExceeded := brand.IsMonthlyBudgetExceeded()
		if dailyExceeded {
			summary.BrandsOverDailyBudget++
		}
		if monthlyExceeded {
			summary.BrandsOverMonthlyBudget++
		}

		totalDailySpend = totalDailySpend.Add(brand.DailySpend)
		totalMonthlySpend = totalMonthlySpend.Add(brand.MonthlySpend)
		totalDailyBudget = totalDailyBudget.Add(brand.DailyBudget)
		totalMonthlyBudget = totalMonthlyBudget.Add(brand.MonthlyBudget)

		summary.BrandDetails = append(summary.BrandDetails, domain.BrandDetail{
			ID:              brand.ID,
			Name:            brand.Name,
			DailySpend:      brand.DailySpend.String(),
			DailyBudget:     brand.DailyBudget.String(),
			MonthlySpend:    brand.MonthlySpend.String(),
			MonthlyBudget:   brand.MonthlyBudget.String(),
			DailyExceeded:   dailyExceeded,
			MonthlyExceeded: monthlyExceeded,
			ActiveCampaigns: active,
			PausedCampaigns: paused,
		})
	}

	summary.TotalDailySpend = totalDailySpend.String()
	summary.TotalMonthlySpend = totalMonthlySpend.String()
	summary.TotalDailyBudget = totalDailyBudget.String()
	summary.TotalMonthlyBudget = totalMonthlyBudget.String()

	return summary, nil
}

// ForceBrandReset zera os contadores da marca conforme o tipo pedido, reativa
// as campanhas elegíveis e, quando configurado, dispara a varredura de
// dayparting na sequência. Operação administrativa, fora do ciclo agendado.
func (s *Service) ForceBrandReset(ctx context.Context, brandID string, resetType domain.ResetType) (*domain.BrandResetResult, error) {
	if brandID == "" {
		return nil, ErrBrandIDRequired
	}

	if !resetType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidResetType, resetType)
	}

	brand, err := s.brandRepository.GetBrandByID(brandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("%w: %s", ErrBrandNotFound, brandID)
	}

	if resetType == domain.ResetTypeDaily || resetType == domain.ResetTypeBoth {
		if err := s.brandRepository.ResetDailySpend(brand.ID); err != nil {
			return nil, err
		}
		brand.DailySpend = decimal.Zero
	}

	if resetType == domain.ResetTypeMonthly || resetType == domain.ResetTypeBoth {
		if err := s.brandRepository.ResetMonthlySpend(brand.ID); err != nil {
			return nil, err
		}
		brand.MonthlySpend = decimal.Zero
	}

	logrus.Info("Reset forçado de contadores da marca", map[string]any{
		"brandID":   brand.ID,
		"brandName": brand.Name,
		"resetType": resetType,
	})

	reactivated, err := s.ReactivateCampaigns(ctx, brand)
	if err != nil {
		return nil, err
	}

	result := &domain.BrandResetResult{
		BrandID:              brand.ID,
		BrandName:            brand.Name,
		ResetType:            resetType,
		CampaignsReactivated: reactivated,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
	}

	if s.daypartingUpdater != nil {
		updates, err := s.daypartingUpdater.UpdateAllCampaigns(ctx)
		if err != nil {
			return nil, err
		}
		result.DaypartingUpdates = updates
	}

	return result, nil
}
