package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/infrastructure/repository"
	"github.com/vfg2006/budget-control-api/internal/config"
	"github.com/vfg2006/budget-control-api/internal/domain"
	"github.com/vfg2006/budget-control-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-control-api/internal/usecases/dayparting"
)

type SpendResetConfig struct {
	DailyCronSchedule   string
	MonthlyCronSchedule string
	ResetEnabled        bool
	Expiry              time.Duration
	MaxAttempts         int
	BackoffBase         time.Duration
}

// SpendResetService agenda os resets de contadores de gasto: o diário zera o
// contador do dia em todas as marcas; o mensal zera o contador do mês. Ambos
// reativam as campanhas elegíveis e reavaliam dayparting na sequência.
type SpendResetService struct {
	scheduler            *gocron.Scheduler
	brandRepo            repository.BrandRepository
	budgetingService     budgeting.BudgetingService
	daypartingService    dayparting.DaypartingService
	config               SpendResetConfig
	resetRunning         bool
	resetMutex           sync.Mutex
	lastResetStartedAt   time.Time
	lastResetCompletedAt time.Time
	lastDailyResult      *domain.ResetTaskResult
	lastMonthlyResult    *domain.ResetTaskResult
}

func NewSpendResetService(
	brandRepo repository.BrandRepository,
	budgetingService budgeting.BudgetingService,
	daypartingService dayparting.DaypartingService,
	cfg *config.Config,
) *SpendResetService {
	resetConfig := SpendResetConfig{
		DailyCronSchedule:   cfg.SpendReset.DailyCronSchedule,   // Default: meia-noite UTC
		MonthlyCronSchedule: cfg.SpendReset.MonthlyCronSchedule, // Default: meia-noite UTC do dia 1
		ResetEnabled:        cfg.SpendReset.Enabled,
		Expiry:              time.Duration(cfg.SpendReset.ExpirySeconds) * time.Second,
		MaxAttempts:         cfg.Jobs.MaxAttempts,
		BackoffBase:         time.Duration(cfg.Jobs.RetryBaseSeconds) * time.Second,
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"daily_cron":   resetConfig.DailyCronSchedule,
		"monthly_cron": resetConfig.MonthlyCronSchedule,
	}).Info("Configuração do agendador de reset de gastos carregada")

	return &SpendResetService{
		scheduler:         scheduler,
		brandRepo:         brandRepo,
		budgetingService:  budgetingService,
		daypartingService: daypartingService,
		config:            resetConfig,
	}
}

func (s *SpendResetService) Start(ctx context.Context) error {
	if !s.config.ResetEnabled {
		logrus.Info("Crons de reset de gastos desabilitadas por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"daily_cron":   s.config.DailyCronSchedule,
		"monthly_cron": s.config.MonthlyCronSchedule,
	}).Info("Iniciando crons de reset de gastos")

	_, err := s.scheduler.Cron(s.config.DailyCronSchedule).Do(func() {
		firedAt := nowFn()
		if _, err := s.RunDailyReset(ctx, firedAt); err != nil {
			logrus.WithError(err).Error("Erro no reset diário de gastos")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reset diário de gastos: %w", err)
	}

	_, err = s.scheduler.Cron(s.config.MonthlyCronSchedule).Do(func() {
		firedAt := nowFn()
		if _, err := s.RunMonthlyReset(ctx, firedAt); err != nil {
			logrus.WithError(err).Error("Erro no reset mensal de gastos")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reset mensal de gastos: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando crons de reset de gastos")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDailyReset zera o contador diário de todas as marcas.
func (s *SpendResetService) RunDailyReset(ctx context.Context, firedAt time.Time) (*domain.ResetTaskResult, error) {
	result, err := s.runReset(ctx, firedAt, "daily_spend_reset", s.brandRepo.ResetDailySpend)
	if result != nil {
		s.lastDailyResult = result
	}
	return result, err
}

// RunMonthlyReset zera os contadores diário e mensal de todas as marcas: a
// virada de mês também é uma virada de dia, e o job precisa ser completo por
// si só quando disparado manualmente.
func (s *SpendResetService) RunMonthlyReset(ctx context.Context, firedAt time.Time) (*domain.ResetTaskResult, error) {
	resetBoth := func(brandID string) error {
		if err := s.brandRepo.ResetDailySpend(brandID); err != nil {
			return err
		}
		return s.brandRepo.ResetMonthlySpend(brandID)
	}

	result, err := s.runReset(ctx, firedAt, "monthly_spend_reset", resetBoth)
	if result != nil {
		s.lastMonthlyResult = result
	}
	return result, err
}

func (s *SpendResetService) runReset(
	ctx context.Context,
	firedAt time.Time,
	jobName string,
	resetFn func(brandID string) error,
) (*domain.ResetTaskResult, error) {
	s.resetMutex.Lock()
	defer s.resetMutex.Unlock()

	spec := jobSpec{
		Name:        jobName,
		Expiry:      s.config.Expiry,
		MaxAttempts: s.config.MaxAttempts,
		BackoffBase: s.config.BackoffBase,
	}

	if spec.expired(firedAt) {
		logrus.WithFields(logrus.Fields{
			"job":      jobName,
			"fired_at": firedAt,
			"expiry":   spec.Expiry.String(),
		}).Warn("Disparo de reset descartado por validade vencida")
		return nil, nil
	}

	s.resetRunning = true
	s.lastResetStartedAt = nowFn()
	defer func() {
		s.resetRunning = false
		s.lastResetCompletedAt = nowFn()
	}()

	logrus.WithField("job", jobName).Info("Iniciando reset de contadores de gasto")

	var result *domain.ResetTaskResult
	err := runWithRetry(spec, func() error {
		// Todas as marcas, inclusive inativas: os contadores zeram na virada
		// de período mesmo sem veiculação corrente.
		brands, err := s.brandRepo.ListBrands(false)
		if err != nil {
			return err
		}

		taskResult := &domain.ResetTaskResult{
			Timestamp: nowFn().UTC().Format(time.RFC3339),
		}

		for _, brand := range brands {
			if err := resetFn(brand.ID); err != nil {
				return err
			}
			taskResult.BrandsReset++
		}

		// Releitura: os contadores zerados precisam estar visíveis antes da
		// reativação avaliar os limites.
		brands, err = s.brandRepo.ListBrands(true)
		if err != nil {
			return err
		}

		for _, brand := range brands {
			if brand.IsDailyBudgetExceeded() || brand.IsMonthlyBudgetExceeded() {
				continue
			}
			reactivated, err := s.budgetingService.ReactivateCampaigns(ctx, brand)
			if err != nil {
				return err
			}
			taskResult.CampaignsReactivated += reactivated
		}

		daypartingResult, err := s.daypartingService.UpdateAllCampaigns(ctx)
		if err != nil {
			return err
		}
		taskResult.DaypartingUpdates = daypartingResult

		result = taskResult
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"job":                   jobName,
		"brands_reset":          result.BrandsReset,
		"campaigns_reactivated": result.CampaignsReactivated,
	}).Info("Reset de contadores de gasto concluído")

	return result, nil
}

// GetStatus retorna o status atual do agendador
func (s *SpendResetService) GetStatus() map[string]any {
	status := map[string]any{
		"reset_enabled":           s.config.ResetEnabled,
		"daily_reset_cron":        s.config.DailyCronSchedule,
		"monthly_reset_cron":      s.config.MonthlyCronSchedule,
		"reset_running":           s.resetRunning,
		"last_reset_started_at":   s.lastResetStartedAt,
		"last_reset_completed_at": s.lastResetCompletedAt,
	}

	if s.lastDailyResult != nil {
		status["last_daily_result"] = s.lastDailyResult
	}
	if s.lastMonthlyResult != nil {
		status["last_monthly_result"] = s.lastMonthlyResult
	}

	return status
}
