package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/internal/config"
	"github.com/vfg2006/budget-control-api/internal/domain"
	"github.com/vfg2006/budget-control-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-control-api/internal/usecases/dayparting"
)

type BudgetSweepConfig struct {
	CronSchedule string
	SweepEnabled bool
	Expiry       time.Duration
	MaxAttempts  int
	BackoffBase  time.Duration
}

// BudgetSweepService agenda a varredura de reconciliação: checagem de
// orçamento de todas as marcas seguida da reavaliação de dayparting.
type BudgetSweepService struct {
	scheduler            *gocron.Scheduler
	budgetingService     budgeting.BudgetingService
	daypartingService    dayparting.DaypartingService
	config               BudgetSweepConfig
	sweepRunning         bool
	sweepMutex           sync.Mutex
	lastSweepStartedAt   time.Time
	lastSweepCompletedAt time.Time
	lastBudgetResult     *domain.BudgetCheckResult
	lastDaypartingResult *domain.DaypartingUpdateResult
}

func NewBudgetSweepService(
	budgetingService budgeting.BudgetingService,
	daypartingService dayparting.DaypartingService,
	cfg *config.Config,
) *BudgetSweepService {
	sweepConfig := BudgetSweepConfig{
		CronSchedule: cfg.BudgetSweep.CronSchedule, // Default: a cada 15 minutos
		SweepEnabled: cfg.BudgetSweep.Enabled,
		Expiry:       time.Duration(cfg.BudgetSweep.ExpirySeconds) * time.Second,
		MaxAttempts:  cfg.Jobs.MaxAttempts,
		BackoffBase:  time.Duration(cfg.Jobs.RetryBaseSeconds) * time.Second,
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": sweepConfig.CronSchedule,
		"expiry":        sweepConfig.Expiry.String(),
	}).Info("Configuração do agendador de varredura de orçamento carregada")

	return &BudgetSweepService{
		scheduler:         scheduler,
		budgetingService:  budgetingService,
		daypartingService: daypartingService,
		config:            sweepConfig,
	}
}

func (s *BudgetSweepService) Start(ctx context.Context) error {
	if !s.config.SweepEnabled {
		logrus.Info("Cron de varredura de orçamento desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de varredura de orçamento")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		firedAt := nowFn()
		if err := s.RunSweep(ctx, firedAt); err != nil {
			logrus.WithError(err).Error("Erro na varredura de orçamento")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de orçamento: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de varredura de orçamento")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSweep executa uma varredura completa. Disparos que esperarem além da
// validade pelo slot de execução são descartados; o próximo tick do cron
// converge para o mesmo estado.
func (s *BudgetSweepService) RunSweep(ctx context.Context, firedAt time.Time) error {
	spec := jobSpec{
		Name:        "budget_sweep",
		Expiry:      s.config.Expiry,
		MaxAttempts: s.config.MaxAttempts,
		BackoffBase: s.config.BackoffBase,
	}

	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Warn("Varredura de orçamento já está em execução")
		return nil
	}

	if spec.expired(firedAt) {
		s.sweepMutex.Unlock()
		logrus.WithFields(logrus.Fields{
			"fired_at": firedAt,
			"expiry":   spec.Expiry.String(),
		}).Warn("Disparo de varredura de orçamento descartado por validade vencida")
		return nil
	}

	s.sweepRunning = true
	s.lastSweepStartedAt = nowFn()
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.lastSweepCompletedAt = nowFn()
		s.sweepMutex.Unlock()
	}()

	logrus.Info("Iniciando varredura de orçamento e dayparting")

	return runWithRetry(spec, func() error {
		budgetResult, err := s.budgetingService.CheckAllBudgets(ctx)
		if err != nil {
			return err
		}

		daypartingResult, err := s.daypartingService.UpdateAllCampaigns(ctx)
		if err != nil {
			return err
		}

		s.sweepMutex.Lock()
		s.lastBudgetResult = budgetResult
		s.lastDaypartingResult = daypartingResult
		s.sweepMutex.Unlock()

		logrus.WithFields(logrus.Fields{
			"brands_checked":        budgetResult.BrandsChecked,
			"campaigns_paused":      budgetResult.CampaignsPaused,
			"campaigns_reactivated": budgetResult.CampaignsReactivated,
			"campaigns_activated":   daypartingResult.CampaignsActivated,
			"campaigns_deactivated": daypartingResult.CampaignsDeactivated,
		}).Info("Varredura de orçamento e dayparting concluída")

		return nil
	})
}

// TriggerManualSweep inicia manualmente uma varredura de orçamento
func (s *BudgetSweepService) TriggerManualSweep(ctx context.Context) {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Info("Varredura de orçamento já em andamento, ignorando solicitação manual")
		return
	}
	s.sweepMutex.Unlock()

	logrus.Info("Iniciando varredura manual de orçamento")
	go func() {
		if err := s.RunSweep(ctx, nowFn()); err != nil {
			logrus.WithError(err).Error("Erro na varredura manual de orçamento")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *BudgetSweepService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	status := map[string]any{
		"sweep_enabled":           s.config.SweepEnabled,
		"sweep_cron":              s.config.CronSchedule,
		"sweep_running":           s.sweepRunning,
		"last_sweep_started_at":   s.lastSweepStartedAt,
		"last_sweep_completed_at": s.lastSweepCompletedAt,
	}

	if s.lastBudgetResult != nil {
		status["last_budget_result"] = s.lastBudgetResult
	}
	if s.lastDaypartingResult != nil {
		status["last_dayparting_result"] = s.lastDaypartingResult
	}

	return status
}
