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
)

type SpendCleanupConfig struct {
	CronSchedule   string
	CleanupEnabled bool
	Expiry         time.Duration
	RetentionDays  int
	BatchSize      int
	MaxAttempts    int
	BackoffBase    time.Duration
}

// SpendCleanupService agenda a limpeza semanal do ledger de gastos: remove em
// lotes os registros anteriores à janela de retenção.
type SpendCleanupService struct {
	scheduler              *gocron.Scheduler
	spendRepo              repository.SpendRepository
	config                 SpendCleanupConfig
	cleanupRunning         bool
	cleanupMutex           sync.Mutex
	lastCleanupStartedAt   time.Time
	lastCleanupCompletedAt time.Time
	lastResult             *domain.CleanupResult
}

func NewSpendCleanupService(
	spendRepo repository.SpendRepository,
	cfg *config.Config,
) *SpendCleanupService {
	cleanupConfig := SpendCleanupConfig{
		CronSchedule:   cfg.SpendCleanup.CronSchedule, // Default: segunda-feira às 2h UTC
		CleanupEnabled: cfg.SpendCleanup.Enabled,
		Expiry:         time.Duration(cfg.SpendCleanup.ExpirySeconds) * time.Second,
		RetentionDays:  cfg.SpendCleanup.RetentionDays,
		BatchSize:      cfg.SpendCleanup.BatchSize,
		MaxAttempts:    cfg.Jobs.MaxAttempts,
		BackoffBase:    time.Duration(cfg.Jobs.RetryBaseSeconds) * time.Second,
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cleanupConfig.CronSchedule,
		"retention_days": cleanupConfig.RetentionDays,
		"batch_size":     cleanupConfig.BatchSize,
	}).Info("Configuração do agendador de limpeza do ledger carregada")

	return &SpendCleanupService{
		scheduler: scheduler,
		spendRepo: spendRepo,
		config:    cleanupConfig,
	}
}

func (s *SpendCleanupService) Start(ctx context.Context) error {
	if !s.config.CleanupEnabled {
		logrus.Info("Cron de limpeza do ledger desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de limpeza do ledger")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		firedAt := nowFn()
		if _, err := s.RunCleanup(ctx, firedAt); err != nil {
			logrus.WithError(err).Error("Erro na limpeza do ledger de gastos")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do ledger: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de limpeza do ledger")
		s.scheduler.Stop()
	}()

	return nil
}

// RunCleanup remove registros do ledger anteriores ao corte de retenção,
// repetindo em lotes até esvaziar. Lotes pequenos evitam travar a tabela
// durante gravações de gasto concorrentes.
func (s *SpendCleanupService) RunCleanup(ctx context.Context, firedAt time.Time) (*domain.CleanupResult, error) {
	spec := jobSpec{
		Name:        "spend_cleanup",
		Expiry:      s.config.Expiry,
		MaxAttempts: s.config.MaxAttempts,
		BackoffBase: s.config.BackoffBase,
	}

	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Warn("Limpeza do ledger já está em execução")
		return nil, nil
	}

	if spec.expired(firedAt) {
		s.cleanupMutex.Unlock()
		logrus.WithFields(logrus.Fields{
			"fired_at": firedAt,
			"expiry":   spec.Expiry.String(),
		}).Warn("Disparo de limpeza do ledger descartado por validade vencida")
		return nil, nil
	}

	s.cleanupRunning = true
	s.lastCleanupStartedAt = nowFn()
	s.cleanupMutex.Unlock()

	defer func() {
		s.cleanupMutex.Lock()
		s.cleanupRunning = false
		s.lastCleanupCompletedAt = nowFn()
		s.cleanupMutex.Unlock()
	}()

	cutoff := nowFn().UTC().AddDate(0, 0, -s.config.RetentionDays)
	cutoffDate := cutoff.Format(time.RFC3339)

	logrus.WithFields(logrus.Fields{
		"cutoff_date": cutoffDate,
		"batch_size":  s.config.BatchSize,
	}).Info("Iniciando limpeza do ledger de gastos")

	var result *domain.CleanupResult
	err := runWithRetry(spec, func() error {
		cleanupResult := &domain.CleanupResult{
			CutoffDate: cutoffDate,
			Timestamp:  nowFn().UTC().Format(time.RFC3339),
		}

		for {
			deleted, err := s.spendRepo.DeleteOlderThan(ctx, cutoffDate, s.config.BatchSize)
			if err != nil {
				return err
			}
			if deleted == 0 {
				break
			}

			cleanupResult.RecordsDeleted += deleted
			cleanupResult.BatchesRun++
		}

		result = cleanupResult
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cleanupMutex.Lock()
	s.lastResult = result
	s.cleanupMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"records_deleted": result.RecordsDeleted,
		"batches_run":     result.BatchesRun,
	}).Info("Limpeza do ledger de gastos concluída")

	return result, nil
}

// GetStatus retorna o status atual do agendador
func (s *SpendCleanupService) GetStatus() map[string]any {
	s.cleanupMutex.Lock()
	defer s.cleanupMutex.Unlock()

	status := map[string]any{
		"cleanup_enabled":           s.config.CleanupEnabled,
		"cleanup_cron":              s.config.CronSchedule,
		"cleanup_running":           s.cleanupRunning,
		"retention_days":            s.config.RetentionDays,
		"batch_size":                s.config.BatchSize,
		"last_cleanup_started_at":   s.lastCleanupStartedAt,
		"last_cleanup_completed_at": s.lastCleanupCompletedAt,
	}

	if s.lastResult != nil {
		status["last_result"] = s.lastResult
	}

	return status
}
