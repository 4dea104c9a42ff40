package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-control-api/infrastructure/repository"
	"github.com/vfg2006/budget-control-api/internal/api"
	"github.com/vfg2006/budget-control-api/internal/config"
	"github.com/vfg2006/budget-control-api/internal/scheduler"
	"github.com/vfg2006/budget-control-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-control-api/internal/usecases/dayparting"
	"github.com/vfg2006/budget-control-api/internal/usecases/spending"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	brandRepo := repository.NewBrandRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	scheduleRepo := repository.NewScheduleRepository(pgConn)
	spendRepo := repository.NewSpendRepository(pgConn)

	spendingService := spending.NewService(campaignRepo, spendRepo)
	daypartingService := dayparting.NewService(campaignRepo, scheduleRepo)
	budgetingService := budgeting.NewService(brandRepo, campaignRepo, scheduleRepo).
		WithDaypartingUpdater(daypartingService)

	// Inicializa os agendadores de reconciliação
	budgetSweepService := scheduler.NewBudgetSweepService(budgetingService, daypartingService, cfg)
	spendResetService := scheduler.NewSpendResetService(brandRepo, budgetingService, daypartingService, cfg)
	spendCleanupService := scheduler.NewSpendCleanupService(spendRepo, cfg)

	// Inicia os agendadores em background
	if err := budgetSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de varredura de orçamento")
	} else {
		logrus.Info("Agendador de varredura de orçamento iniciado com sucesso")
	}

	if err := spendResetService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de reset de gastos")
	} else {
		logrus.Info("Agendador de reset de gastos iniciado com sucesso")
	}

	if err := spendCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza do ledger")
	} else {
		logrus.Info("Agendador de limpeza do ledger iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		spendingService,
		budgetingService,
		daypartingService,
		budgetSweepService,
		spendResetService,
		spendCleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
