package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	BudgetSweep  BudgetSweep  `mapstructure:",squash"`
	SpendReset   SpendReset   `mapstructure:",squash"`
	SpendCleanup SpendCleanup `mapstructure:",squash"`
	Jobs         Jobs         `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// BudgetSweep controla a varredura periódica de orçamento e dayparting.
type BudgetSweep struct {
	CronSchedule  string `mapstructure:"budget_sweep_cron"`
	Enabled       bool   `mapstructure:"budget_sweep_enabled"`
	ExpirySeconds int    `mapstructure:"budget_sweep_expiry_seconds"`
}

// SpendReset controla os jobs de reset dos contadores diário e mensal.
type SpendReset struct {
	DailyCronSchedule   string `mapstructure:"daily_reset_cron"`
	MonthlyCronSchedule string `mapstructure:"monthly_reset_cron"`
	Enabled             bool   `mapstructure:"reset_enabled"`
	ExpirySeconds       int    `mapstructure:"reset_expiry_seconds"`
}

// SpendCleanup controla o job semanal de retenção do ledger de gastos.
type SpendCleanup struct {
	CronSchedule  string `mapstructure:"cleanup_cron"`
	Enabled       bool   `mapstructure:"cleanup_enabled"`
	ExpirySeconds int    `mapstructure:"cleanup_expiry_seconds"`
	RetentionDays int    `mapstructure:"spend_retention_days"`
	BatchSize     int    `mapstructure:"cleanup_batch_size"`
}

// Jobs reúne a política de retentativa comum aos jobs agendados.
type Jobs struct {
	MaxAttempts      int `mapstructure:"job_max_attempts"`
	RetryBaseSeconds int `mapstructure:"job_retry_base_seconds"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budget_control")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Varredura de orçamento a cada 15 minutos; disparos que esperarem mais de
	// 60s pelo slot são descartados
	viper.SetDefault("BUDGET_SWEEP_CRON", "*/15 * * * *")
	viper.SetDefault("BUDGET_SWEEP_ENABLED", true)
	viper.SetDefault("BUDGET_SWEEP_EXPIRY_SECONDS", 60)

	// Resets à meia-noite UTC: diário todo dia, mensal no dia 1
	viper.SetDefault("DAILY_RESET_CRON", "0 0 * * *")
	viper.SetDefault("MONTHLY_RESET_CRON", "0 0 1 * *")
	viper.SetDefault("RESET_ENABLED", true)
	viper.SetDefault("RESET_EXPIRY_SECONDS", 60)

	// Limpeza do ledger toda segunda-feira às 2h UTC
	viper.SetDefault("CLEANUP_CRON", "0 2 * * 1")
	viper.SetDefault("CLEANUP_ENABLED", true)
	viper.SetDefault("CLEANUP_EXPIRY_SECONDS", 300)
	viper.SetDefault("SPEND_RETENTION_DAYS", 90)
	viper.SetDefault("CLEANUP_BATCH_SIZE", 1000)

	viper.SetDefault("JOB_MAX_ATTEMPTS", 3)
	viper.SetDefault("JOB_RETRY_BASE_SECONDS", 60)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
