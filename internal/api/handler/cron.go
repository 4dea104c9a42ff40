package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/internal/scheduler"
	"github.com/vfg2006/budget-control-api/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeBudgetSweep  = "budget-sweep"
	CronJobTypeDailyReset   = "daily-reset"
	CronJobTypeMonthlyReset = "monthly-reset"
	CronJobTypeCleanup      = "cleanup"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	BudgetSweepService  *scheduler.BudgetSweepService
	SpendResetService   *scheduler.SpendResetService
	SpendCleanupService *scheduler.SpendCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeBudgetSweep:
			if services.BudgetSweepService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de varredura de orçamento não disponível", nil)
				return
			}
			services.BudgetSweepService.TriggerManualSweep(r.Context())

		case CronJobTypeDailyReset:
			if services.SpendResetService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de reset de gastos não disponível", nil)
				return
			}
			result, err := services.SpendResetService.RunDailyReset(r.Context(), time.Now())
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrJobExecution, "Falha no reset diário de gastos", err.Error())
				return
			}
			writeCronResult(w, cronType, result)
			return

		case CronJobTypeMonthlyReset:
			if services.SpendResetService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de reset de gastos não disponível", nil)
				return
			}
			result, err := services.SpendResetService.RunMonthlyReset(r.Context(), time.Now())
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrJobExecution, "Falha no reset mensal de gastos", err.Error())
				return
			}
			writeCronResult(w, cronType, result)
			return

		case CronJobTypeCleanup:
			if services.SpendCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza do ledger não disponível", nil)
				return
			}
			result, err := services.SpendCleanupService.RunCleanup(r.Context(), time.Now())
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrJobExecution, "Falha na limpeza do ledger", err.Error())
				return
			}
			writeCronResult(w, cronType, result)
			return

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: budget-sweep, daily-reset, monthly-reset, cleanup", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"budget_sweep": services.BudgetSweepService.GetStatus(),
			"spend_reset":  services.SpendResetService.GetStatus(),
			"cleanup":      services.SpendCleanupService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}

func writeCronResult(w http.ResponseWriter, cronType string, result any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message": "Cron job executada com sucesso",
		"type":    cronType,
		"result":  result,
	})
}
