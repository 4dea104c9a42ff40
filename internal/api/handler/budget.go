package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/internal/domain"
	"github.com/vfg2006/budget-control-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-control-api/pkg/apiErrors"
)

// CheckAllBudgets dispara uma varredura de orçamento sobre todas as marcas
func CheckAllBudgets(service budgeting.BudgetingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.CheckAllBudgets(r.Context())
		if err != nil {
			logrus.Error("Erro na varredura de orçamento:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro na varredura de orçamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta da varredura de orçamento:", err)
		}
	}
}

// CheckBrandBudget reconcilia o orçamento de uma única marca
func CheckBrandBudget(service budgeting.BudgetingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := service.CheckBrandBudget(r.Context(), brandID)
		if err != nil {
			switch {
			case errors.Is(err, budgeting.ErrBrandNotFound):
				apiErrors.WriteError(w, apiErrors.ErrBrandNotFound, err.Error(), nil)
			case errors.Is(err, budgeting.ErrBrandIDRequired):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			default:
				logrus.Error("Erro na checagem de orçamento da marca:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro na checagem de orçamento da marca", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta da checagem de orçamento:", err)
		}
	}
}

// GetBudgetSummary retorna o resumo de orçamento de todas as marcas ativas
func GetBudgetSummary(service budgeting.BudgetingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.GetBudgetSummary()
		if err != nil {
			logrus.Error("Erro ao montar resumo de orçamentos:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar resumo de orçamentos", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error("Erro ao enviar resumo de orçamentos:", err)
		}
	}
}

type brandResetRequest struct {
	ResetType domain.ResetType `json:"reset_type"`
}

// ForceBrandReset zera os contadores de gasto de uma marca fora do ciclo agendado
func ForceBrandReset(service budgeting.BudgetingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		request := &brandResetRequest{ResetType: domain.ResetTypeBoth}
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(request); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Payload inválido", nil)
				return
			}
		}

		result, err := service.ForceBrandReset(r.Context(), brandID, request.ResetType)
		if err != nil {
			switch {
			case errors.Is(err, budgeting.ErrBrandNotFound):
				apiErrors.WriteError(w, apiErrors.ErrBrandNotFound, err.Error(), nil)
			case errors.Is(err, budgeting.ErrBrandIDRequired):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case errors.Is(err, budgeting.ErrInvalidResetType):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			default:
				logrus.Error("Erro no reset forçado da marca:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro no reset forçado da marca", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta do reset forçado:", err)
		}
	}
}
