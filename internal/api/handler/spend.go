// Package handler contém os handlers HTTP da API
package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/infrastructure/repository"
	"github.com/vfg2006/budget-control-api/internal/usecases/spending"
	"github.com/vfg2006/budget-control-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RecordSpend registra um gasto de campanha no ledger
func RecordSpend(service spending.SpendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := &spending.SpendInput{}
		if err := json.NewDecoder(r.Body).Decode(input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Payload inválido", nil)
			return
		}

		receipt, err := service.RecordSpend(r.Context(), input)
		if err != nil {
			switch {
			case errors.Is(err, spending.ErrCampaignNotFound):
				apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, err.Error(), nil)
			case errors.Is(err, spending.ErrCampaignIDRequired),
				errors.Is(err, spending.ErrAmountRequired):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			case errors.Is(err, spending.ErrInvalidAmount),
				errors.Is(err, spending.ErrNonPositiveAmount),
				errors.Is(err, spending.ErrInvalidSpentAt):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			case errors.Is(err, repository.ErrSpendConflict):
				apiErrors.WriteError(w, apiErrors.ErrSpendConflict, err.Error(), nil)
			default:
				logrus.Error("Erro ao registrar gasto:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar gasto", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(receipt); err != nil {
			logrus.Error("Erro ao enviar resposta do registro de gasto:", err)
		}
	}
}
