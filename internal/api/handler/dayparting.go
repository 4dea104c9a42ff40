package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/internal/usecases/dayparting"
	"github.com/vfg2006/budget-control-api/pkg/apiErrors"
)

// UpdateAllCampaignsDayparting dispara a reavaliação de janela de todas as campanhas
func UpdateAllCampaignsDayparting(service dayparting.DaypartingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.UpdateAllCampaigns(r.Context())
		if err != nil {
			logrus.Error("Erro na varredura de dayparting:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro na varredura de dayparting", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta da varredura de dayparting:", err)
		}
	}
}

// UpdateCampaignDayparting reavalia a janela de uma única campanha
func UpdateCampaignDayparting(service dayparting.DaypartingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		campaignID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		result, err := service.UpdateCampaignDayparting(r.Context(), campaignID)
		if err != nil {
			switch {
			case errors.Is(err, dayparting.ErrCampaignNotFound):
				apiErrors.WriteError(w, apiErrors.ErrCampaignNotFound, err.Error(), nil)
			case errors.Is(err, dayparting.ErrCampaignIDRequired):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
			default:
				logrus.Error("Erro na atualização de dayparting da campanha:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro na atualização de dayparting da campanha", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logrus.Error("Erro ao enviar resposta de dayparting da campanha:", err)
		}
	}
}

// GetDaypartingSummary retorna o resumo de dayparting de todas as campanhas
func GetDaypartingSummary(service dayparting.DaypartingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.GetDaypartingSummary()
		if err != nil {
			logrus.Error("Erro ao montar resumo de dayparting:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar resumo de dayparting", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			logrus.Error("Erro ao enviar resumo de dayparting:", err)
		}
	}
}

// ValidateSchedule valida uma agenda de dayparting sem persistir
func ValidateSchedule(service dayparting.DaypartingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := &dayparting.ScheduleInput{}
		if err := json.NewDecoder(r.Body).Decode(input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Payload inválido", nil)
			return
		}

		verdict, err := service.ValidateSchedule(input)
		if err != nil {
			logrus.Error("Erro ao validar agenda de dayparting:", err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao validar agenda de dayparting", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(verdict); err != nil {
			logrus.Error("Erro ao enviar veredito de validação de agenda:", err)
		}
	}
}

// CreateSchedule valida e cria uma agenda de dayparting
func CreateSchedule(service dayparting.DaypartingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := &dayparting.ScheduleInput{}
		if err := json.NewDecoder(r.Body).Decode(input); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Payload inválido", nil)
			return
		}

		schedule, err := service.CreateSchedule(input)
		if err != nil {
			switch {
			case errors.Is(err, dayparting.ErrScheduleRejected):
				apiErrors.WriteError(w, apiErrors.ErrInvalidSchedule, err.Error(), nil)
			case errors.Is(err, dayparting.ErrGenerateID):
				logrus.Error("Erro ao gerar ID de agenda:", err)
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao criar agenda", nil)
			default:
				logrus.Error("Erro ao criar agenda de dayparting:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar agenda de dayparting", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(schedule); err != nil {
			logrus.Error("Erro ao enviar resposta de criação de agenda:", err)
		}
	}
}
