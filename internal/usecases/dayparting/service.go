// Package dayparting implementa a reconciliação de janelas de veiculação: liga
// e desliga campanhas conforme as agendas semanais de cada uma.
package dayparting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/infrastructure/repository"
	"github.com/vfg2006/budget-control-api/internal/domain"
	"github.com/vfg2006/budget-control-api/pkg/utils"
)

// ScheduleInput é o payload de criação ou validação de uma agenda. DayOfWeek é
// ponteiro para distinguir "campo ausente" de segunda-feira (0).
type ScheduleInput struct {
	CampaignID string `json:"campaign_id"`
	DayOfWeek  *int   `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

type DaypartingService interface {
	UpdateAllCampaigns(ctx context.Context) (*domain.DaypartingUpdateResult, error)
	UpdateCampaignDayparting(ctx context.Context, campaignID string) (*domain.CampaignDaypartingResult, error)
	GetDaypartingSummary() (*domain.DaypartingSummary, error)
	ValidateSchedule(input *ScheduleInput) (*domain.ScheduleValidationResult, error)
	CreateSchedule(input *ScheduleInput) (*domain.DaypartingSchedule, error)
}

type Service struct {
	campaignRepository repository.CampaignRepository
	scheduleRepository repository.ScheduleRepository
}

func NewService(
	campaignRepo repository.CampaignRepository,
	scheduleRepo repository.ScheduleRepository,
) *Service {
	return &Service{
		campaignRepository: campaignRepo,
		scheduleRepository: scheduleRepo,
	}
}

// UpdateAllCampaigns reavalia a janela de todas as campanhas e persiste apenas
// as que mudaram de estado. Campanhas pausadas por orçamento têm a flag de
// dayparting atualizada mas permanecem inativas.
func (s *Service) UpdateAllCampaigns(ctx context.Context) (*domain.DaypartingUpdateResult, error) {
	return s.updateAllCampaignsWithTime(ctx, time.Now().UTC())
}

func (s *Service) updateAllCampaignsWithTime(_ context.Context, now time.Time) (*domain.DaypartingUpdateResult, error) {
	campaigns, err := s.campaignRepository.ListCampaigns()
	if err != nil {
		logrus.Error("Erro ao listar campanhas para varredura de dayparting", map[string]any{
			"error": err,
		})
		return nil, err
	}

	result := &domain.DaypartingUpdateResult{
		CampaignsChecked: len(campaigns),
		Timestamp:        now.Format(time.RFC3339),
	}

	for _, campaign := range campaigns {
		schedules, err := s.scheduleRepository.ListByCampaign(campaign.ID)
		if err != nil {
			return nil, err
		}

		oldActive := campaign.IsActive
		oldPause := campaign.IsPausedByDayparting

		campaign.ApplyDaypartingStatus(domain.IsInDaypartingWindow(schedules, now))

		if campaign.IsActive == oldActive && campaign.IsPausedByDayparting == oldPause {
			result.CampaignsUnchanged++
			continue
		}

		if err := s.campaignRepository.UpdateFlags(campaign); err != nil {
			return nil, err
		}

		switch {
		case campaign.IsActive && !oldActive:
			result.CampaignsActivated++
		case !campaign.IsActive && oldActive:
			result.CampaignsDeactivated++
		default:
			result.CampaignsUnchanged++
		}
	}

	if result.CampaignsActivated > 0 || result.CampaignsDeactivated > 0 {
		logrus.Info("Varredura de dayparting aplicada", map[string]any{
			"campaignsChecked":     result.CampaignsChecked,
			"campaignsActivated":   result.CampaignsActivated,
			"campaignsDeactivated": result.CampaignsDeactivated,
		})
	}

	return result, nil
}

// UpdateCampaignDayparting reavalia uma única campanha e retorna o antes/depois.
func (s *Service) UpdateCampaignDayparting(ctx context.Context, campaignID string) (*domain.CampaignDaypartingResult, error) {
	return s.updateCampaignDaypartingWithTime(ctx, campaignID, time.Now().UTC())
}

func (s *Service) updateCampaignDaypartingWithTime(_ context.Context, campaignID string, now time.Time) (*domain.CampaignDaypartingResult, error) {
	if campaignID == "" {
		return nil, ErrCampaignIDRequired
	}

	campaign, err := s.campaignRepository.GetCampaignByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, campaignID)
	}

	schedules, err := s.scheduleRepository.ListByCampaign(campaign.ID)
	if err != nil {
		return nil, err
	}

	inWindow := domain.IsInDaypartingWindow(schedules, now)

	result := &domain.CampaignDaypartingResult{
		CampaignID:           campaign.ID,
		CampaignName:         campaign.Name,
		BrandName:            campaign.BrandName,
		OldStatus:            campaign.IsActive,
		OldDaypartingPause:   campaign.IsPausedByDayparting,
		IsInDaypartingWindow: inWindow,
		Timestamp:            now.Format(time.RFC3339),
	}

	campaign.ApplyDaypartingStatus(inWindow)

	if campaign.IsActive != result.OldStatus || campaign.IsPausedByDayparting != result.OldDaypartingPause {
		if err := s.campaignRepository.UpdateFlags(campaign); err != nil {
			return nil, err
		}
	}

	result.NewStatus = campaign.IsActive
	result.NewDaypartingPause = campaign.IsPausedByDayparting

	return result, nil
}

// GetDaypartingSummary agrega o estado de dayparting de todas as campanhas.
func (s *Service) GetDaypartingSummary() (*domain.DaypartingSummary, error) {
	return s.getDaypartingSummaryWithTime(time.Now().UTC())
}

func (s *Service) getDaypartingSummaryWithTime(now time.Time) (*domain.DaypartingSummary, error) {
	campaigns, err := s.campaignRepository.ListCampaigns()
	if err != nil {
		return nil, err
	}

	summary := &domain.DaypartingSummary{
		TotalCampaigns:  len(campaigns),
		CampaignDetails: make([]domain.CampaignDetail, 0, len(campaigns)),
		Timestamp:       now.Format(time.RFC3339),
	}

	for _, campaign := range campaigns {
		schedules, err := s.scheduleRepository.ListByCampaign(campaign.ID)
		if err != nil {
			return nil, err
		}

		activeSchedules := 0
		for _, schedule := range schedules {
			if schedule.IsActive {
				activeSchedules++
			}
		}

		inWindow := domain.IsInDaypartingWindow(schedules, now)
		if inWindow {
			summary.CampaignsInWindow++
		}
		if campaign.IsPausedByDayparting {
			summary.CampaignsPausedByDayparting++
		}
		if len(schedules) > 0 {
			summary.CampaignsWithSchedules++
		} else {
			summary.CampaignsWithoutSchedules++
		}
		summary.TotalSchedules += len(schedules)
		summary.ActiveSchedules += activeSchedules

		summary.CampaignDetails = append(summary.CampaignDetails, domain.CampaignDetail{
			ID:                   campaign.ID,
			Name:                 campaign.Name,
			BrandName:            campaign.BrandName,
			IsActive:             campaign.IsActive,
			IsPausedByDayparting: campaign.IsPausedByDayparting,
			IsInDaypartingWindow: inWindow,
			ScheduleCount:        len(schedules),
			ActiveSchedules:      activeSchedules,
		})
	}

	return summary, nil
}

// ValidateSchedule aplica as regras de agenda sem persistir nada: dia válido,
// horários bem formados, início estritamente antes do fim, campanha existente
// e ausência de sobreposição com agendas já cadastradas.
func (s *Service) ValidateSchedule(input *ScheduleInput) (*domain.ScheduleValidationResult, error) {
	schedule, campaign, verdict, err := s.validateScheduleInput(input)
	if err != nil {
		return nil, err
	}
	if verdict != nil {
		return verdict, nil
	}

	return &domain.ScheduleValidationResult{
		Valid:        true,
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		DayOfWeek:    &schedule.DayOfWeek,
		StartTime:    schedule.StartTime.String(),
		EndTime:      schedule.EndTime.String(),
	}, nil
}

// CreateSchedule valida e persiste uma nova agenda. Agendas nascem ativas a
// menos que o payload diga o contrário.
func (s *Service) CreateSchedule(input *ScheduleInput) (*domain.DaypartingSchedule, error) {
	schedule, _, verdict, err := s.validateScheduleInput(input)
	if err != nil {
		return nil, err
	}
	if verdict != nil {
		return nil, fmt.Errorf("%w: %s", ErrScheduleRejected, verdict.Error)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateID, err)
	}
	schedule.ID = id

	if err := s.scheduleRepository.CreateSchedule(schedule); err != nil {
		return nil, err
	}

	logrus.Info("Agenda de dayparting criada", map[string]any{
		"scheduleID": schedule.ID,
		"campaignID": schedule.CampaignID,
		"dayOfWeek":  domain.DayOfWeekName(schedule.DayOfWeek),
		"startTime":  schedule.StartTime.String(),
		"endTime":    schedule.EndTime.String(),
	})

	return schedule, nil
}

// validateScheduleInput retorna um veredito de rejeição (verdict != nil) para
// falhas de regra de negócio e err apenas para falhas de infraestrutura.
func (s *Service) validateScheduleInput(input *ScheduleInput) (*domain.DaypartingSchedule, *domain.Campaign, *domain.ScheduleValidationResult, error) {
	invalid := func(message string) (*domain.DaypartingSchedule, *domain.Campaign, *domain.ScheduleValidationResult, error) {
		return nil, nil, &domain.ScheduleValidationResult{Valid: false, Error: message}, nil
	}

	if input.CampaignID == "" {
		return invalid(ErrCampaignIDRequired.Error())
	}
	if input.DayOfWeek == nil {
		return invalid(ErrInvalidDayOfWeek.Error())
	}
	if *input.DayOfWeek < domain.DayMonday || *input.DayOfWeek > domain.DaySunday {
		return invalid(ErrInvalidDayOfWeek.Error())
	}
	if input.StartTime == "" {
		return invalid(ErrStartTimeRequired.Error())
	}
	if input.EndTime == "" {
		return invalid(ErrEndTimeRequired.Error())
	}

	start, err := domain.ParseTimeOfDay(input.StartTime)
	if err != nil {
		return invalid(err.Error())
	}
	end, err := domain.ParseTimeOfDay(input.EndTime)
	if err != nil {
		return invalid(err.Error())
	}
	if start >= end {
		return invalid(ErrStartNotBeforeEnd.Error())
	}

	campaign, err := s.campaignRepository.GetCampaignByID(input.CampaignID)
	if err != nil {
		return nil, nil, nil, err
	}
	if campaign == nil {
		return invalid(fmt.Sprintf("%s: %s", ErrCampaignNotFound.Error(), input.CampaignID))
	}

	overlaps, err := s.scheduleRepository.HasOverlap(campaign.ID, *input.DayOfWeek, start, end)
	if err != nil {
		return nil, nil, nil, err
	}
	if overlaps {
		return invalid(ErrOverlappingSchedule.Error())
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	schedule := &domain.DaypartingSchedule{
		CampaignID: campaign.ID,
		DayOfWeek:  *input.DayOfWeek,
		StartTime:  start,
		EndTime:    end,
		IsActive:   isActive,
	}

	return schedule, campaign, nil, nil
}
