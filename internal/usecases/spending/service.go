// Package spending implementa o registro de gastos de campanhas no ledger.
package spending

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-control-api/infrastructure/repository"
	"github.com/vfg2006/budget-control-api/internal/domain"
	"github.com/vfg2006/budget-control-api/pkg/utils"
)

// SpendInput é o payload de registro de um gasto. Amount chega como string
// decimal exata; SpentAt é opcional (RFC 3339) e o padrão é o instante atual.
type SpendInput struct {
	CampaignID string `json:"campaign_id"`
	Amount     string `json:"amount"`
	SpentAt    string `json:"spent_at,omitempty"`
}

type SpendingService interface {
	RecordSpend(ctx context.Context, input *SpendInput) (*domain.SpendReceipt, error)
}

type Service struct {
	campaignRepository repository.CampaignRepository
	spendRepository    repository.SpendRepository
}

func NewService(
	campaignRepo repository.CampaignRepository,
	spendRepo repository.SpendRepository,
) SpendingService {
	return &Service{
		campaignRepository: campaignRepo,
		spendRepository:    spendRepo,
	}
}

// RecordSpend valida o payload, grava o evento no ledger e incrementa os
// agregados da marca atomicamente. O recibo devolve os contadores logo após o
// incremento; nenhuma pausa acontece aqui, apenas na próxima varredura.
func (s *Service) RecordSpend(ctx context.Context, input *SpendInput) (*domain.SpendReceipt, error) {
	spend, err := s.buildSpend(input)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepository.GetCampaignByID(input.CampaignID)
	if err != nil {
		logrus.Error("Erro ao buscar campanha para registro de gasto", map[string]any{
			"campaignID": input.CampaignID,
			"error":      err,
		})
		return nil, err
	}

	if campaign == nil {
		return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, input.CampaignID)
	}

	brand, err := s.spendRepository.Record(ctx, spend, campaign.BrandID)
	if err != nil {
		logrus.Error("Erro ao registrar gasto no ledger", map[string]any{
			"campaignID": campaign.ID,
			"brandID":    campaign.BrandID,
			"amount":     spend.Amount.String(),
			"error":      err,
		})
		return nil, err
	}

	logrus.Info("Gasto registrado", map[string]any{
		"spendID":      spend.ID,
		"campaignID":   campaign.ID,
		"brandID":      brand.ID,
		"amount":       spend.Amount.String(),
		"dailySpend":   brand.DailySpend.String(),
		"monthlySpend": brand.MonthlySpend.String(),
	})

	return &domain.SpendReceipt{
		SpendID:         spend.ID,
		CampaignID:      campaign.ID,
		CampaignName:    campaign.Name,
		BrandID:         brand.ID,
		BrandName:       brand.Name,
		Amount:          spend.Amount.String(),
		SpentAt:         spend.SpentAt.UTC().Format(time.RFC3339),
		DailySpend:      brand.DailySpend.String(),
		MonthlySpend:    brand.MonthlySpend.String(),
		DailyExceeded:   brand.IsDailyBudgetExceeded(),
		MonthlyExceeded: brand.IsMonthlyBudgetExceeded(),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *Service) buildSpend(input *SpendInput) (*domain.Spend, error) {
	if input.CampaignID == "" {
		return nil, ErrCampaignIDRequired
	}

	if input.Amount == "" {
		return nil, ErrAmountRequired
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, input.Amount)
	}

	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	spentAt := time.Now().UTC()
	if input.SpentAt != "" {
		parsed, err := time.Parse(time.RFC3339, input.SpentAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSpentAt, input.SpentAt)
		}
		spentAt = parsed.UTC()
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateID, err)
	}

	return &domain.Spend{
		ID:         id,
		CampaignID: input.CampaignID,
		Amount:     amount,
		SpentAt:    spentAt,
	}, nil
}
