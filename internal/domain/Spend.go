package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Spend é um registro imutável de gasto no ledger. Uma vez criado nunca é
// atualizado; a remoção acontece apenas pelo job de retenção, em lotes.
type Spend struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	Amount     decimal.Decimal `json:"amount"`
	SpentAt    time.Time       `json:"spent_at"`
	CreatedAt  time.Time       `json:"created_at"`
}
