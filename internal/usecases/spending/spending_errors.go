package spending

import "errors"

// Erros específicos para o contexto de registro de gastos
var (
	// Erros de validação
	ErrCampaignIDRequired = errors.New("campaign ID is required")
	ErrAmountRequired     = errors.New("amount is required")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
	ErrInvalidSpentAt     = errors.New("invalid spent_at timestamp")
	ErrCampaignNotFound   = errors.New("campaign not found")

	// Erros de infraestrutura
	ErrGenerateID = errors.New("error generating spend ID")
)
