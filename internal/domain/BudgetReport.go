package domain

// Resultados tipados das operações de orçamento. Valores monetários cruzam a
// fronteira da API como strings decimais exatas, nunca como float binário.

// BudgetCheckResult resume uma varredura completa de orçamento.
type BudgetCheckResult struct {
	BrandsChecked           int    `json:"brands_checked"`
	BrandsOverDailyBudget   int    `json:"brands_over_daily_budget"`
	BrandsOverMonthlyBudget int    `json:"brands_over_monthly_budget"`
	CampaignsPaused         int    `json:"campaigns_paused"`
	CampaignsReactivated    int    `json:"campaigns_reactivated"`
	Timestamp               string `json:"timestamp"`
}

// BrandBudgetResult é o resultado da avaliação de orçamento de uma única marca.
// CampaignsPaused/CampaignsReactivated são ponteiros: apenas um dos dois é
// preenchido, conforme a ação tomada.
type BrandBudgetResult struct {
	BrandID              string `json:"brand_id"`
	BrandName            string `json:"brand_name"`
	DailyBudget          string `json:"daily_budget"`
	DailySpend           string `json:"daily_spend"`
	MonthlyBudget        string `json:"monthly_budget"`
	MonthlySpend         string `json:"monthly_spend"`
	DailyExceeded        bool   `json:"daily_exceeded"`
	MonthlyExceeded      bool   `json:"monthly_exceeded"`
	RemainingDaily       string `json:"remaining_daily"`
	RemainingMonthly     string `json:"remaining_monthly"`
	CampaignsPaused      *int   `json:"campaigns_paused"`
	CampaignsReactivated *int   `json:"campaigns_reactivated"`
	Timestamp            string `json:"timestamp"`
}

// BrandDetail é a linha por marca do resumo de orçamentos.
type BrandDetail struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DailySpend      string `json:"daily_spend"`
	DailyBudget     string `json:"daily_budget"`
	MonthlySpend    string `json:"monthly_spend"`
	MonthlyBudget   string `json:"monthly_budget"`
	DailyExceeded   bool   `json:"daily_exceeded"`
	MonthlyExceeded bool   `json:"monthly_exceeded"`
	ActiveCampaigns int    `json:"active_campaigns"`
	PausedCampaigns int    `json:"paused_campaigns"`
}

// BudgetSummary agrega o estado de orçamento de todas as marcas ativas.
type BudgetSummary struct {
	TotalBrands             int           `json:"total_brands"`
	BrandsOverDailyBudget   int           `json:"brands_over_daily_budget"`
	BrandsOverMonthlyBudget int           `json:"brands_over_monthly_budget"`
	TotalDailySpend         string        `json:"total_daily_spend"`
	TotalMonthlySpend       string        `json:"total_monthly_spend"`
	TotalDailyBudget        string        `json:"total_daily_budget"`
	TotalMonthlyBudget      string        `json:"total_monthly_budget"`
	BrandDetails            []BrandDetail `json:"brand_details"`
	Timestamp               string        `json:"timestamp"`
}

// ResetType identifica qual contador de gasto deve ser zerado.
type ResetType string

const (
	ResetTypeDaily   ResetType = "daily"
	ResetTypeMonthly ResetType = "monthly"
	ResetTypeBoth    ResetType = "both"
)

// Valid informa se o tipo de reset é reconhecido.
func (r ResetType) Valid() bool {
	switch r {
	case ResetTypeDaily, ResetTypeMonthly, ResetTypeBoth:
		return true
	}
	return false
}

// BrandResetResult é o resultado de um reset forçado de uma marca.
type BrandResetResult struct {
	BrandID              string                  `json:"brand_id"`
	BrandName            string                  `json:"brand_name"`
	ResetType            ResetType               `json:"reset_type"`
	CampaignsReactivated int                     `json:"campaigns_reactivated"`
	DaypartingUpdates    *DaypartingUpdateResult `json:"dayparting_updates"`
	Timestamp            string                  `json:"timestamp"`
}
