package domain

// SpendReceipt confirma o registro de um gasto no ledger. Os campos de saldo da
// marca refletem os contadores logo após o incremento atômico; a pausa por
// orçamento em si só acontece na próxima varredura agendada.
type SpendReceipt struct {
	SpendID         string `json:"spend_id"`
	CampaignID      string `json:"campaign_id"`
	CampaignName    string `json:"campaign_name"`
	BrandID         string `json:"brand_id"`
	BrandName       string `json:"brand_name"`
	Amount          string `json:"amount"`
	SpentAt         string `json:"spent_at"`
	DailySpend      string `json:"daily_spend"`
	MonthlySpend    string `json:"monthly_spend"`
	DailyExceeded   bool   `json:"daily_exceeded"`
	MonthlyExceeded bool   `json:"monthly_exceeded"`
	Timestamp       string `json:"timestamp"`
}

// ResetTaskResult resume um job periódico de reset (diário ou mensal).
type ResetTaskResult struct {
	BrandsReset          int                     `json:"brands_reset"`
	CampaignsReactivated int                     `json:"campaigns_reactivated"`
	DaypartingUpdates    *DaypartingUpdateResult `json:"dayparting_updates"`
	Timestamp            string                  `json:"timestamp"`
}

// CleanupResult resume uma execução do job de retenção do ledger.
type CleanupResult struct {
	RecordsDeleted int64  `json:"records_deleted"`
	BatchesRun     int    `json:"batches_run"`
	CutoffDate     string `json:"cutoff_date"`
	Timestamp      string `json:"timestamp"`
}
