package domain

// DaypartingUpdateResult resume uma varredura de dayparting sobre todas as campanhas.
type DaypartingUpdateResult struct {
	CampaignsChecked     int    `json:"campaigns_checked"`
	CampaignsActivated   int    `json:"campaigns_activated"`
	CampaignsDeactivated int    `json:"campaigns_deactivated"`
	CampaignsUnchanged   int    `json:"campaigns_unchanged"`
	Timestamp            string `json:"timestamp"`
}

// CampaignDaypartingResult é o antes/depois da atualização de uma única campanha.
type CampaignDaypartingResult struct {
	CampaignID           string `json:"campaign_id"`
	CampaignName         string `json:"campaign_name"`
	BrandName            string `json:"brand_name"`
	OldStatus            bool   `json:"old_status"`
	NewStatus            bool   `json:"new_status"`
	OldDaypartingPause   bool   `json:"old_dayparting_pause"`
	NewDaypartingPause   bool   `json:"new_dayparting_pause"`
	IsInDaypartingWindow bool   `json:"is_in_dayparting_window"`
	Timestamp            string `json:"timestamp"`
}

// CampaignDetail é a linha por campanha do resumo de dayparting.
type CampaignDetail struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	BrandName            string `json:"brand_name"`
	IsActive             bool   `json:"is_active"`
	IsPausedByDayparting bool   `json:"is_paused_by_dayparting"`
	IsInDaypartingWindow bool   `json:"is_in_dayparting_window"`
	ScheduleCount        int    `json:"schedule_count"`
	ActiveSchedules      int    `json:"active_schedules"`
}

// DaypartingSummary agrega o estado de dayparting de todas as campanhas.
type DaypartingSummary struct {
	TotalCampaigns              int              `json:"total_campaigns"`
	CampaignsInWindow           int              `json:"campaigns_in_dayparting_window"`
	CampaignsPausedByDayparting int              `json:"campaigns_paused_by_dayparting"`
	CampaignsWithSchedules      int              `json:"campaigns_with_schedules"`
	CampaignsWithoutSchedules   int              `json:"campaigns_without_schedules"`
	TotalSchedules              int              `json:"total_schedules"`
	ActiveSchedules             int              `json:"active_schedules"`
	CampaignDetails             []CampaignDetail `json:"campaign_details"`
	Timestamp                   string           `json:"timestamp"`
}

// ScheduleValidationResult é o veredito da validação de uma agenda de dayparting.
type ScheduleValidationResult struct {
	Valid        bool   `json:"valid"`
	Error        string `json:"error,omitempty"`
	CampaignID   string `json:"campaign_id,omitempty"`
	CampaignName string `json:"campaign_name,omitempty"`
	DayOfWeek    *int   `json:"day_of_week,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
}
