package dayparting

import "errors"

// Erros específicos para o contexto de dayparting
var (
	ErrCampaignIDRequired  = errors.New("campaign ID is required")
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInvalidDayOfWeek    = errors.New("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	ErrStartTimeRequired   = errors.New("start_time is required")
	ErrEndTimeRequired     = errors.New("end_time is required")
	ErrStartNotBeforeEnd   = errors.New("start_time must be before end_time")
	ErrOverlappingSchedule = errors.New("schedule overlaps an existing window for this campaign and day")

	// ErrScheduleRejected embrulha o motivo de rejeição na criação de agendas.
	ErrScheduleRejected = errors.New("schedule rejected")

	ErrGenerateID = errors.New("error generating schedule ID")
)
