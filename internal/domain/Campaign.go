package domain

import "time"

// Campaign representa uma campanha publicitária pertencente a uma marca.
//
// IsActive é o único sinal visível externamente de "pode gastar agora".
// Invariante mantido pelos motores de reconciliação:
//
//	IsActive == !IsPausedByBudget && (sem agendas || dentro de alguma janela ativa)
//
// As duas flags de pausa são independentes e armazenadas separadamente para
// auditoria; IsActive é sempre derivado delas, nunca editado isoladamente.
type Campaign struct {
	ID                   string    `json:"id"`
	BrandID              string    `json:"brand_id"`
	BrandName            string    `json:"brand_name,omitempty"`
	Name                 string    `json:"name"`
	IsActive             bool      `json:"is_active"`
	IsPausedByBudget     bool      `json:"is_paused_by_budget"`
	IsPausedByDayparting bool      `json:"is_paused_by_dayparting"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// IsInDaypartingWindow verifica se a campanha está dentro de alguma janela de
// dayparting no instante informado. A ausência de agendas significa "sempre
// permitido". As bordas da janela são inclusivas nas duas pontas.
func IsInDaypartingWindow(schedules []*DaypartingSchedule, now time.Time) bool {
	if len(schedules) == 0 {
		return true
	}

	currentDay := ISOWeekday(now)
	currentTime := TimeOfDayFromTime(now)

	for _, schedule := range schedules {
		if !schedule.IsActive {
			continue
		}

		if schedule.DayOfWeek == currentDay &&
			schedule.StartTime <= currentTime && currentTime <= schedule.EndTime {
			return true
		}
	}

	return false
}

// ApplyDaypartingStatus recalcula as flags da campanha a partir da condição de
// janela. Se a campanha está pausada por orçamento, a flag de dayparting ainda
// reflete apenas a janela, mas IsActive permanece falso.
func (c *Campaign) ApplyDaypartingStatus(inWindow bool) {
	if inWindow && !c.IsPausedByBudget {
		c.IsPausedByDayparting = false
		c.IsActive = true
		return
	}

	c.IsPausedByDayparting = !inWindow
	c.IsActive = false
}
