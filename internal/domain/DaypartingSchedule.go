package domain

import (
	"fmt"
	"time"
)

// Dias da semana seguem a convenção ISO usada pelo sistema de origem dos
// eventos: 0 = segunda-feira .. 6 = domingo.
const (
	DayMonday = iota
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
	DaySaturday
	DaySunday
)

var dayOfWeekNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayOfWeekName retorna o nome do dia da semana ou vazio para valores fora da faixa.
func DayOfWeekName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayOfWeekNames[day]
}

// ISOWeekday converte o weekday do Go (domingo=0) para a convenção 0=segunda..6=domingo.
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// TimeOfDay é um horário de relógio (sem data) em segundos desde a meia-noite.
type TimeOfDay int

// TimeOfDayFromTime extrai o horário de relógio de um instante.
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// ParseTimeOfDay aceita os formatos HH:MM e HH:MM:SS.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	layouts := []string{"15:04:05", "15:04"}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return TimeOfDayFromTime(parsed), nil
		}
	}
	return 0, fmt.Errorf("horário inválido: %q (esperado HH:MM ou HH:MM:SS)", value)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, (int(t)%3600)/60, int(t)%60)
}

// DaypartingSchedule representa uma janela semanal recorrente em que a campanha
// pode rodar. StartTime deve ser estritamente menor que EndTime: janelas que
// cruzam a meia-noite não são suportadas e falham na validação.
type DaypartingSchedule struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	DayOfWeek  int       `json:"day_of_week"`
	StartTime  TimeOfDay `json:"start_time"`
	EndTime    TimeOfDay `json:"end_time"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsActiveAt verifica se esta agenda cobre o instante informado.
func (s *DaypartingSchedule) IsActiveAt(now time.Time) bool {
	if !s.IsActive {
		return false
	}

	currentTime := TimeOfDayFromTime(now)
	return s.DayOfWeek == ISOWeekday(now) &&
		s.StartTime <= currentTime && currentTime <= s.EndTime
}
