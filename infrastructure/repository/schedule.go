package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-control-api/internal/domain"
)

const scheduleColumns = "id, campaign_id, day_of_week, start_time, end_time, is_active, created_at, updated_at"

type ScheduleRepository interface {
	ListByCampaign(campaignID string) ([]*domain.DaypartingSchedule, error)
	HasOverlap(campaignID string, dayOfWeek int, start, end domain.TimeOfDay) (bool, error)
	CreateSchedule(schedule *domain.DaypartingSchedule) error
}

type scheduleRepository struct {
	conn *postgres.Connection
}

func NewScheduleRepository(conn *postgres.Connection) ScheduleRepository {
	return &scheduleRepository{
		conn: conn,
	}
}

// Os horários são persistidos como VARCHAR "HH:MM:SS", o que mantém a
// comparação lexicográfica do banco equivalente à comparação numérica.
func (r *scheduleRepository) ListByCampaign(campaignID string) ([]*domain.DaypartingSchedule, error) {
	query, args, err := squirrel.
		Select(scheduleColumns).
		From("dayparting_schedules").
		Where(squirrel.Eq{"campaign_id": campaignID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.DaypartingSchedule{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	schedules := make([]*domain.DaypartingSchedule, 0)
	for rows.Next() {
		schedule, err := scanScheduleRow(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return schedules, nil
}

// HasOverlap verifica se já existe agenda da campanha no mesmo dia cujo
// intervalo cruza o informado. Janelas apenas adjacentes (fim == início) não
// contam como sobreposição.
func (r *scheduleRepository) HasOverlap(campaignID string, dayOfWeek int, start, end domain.TimeOfDay) (bool, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("dayparting_schedules").
		Where(squirrel.Eq{"campaign_id": campaignID, "day_of_week": dayOfWeek}).
		Where(squirrel.Lt{"start_time": end.String()}).
		Where(squirrel.Gt{"end_time": start.String()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("erro ao verificar sobreposição de agendas: %w", err)
	}

	return count > 0, nil
}

func (r *scheduleRepository) CreateSchedule(schedule *domain.DaypartingSchedule) error {
	query, args, err := squirrel.
		Insert("dayparting_schedules").
		Columns("id", "campaign_id", "day_of_week", "start_time", "end_time", "is_active").
		Values(
			schedule.ID,
			schedule.CampaignID,
			schedule.DayOfWeek,
			schedule.StartTime.String(),
			schedule.EndTime.String(),
			schedule.IsActive,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(query, args...).Scan(&schedule.CreatedAt, &schedule.UpdatedAt); err != nil {
		return fmt.Errorf("erro ao criar agenda de dayparting: %w", err)
	}

	return nil
}

func scanScheduleRow(rows *sql.Rows) (*domain.DaypartingSchedule, error) {
	schedule := &domain.DaypartingSchedule{}

	var startTime, endTime string
	if err := rows.Scan(
		&schedule.ID,
		&schedule.CampaignID,
		&schedule.DayOfWeek,
		&startTime,
		&endTime,
		&schedule.IsActive,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("erro ao escanear agenda: %w", err)
	}

	start, err := domain.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar horário de início: %w", err)
	}
	end, err := domain.ParseTimeOfDay(endTime)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar horário de fim: %w", err)
	}

	schedule.StartTime = start
	schedule.EndTime = end

	return schedule, nil
}
