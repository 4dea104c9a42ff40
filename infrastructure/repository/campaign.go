package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-control-api/internal/domain"
)

const (
	campaignsTable  = "campaigns c"
	campaignColumns = "c.id, c.brand_id, b.name, c.name, c.is_active, c.is_paused_by_budget, c.is_paused_by_dayparting, c.created_at, c.updated_at"
)

type CampaignRepository interface {
	GetCampaignByID(campaignID string) (*domain.Campaign, error)
	ListCampaigns() ([]*domain.Campaign, error)
	ListPausedByBudget(brandID string) ([]*domain.Campaign, error)
	PauseActiveByBudget(brandID string) (int, error)
	UpdateFlags(campaign *domain.Campaign) error
	CountByBrandAndState(brandID string) (active int, paused int, err error)
}

type campaignRepository struct {
	conn *postgres.Connection
}

func NewCampaignRepository(conn *postgres.Connection) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

func (r *campaignRepository) GetCampaignByID(campaignID string) (*domain.Campaign, error) {
	query, args, err := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Join("brands b ON c.brand_id = b.id").
		Where(squirrel.Eq{"c.id": campaignID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	campaign := &domain.Campaign{}
	if err := row.Scan(
		&campaign.ID,
		&campaign.BrandID,
		&campaign.BrandName,
		&campaign.Name,
		&campaign.IsActive,
		&campaign.IsPausedByBudget,
		&campaign.IsPausedByDayparting,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListCampaigns() ([]*domain.Campaign, error) {
	return r.listCampaigns(nil)
}

// ListPausedByBudget retorna as campanhas da marca atualmente pausadas por
// orçamento, candidatas à reativação.
func (r *campaignRepository) ListPausedByBudget(brandID string) ([]*domain.Campaign, error) {
	return r.listCampaigns(squirrel.Eq{"c.brand_id": brandID, "c.is_paused_by_budget": true})
}

func (r *campaignRepository) listCampaigns(whereClause any) ([]*domain.Campaign, error) {
	queryBuilder := squirrel.
		Select(campaignColumns).
		From(campaignsTable).
		Join("brands b ON c.brand_id = b.id").
		OrderBy("b.name ASC", "c.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if whereClause != nil {
		queryBuilder = queryBuilder.Where(whereClause)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.Campaign{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.Campaign, 0)
	for rows.Next() {
		campaign := &domain.Campaign{}
		if err := rows.Scan(
			&campaign.ID,
			&campaign.BrandID,
			&campaign.BrandName,
			&campaign.Name,
			&campaign.IsActive,
			&campaign.IsPausedByBudget,
			&campaign.IsPausedByDayparting,
			&campaign.CreatedAt,
			&campaign.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

// PauseActiveByBudget pausa em lote todas as campanhas ativas da marca por
// motivo de orçamento, sem tocar na flag de dayparting. Retorna a quantidade
// de campanhas afetadas.
func (r *campaignRepository) PauseActiveByBudget(brandID string) (int, error) {
	query, args, err := squirrel.
		Update("campaigns").
		Set("is_paused_by_budget", true).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"brand_id": brandID, "is_active": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao pausar campanhas da marca: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter linhas afetadas: %w", err)
	}

	return int(affected), nil
}

// UpdateFlags persiste as três flags de estado da campanha em uma única
// transação implícita (um UPDATE). Cada atualização é independente entre
// campanhas, o que permite varreduras concorrentes convergirem.
func (r *campaignRepository) UpdateFlags(campaign *domain.Campaign) error {
	query, args, err := squirrel.
		Update("campaigns").
		Set("is_active", campaign.IsActive).
		Set("is_paused_by_budget", campaign.IsPausedByBudget).
		Set("is_paused_by_dayparting", campaign.IsPausedByDayparting).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": campaign.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar flags da campanha: %w", err)
	}

	return nil
}

func (r *campaignRepository) CountByBrandAndState(brandID string) (int, int, error) {
	query, args, err := squirrel.
		Select(
			"COUNT(*) FILTER (WHERE is_active)",
			"COUNT(*) FILTER (WHERE NOT is_active)",
		).
		From("campaigns").
		Where(squirrel.Eq{"brand_id": brandID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var active, paused int
	if err := r.conn.QueryRow(query, args...).Scan(&active, &paused); err != nil {
		return 0, 0, fmt.Errorf("erro ao contar campanhas da marca: %w", err)
	}

	return active, paused, nil
}
