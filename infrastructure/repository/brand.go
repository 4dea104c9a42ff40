// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/budget-control-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-control-api/internal/domain"
)

const (
	brandsTable   = "brands b"
	brandColumns  = "b.id, b.name, b.daily_budget, b.monthly_budget, b.daily_spend, b.monthly_spend, b.is_active, b.created_at, b.updated_at"
	brandsColumns = "id, name, daily_budget, monthly_budget, daily_spend, monthly_spend, is_active, created_at, updated_at"
)

type BrandRepository interface {
	GetBrandByID(brandID string) (*domain.Brand, error)
	ListBrands(onlyActive bool) ([]*domain.Brand, error)
	ResetDailySpend(brandID string) error
	ResetMonthlySpend(brandID string) error
}

type brandRepository struct {
	conn *postgres.Connection
}

func NewBrandRepository(conn *postgres.Connection) BrandRepository {
	return &brandRepository{
		conn: conn,
	}
}

func (r *brandRepository) GetBrandByID(brandID string) (*domain.Brand, error) {
	query, args, err := squirrel.
		Select(brandColumns).
		From(brandsTable).
		Where(squirrel.Eq{"b.id": brandID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)

	brand, err := scanBrandRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear marca: %w", err)
	}

	return brand, nil
}

func (r *brandRepository) ListBrands(onlyActive bool) ([]*domain.Brand, error) {
	queryBuilder := squirrel.
		Select(brandColumns).
		From(brandsTable).
		OrderBy("b.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if onlyActive {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"b.is_active": true})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*domain.Brand{}, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	brands := make([]*domain.Brand, 0)
	for rows.Next() {
		brand := &domain.Brand{}
		if err := rows.Scan(
			&brand.ID,
			&brand.Name,
			&brand.DailyBudget,
			&brand.MonthlyBudget,
			&brand.DailySpend,
			&brand.MonthlySpend,
			&brand.IsActive,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear marca: %w", err)
		}
		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return brands, nil
}

// ResetDailySpend zera o contador diário da marca. Operação independente do
// reset mensal; os jobs de reset decidem quais chamar.
func (r *brandRepository) ResetDailySpend(brandID string) error {
	return r.resetSpend(brandID, map[string]any{"daily_spend": "0.00"})
}

// ResetMonthlySpend zera o contador mensal da marca.
func (r *brandRepository) ResetMonthlySpend(brandID string) error {
	return r.resetSpend(brandID, map[string]any{"monthly_spend": "0.00"})
}

func (r *brandRepository) resetSpend(brandID string, columns map[string]any) error {
	builder := squirrel.
		Update("brands").
		Where(squirrel.Eq{"id": brandID}).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	for column, value := range columns {
		builder = builder.Set(column, value)
	}
	builder = builder.Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP"))

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id string
	if err := r.conn.QueryRow(query, args...).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("marca %s não encontrada para reset", brandID)
		}
		return fmt.Errorf("erro ao resetar gasto da marca: %w", err)
	}

	return nil
}

func scanBrandRow(row *sql.Row) (*domain.Brand, error) {
	brand := &domain.Brand{}

	if err := row.Scan(
		&brand.ID,
		&brand.Name,
		&brand.DailyBudget,
		&brand.MonthlyBudget,
		&brand.DailySpend,
		&brand.MonthlySpend,
		&brand.IsActive,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return brand, nil
}
