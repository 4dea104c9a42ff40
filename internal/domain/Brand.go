// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand representa uma marca anunciante com limites de orçamento diário e mensal.
// Os contadores de gasto são mantidos exclusivamente pelo caminho de registro de
// gastos e pelos jobs de reset; nunca são recalculados a partir do ledger em leitura.
type Brand struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DailyBudget   decimal.Decimal `json:"daily_budget"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	DailySpend    decimal.Decimal `json:"daily_spend"`
	MonthlySpend  decimal.Decimal `json:"monthly_spend"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsDailyBudgetExceeded verifica se o orçamento diário foi atingido.
// A comparação é inclusiva: gasto exatamente igual ao limite conta como excedido.
func (b *Brand) IsDailyBudgetExceeded() bool {
	return b.DailySpend.GreaterThanOrEqual(b.DailyBudget)
}

// IsMonthlyBudgetExceeded verifica se o orçamento mensal foi atingido.
func (b *Brand) IsMonthlyBudgetExceeded() bool {
	return b.MonthlySpend.GreaterThanOrEqual(b.MonthlyBudget)
}

// RemainingDailyBudget calcula o orçamento diário restante, nunca negativo.
func (b *Brand) RemainingDailyBudget() decimal.Decimal {
	remaining := b.DailyBudget.Sub(b.DailySpend)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RemainingMonthlyBudget calcula o orçamento mensal restante, nunca negativo.
func (b *Brand) RemainingMonthlyBudget() decimal.Decimal {
	remaining := b.MonthlyBudget.Sub(b.MonthlySpend)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
