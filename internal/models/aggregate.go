package models

import "github.com/shopspring/decimal"

// MonthlyAggregate summarizes one calendar month of transactions.
// Income and Expenses are non-negative; Net = Income - Expenses.
type MonthlyAggregate struct {
	Month    string          `json:"month" yaml:"month"`
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Expenses decimal.Decimal `json:"expenses" yaml:"expenses"`
	Net      decimal.Decimal `json:"net" yaml:"net"`
}

// ForecastPoint is a projected month. It is never persisted as a Transaction.
type ForecastPoint struct {
	Month        string          `json:"month" yaml:"month"`
	Income       decimal.Decimal `json:"income" yaml:"income"`
	Expenses     decimal.Decimal `json:"expenses" yaml:"expenses"`
	Net          decimal.Decimal `json:"net" yaml:"net"`
	IsProjection bool            `json:"is_projection" yaml:"is_projection"`
}

// CategoryTotal is one line of a category breakdown: the summed expense
// magnitude of a category.
type CategoryTotal struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// Budgets maps category names to monthly spending limits.
type Budgets map[string]decimal.Decimal
