package domain

import "github.com/shopspring/decimal"

// PayrollLineItem is one line of a payslip.
type PayrollLineItem struct {
	Concept string          `json:"concept"`
	Kind    PayrollItemKind `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
}

// PayrollTotals are the gross, deduction and net totals of a payslip.
type PayrollTotals struct {
	Gross      decimal.Decimal `json:"gross"`
	Deductions decimal.Decimal `json:"deductions"`
	Net        decimal.Decimal `json:"net"`
}

// ReconciliationResult reports whether stored payslip totals match their line items.
type ReconciliationResult struct {
	IsValid     bool                       `json:"is_valid"`
	Computed    PayrollTotals              `json:"computed"`
	Differences map[string]decimal.Decimal `json:"differences"`
	Errors      []string                   `json:"errors"`
}
