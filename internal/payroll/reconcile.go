// Package payroll checks that stored payslip totals agree with their line items.
package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tributo/internal/domain"
)

// DefaultTolerance is the largest difference accepted between stored and computed totals.
var DefaultTolerance = decimal.RequireFromString("0.01")

// Totals sums earnings and deductions without rounding. Items of unknown kind are ignored.
func Totals(items []domain.PayrollLineItem) domain.PayrollTotals {
	gross := decimal.Zero
	deductions := decimal.Zero
	for _, it := range items {
		switch {
		case it.Kind.IsEarning():
			gross = gross.Add(it.Amount)
		case it.Kind.IsDeduction():
			deductions = deductions.Add(it.Amount)
		}
	}
	return domain.PayrollTotals{
		Gross:      gross,
		Deductions: deductions,
		Net:        gross.Sub(deductions),
	}
}

// ComputeGrossTotal returns the sum of earnings rounded to whole pesos.
func ComputeGrossTotal(items []domain.PayrollLineItem) int64 {
	return roundPesos(Totals(items).Gross)
}

// ComputeDeductionTotal returns the sum of legal, other and income tax deductions
// rounded to whole pesos.
func ComputeDeductionTotal(items []domain.PayrollLineItem) int64 {
	return roundPesos(Totals(items).Deductions)
}

// ComputeNetTotal returns gross minus deductions rounded to whole pesos.
func ComputeNetTotal(items []domain.PayrollLineItem) int64 {
	return roundPesos(Totals(items).Net)
}

// roundPesos rounds half away from zero.
func roundPesos(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Reconciler compares stored totals with totals computed from line items.
type Reconciler struct {
	tolerance decimal.Decimal
}

// NewReconciler creates a Reconciler. A negative tolerance selects DefaultTolerance.
func NewReconciler(tolerance decimal.Decimal) *Reconciler {
	if tolerance.IsNegative() {
		tolerance = DefaultTolerance
	}
	return &Reconciler{tolerance: tolerance}
}

// ParseTolerance reads a tolerance from configuration, falling back to DefaultTolerance.
func ParseTolerance(s string) (decimal.Decimal, error) {
	if s == "" {
		return DefaultTolerance, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("payroll: invalid tolerance %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("payroll: tolerance must not be negative, got %s", s)
	}
	return d, nil
}

// Tolerance returns the configured tolerance.
func (r *Reconciler) Tolerance() decimal.Decimal {
	return r.tolerance
}

// Validate checks items and compares stored against computed totals.
func (r *Reconciler) Validate(items []domain.PayrollLineItem, stored domain.PayrollTotals) *domain.ReconciliationResult {
	res := &domain.ReconciliationResult{
		Computed:    Totals(items),
		Differences: map[string]decimal.Decimal{},
		Errors:      []string{},
	}

	for i, it := range items {
		if !it.Kind.IsEarning() && !it.Kind.IsDeduction() {
			res.Errors = append(res.Errors, fmt.Sprintf("item %d (%s): unknown kind %q", i, it.Concept, it.Kind))
		}
		if it.Amount.IsNegative() {
			res.Errors = append(res.Errors, fmt.Sprintf("item %d (%s): negative amount %s", i, it.Concept, it.Amount.String()))
		}
	}

	r.compare(res, "gross", stored.Gross, res.Computed.Gross)
	r.compare(res, "deductions", stored.Deductions, res.Computed.Deductions)
	r.compare(res, "net", stored.Net, res.Computed.Net)

	res.IsValid = len(res.Errors) == 0
	return res
}

func (r *Reconciler) compare(res *domain.ReconciliationResult, field string, stored, computed decimal.Decimal) {
	diff := stored.Sub(computed)
	if diff.Abs().LessThanOrEqual(r.tolerance) {
		return
	}
	res.Differences[field] = diff
	res.Errors = append(res.Errors, fmt.Sprintf("%s mismatch (stored %s, computed %s)",
		field, stored.StringFixed(2), computed.StringFixed(2)))
}
