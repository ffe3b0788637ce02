package f29

import "tributo/internal/domain"

// IVA is charged at 19%; net amounts are recovered as tax × 100 / 19.
const (
	ivaRateNumerator   = 19
	ivaRateDenominator = 100
)

// ComputeTotals derives the secondary totals from recognized code values.
// Missing codes read as 0 and every step truncates to whole pesos, so the
// calculation never fails.
func ComputeTotals(codes domain.CodeMap) domain.DerivedTotals {
	debits := codes.Value(CodeTotalDebits)
	electronicCredit := codes.Value(CodeElectronicCredit)

	netCredit := codes.Value(CodeTotalCredits)
	if netCredit <= 0 {
		netCredit = electronicCredit + codes.Value(CodeCarriedRemainder)
	}

	netPurchases := netFromTax(electronicCredit)

	determined := debits - electronicCredit
	if determined < 0 {
		determined = 0
	}

	payable := codes.Value(CodeTotalPayableOnTime)
	if payable <= 0 {
		payable = determined + codes.Value(CodeNetPPM) + codes.Value(CodeSecondCategoryTax)
	}

	netSales := codes.Value(CodeTaxableBase)
	if netSales <= 0 {
		netSales = netFromTax(debits)
	}

	return domain.DerivedTotals{
		NetCredit:     netCredit,
		NetPurchases:  netPurchases,
		DeterminedTax: determined,
		TotalPayable:  payable,
		GrossMargin:   netSales - netPurchases,
	}
}

// netFromTax returns the net amount whose IVA is tax, truncated. Splitting the
// division keeps the intermediate product within int64 for recognizable amounts.
func netFromTax(tax int64) int64 {
	if tax <= 0 {
		return 0
	}
	q, r := tax/ivaRateNumerator, tax%ivaRateNumerator
	return q*ivaRateDenominator + r*ivaRateDenominator/ivaRateNumerator
}
