// Package f29 recognizes and totals the codes of a Chilean Formulario 29 declaration.
package f29

import "tributo/internal/domain"

// Field is one catalogue code together with the label fragment that identifies
// it on the printed form.
type Field struct {
	Code  string           `json:"code"`
	Label string           `json:"label"`
	Group domain.CodeGroup `json:"group"`

	// labelPattern matches the label as printed, tolerant to accents, abbreviations
	// and spacing differences between PDF producers.
	labelPattern string
}

// Catalogue codes referenced by the fiscal formulas.
const (
	CodeTotalDebits        = "538"
	CodeInvoiceDebits      = "502"
	CodeTaxableBase        = "563"
	CodeExemptSales        = "142"
	CodeElectronicCredit   = "511"
	CodeReceivedInvoices   = "520"
	CodeCarriedRemainder   = "504"
	CodeTotalCredits       = "537"
	CodeNetPPM             = "062"
	CodeSecondCategoryTax  = "048"
	CodeTotalPayableOnTime = "091"
)

// catalogue is scanned in this order; recognition output follows it.
var catalogue = []Field{
	{Code: CodeTotalDebits, Label: "TOTAL DÉBITOS", Group: domain.CodeGroupDebit,
		labelPattern: `TOTAL\s+DEBITOS?`},
	{Code: CodeInvoiceDebits, Label: "DÉBITOS FACTURAS EMITIDAS", Group: domain.CodeGroupDebit,
		labelPattern: `DEBITOS?\s+FACT`},
	{Code: CodeTaxableBase, Label: "BASE IMPONIBLE", Group: domain.CodeGroupSales,
		labelPattern: `BASE\s+IMPONIBLE`},
	{Code: CodeExemptSales, Label: "VENTAS Y/O SERVICIOS EXENTOS", Group: domain.CodeGroupSales,
		labelPattern: `EXENT`},
	{Code: CodeElectronicCredit, Label: "CRÉD. IVA POR DCTOS. ELECTRÓNICOS", Group: domain.CodeGroupCredit,
		labelPattern: `CRED(?:ITO)?\.?\s*(?:FISCAL\s+)?I\.?V\.?A`},
	{Code: CodeReceivedInvoices, Label: "FACTURAS RECIBIDAS DEL GIRO", Group: domain.CodeGroupCredit,
		labelPattern: `FACT(?:URAS|\.)?\s+RECIBIDAS`},
	{Code: CodeCarriedRemainder, Label: "REMANENTE CRÉDITO FISCAL MES ANTERIOR", Group: domain.CodeGroupCredit,
		labelPattern: `REMANENTE`},
	{Code: CodeTotalCredits, Label: "TOTAL CRÉDITOS", Group: domain.CodeGroupCredit,
		labelPattern: `TOTAL\s+CREDITOS?`},
	{Code: CodeNetPPM, Label: "PPM NETO DETERMINADO", Group: domain.CodeGroupPPM,
		labelPattern: `P\.?P\.?M\.?`},
	{Code: CodeSecondCategoryTax, Label: "IMPUESTO ÚNICO SEGUNDA CATEGORÍA", Group: domain.CodeGroupRetention,
		labelPattern: `IMP(?:UESTO|\.)?\s*UNICO`},
	{Code: CodeTotalPayableOnTime, Label: "TOTAL A PAGAR DENTRO DEL PLAZO LEGAL", Group: domain.CodeGroupPayable,
		labelPattern: `TOTAL\s+A\s+PAGAR`},
}

// Catalogue returns a copy of the code catalogue in scan order.
func Catalogue() []Field {
	out := make([]Field, len(catalogue))
	copy(out, catalogue)
	return out
}

// CatalogueSize is the number of registered codes.
func CatalogueSize() int {
	return len(catalogue)
}

// InCatalogue reports whether code is a registered catalogue code.
func InCatalogue(code string) bool {
	for i := range catalogue {
		if catalogue[i].Code == code {
			return true
		}
	}
	return false
}
