package domain

// ExtractionMethod identifies the strategy that produced a document's text.
type ExtractionMethod string

const (
	MethodDirectText ExtractionMethod = "pdf-text"
	MethodOptical    ExtractionMethod = "pdf-ocr"
)

// PipelineState tracks a parse run: Loaded → Extracted → Recognized → ScoredSuccess | Failed.
type PipelineState string

const (
	StateLoaded        PipelineState = "loaded"
	StateExtracted     PipelineState = "extracted"
	StateRecognized    PipelineState = "recognized"
	StateScoredSuccess PipelineState = "scored_success"
	StateFailed        PipelineState = "failed"
)

// DeclarationStatus represents the lifecycle of an archived declaration.
type DeclarationStatus string

const (
	DeclarationStatusActive  DeclarationStatus = "active"
	DeclarationStatusDeleted DeclarationStatus = "deleted"
)

// CodeGroup classifies catalogue codes by the part of the form they belong to.
type CodeGroup string

const (
	CodeGroupDebit     CodeGroup = "debit"
	CodeGroupSales     CodeGroup = "sales"
	CodeGroupCredit    CodeGroup = "credit"
	CodeGroupPPM       CodeGroup = "ppm"
	CodeGroupRetention CodeGroup = "retention"
	CodeGroupPayable   CodeGroup = "payable"
)

// PayrollItemKind classifies a payslip line.
type PayrollItemKind string

const (
	PayrollTaxableEarning    PayrollItemKind = "taxable_earning"
	PayrollNonTaxableEarning PayrollItemKind = "non_taxable_earning"
	PayrollLegalDeduction    PayrollItemKind = "legal_deduction"
	PayrollOtherDeduction    PayrollItemKind = "other_deduction"
	PayrollIncomeTax         PayrollItemKind = "income_tax"
)

// IsEarning reports whether the kind adds to gross pay.
func (k PayrollItemKind) IsEarning() bool {
	return k == PayrollTaxableEarning || k == PayrollNonTaxableEarning
}

// IsDeduction reports whether the kind is subtracted from gross pay.
func (k PayrollItemKind) IsDeduction() bool {
	return k == PayrollLegalDeduction || k == PayrollOtherDeduction || k == PayrollIncomeTax
}

// MediaTypePDF is the only media type the loader accepts.
const MediaTypePDF = "application/pdf"
