package handler

import (
	"tributo/internal/domain"
)

// Swagger type definitions for API documentation.

// --- Request Types ---

// ReconcileRequest represents the payroll reconciliation request body.
type ReconcileRequest struct {
	Items  []ReconcileItem   `json:"items"`
	Stored ReconcileTotalsIn `json:"stored"`
}

// ReconcileItem represents one payslip line.
type ReconcileItem struct {
	Concept string                 `json:"concept" example:"Sueldo base"`
	Kind    domain.PayrollItemKind `json:"kind" example:"taxable_earning"`
	Amount  string                 `json:"amount" example:"850000"`
}

// ReconcileTotalsIn represents the totals recorded on a payslip.
type ReconcileTotalsIn struct {
	Gross      string `json:"gross" example:"850000"`
	Deductions string `json:"deductions" example:"89250"`
	Net        string `json:"net" example:"760750"`
}

// --- Response Types ---

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// DownloadURLResponse carries a presigned URL for an archived PDF.
type DownloadURLResponse struct {
	DownloadURL string `json:"download_url" example:"https://s3.amazonaws.com/tributo-declarations/...?X-Amz-Signature=..."`
}

// CatalogueEntry describes one recognized form code.
type CatalogueEntry struct {
	Code  string           `json:"code" example:"538"`
	Label string           `json:"label" example:"TOTAL DÉBITOS"`
	Group domain.CodeGroup `json:"group" example:"debit"`
}

// ParseOutcomeDoc documents the parse endpoint body. On success data also
// carries one codigoNNN key per catalogue code, e.g. "codigo538": 1000000.
type ParseOutcomeDoc struct {
	Success bool          `json:"success" example:"true"`
	Data    *ParseDataDoc `json:"data,omitempty"`
	Error   string        `json:"error,omitempty" example:"NoCodesRecognized"`
}

// ParseDataDoc documents the data object of a successful parse.
type ParseDataDoc struct {
	Rut            string `json:"rut" example:"76.123.456-7"`
	Periodo        string `json:"periodo" example:"202403"`
	Folio          string `json:"folio" example:"987654321"`
	RazonSocial    string `json:"razonSocial" example:"COMERCIAL ANDES LIMITADA"`
	Codigo538      int64  `json:"codigo538" example:"1000000"`
	TotalCreditos  int64  `json:"totalCreditos" example:"420000"`
	ComprasNetas   int64  `json:"comprasNetas" example:"2105263"`
	IvaDeterminado int64  `json:"ivaDeterminado" example:"600000"`
	TotalAPagar    int64  `json:"totalAPagar" example:"645000"`
	MargenBruto    int64  `json:"margenBruto" example:"3157894"`
	Confidence     int    `json:"confidence" example:"100"`
	Method         string `json:"method" example:"pdf-text"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
