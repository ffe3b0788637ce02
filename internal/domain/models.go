package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NotAvailable is the value of identification fields the recognizer could not find.
const NotAvailable = "No disponible"

// TaxDocument is an uploaded declaration. It lives for a single request.
type TaxDocument struct {
	RawBytes  []byte
	MediaType string
	Size      int64
	FileName  string
}

// ExtractedText is the flat text of a document, pages concatenated in physical order.
type ExtractedText struct {
	Text   string
	Pages  int
	Method ExtractionMethod
}

// DocumentProfile describes what a PDF contains, used to pick an extraction strategy.
type DocumentProfile struct {
	Pages        int  `json:"pages"`
	HasTextLayer bool `json:"has_text_layer"`
	HasImages    bool `json:"has_images"`
}

// CodeEntry is one declared quantity of the form.
type CodeEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// CodeMap holds code entries keyed by code, preserving insertion order.
type CodeMap struct {
	order   []string
	entries map[string]CodeEntry
}

// NewCodeMap builds a CodeMap from entries in the given order.
func NewCodeMap(entries ...CodeEntry) CodeMap {
	var m CodeMap
	for _, e := range entries {
		m.Set(e)
	}
	return m
}

// Set inserts or replaces an entry. Replacing keeps the original position.
func (m *CodeMap) Set(e CodeEntry) {
	if m.entries == nil {
		m.entries = make(map[string]CodeEntry)
	}
	if _, ok := m.entries[e.Code]; !ok {
		m.order = append(m.order, e.Code)
	}
	m.entries[e.Code] = e
}

// Get returns the entry for code.
func (m CodeMap) Get(code string) (CodeEntry, bool) {
	e, ok := m.entries[code]
	return e, ok
}

// Value returns the value for code, or 0 when absent.
func (m CodeMap) Value(code string) int64 {
	return m.entries[code].Value
}

// Len returns the number of entries.
func (m CodeMap) Len() int {
	return len(m.order)
}

// Codes returns the codes in insertion order.
func (m CodeMap) Codes() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Entries returns the entries in insertion order.
func (m CodeMap) Entries() []CodeEntry {
	out := make([]CodeEntry, 0, len(m.order))
	for _, c := range m.order {
		out = append(out, m.entries[c])
	}
	return out
}

// Values returns a code→value map, used for archiving.
func (m CodeMap) Values() map[string]int64 {
	out := make(map[string]int64, len(m.order))
	for _, c := range m.order {
		out[c] = m.entries[c].Value
	}
	return out
}

// DerivedTotals are computed once from code values and never mutated afterwards.
type DerivedTotals struct {
	NetCredit     int64 `json:"totalCreditos"`
	NetPurchases  int64 `json:"comprasNetas"`
	DeterminedTax int64 `json:"ivaDeterminado"`
	TotalPayable  int64 `json:"totalAPagar"`
	GrossMargin   int64 `json:"margenBruto"`
}

// FiscalSnapshot is the structured result of parsing one declaration.
type FiscalSnapshot struct {
	TaxpayerID   string
	Period       string
	FilingNumber string
	LegalName    string
	Codes        CodeMap
	Totals       DerivedTotals
}

// ParseOutcome is the result of one pipeline run. State is internal and not serialized.
type ParseOutcome struct {
	Success    bool
	Snapshot   *FiscalSnapshot
	Confidence int
	Method     ExtractionMethod
	Error      string
	State      PipelineState
}

// Declaration is an archived snapshot.
type Declaration struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	TaxpayerID    string            `db:"taxpayer_id" json:"rut"`
	Period        string            `db:"period" json:"periodo"`
	FilingNumber  string            `db:"filing_number" json:"folio"`
	LegalName     string            `db:"legal_name" json:"razon_social"`
	Codes         json.RawMessage   `db:"codes" json:"codes"`
	NetCredit     int64             `db:"net_credit" json:"total_creditos"`
	NetPurchases  int64             `db:"net_purchases" json:"compras_netas"`
	DeterminedTax int64             `db:"determined_tax" json:"iva_determinado"`
	TotalPayable  int64             `db:"total_payable" json:"total_a_pagar"`
	GrossMargin   int64             `db:"gross_margin" json:"margen_bruto"`
	Confidence    int               `db:"confidence" json:"confidence"`
	Method        string            `db:"method" json:"method"`
	OriginalName  string            `db:"original_name" json:"original_name"`
	FileSize      int64             `db:"file_size" json:"file_size"`
	S3Bucket      string            `db:"s3_bucket" json:"-"`
	S3Key         string            `db:"s3_key" json:"-"`
	Status        DeclarationStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updated_at"`
}

// CodeValues decodes the archived codes column.
func (d *Declaration) CodeValues() (map[string]int64, error) {
	out := map[string]int64{}
	if len(d.Codes) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(d.Codes, &out); err != nil {
		return nil, err
	}
	return out, nil
}
