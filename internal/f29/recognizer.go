package f29

import (
	"regexp"
	"strings"

	"tributo/internal/domain"
)

// Recognition is the raw output of a recognition pass: identification fields
// plus one entry per catalogue code, in catalogue order.
type Recognition struct {
	TaxpayerID   string
	Period       string
	FilingNumber string
	LegalName    string
	Codes        domain.CodeMap
}

// Found counts catalogue codes recognized with a non-default value.
func (r Recognition) Found() int {
	n := 0
	for _, e := range r.Codes.Entries() {
		if e.Value > 0 && InCatalogue(e.Code) {
			n++
		}
	}
	return n
}

type codePattern struct {
	field Field
	re    *regexp.Regexp
}

// Identification patterns. Each captures the value in group 1; the first match
// in document order wins.
var (
	rutRe    = regexp.MustCompile(`(?i)\bR\.?U\.?T\.?(?:\s+CONTRIBUYENTE)?\D{0,20}?(\d{1,2}\.?\d{3}\.?\d{3}(?:\s?-\s?[\dK]|[\dK])?)\b`)
	periodRe = regexp.MustCompile(`(?i)PERIODO(?:\s+TRIBUTARIO)?\D{0,20}?(\d{4}(?:0[1-9]|1[0-2]))(?:\D|$)`)
	folioRe  = regexp.MustCompile(`(?i)\bFOLIO(?:\s*N[°ºO]\.?)?\D{0,10}?(\d+)`)
	nameRe   = regexp.MustCompile(`(?i)RAZON\s+SOCIAL[ \t]*:?\s*(\p{L}[\p{L} .&'-]*)`)
)

// numericRun matches dot-or-comma grouped thousands, or a plain digit run.
const numericRun = `(\d{1,3}(?:[.,]\d{3})+|\d+)`

// labelAhead matches a label starting right after a run, which marks the run
// as the next code's identifier rather than an amount.
var labelAhead = regexp.MustCompile(`^\s*\p{L}`)

// Recognizer scans document text against the code catalogue. Patterns are
// compiled once; a Recognizer is safe for concurrent use.
type Recognizer struct {
	codes []codePattern
}

// NewRecognizer compiles the catalogue into recognition patterns.
func NewRecognizer() *Recognizer {
	codes := make([]codePattern, 0, len(catalogue))
	for _, f := range catalogue {
		codes = append(codes, codePattern{field: f, re: compileCodePattern(f)})
	}
	return &Recognizer{codes: codes}
}

// compileCodePattern builds code → label → amount. The code must stand alone,
// not as part of a grouped number such as 1.538.000.
func compileCodePattern(f Field) *regexp.Regexp {
	return regexp.MustCompile(
		`(?i)(?:^|[^\d.,])` + regexp.QuoteMeta(f.Code) + `(?:[^\d.,]|$)` +
			`\D{0,80}?` + f.labelPattern +
			`\D{0,60}?` + numericRun,
	)
}

// Recognize extracts identification fields and catalogue codes from text.
// Codes that do not match, or whose amount cannot be parsed, are set to 0.
// Recognize never fails; an empty Recognition is a valid result.
func (r *Recognizer) Recognize(text string) Recognition {
	text = normalizeText(text)

	rec := Recognition{
		TaxpayerID:   firstMatch(rutRe, text, normalizeRUT),
		Period:       firstMatch(periodRe, text, nil),
		FilingNumber: firstMatch(folioRe, text, nil),
		LegalName:    firstMatch(nameRe, text, cleanName),
	}

	for _, cp := range r.codes {
		entry := domain.CodeEntry{Code: cp.field.Code, Label: cp.field.Label}
		if run, ok := amountRun(cp.re, text); ok {
			if v, ok := parseAmount(run); ok {
				entry.Value = v
			}
		}
		rec.Codes.Set(entry)
	}
	return rec
}

// amountRun returns the numeric run captured after a code's label. A run that
// is itself a catalogue code followed by a label belongs to the next line item,
// so the code has no amount.
func amountRun(re *regexp.Regexp, text string) (string, bool) {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}
	run := text[loc[2]:loc[3]]
	if InCatalogue(run) && labelAhead.MatchString(text[loc[3]:]) {
		return "", false
	}
	return run, true
}

func firstMatch(re *regexp.Regexp, text string, clean func(string) string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return domain.NotAvailable
	}
	v := strings.TrimSpace(m[1])
	if clean != nil {
		v = clean(v)
	}
	if v == "" {
		return domain.NotAvailable
	}
	return v
}

// normalizeRUT removes spaces around the check digit and upper-cases K.
func normalizeRUT(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

func cleanName(s string) string {
	return strings.Trim(strings.Join(strings.Fields(s), " "), " -")
}
