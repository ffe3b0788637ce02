package f29

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// whitespaceFolder maps the space variants PDF producers emit onto plain spaces
// and drops zero-width characters that split labels.
var whitespaceFolder = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u2007", " ", // figure space
	"\u202f", " ", // narrow no-break space
	"\u200b", "", // zero width space
	"\ufeff", "",
	"\r\n", "\n",
	"\r", "\n",
	"\f", "\n",
)

// maxAmountDigits bounds a code amount. Larger runs are not F29 values and
// would overflow the net-from-tax arithmetic.
const maxAmountDigits = 15

// normalizeText decomposes to NFD, drops combining marks (DÉBITO → DEBITO) and
// folds whitespace variants so label patterns see a single canonical form.
func normalizeText(s string) string {
	// A transform chain keeps state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return whitespaceFolder.Replace(folded)
}

// parseAmount strips thousands separators from a numeric run and parses it as a
// non-negative integer. ok is false when the run is empty, contains anything other
// than digits and separators, or has more than maxAmountDigits digits.
func parseAmount(run string) (int64, bool) {
	var n int64
	digits := 0
	for _, r := range run {
		switch {
		case r == '.' || r == ',':
			continue
		case r >= '0' && r <= '9':
			digits++
			if digits > maxAmountDigits {
				return 0, false
			}
			n = n*10 + int64(r-'0')
		default:
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}
	return n, true
}
