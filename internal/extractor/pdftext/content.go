package pdftext

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// tjWordGap is the TJ displacement (thousandths of text space) below which a
// kerning adjustment is treated as a word break.
const tjWordGap = -200

type tokenKind int

const (
	tokString tokenKind = iota
	tokNumber
	tokArray
	tokName
	tokOperator
	tokDelimiter
)

type token struct {
	kind  tokenKind
	text  string
	num   float64
	items []token
}

// decodeContent extracts the text shown by a page content stream. Text pieces
// on the same baseline are joined with spaces; baseline changes start a new line.
func decodeContent(data []byte) string {
	s := &scanner{data: data}
	w := &textWriter{}
	var operands []token

	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}
		w.apply(tok.text, operands)
		if tok.text == "ID" {
			s.skipInlineImage()
		}
		operands = operands[:0]
	}
	return cleanLines(w.sb.String())
}

// textWriter tracks the text line matrix baseline to decide separators.
type textWriter struct {
	sb         strings.Builder
	y          float64
	lastY      float64
	hasLast    bool
	pendingSep bool
}

func (w *textWriter) apply(op string, operands []token) {
	switch op {
	case "BT":
		w.y = 0
		w.pendingSep = true
	case "ET":
		w.pendingSep = true
	case "Td", "TD":
		if nums := numbers(operands); len(nums) >= 2 {
			w.y += nums[1]
		}
		w.pendingSep = true
	case "Tm":
		if nums := numbers(operands); len(nums) >= 6 {
			w.y = nums[5]
		}
		w.pendingSep = true
	case "T*":
		w.nextLine()
	case "Tj":
		w.emit(lastString(operands))
	case "'", "\"":
		w.nextLine()
		w.emit(lastString(operands))
	case "TJ":
		w.emitArray(operands)
	}
}

func (w *textWriter) nextLine() {
	w.y--
	w.pendingSep = true
}

func (w *textWriter) emit(s string) {
	if s == "" {
		return
	}
	switch {
	case w.hasLast && w.y != w.lastY:
		w.sb.WriteByte('\n')
	case w.hasLast && w.pendingSep:
		w.sb.WriteByte(' ')
	}
	w.sb.WriteString(s)
	w.lastY = w.y
	w.hasLast = true
	w.pendingSep = false
}

func (w *textWriter) emitArray(operands []token) {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind != tokArray {
			continue
		}
		for _, it := range operands[i].items {
			switch it.kind {
			case tokString:
				w.emit(it.text)
			case tokNumber:
				if it.num <= tjWordGap && w.hasLast {
					w.pendingSep = true
				}
			}
		}
		return
	}
}

func numbers(operands []token) []float64 {
	var out []float64
	for _, t := range operands {
		if t.kind == tokNumber {
			out = append(out, t.num)
		}
	}
	return out
}

func lastString(operands []token) string {
	for i := len(operands) - 1; i >= 0; i-- {
		if operands[i].kind == tokString {
			return operands[i].text
		}
	}
	return ""
}

// cleanLines collapses whitespace inside lines and drops empty lines.
func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

type scanner struct {
	data []byte
	pos  int
}

func isWhitespace(b byte) bool {
	return b == 0 || b == '\t' || b == '\n' || b == '\f' || b == '\r' || b == ' '
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (s *scanner) next() (token, bool) {
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		switch {
		case isWhitespace(b):
			s.pos++
		case b == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		case b == '(':
			s.pos++
			return token{kind: tokString, text: decodeBytes(s.literal())}, true
		case b == '<':
			if s.pos+1 < len(s.data) && s.data[s.pos+1] == '<' {
				s.pos += 2
				return token{kind: tokDelimiter, text: "<<"}, true
			}
			s.pos++
			return token{kind: tokString, text: decodeBytes(s.hex())}, true
		case b == '>':
			s.pos++
			if s.pos < len(s.data) && s.data[s.pos] == '>' {
				s.pos++
			}
			return token{kind: tokDelimiter, text: ">>"}, true
		case b == '[':
			s.pos++
			return s.array(), true
		case b == ']', b == '{', b == '}', b == ')':
			s.pos++
		case b == '/':
			s.pos++
			return token{kind: tokName, text: s.regular()}, true
		default:
			word := s.regular()
			if n, err := strconv.ParseFloat(word, 64); err == nil {
				return token{kind: tokNumber, text: word, num: n}, true
			}
			return token{kind: tokOperator, text: word}, true
		}
	}
	return token{}, false
}

func (s *scanner) regular() string {
	start := s.pos
	for s.pos < len(s.data) && !isWhitespace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

func (s *scanner) array() token {
	arr := token{kind: tokArray}
	for s.pos < len(s.data) {
		for s.pos < len(s.data) && isWhitespace(s.data[s.pos]) {
			s.pos++
		}
		if s.pos < len(s.data) && s.data[s.pos] == ']' {
			s.pos++
			return arr
		}
		tok, ok := s.next()
		if !ok {
			break
		}
		arr.items = append(arr.items, tok)
	}
	return arr
}

// literal reads a parenthesized string; the opening paren is already consumed.
func (s *scanner) literal() []byte {
	var out []byte
	depth := 1
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		s.pos++
		switch b {
		case '(':
			depth++
			out = append(out, b)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, b)
		case '\\':
			if s.pos >= len(s.data) {
				return out
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
						val = val*8 + int(s.data[s.pos]-'0')
						s.pos++
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
		default:
			out = append(out, b)
		}
	}
	return out
}

// hex reads a hex string; the opening angle bracket is already consumed.
func (s *scanner) hex() []byte {
	var out []byte
	var hi byte
	half := false
	for s.pos < len(s.data) {
		b := s.data[s.pos]
		s.pos++
		if b == '>' {
			break
		}
		v, ok := hexValue(b)
		if !ok {
			continue
		}
		if half {
			out = append(out, hi<<4|v)
		} else {
			hi = v
		}
		half = !half
	}
	if half {
		out = append(out, hi<<4)
	}
	return out
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// skipInlineImage skips binary data between ID and EI.
func (s *scanner) skipInlineImage() {
	if s.pos < len(s.data) && isWhitespace(s.data[s.pos]) {
		s.pos++
	}
	for s.pos+1 < len(s.data) {
		if s.data[s.pos] == 'E' && s.data[s.pos+1] == 'I' &&
			(s.pos == 0 || isWhitespace(s.data[s.pos-1])) &&
			(s.pos+2 >= len(s.data) || isWhitespace(s.data[s.pos+2])) {
			s.pos += 2
			return
		}
		s.pos++
	}
	s.pos = len(s.data)
}

// winAnsiHigh maps the 0x80–0x9F range of WinAnsiEncoding; 0xA0–0xFF coincide with Latin-1.
var winAnsiHigh = map[byte]rune{
	0x80: '€', 0x82: '‚', 0x84: '„', 0x85: '…', 0x91: '‘', 0x92: '’',
	0x93: '“', 0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—', 0x99: '™',
}

// decodeBytes converts a string operand to text: UTF-16BE when it carries a BOM,
// WinAnsi otherwise.
func decodeBytes(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		u := make([]uint16, 0, len(raw)/2)
		for i := 2; i+1 < len(raw); i += 2 {
			u = append(u, uint16(raw[i])<<8|uint16(raw[i+1]))
		}
		return string(utf16.Decode(u))
	}
	var sb strings.Builder
	for _, b := range raw {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
			sb.WriteByte(' ')
		case b < 0x20 || b == 0x7F:
		case b < 0x80:
			sb.WriteByte(b)
		case b >= 0xA0:
			sb.WriteRune(rune(b))
		default:
			if r, ok := winAnsiHigh[b]; ok {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}
