// Package pdftest builds minimal PDF documents for extraction tests.
package pdftest

import (
	"strconv"
	"strings"
)

// Build writes a one-page PDF with correct xref offsets. When image is
// non-empty the page also carries an image XObject named Im1.
func Build(content, image string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	var objects []string
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
	)
	resources := "<< /Font << /F1 5 0 R >> >>"
	if image != "" {
		resources = "<< /Font << /F1 5 0 R >> /XObject << /Im1 6 0 R >> >>"
	}
	objects = append(objects,
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources "+resources+" >>",
		"<< /Length "+strconv.Itoa(len(content))+" >>\nstream\n"+content+"\nendstream",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	if image != "" {
		objects = append(objects,
			"<< /Type /XObject /Subtype /Image /Width 1 /Height 1 /ColorSpace /DeviceGray /BitsPerComponent 8 /Length "+
				strconv.Itoa(len(image))+" >>\nstream\n"+image+"\nendstream")
	}

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = b.Len()
		b.WriteString(strconv.Itoa(i+1) + " 0 obj\n" + obj + "\nendobj\n")
	}

	xref := b.Len()
	size := strconv.Itoa(len(objects) + 1)
	b.WriteString("xref\n0 " + size + "\n0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		off := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(off)) + off + " 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size " + size + " /Root 1 0 R >>\nstartxref\n" + strconv.Itoa(xref) + "\n%%EOF\n")
	return []byte(b.String())
}

// TextPage renders lines as a Helvetica text block, one Td step per line,
// and wraps it in a single-page PDF. Lines must not contain parentheses.
func TextPage(lines ...string) []byte {
	var b strings.Builder
	b.WriteString("BT /F1 10 Tf 72 760 Td")
	for i, l := range lines {
		if i > 0 {
			b.WriteString(" 0 -14 Td")
		}
		b.WriteString(" (" + l + ") Tj")
	}
	b.WriteString(" ET")
	return Build(b.String(), "")
}
