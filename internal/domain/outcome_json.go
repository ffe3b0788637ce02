package domain

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON renders the outcome in the public response shape:
// identification fields, one codigoNNN key per code in catalogue order,
// derived totals, confidence and method.
func (o ParseOutcome) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"success":`)
	writeJSON(&buf, o.Success)

	if o.Success && o.Snapshot != nil {
		buf.WriteString(`,"data":{`)
		s := o.Snapshot
		writeField(&buf, "rut", s.TaxpayerID, true)
		writeField(&buf, "periodo", s.Period, false)
		writeField(&buf, "folio", s.FilingNumber, false)
		writeField(&buf, "razonSocial", s.LegalName, false)
		for _, e := range s.Codes.Entries() {
			writeField(&buf, "codigo"+e.Code, e.Value, false)
		}
		writeField(&buf, "totalCreditos", s.Totals.NetCredit, false)
		writeField(&buf, "comprasNetas", s.Totals.NetPurchases, false)
		writeField(&buf, "ivaDeterminado", s.Totals.DeterminedTax, false)
		writeField(&buf, "totalAPagar", s.Totals.TotalPayable, false)
		writeField(&buf, "margenBruto", s.Totals.GrossMargin, false)
		writeField(&buf, "confidence", o.Confidence, false)
		writeField(&buf, "method", string(o.Method), false)
		buf.WriteByte('}')
	}

	if o.Error != "" {
		buf.WriteString(`,"error":`)
		writeJSON(&buf, o.Error)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, v interface{}, first bool) {
	if !first {
		buf.WriteByte(',')
	}
	writeJSON(buf, key)
	buf.WriteByte(':')
	writeJSON(buf, v)
}

// writeJSON encodes scalars only, which cannot fail.
func writeJSON(buf *bytes.Buffer, v interface{}) {
	b, _ := json.Marshal(v)
	buf.Write(b)
}
