package f29_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tributo/internal/domain"
	"tributo/internal/f29"
)

func codes(values map[string]int64) domain.CodeMap {
	var m domain.CodeMap
	for _, f := range f29.Catalogue() {
		m.Set(domain.CodeEntry{Code: f.Code, Label: f.Label, Value: values[f.Code]})
	}
	return m
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]int64
		want   domain.DerivedTotals
	}{
		{
			name: "declared totals take precedence",
			values: map[string]int64{
				"538": 1000000, "563": 5263157, "511": 400000, "504": 20000,
				"537": 420000, "062": 15000, "048": 30000, "091": 645000,
			},
			want: domain.DerivedTotals{
				NetCredit:     420000,
				NetPurchases:  2105263,
				DeterminedTax: 600000,
				TotalPayable:  645000,
				GrossMargin:   3157894,
			},
		},
		{
			name: "derived when totals missing",
			values: map[string]int64{
				"538": 1000000, "511": 400000, "504": 20000, "062": 15000, "048": 30000,
			},
			want: domain.DerivedTotals{
				NetCredit:     420000,
				NetPurchases:  2105263,
				DeterminedTax: 600000,
				TotalPayable:  645000,
				GrossMargin:   3157894,
			},
		},
		{
			name:   "credit exceeding debit floors determined tax at zero",
			values: map[string]int64{"538": 100000, "511": 250000},
			want: domain.DerivedTotals{
				NetCredit:     250000,
				NetPurchases:  1315789,
				DeterminedTax: 0,
				TotalPayable:  0,
				GrossMargin:   526315 - 1315789,
			},
		},
		{
			name:   "all zero",
			values: nil,
			want:   domain.DerivedTotals{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f29.ComputeTotals(codes(tt.values)))
		})
	}
}

func TestComputeTotals_MissingEntriesReadAsZero(t *testing.T) {
	m := domain.NewCodeMap(domain.CodeEntry{Code: "538", Value: 19})
	got := f29.ComputeTotals(m)

	assert.Equal(t, int64(19), got.DeterminedTax)
	assert.Equal(t, int64(19), got.TotalPayable)
	assert.Equal(t, int64(100), got.GrossMargin)
}

func TestComputeTotals_LargeCreditStaysPositive(t *testing.T) {
	tests := []struct {
		tax  int64
		want int64
	}{
		{999999999999999, 5263157894736836},
		{922337203685477580, 4854406335186724105},
	}
	for _, tt := range tests {
		got := f29.ComputeTotals(codes(map[string]int64{"511": tt.tax}))
		assert.Equal(t, tt.want, got.NetPurchases, "tax=%d", tt.tax)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		found int
		want  int
	}{
		{0, 0}, {-1, 0}, {1, 10}, {5, 50}, {7, 70}, {10, 100}, {11, 100}, {40, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f29.Score(tt.found), "found=%d", tt.found)
	}
}

func TestScore_Monotonic(t *testing.T) {
	prev := f29.Score(0)
	for n := 1; n <= f29.CatalogueSize()+5; n++ {
		cur := f29.Score(n)
		assert.GreaterOrEqual(t, cur, prev)
		assert.LessOrEqual(t, cur, f29.MaxConfidence)
		prev = cur
	}
}
