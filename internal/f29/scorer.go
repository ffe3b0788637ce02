package f29

// WeightPerCode is the confidence each recognized code contributes.
// Not normalized by catalogue size; a well-formed form reaches 70 or more.
const (
	WeightPerCode = 10
	MaxConfidence = 100
)

// Score returns min(100, codesFound × WeightPerCode).
func Score(codesFound int) int {
	if codesFound <= 0 {
		return 0
	}
	c := codesFound * WeightPerCode
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}
