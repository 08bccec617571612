package mathutil

import "github.com/holiman/uint256"

const (
	// RoundingErrorPrecision is the scale of the truncation error ratio.
	RoundingErrorPrecision = 1000000
	// MaxRoundingError is the max tolerated truncation error expressed in
	// RoundingErrorPrecision units (0.1%).
	MaxRoundingError = 1000
)

// GetPartialAmount calculates floor(numerator * target / denominator).
// The multiplication and the division are checked separately, so that a
// product exceeding 256 bits fails instead of wrapping.
func GetPartialAmount(numerator, denominator, target *uint256.Int) (*uint256.Int, error) {
	product, err := Mul(numerator, target)
	if err != nil {
		return nil, err
	}
	return Div(product, denominator)
}

// IsRoundingError returns whether the truncation error of
// numerator * target / denominator exceeds MaxRoundingError, ie. 0.1% of
// the exact result.
func IsRoundingError(numerator, denominator, target *uint256.Int) (bool, error) {
	remainder, err := MulMod(target, numerator, denominator)
	if err != nil {
		return false, err
	}
	if remainder.IsZero() {
		return false, nil
	}

	scaledRemainder, err := Mul(remainder, uint256.NewInt(RoundingErrorPrecision))
	if err != nil {
		return false, err
	}
	product, err := Mul(numerator, target)
	if err != nil {
		return false, err
	}
	errorRatio, err := Div(scaledRemainder, product)
	if err != nil {
		return false, err
	}
	return errorRatio.Gt(uint256.NewInt(MaxRoundingError)), nil
}
