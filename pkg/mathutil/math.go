package mathutil

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow is returned when the result of an operation does not fit
	// into 256 bits.
	ErrOverflow = errors.New("uint256 overflow")
	// ErrUnderflow is returned when subtracting a greater value from a
	// smaller one.
	ErrUnderflow = errors.New("uint256 underflow")
	// ErrDivisionByZero ...
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidNumber is returned when parsing a string that is not a valid
	// non-negative base-10 number fitting 256 bits.
	ErrInvalidNumber = errors.New("invalid uint256 number")
)

// Zero returns a new uint256 set to 0.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Add takes two uint256 numbers and sums them x + y. An error is returned in
// case of overflow, the operands are never modified.
func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// Sub takes two uint256 numbers and subtracts them x - y. An error is
// returned if y is greater than x.
func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, ErrUnderflow
	}
	return z, nil
}

// Mul takes two uint256 numbers and multiplies them x * y. An error is
// returned in case of overflow.
func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// Div takes two uint256 numbers and divides them x / y rounding down.
func Div(x, y *uint256.Int) (*uint256.Int, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	return new(uint256.Int).Div(x, y), nil
}

// MulMod returns (x * y) % m computed with 512-bit intermediate precision,
// thus it never overflows.
func MulMod(x, y, m *uint256.Int) (*uint256.Int, error) {
	if m.IsZero() {
		return nil, ErrDivisionByZero
	}
	return new(uint256.Int).MulMod(x, y, m), nil
}

// Min returns a copy of the smaller between x and y.
func Min(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return x.Clone()
	}
	return y.Clone()
}

// FromString parses a base-10 string into an uint256.
func FromString(s string) (*uint256.Int, error) {
	if len(s) <= 0 {
		return nil, ErrInvalidNumber
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 {
		return nil, ErrInvalidNumber
	}
	z, overflow := uint256.FromBig(b)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// ToString returns the base-10 representation of x.
func ToString(x *uint256.Int) string {
	if x == nil {
		return "0"
	}
	return x.ToBig().String()
}
