package memutils

import (
	"math"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// CheckedMul multiplies two non-negative integers, returning false if the product overflows T
func CheckedMul[T constraints.Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	product := a * b
	if product/b != a {
		return 0, false
	}

	return product, true
}

// MaxElements returns the largest element count that can be addressed for elements of elemSize bytes
// without overflowing an int. Zero-size elements can always be addressed up to math.MaxInt.
func MaxElements(elemSize int) int {
	if elemSize <= 0 {
		return math.MaxInt
	}

	return math.MaxInt / elemSize
}

// CheckCount returns ErrInvalidSize if count is negative and ErrOutOfMemory if count cannot be addressed
// for elements of elemSize bytes
func CheckCount(count, elemSize int) error {
	if count < 0 {
		return cerrors.Wrapf(ErrInvalidSize, "requested %d elements", count)
	}

	if count > MaxElements(elemSize) {
		return cerrors.Wrapf(ErrOutOfMemory, "requested %d elements of size %d, which exceeds the addressable maximum of %d", count, elemSize, MaxElements(elemSize))
	}

	return nil
}
