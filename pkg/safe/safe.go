// Package safe provides integer conversions and sums that fail instead of wrapping.
package safe

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// Signed lists the signed integer types accepted by Uint64.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned lists the unsigned integer types accepted by Int64.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint64 converts a signed integer to uint64, rejecting negatives.
func Uint64[T Signed](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrOverflow, v)
	}
	return uint64(v), nil
}

// Int64 converts an unsigned integer to int64, rejecting values above math.MaxInt64.
func Int64[T Unsigned](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d exceeds int64", ErrOverflow, v)
	}
	return int64(v), nil
}

// Sum adds values, failing when the total exceeds uint64.
func Sum(values ...uint64) (uint64, error) {
	var total uint64
	for _, v := range values {
		var carry uint64
		total, carry = bits.Add64(total, v, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: sum exceeds uint64", ErrOverflow)
		}
	}
	return total, nil
}
