// Package safe guards the one narrowing conversion the wire codec needs:
// turning a Go slice length (int, platform-width and possibly 64-bit) into
// the uint32 sequence count PackCount writes on the wire, without silently
// wrapping a value that doesn't fit.
package safe

import (
	"fmt"
	"math"
)

// Uint32 converts n to a uint32, rejecting negative values and values that
// don't fit in 32 bits. It exists for PackCount: a negative or
// pathologically large slice length must fail the pack rather than wrap
// around into a different, smaller count on the wire.
func Uint32(n int) (uint32, error) {
	if n < 0 {
		return 0, fmt.Errorf("value %d out of uint32 range", n)
	}
	if uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", n)
	}
	return uint32(n), nil
}
