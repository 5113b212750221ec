package ad

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/born-ml/dualad/internal/dual"
)

// Agree reports whether a and b have the same length and are elementwise
// equal within tol, absolutely or relatively. NaN agrees only with NaN and
// an infinity only with the same infinity, so a domain error reached by both
// sides counts as agreement.
func Agree[T dual.Float](a, b []T, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		if x == y || (math.IsNaN(x) && math.IsNaN(y)) {
			continue
		}
		if !scalar.EqualWithinAbsOrRel(x, y, tol, tol) {
			return false
		}
	}
	return true
}
