package dual

import "errors"

// ErrWidthMismatch is returned when a partial derivative vector does not have
// the width of the Multi type it is meant to populate.
var ErrWidthMismatch = errors.New("partial derivative width mismatch")
