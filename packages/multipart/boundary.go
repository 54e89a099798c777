package multipart

import (
	"fmt"
	"math/rand"
)

// boundaryPrefix is the 27-dash prefix browsers traditionally use for
// form boundaries.
const boundaryPrefix = "---------------------------"

// Boundary returns a fresh multipart boundary: the dash prefix plus 16
// uppercase hex digits drawn from two random 32-bit values. The token
// is random enough to avoid colliding with typical payload content; it
// is not checked against the actual body and carries no secrecy.
func Boundary() string {
	r0 := rand.Uint32()
	r1 := rand.Uint32()
	return fmt.Sprintf("%s%08X%08X", boundaryPrefix, r0, r1)
}

// ContentType returns the Content-Type header value announcing the
// given boundary.
func ContentType(boundary string) string {
	return "multipart/form-data; boundary=" + boundary
}
