package flexvec

import (
	"fmt"
	"strings"
)

// formatElements renders live elements as "{a, b, c}", the common String()
// representation of all three containers.
func formatElements[T any](elems []T) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, x := range elems {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", x)
	}
	b.WriteByte('}')
	return b.String()
}
