package humanpanic

import (
	"fmt"

	"github.com/ColonelBlimp/humanpanic/pkg/report"
)

const (
	unknownCause    = "Unknown"
	unknownLocation = "Panic location unknown."
)

// causeOf reads a panic value as text. Values that are not strings, errors
// or Stringers, and those whose methods panic, give "Unknown".
func causeOf(v any) (cause string) {
	defer func() {
		if recover() != nil {
			cause = unknownCause
		}
	}()

	switch c := v.(type) {
	case string:
		return c
	case error:
		return c.Error()
	case fmt.Stringer:
		return c.String()
	default:
		return unknownCause
	}
}

func explanationOf(stack report.Stack) string {
	file, line, ok := stack.PanicSite()
	if !ok {
		return unknownLocation
	}
	return fmt.Sprintf("Panic occurred in file '%s' at line %d", file, line)
}
