package report

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrUnknownMethod is returned when decoding an unrecognized Method.
var ErrUnknownMethod = errors.New("unknown failure method")

// Method is how the failure reached the handler.
type Method int

const (
	// Panic is a recovered Go panic.
	Panic Method = iota
)

var methodNames = map[Method]string{
	Panic: "Panic",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "Method(" + strconv.Itoa(int(m)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	name, ok := methodNames[m]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownMethod, "%d", int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	for method, name := range methodNames {
		if name == string(text) {
			*m = method
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownMethod, "%q", text)
}
