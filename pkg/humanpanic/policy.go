package humanpanic

import "os"

// BacktraceEnv forces ModeDebug when present in the environment.
const BacktraceEnv = "GOTRACEBACK"

// Mode selects how a panic is presented.
type Mode int

const (
	// ModeDebug leaves the panic to the Go runtime.
	ModeDebug Mode = iota
	// ModeHuman renders the crash message and persists a report.
	ModeHuman
)

func (m Mode) String() string {
	switch m {
	case ModeDebug:
		return "debug"
	case ModeHuman:
		return "human"
	default:
		return "unknown"
	}
}

// CurrentMode evaluates the presentation policy for this process.
func CurrentMode() Mode {
	return selectMode(debugBuild, os.LookupEnv)
}

func selectMode(debug bool, lookupEnv func(string) (string, bool)) Mode {
	if debug {
		return ModeDebug
	}
	if _, ok := lookupEnv(BacktraceEnv); ok {
		return ModeDebug
	}
	return ModeHuman
}
