package humanpanic

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// DefaultExitCode matches the status of a process killed by an unrecovered
// panic.
const DefaultExitCode = 2

type options struct {
	formatter  Formatter
	reportDir  string
	out        io.Writer
	color      ColorMode
	dialog     Display
	logger     *zap.Logger
	exitCode   int
	exit       func(int)
	lookupEnv  func(string) (string, bool)
	debugBuild bool
}

func defaultOptions() options {
	return options{
		formatter:  DefaultFormatter,
		out:        os.Stderr,
		color:      ColorAuto,
		logger:     zap.NewNop(),
		exitCode:   DefaultExitCode,
		exit:       os.Exit,
		lookupEnv:  os.LookupEnv,
		debugBuild: debugBuild,
	}
}

// Option configures a Handler.
type Option func(*options)

// WithFormatter replaces the crash message. Capture and persistence are not
// affected.
func WithFormatter(f Formatter) Option {
	return func(o *options) {
		if f != nil {
			o.formatter = f
		}
	}
}

// WithReportDir stores reports in dir instead of the OS temporary directory.
// The directory must already exist.
func WithReportDir(dir string) Option {
	return func(o *options) {
		o.reportDir = dir
	}
}

// WithOutput sets the error stream. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithColor sets the color mode of the crash message.
func WithColor(mode ColorMode) Option {
	return func(o *options) {
		o.color = mode
	}
}

// WithDialog also shows the message through d, e.g. a DialogDisplay.
func WithDialog(d Display) Option {
	return func(o *options) {
		o.dialog = d
	}
}

// WithLogger sets the logger used for internal diagnostics such as a report
// that could not be written.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithExitCode sets the status the process exits with after a handled panic.
func WithExitCode(code int) Option {
	return func(o *options) {
		o.exitCode = code
	}
}

// WithExitFunc replaces os.Exit. If fn returns, the handled panic stays
// recovered and the deferring function returns normally.
func WithExitFunc(fn func(code int)) Option {
	return func(o *options) {
		if fn != nil {
			o.exit = fn
		}
	}
}

func withLookupEnv(fn func(string) (string, bool)) Option {
	return func(o *options) {
		o.lookupEnv = fn
	}
}

func withDebugBuild(debug bool) Option {
	return func(o *options) {
		o.debugBuild = debug
	}
}
