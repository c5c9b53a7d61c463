// pkg/humanpanic/hook.go
package humanpanic

import (
	"bytes"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ColonelBlimp/humanpanic/pkg/metadata"
	"github.com/ColonelBlimp/humanpanic/pkg/report"
)

var (
	installOnce sync.Once
	installed   atomic.Pointer[Handler]
)

// Handler turns recovered panics into a crash report and a message for the
// user. Its configuration is fixed at construction, so one Handler may serve
// any number of goroutines concurrently.
type Handler struct {
	meta metadata.Metadata
	opts options
}

// New creates a Handler without registering it as the process handler.
func New(meta metadata.Metadata, opts ...Option) *Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Handler{meta: meta, opts: o}
}

// Install registers the process handler used by Recover and Go. Only the
// first call has an effect; later calls return the installed Handler and
// ignore their arguments.
func Install(meta metadata.Metadata, opts ...Option) *Handler {
	first := false
	installOnce.Do(func() {
		installed.Store(New(meta, opts...))
		first = true
	})

	h := installed.Load()
	if !first {
		h.opts.logger.Warn("panic handler already installed, ignoring repeated Install",
			zap.String("program", h.meta.Name()))
	}
	return h
}

// Installed returns the process handler, or nil before Install.
func Installed() *Handler {
	return installed.Load()
}

// Recover should be deferred at the top of main() and of goroutines. It hands
// a panic to the installed Handler. Without an installed Handler, or in debug
// mode, the panic continues unchanged.
func Recover() {
	h := installed.Load()
	if h == nil || h.Mode() == ModeDebug {
		return
	}
	if r := recover(); r != nil {
		h.handle(r, nil, 1)
	}
}

// Go runs fn in a new goroutine covered by the installed Handler.
func Go(fn func()) {
	go func() {
		defer Recover()
		fn()
	}()
}

// Mode evaluates the presentation policy. It is computed on every call.
func (h *Handler) Mode() Mode {
	return selectMode(h.opts.debugBuild, h.opts.lookupEnv)
}

// Metadata returns the program description the Handler was built with.
func (h *Handler) Metadata() metadata.Metadata {
	return h.meta
}

// Recover is the deferrable form of the Handler. In debug mode it does not
// recover, so the runtime prints its usual panic output.
func (h *Handler) Recover() {
	if h.Mode() == ModeDebug {
		return
	}
	if r := recover(); r != nil {
		h.handle(r, nil, 1)
	}
}

// RecoverFunc is like Recover and calls cleanup after the message is written
// and before the process exits.
func (h *Handler) RecoverFunc(cleanup func()) {
	if h.Mode() == ModeDebug {
		return
	}
	if r := recover(); r != nil {
		h.handle(r, cleanup, 1)
	}
}

// Go runs fn in a new goroutine covered by h.
func (h *Handler) Go(fn func()) {
	go func() {
		defer h.Recover()
		fn()
	}()
}

// Handle reports an already recovered panic value and exits. The backtrace
// starts at the caller of Handle.
//
//go:noinline
func (h *Handler) Handle(r any) {
	h.handle(r, nil, 2)
}

// handle captures the stack starting skip frames above itself.
func (h *Handler) handle(r any, cleanup func(), skip int) {
	stack := report.CaptureStack(skip)
	rep := report.NewFromStack(
		h.meta.Name(),
		h.meta.Version(),
		report.Panic,
		explanationOf(stack),
		causeOf(r),
		stack,
	)

	// Everything for this occurrence goes out in one write so concurrent
	// crashes do not interleave.
	var out bytes.Buffer

	path, err := rep.PersistTo(h.opts.reportDir)
	if err != nil {
		h.opts.logger.Warn("failed to persist crash report", zap.Error(err))
		path = ""

		if serialized, serr := rep.Serialize(); serr == nil {
			out.WriteString(serialized)
			out.WriteString("\n")
		}
	} else {
		h.opts.logger.Debug("crash report persisted", zap.String("path", path))
	}

	var msg bytes.Buffer
	if err := h.opts.formatter(&msg, path, h.meta); err != nil {
		panic(errors.Wrap(err, "humanpanic: rendering crash message"))
	}

	out.WriteString(colorize(msg.String(), h.opts.color, h.opts.out, h.opts.lookupEnv))
	if _, err := h.opts.out.Write(out.Bytes()); err != nil {
		h.opts.logger.Error("failed to write crash message", zap.Error(err))
	}

	if h.opts.dialog != nil {
		if err := h.opts.dialog.Display(msg.String()); err != nil {
			h.opts.logger.Error("failed to display crash dialog", zap.Error(err))
		}
	}

	if cleanup != nil {
		cleanup()
	}

	h.opts.exit(h.opts.exitCode)
}
