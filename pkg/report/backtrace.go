// pkg/report/backtrace.go
package report

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

const (
	// hexWidth fits a pointer-sized address plus its 0x prefix.
	hexWidth = strconv.IntSize/4 + 2
	// nextSymbolPadding aligns continuation lines under the symbol name.
	nextSymbolPadding = hexWidth + 6

	maxStackDepth = 128

	unresolvedSymbol = "<unresolved>"
	unknownSymbol    = "<unknown>"

	panicEntry = "runtime.gopanic"
)

// Symbol is one resolved function at a program counter. Inlined calls give a
// frame several symbols, innermost first.
type Symbol struct {
	Name string
	File string
	Line int
}

// Frame is one program counter of a captured stack together with whatever
// symbols could be resolved for it.
type Frame struct {
	PC      uintptr
	Symbols []Symbol
}

// Stack is a captured call stack, innermost frame first.
type Stack []Frame

type entry struct {
	pc     uintptr
	symbol *Symbol
	name   string
}

// CaptureStack records the stack of the calling goroutine, skipping skip
// frames above the caller of CaptureStack.
func CaptureStack(skip int) Stack {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	pcs = pcs[:n]

	stack := make(Stack, 0, n)
	afterSigpanic := false
	for _, pc := range pcs {
		lookup := pc
		if afterSigpanic {
			// The faulting frame's pc is not a return address; CallersFrames
			// subtracts one, so add it back.
			lookup++
		}

		frame := Frame{PC: pc, Symbols: resolve(lookup)}
		stack = append(stack, frame)

		afterSigpanic = len(frame.Symbols) > 0 &&
			frame.Symbols[len(frame.Symbols)-1].Name == "runtime.sigpanic"
	}
	return stack
}

func resolve(pc uintptr) []Symbol {
	var symbols []Symbol
	frames := runtime.CallersFrames([]uintptr{pc})
	for {
		fr, more := frames.Next()
		if fr.Function != "" || fr.File != "" {
			symbols = append(symbols, Symbol{Name: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}
	return symbols
}

// entries flattens the stack into one entry per symbol, starting at the first
// frame past the runtime's panic machinery when it is present.
func (s Stack) entries() []entry {
	var all []entry
	for _, fr := range s {
		if len(fr.Symbols) == 0 {
			all = append(all, entry{pc: fr.PC, name: unresolvedSymbol})
			continue
		}
		for i := range fr.Symbols {
			sym := &fr.Symbols[i]
			name := sym.Name
			if name == "" {
				name = unknownSymbol
			}
			all = append(all, entry{pc: fr.PC, symbol: sym, name: name})
		}
	}

	start := 0
	for i, e := range all {
		if e.name == panicEntry {
			start = i + 1
			for start < len(all) && strings.HasPrefix(all[start].name, "runtime.") {
				start++
			}
			break
		}
	}
	return all[start:]
}

// Render formats the stack as numbered "<index>: <address> - <symbol>" lines,
// each followed by an indented "at <file>:<line>" line when debug information
// is available.
func (s Stack) Render() string {
	var b strings.Builder
	for i, e := range s.entries() {
		fmt.Fprintf(&b, "%4d: 0x%0*x - %s\n", i, hexWidth-2, e.pc, e.name)
		if e.symbol != nil && e.symbol.File != "" && e.symbol.Line > 0 {
			fmt.Fprintf(&b, "%*sat %s:%d\n", nextSymbolPadding, "", e.symbol.File, e.symbol.Line)
		}
	}
	return b.String()
}

// PanicSite returns the source position of the first visible frame, which is
// the code that panicked when the stack was captured inside a deferred
// recover.
func (s Stack) PanicSite() (file string, line int, ok bool) {
	for _, e := range s.entries() {
		if e.symbol != nil && e.symbol.File != "" && e.symbol.Line > 0 {
			return e.symbol.File, e.symbol.Line, true
		}
	}
	return "", 0, false
}
