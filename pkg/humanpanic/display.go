package humanpanic

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrInvalidColorMode is returned by ParseColorMode for unknown values.
var ErrInvalidColorMode = errors.New("invalid color mode")

// ColorMode controls whether the crash message is printed in red.
type ColorMode int

const (
	// ColorAuto colors output when the error stream is a terminal and
	// NO_COLOR is unset.
	ColorAuto ColorMode = iota
	ColorNever
	ColorAlways
)

// ParseColorMode parses "auto", "never" or "always".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "never", "off", "false":
		return ColorNever, nil
	case "always", "on", "true":
		return ColorAlways, nil
	default:
		return ColorAuto, errors.Wrapf(ErrInvalidColorMode, "%q", s)
	}
}

func (m ColorMode) String() string {
	switch m {
	case ColorNever:
		return "never"
	case ColorAlways:
		return "always"
	default:
		return "auto"
	}
}

// colorize wraps message in a red color directive when color is enabled for
// out, and returns it unchanged otherwise.
func colorize(message string, mode ColorMode, out io.Writer, lookupEnv func(string) (string, bool)) string {
	c := color.New(color.FgRed)
	if colorEnabled(mode, out, lookupEnv) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(message)
}

func colorEnabled(mode ColorMode, out io.Writer, lookupEnv func(string) (string, bool)) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if _, ok := lookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Display shows an already formatted crash message to the user, for example
// in a dialog.
type Display interface {
	Display(message string) error
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(message string) error

func (f DisplayFunc) Display(message string) error {
	return f(message)
}

const defaultDialogTitle = "Panic!"

var (
	dialogColor = lipgloss.Color("#E74C3C")

	dialogBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dialogColor).
			Padding(0, 1)

	dialogTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dialogColor)
)

// DialogDisplay draws the message inside a titled box on a terminal. It is
// used in addition to the plain message on standard error.
type DialogDisplay struct {
	// Out receives the dialog. Defaults to os.Stderr.
	Out io.Writer
	// Title defaults to "Panic!".
	Title string
	// Width wraps the message when positive.
	Width int
}

func (d DialogDisplay) Display(message string) error {
	out := d.Out
	if out == nil {
		out = os.Stderr
	}
	title := d.Title
	if title == "" {
		title = defaultDialogTitle
	}

	box := dialogBox
	if d.Width > 0 {
		box = box.Width(d.Width)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		dialogTitle.Render(title),
		"",
		strings.TrimRight(message, "\n"),
	)

	_, err := io.WriteString(out, box.Render(body)+"\n")
	return errors.Wrap(err, "display dialog")
}
