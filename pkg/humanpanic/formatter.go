package humanpanic

import (
	"fmt"
	"io"

	"github.com/ColonelBlimp/humanpanic/pkg/metadata"
)

// MissingReportPlaceholder stands in for the report path when the report
// could not be written.
const MissingReportPlaceholder = "<Failed to store file to disk>"

// Formatter writes the user-facing crash message to w. reportPath is empty
// when the report could not be persisted.
type Formatter func(w io.Writer, reportPath string, meta metadata.Metadata) error

// DefaultFormatter writes the standard apology, report location, contact
// details and privacy statement.
func DefaultFormatter(w io.Writer, reportPath string, meta metadata.Metadata) error {
	ew := &errWriter{w: w}
	name := meta.Name()

	if reportPath == "" {
		reportPath = MissingReportPlaceholder
	}

	ew.printf("Well, this is embarrassing.\n\n")
	ew.printf("%s had a problem and crashed. To help us diagnose the problem you can send us a crash report.\n\n", name)
	ew.printf("We have generated a report file at \"%s\". Submit an issue or email with the subject of \"%s Crash Report\" and include the report as an attachment.\n\n", reportPath, name)

	if homepage, ok := meta.Homepage(); ok {
		ew.printf("- Homepage: %s\n", homepage)
	}
	if authors, ok := meta.Authors(); ok {
		ew.printf("- Authors: %s\n", authors)
	}
	if support, ok := meta.Support(); ok {
		ew.printf("\nTo submit the crash report:\n\n%s\n", support)
	}

	ew.printf("\nWe take privacy seriously, and do not perform any automated error collection. In order to improve the software, we rely on people to submit reports.\n\n")
	ew.printf("Thank you kindly!\n")

	return ew.err
}

// errWriter keeps the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
