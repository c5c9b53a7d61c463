// cmd/formatter.go
package cmd

import (
	"fmt"
	"io"

	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
	"github.com/ColonelBlimp/humanpanic/pkg/metadata"
)

// minimalFormatter is a one-line crash message for terminals where the full
// apology is too noisy.
func minimalFormatter(w io.Writer, reportPath string, meta metadata.Metadata) error {
	if reportPath == "" {
		reportPath = humanpanic.MissingReportPlaceholder
	}
	_, err := fmt.Fprintf(w, "%s %s crashed. Crash report: %s\n", meta.Name(), meta.Version(), reportPath)
	return err
}
