// cmd/report.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/humanpanic/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect crash reports",
}

var reportShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a crash report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportShow,
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List crash reports, newest first",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

func init() {
	reportListCmd.Flags().StringP("dir", "d", "", "directory to scan (default: report_dir or OS temp dir)")
	reportCmd.AddCommand(reportShowCmd, reportListCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportShow(cmd *cobra.Command, args []string) error {
	r, err := report.Load(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Program:     %s %s\n", r.Name, r.CrateVersion)
	fmt.Fprintf(out, "OS:          %s\n", r.OperatingSystem)
	fmt.Fprintf(out, "Method:      %s\n", r.Method)
	fmt.Fprintf(out, "Cause:       %s\n", r.Cause)
	fmt.Fprintf(out, "Explanation: %s\n", r.Explanation)
	if r.Backtrace != "" {
		fmt.Fprintf(out, "\nBacktrace:\n%s", r.Backtrace)
	}
	return nil
}

type reportFile struct {
	path    string
	size    int64
	modTime time.Time
}

func runReportList(cmd *cobra.Command, _ []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = viper.GetString("report_dir")
	}
	if dir == "" {
		dir = os.TempDir()
	}

	files, err := findReports(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintf(out, "no crash reports in %s\n", dir)
		return nil
	}
	for _, f := range files {
		fmt.Fprintf(out, "%-60s %10s  %s\n", f.path, humanize.Bytes(uint64(f.size)), humanize.Time(f.modTime))
	}
	return nil
}

// findReports returns the report files in dir sorted newest first.
func findReports(dir string) ([]reportFile, error) {
	matches, err := filepath.Glob(filepath.Join(dir, report.FilePattern))
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", dir)
	}

	files := make([]reportFile, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			// Removed between glob and stat.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, reportFile{path: m, size: info.Size(), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].path < files[j].path
		}
		return files[i].modTime.After(files[j].modTime)
	})
	return files, nil
}
