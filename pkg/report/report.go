// Package report builds, serializes and persists the structured record of a
// single crash.
//
// A Report is created inside the panic handler, written to a uniquely named
// TOML file in the temporary directory and then dropped. The file is meant to
// be attached to a bug report, so its field order and names are stable:
//
//	name = 'app'
//	operating_system = 'Linux 6.8.0 (Ubuntu 24.04 LTS) [amd64]'
//	crate_version = '1.0.0'
//	explanation = """
//	Panic occurred in file 'main.go' at line 12"""
//	cause = 'boom'
//	method = 'Panic'
//	backtrace = """
//	   0: 0x0000000000491f2a - main.main
//	              at /src/app/main.go:12
//	"""
package report

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/ColonelBlimp/humanpanic/internal/hostinfo"
)

const (
	filePrefix = "report-"
	// FileExt is the extension of persisted reports.
	FileExt = ".toml"
	// FilePattern matches persisted report file names.
	FilePattern = filePrefix + "*" + FileExt

	fileMode = 0o600

	invalidUTF8Replacement = "\uFFFD"
)

// ErrEmptyReport is returned by Parse when the input holds no report name.
var ErrEmptyReport = errors.New("report has no name")

// Report contains what is known about one crash: the program, the operating
// system, where and why it failed, and the call stack.
type Report struct {
	Name            string `toml:"name"`
	OperatingSystem string `toml:"operating_system"`
	CrateVersion    string `toml:"crate_version"`
	Explanation     string `toml:"explanation,multiline"`
	Cause           string `toml:"cause"`
	Method          Method `toml:"method"`
	Backtrace       string `toml:"backtrace,multiline"`
}

// New creates a Report and captures the operating system description and the
// current call stack immediately, while the failing goroutine is still live.
func New(name, version string, method Method, explanation, cause string) *Report {
	return NewFromStack(name, version, method, explanation, cause, CaptureStack(1))
}

// NewFromStack creates a Report using an already captured stack.
func NewFromStack(name, version string, method Method, explanation, cause string, stack Stack) *Report {
	r := &Report{
		Name:            name,
		OperatingSystem: hostinfo.Describe(),
		CrateVersion:    version,
		Explanation:     explanation,
		Cause:           cause,
		Method:          method,
		Backtrace:       stack.Render(),
	}
	return r.sanitized()
}

// sanitized returns a copy whose text fields are valid UTF-8. Panic values
// and file paths are arbitrary bytes, and TOML only holds UTF-8.
func (r *Report) sanitized() *Report {
	c := *r
	for _, f := range []*string{&c.Name, &c.OperatingSystem, &c.CrateVersion, &c.Explanation, &c.Cause, &c.Backtrace} {
		*f = strings.ToValidUTF8(*f, invalidUTF8Replacement)
	}
	return &c
}

// Serialize renders the report as TOML. Every field is a plain string or a
// text-marshaled enum, so an error here indicates a broken invariant.
func (r *Report) Serialize() (string, error) {
	b, err := toml.Marshal(r.sanitized())
	if err != nil {
		return "", errors.Wrap(err, "serialize report")
	}
	return string(b), nil
}

// Persist writes the report to a new file in the OS temporary directory.
func (r *Report) Persist() (string, error) {
	return r.PersistTo("")
}

// PersistTo writes the report to dir/report-<uuid>.toml and returns the file
// path. An empty dir means the OS temporary directory. The directory is not
// created; a missing or read-only directory yields an error wrapping the
// underlying *fs.PathError.
func (r *Report) PersistTo(dir string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	data, err := r.Serialize()
	if err != nil {
		panic(errors.Wrap(err, "report fields must be toml-compatible"))
	}

	path := filepath.Join(dir, filePrefix+uuid.NewString()+FileExt)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		return "", errors.Wrap(err, "create report file")
	}

	if _, err := f.WriteString(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", errors.Wrapf(err, "write report %s", path)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", errors.Wrapf(err, "close report %s", path)
	}

	return path, nil
}

// Parse decodes a serialized report.
func Parse(data []byte) (*Report, error) {
	var r Report
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "parse report")
	}
	if r.Name == "" {
		return nil, ErrEmptyReport
	}
	return &r, nil
}

// Load reads and decodes a persisted report file.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read report")
	}

	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return r, nil
}
