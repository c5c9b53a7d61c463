// pkg/metadata/metadata.go
package metadata

// Metadata describes the host program in crash messages and reports.
// Values are immutable; the With* methods return modified copies.
// Optional fields set to an empty string stay absent.
type Metadata struct {
	name     string
	version  string
	authors  string
	homepage string
	support  string
}

// New creates Metadata for the program name and version.
func New(name, version string) Metadata {
	return Metadata{name: name, version: version}
}

// WithAuthors sets the authors line. An empty value is ignored.
func (m Metadata) WithAuthors(authors string) Metadata {
	if authors != "" {
		m.authors = authors
	}
	return m
}

// WithHomepage sets the homepage line. An empty value is ignored.
func (m Metadata) WithHomepage(homepage string) Metadata {
	if homepage != "" {
		m.homepage = homepage
	}
	return m
}

// WithSupport sets the support instructions block. An empty value is ignored.
func (m Metadata) WithSupport(support string) Metadata {
	if support != "" {
		m.support = support
	}
	return m
}

func (m Metadata) Name() string {
	return m.name
}

func (m Metadata) Version() string {
	return m.version
}

// Authors returns the authors and whether they were set.
func (m Metadata) Authors() (string, bool) {
	return m.authors, m.authors != ""
}

// Homepage returns the homepage and whether it was set.
func (m Metadata) Homepage() (string, bool) {
	return m.homepage, m.homepage != ""
}

// Support returns the support instructions and whether they were set.
func (m Metadata) Support() (string, bool) {
	return m.support, m.support != ""
}
