// Package humanpanic replaces Go's developer-oriented panic output with a
// short apology addressed to end users and a TOML crash report they can
// attach to a bug report.
//
// Install a handler once at startup and defer Recover at the top of main and
// of every goroutine that should be covered:
//
//	func main() {
//		humanpanic.Install(metadata.FromBuildInfo().
//			WithAuthors("Jane Doe <jane@example.com>"))
//		defer humanpanic.Recover()
//
//		run()
//	}
//
// When a covered goroutine panics the handler writes the report to
// report-<uuid>.toml in the temporary directory, prints the message to
// standard error in a single write and exits with status 2.
//
// Builds tagged humanpanic_debug, and processes started with GOTRACEBACK set,
// leave panics alone so the runtime prints its usual trace.
package humanpanic
