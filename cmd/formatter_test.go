package cmd

import (
	"bytes"
	"testing"

	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
	"github.com/ColonelBlimp/humanpanic/pkg/metadata"
)

func TestMinimalFormatter(t *testing.T) {
	meta := metadata.New("demo", "0.4.0")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"persisted", "/tmp/report-1.toml", "demo 0.4.0 crashed. Crash report: /tmp/report-1.toml\n"},
		{"missing", "", "demo 0.4.0 crashed. Crash report: " + humanpanic.MissingReportPlaceholder + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := minimalFormatter(&buf, tt.path, meta); err != nil {
				t.Fatalf("minimalFormatter() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("minimalFormatter() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
