// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ColonelBlimp/humanpanic/internal/config"
	"github.com/ColonelBlimp/humanpanic/internal/logging"
	"github.com/ColonelBlimp/humanpanic/pkg/humanpanic"
	"github.com/ColonelBlimp/humanpanic/pkg/metadata"
)

var rootCmd = &cobra.Command{
	Use:   "humanpanic",
	Short: "Human-friendly crash reports for Go programs",
	Long: `humanpanic replaces the runtime's panic dump with a short apology, writes a
TOML crash report users can attach to an issue, and exits.

Use "crash" to see the message a user would get, and "report" to inspect the
reports that were written.`,
	SilenceUsage:      true,
	PersistentPreRunE: installHandler,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().String("report-dir", "", "directory for crash reports (default: OS temp dir)")
	rootCmd.PersistentFlags().StringP("color", "c", "auto", "colorize the crash message: auto, always or never")
	rootCmd.PersistentFlags().Bool("dialog", false, "also draw the crash message in a dialog box")
	rootCmd.PersistentFlags().StringP("formatter", "F", "default", "crash message layout: default or minimal")
	rootCmd.PersistentFlags().Int("exit-code", humanpanic.DefaultExitCode, "exit status after a handled panic")
	rootCmd.PersistentFlags().StringP("log-level", "l", "error", "diagnostic log level: debug, info, warn or error")
}

// bindFlags maps persistent flags onto their config keys. It runs on every
// initialization so a viper.Reset does not lose the bindings.
func bindFlags() {
	viper.BindPFlag("report_dir", rootCmd.PersistentFlags().Lookup("report-dir"))
	viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	viper.BindPFlag("dialog", rootCmd.PersistentFlags().Lookup("dialog"))
	viper.BindPFlag("formatter", rootCmd.PersistentFlags().Lookup("formatter"))
	viper.BindPFlag("exit_code", rootCmd.PersistentFlags().Lookup("exit-code"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	bindFlags()
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}

// installHandler registers the process panic handler from the merged
// configuration before any subcommand runs.
func installHandler(cmd *cobra.Command, _ []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		return err
	}

	meta := metadata.FromBuildInfo().
		WithAuthors(settings.Authors).
		WithHomepage(settings.Homepage).
		WithSupport(settings.Support)

	h := humanpanic.Install(meta, handlerOptions(cmd, settings, logger)...)
	logger.Debug("panic handler ready",
		zap.String("program", h.Metadata().Name()),
		zap.String("mode", h.Mode().String()))
	return nil
}

func handlerOptions(cmd *cobra.Command, settings *config.Settings, logger *zap.Logger) []humanpanic.Option {
	opts := []humanpanic.Option{
		humanpanic.WithReportDir(settings.ReportDir),
		humanpanic.WithColor(settings.ColorMode()),
		humanpanic.WithExitCode(settings.ExitCode),
		humanpanic.WithOutput(cmd.ErrOrStderr()),
		humanpanic.WithLogger(logger),
	}
	if settings.Formatter == "minimal" {
		opts = append(opts, humanpanic.WithFormatter(minimalFormatter))
	}
	if settings.Dialog {
		opts = append(opts, humanpanic.WithDialog(humanpanic.DialogDisplay{Out: cmd.ErrOrStderr()}))
	}
	return opts
}
