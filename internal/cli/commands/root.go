package commands

import (
	"context"
	"errors"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/calumari/jinline/fetch"
	"github.com/calumari/jinline/internal/cli/config"
	"github.com/calumari/jinline/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app carries what the subcommands share. Tests replace the filesystem,
// fetcher constructor and clock.
type app struct {
	v          *viper.Viper
	cfg        *config.Config
	log        *zap.Logger
	fs         afero.Fs
	newFetcher func(fetch.Config, *zap.Logger) (fetch.Fetcher, error)
	now        func() time.Time
}

func newApp() *app {
	return &app{
		v:          viper.New(),
		fs:         afero.NewOsFs(),
		newFetcher: fetch.New,
		now:        time.Now,
	}
}

// reportedError marks an error whose diagnostic was already printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func (a *app) reporter(cmd *cobra.Command) *ui.Reporter {
	return ui.NewReporter(cmd.ErrOrStderr(), a.cfg.NoColor)
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "jinline",
		Short: "Fetch a script page and inline its nested JSON",
		Long: color.CyanString(`jinline - fetch, clean and reshape script JSON

jinline opens a script page in a real browser, reads the JSON shown in its
<pre> block, repairs it and saves it to a file. The first string field named
"script" is then decoded and stored back as a JSON object.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				a.v.SetConfigFile(configFile)
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			if cfg.NoColor {
				color.NoColor = true
			}
			if a.log == nil {
				a.log = ui.NewLogger(os.Stderr, cfg.Verbose)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./jinline.yaml)")
	flags.BoolP("verbose", "v", false, "log every step")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("key", "", "name of the string field to inline (default \"script\")")
	flags.Int("excerpt", 0, "characters of raw text shown on failure (default 300)")
	bind(a.v, rootCmd, map[string]string{
		"verbose":     "verbose",
		"no_color":    "no-color",
		"target_key":  "key",
		"excerpt_len": "excerpt",
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newFetchCommand(a))
	rootCmd.AddCommand(newInlineCommand(a))
	rootCmd.AddCommand(newCleanCommand(a))

	return rootCmd
}

// bind ties config keys to persistent flags; only flags the user set
// override file and environment values.
func bind(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// newVersionCommand creates the version command
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			w := cmd.OutOrStdout()

			titleColor.Fprint(w, "jinline version: ")
			valueColor.Fprintln(w, Version)

			titleColor.Fprint(w, "Git commit: ")
			valueColor.Fprintln(w, GitCommit)

			titleColor.Fprint(w, "Build date: ")
			valueColor.Fprintln(w, BuildDate)

			titleColor.Fprint(w, "Go version: ")
			valueColor.Fprintln(w, runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
