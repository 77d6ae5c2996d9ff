// Dockit-offert builds electrician quotes against the Dockit quote API.
//
// Running without arguments opens the interactive quote form. Subcommands
// cover the same operations for scripts: health, validate, draft, save, get
// and list, plus export and printing of saved quotes.
//
// Usage:
//
//	dockit-offert [command] [flags]
//
// See 'dockit-offert --help' for available commands.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dockit/offert/internal/config"
	"github.com/dockit/offert/internal/logging"
	"github.com/dockit/offert/internal/printview"
	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/quoteapi"
	"github.com/dockit/offert/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the global flags and the resolved configuration.
type app struct {
	apiBase string
	apiKey  string
	timeout time.Duration
	cfgPath string
	demo    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "dockit-offert",
		Short: "Dockit electrician quotes with ROT-avdrag",
		Long: `Build, price and save electrician quotes against the Dockit quote API.

Without a subcommand the interactive quote form opens. Settings are read from
config.yaml, then .env and DOCKIT_* environment variables, then flags.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: a.runForm,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("dockit-offert {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.apiBase, "api", "", "Quote API base URL (overrides DOCKIT_API_BASE)")
	pf.StringVar(&a.apiKey, "api-key", "", "API key sent as "+quoteapi.APIKeyHeader)
	pf.DurationVar(&a.timeout, "timeout", 0, "Per-request timeout, e.g. 10s")
	pf.StringVar(&a.cfgPath, "config", "", "Config file (default: platform config dir)")
	pf.BoolVar(&a.demo, "demo", false, "Start from the sample quote instead of an empty form")

	root.AddCommand(
		a.healthCmd(),
		a.validateCmd(),
		a.draftCmd(),
		a.saveCmd(),
		a.getCmd(),
		a.listCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root
}

// setup resolves configuration and starts logging. The form gets a log file
// so that log lines do not paint over the screen.
func (a *app) setup(cmd *cobra.Command) error {
	// .env may carry DOCKIT_LOG_LEVEL and DOCKIT_LOG_FILE.
	if err := config.LoadDotEnv(""); err != nil {
		return err
	}

	var err error
	if cmd.Parent() == nil {
		err = logging.InitializeForTUI(filepath.Join(os.TempDir(), "dockit-offert.log"))
	} else {
		err = logging.InitializeFromEnv()
	}
	if err != nil {
		return err
	}

	cfg, err := config.Resolve(a.cfgPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api") {
		cfg.API.BaseURL = a.apiBase
	}
	if flags.Changed("api-key") {
		cfg.API.APIKey = a.apiKey
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = a.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	return nil
}

func (a *app) client() *quoteapi.Client {
	c := quoteapi.NewClient(a.cfg.API.BaseURL)
	c.SetTimeout(a.cfg.API.Timeout)
	c.SetAPIKey(a.cfg.API.APIKey)
	return c
}

func (a *app) printer() *printview.Printer {
	return &printview.Printer{Dir: a.cfg.ExportDir(), Command: a.cfg.Export.PrintCommand}
}

func (a *app) company() printview.Company {
	return printview.Company{Name: a.cfg.Company.Name, Footer: a.cfg.Company.Footer}
}

// form returns the form named by --file, the sample quote with --demo, or
// an empty form.
func (a *app) form(in io.Reader, file string) (*quote.Form, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read quote from stdin: %w", err)
		}
		return quote.ParseFile(data)
	case file != "":
		return quote.LoadFile(file)
	case a.demo:
		return quote.DemoForm(), nil
	default:
		return quote.DefaultForm(), nil
	}
}
