package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dockit/offert/internal/config"
	"github.com/dockit/offert/internal/printview"
	"github.com/dockit/offert/internal/quote"
	"github.com/dockit/offert/internal/quoteapi"
	"github.com/dockit/offert/internal/session"
	"github.com/dockit/offert/internal/tui"
	"github.com/dockit/offert/internal/ui"
	"github.com/dockit/offert/internal/version"
)

func (a *app) runForm(cmd *cobra.Command, args []string) error {
	form, err := a.form(cmd.InOrStdin(), "")
	if err != nil {
		return err
	}

	model := tui.New(tui.Options{
		API:     a.client(),
		Form:    form,
		Printer: a.printer(),
		Company: a.company(),
		BaseURL: a.cfg.API.BaseURL,
		Timeout: a.cfg.API.Timeout,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("quote form error: %w", err)
	}
	return nil
}

// apiHints suggests fixes for a failed API call.
func (a *app) apiHints(err error) []string {
	switch {
	case quoteapi.IsNetworkError(err):
		return []string{
			"Kontrollera att API:t kör på " + a.cfg.API.BaseURL,
			"Ange en annan adress med --api eller DOCKIT_API_BASE",
			"Öka --timeout om nätet är långsamt",
		}
	case quoteapi.StatusCode(err) == 401 || quoteapi.StatusCode(err) == 403:
		return []string{"Ange API-nyckeln med --api-key eller DOCKIT_API_KEY"}
	case quoteapi.IsNotFoundError(err):
		return []string{"Lista sparade offerter med 'dockit-offert list'"}
	}
	return nil
}

// failure prints a failure box for err and returns it so cobra exits non-zero.
func (a *app) failure(p *ui.Printer, title string, err error) error {
	var shown error = err
	if errors.As(err, new(*quoteapi.APIError)) {
		shown = errors.New(quoteapi.ShortMessage(err))
	}
	p.PrintError(title, shown, a.apiHints(err))
	return err
}

func (a *app) header(p *ui.Printer, title, command string) {
	p.PrintHeader(title, command, []ui.Detail{{Key: "API", Value: a.cfg.API.BaseURL}})
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the quote API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout())
			ctrl := session.NewController(a.client())

			status, err := ctrl.CheckHealth(cmd.Context())
			if err != nil {
				return a.failure(p, session.HealthFailed, err)
			}
			p.PrintSuccess("API svarar", []ui.Detail{
				{Key: "API", Value: a.cfg.API.BaseURL},
				{Key: "Svar", Value: status},
			})
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a quote file without calling the API",
		Example: `  dockit-offert validate --file offert.yaml
  cat offert.yaml | dockit-offert validate --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout())
			form, err := a.form(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			snap := form.Snapshot()
			if err := quote.Validate(snap); err != nil {
				p.PrintError("Offerten är ofullständig", err, nil)
				return err
			}
			p.PrintSuccess("Offerten är komplett", []ui.Detail{
				{Key: "Kund", Value: snap.CustomerName},
				{Key: "Rader", Value: strconv.Itoa(len(snap.Lines))},
				{Key: "ROT-avdrag", Value: yesNo(snap.ApplyROT)},
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Quote YAML file, - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (a *app) draftCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Price a quote without saving it",
		Example: `  dockit-offert draft --file offert.yaml
  dockit-offert draft --demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout())
			form, err := a.form(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			ctrl := session.NewController(a.client())
			result, err := ctrl.Draft(cmd.Context(), form)
			if err != nil {
				return a.submitFailure(p, "Beräkning", ctrl.State, err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}

			a.header(p, "Utkast", "dockit-offert draft")
			doc := printview.Compose(ctrl.State, form, printview.Options{Company: a.company()})
			p.Println(printview.RenderText(doc, 0))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Quote YAML file, - for stdin (default: empty form, or the sample with --demo)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the priced quote as JSON (amounts as decimal strings)")
	return cmd
}

func (a *app) saveCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "save",
		Short:   "Price and save a quote",
		Example: `  dockit-offert save --file offert.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout())
			form, err := a.form(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			ctrl := session.NewController(a.client())
			saved, err := ctrl.Save(cmd.Context(), form)
			if err != nil {
				return a.submitFailure(p, "Sparande", ctrl.State, err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), saved.AsResult())
			}

			p.PrintSuccess("Offerten är sparad", []ui.Detail{
				{Key: "Offertnr", Value: saved.ID.String()},
				{Key: "Titel", Value: saved.Title},
				{Key: "Att betala", Value: printview.Money(saved.TotalSEK)},
			})
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Quote YAML file, - for stdin (default: empty form, or the sample with --demo)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the saved quote as JSON (amounts as decimal strings)")
	return cmd
}

// submitFailure reports a refused or failed draft/save. Refusals carry the
// validation message in the session state.
func (a *app) submitFailure(p *ui.Printer, what string, st *session.State, err error) error {
	if errors.Is(err, session.ErrNotStarted) {
		msg := errors.New(st.Quote.Err)
		p.PrintError(what+" avbruten", msg, nil)
		return msg
	}
	p.PrintError(what+" misslyckades", errors.New(st.Quote.Err), a.apiHints(err))
	return err
}

func (a *app) getCmd() *cobra.Command {
	var (
		asJSON  bool
		export  string
		doPrint bool
	)
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a saved quote",
		Example: `  dockit-offert get 42
  dockit-offert get 42 --export xlsx
  dockit-offert get 42 --print`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout())

			var format printview.Format
			if export != "" {
				f, err := printview.ParseFormat(export)
				if err != nil {
					return err
				}
				format = f
			}

			ctrl := session.NewController(a.client())
			q, err := ctrl.Lookup(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, session.ErrNotStarted) {
					return errors.New(ctrl.State.Lookup.Err)
				}
				return a.failure(p, session.ErrLookupFailed, err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), q)
			}

			a.header(p, "Offert "+q.ID.String(), "dockit-offert get")
			// No local form: everything printed comes from the saved quote.
			doc := printview.Compose(ctrl.State, quote.File{}.Form(), printview.Options{Company: a.company()})
			p.Println(printview.RenderText(doc, 0))

			return a.output(cmd.Context(), p, doc, format, doPrint)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the quote as returned by the API")
	cmd.Flags().StringVar(&export, "export", "", "Write the quote as pdf or xlsx to the export directory")
	cmd.Flags().BoolVar(&doPrint, "print", false, "Send the quote to the configured print command")
	return cmd
}

func (a *app) output(ctx context.Context, p *ui.Printer, doc *printview.Document, format printview.Format, doPrint bool) error {
	pr := a.printer()
	if format != "" {
		path, err := pr.Export(ctx, doc, format)
		if err != nil {
			p.PrintError("Export misslyckades", err, nil)
			return err
		}
		p.PrintSuccess("Exporterad", []ui.Detail{{Key: "Fil", Value: path}})
	}
	if doPrint {
		res, err := pr.Print(ctx, doc)
		if err != nil {
			p.PrintError("Utskrift misslyckades", err, []string{"Kontrollera export.print_command eller DOCKIT_PRINT_COMMAND"})
			return err
		}
		if !res.Printed {
			p.PrintWarning("Ingen utskriftskommando konfigurerat", []ui.Detail{{Key: "PDF", Value: res.Path}})
			return nil
		}
		p.PrintSuccess("Skickad till skrivaren", []ui.Detail{{Key: "PDF", Value: res.Path}})
	}
	return nil
}

func (a *app) listCmd() *cobra.Command {
	var (
		skip, limit int
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved quotes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout())
			quotes, err := a.client().List(cmd.Context(), skip, limit)
			if err != nil {
				return a.failure(p, "Listning misslyckades", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), quotes)
			}
			if len(quotes) == 0 {
				p.Println("Inga sparade offerter.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(ui.MutedColor)).
				Headers("Nr", "Titel", "Kund", "Att betala").
				StyleFunc(func(row, col int) lipgloss.Style {
					s := lipgloss.NewStyle().Padding(0, 1)
					if row == table.HeaderRow {
						return s.Bold(true).Foreground(ui.PrimaryColor)
					}
					if col == 3 {
						return s.Align(lipgloss.Right)
					}
					return s
				})
			for _, q := range quotes {
				t.Row(q.ID.String(), q.Title, dash(q.CustomerName), printview.Money(q.TotalSEK))
			}
			p.Println(t.Render())
			return nil
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "Number of quotes to skip")
	cmd.Flags().IntVar(&limit, "limit", quoteapi.DefaultListLimit, fmt.Sprintf("Maximum number of quotes (1-%d)", quoteapi.MaxListLimit))
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := ui.NewPrinter(cmd.OutOrStdout())
			path := a.cfgPath
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return err
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), path+" finns redan. Skriv över?") {
					return nil
				}
			}
			if err := config.Default().Save(path); err != nil {
				p.PrintError("Kunde inte skriva konfigurationen", err, nil)
				return err
			}
			p.PrintSuccess("Konfiguration skapad", []ui.Detail{{Key: "Fil", Value: path}})
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file without asking")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shown := *a.cfg
			if shown.API.APIKey != "" {
				shown.API.APIKey = "********"
			}
			data, err := yaml.Marshal(&shown)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Overrides the root hook: printing the version needs no config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dockit-offert %s\n", version.Full())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func yesNo(b bool) string {
	if b {
		return "ja"
	}
	return "nej"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "–"
	}
	return s
}
