package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	archivioapp "github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/importer"
)

func newDeadlinesCmd(app *App) *cobra.Command {
	var all, asJSON, asYAML bool

	cmd := &cobra.Command{
		Use:     "deadlines",
		Aliases: []string{"dl"},
		Short:   "List expired and upcoming document deadlines",
		Long: `List documents whose expiry or due date has passed or falls within
the configured threshold. Thresholds resolve type-specific key first,
then the category key, then the built-in default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && asYAML {
				return domain.Invalidf("--json and --yaml are mutually exclusive")
			}
			req := archivioapp.NewUpcomingRequest()
			req.IncludeOK = all

			resp, err := app.Deadlines.Upcoming(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			case asYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(resp); err != nil {
					return err
				}
				return enc.Close()
			}

			fmt.Fprint(out, formatter.FormatUpcoming(resp))
			for _, id := range resp.Skipped {
				app.logger().WarnContext(cmd.Context(), "document deadline unreadable", "document", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include documents that are not yet due")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")

	cmd.AddCommand(newDeadlineConfigCmd(app))

	return cmd
}

func newDeadlineConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage alert thresholds",
		Long: `Manage how many days before its deadline a document turns UPCOMING.

Keys are a category ("general", "invoice") or a type-specific key such as
"general:DURC" or "invoice:TD01".`,
	}

	cmd.AddCommand(
		newDeadlineConfigGetCmd(app),
		newDeadlineConfigSetCmd(app),
		newDeadlineConfigResetCmd(app),
		newDeadlineConfigExportCmd(app),
		newDeadlineConfigImportCmd(app),
	)

	return cmd
}

func newDeadlineConfigGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "get",
		Aliases: []string{"ls"},
		Short:   "Show configured thresholds and the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs, err := app.Deadlines.Configs(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDeadlineConfigs(configs, app.Deadlines.Defaults()))
			return nil
		},
	}
}

func newDeadlineConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "set KEY=DAYS...",
		Short:   "Set one or more thresholds in a single update",
		Example: `  archivio deadlines config set general=10 invoice:TD01=30`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configs := make([]domain.DeadlineConfig, 0, len(args))
			for _, arg := range args {
				c, err := parseConfigAssignment(arg)
				if err != nil {
					return err
				}
				configs = append(configs, c)
			}
			if err := app.Deadlines.UpdateConfigs(cmd.Context(), configs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", plural(len(configs), "threshold", "thresholds"))
			return nil
		},
	}
}

func parseConfigAssignment(arg string) (domain.DeadlineConfig, error) {
	for i := len(arg) - 1; i >= 0; i-- {
		if arg[i] != '=' {
			continue
		}
		days, err := strconv.Atoi(arg[i+1:])
		if err != nil {
			return domain.DeadlineConfig{}, domain.Invalidf("threshold %q: days must be a whole number", arg)
		}
		return domain.DeadlineConfig{Key: arg[:i], DaysBefore: days}, nil
	}
	return domain.DeadlineConfig{}, domain.Invalidf("threshold %q: expected KEY=DAYS", arg)
}

func newDeadlineConfigResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset KEY",
		Short: "Remove a threshold so the next fallback applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Deadlines.ResetConfig(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No threshold set for %s\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", args[0])
			return nil
		},
	}
}

func newDeadlineConfigExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print thresholds as a seed file fragment",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs, err := app.Deadlines.Configs(cmd.Context())
			if err != nil {
				return err
			}
			fragment := struct {
				Deadlines []importer.DeadlineConfigImport `yaml:"deadlines"`
			}{Deadlines: make([]importer.DeadlineConfigImport, 0, len(configs))}
			for _, c := range configs {
				fragment.Deadlines = append(fragment.Deadlines, importer.DeadlineConfigImport{Key: c.Key, DaysBefore: c.DaysBefore})
			}
			data, err := yaml.Marshal(fragment)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newDeadlineConfigImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Apply every threshold in a seed file, or none of them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			schema, err := importer.ParseSeedSchema(data)
			if err != nil {
				return err
			}
			if len(schema.Parties)+len(schema.Archive)+len(schema.Documents)+len(schema.Invoices) > 0 {
				return domain.Invalidf("%s holds more than thresholds; use 'archivio import' for full seed files", args[0])
			}
			if errs := importer.ValidateSeedSchema(schema); len(errs) > 0 {
				return domain.Invalidf("%s: %v", args[0], errors.Join(errs...))
			}

			configs := make([]domain.DeadlineConfig, 0, len(schema.Deadlines))
			for _, c := range schema.Deadlines {
				configs = append(configs, domain.DeadlineConfig{Key: c.Key, DaysBefore: c.DaysBefore})
			}
			if err := app.Deadlines.UpdateConfigs(cmd.Context(), configs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", plural(len(configs), "threshold", "thresholds"))
			return nil
		},
	}
}
