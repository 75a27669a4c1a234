package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	archivioapp "github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
)

func newPartyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "party",
		Aliases: []string{"parties"},
		Short:   "Manage suppliers, clients and staff",
	}

	cmd.AddCommand(newPartyAddCmd(app), newPartyListCmd(app))

	return cmd
}

func newPartyAddCmd(app *App) *cobra.Command {
	var kind, name, taxCode string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a party",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Parties.Create(cmd.Context(), archivioapp.PartyInput{
				Kind:    kind,
				Name:    name,
				TaxCode: taxCode,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s %s (%s)\n", p.Kind, p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Party kind (supplier, client, staff)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&taxCode, "tax-code", "", "VAT number or tax code")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPartyListCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List parties",
		RunE: func(cmd *cobra.Command, args []string) error {
			parties, err := app.Parties.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPartyList(parties))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", domain.FilterAll, "Filter by kind (all, supplier, client, staff)")

	return cmd
}
