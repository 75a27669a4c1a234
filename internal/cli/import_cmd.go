package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/archivio/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load parties, archive nodes, documents and thresholds from a YAML seed file",
		Long: `Load a YAML seed file in a single transaction. Entities refer to each
other through file-local refs; nothing is written if any entry is invalid.`,
		Args:        cobra.ExactArgs(1),
		Annotations: noStartupScan(),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.importSeedUseCase().ImportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}
}
