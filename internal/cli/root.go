package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	archivioapp "github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/config"
	"github.com/alexanderramin/archivio/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Archive       service.ArchiveService
	Documents     service.DocumentService
	Parties       service.PartyService
	Deadlines     service.DeadlineService
	Notifications service.NotificationService
	Import        service.ImportService

	// Use-case ports override the service used for that flow when set.
	ScanNotifications archivioapp.ScanNotificationsUseCase
	ImportSeed        archivioapp.ImportSeedUseCase

	Config *config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
	// Confirm replaces the interactive yes/no prompt, mainly in tests.
	Confirm func(title, description string) (bool, error)
}

// skipStartupScan marks commands that must not trigger the scan on start.
const skipStartupScan = "archivio/skip-startup-scan"

// NewRootCmd creates the top-level "archivio" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "archivio",
		Short:         "Document archive, deadline tracker and reminder inbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			runStartupScan(cmd, app)
			return nil
		},
	}
	// Read by main before the App is wired; declared here so cobra accepts it.
	root.PersistentFlags().String("config", "", "config file (default ~/.archivio/config.yaml)")

	root.AddCommand(
		newArchiveCmd(app),
		newDocCmd(app),
		newPartyCmd(app),
		newDeadlinesCmd(app),
		newNotifyCmd(app),
		newWatchCmd(app),
		newImportCmd(app),
	)

	return root
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *App) searchLimit() int {
	if a.Config != nil && a.Config.SearchLimit > 0 {
		return a.Config.SearchLimit
	}
	return service.DefaultSearchLimit
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
