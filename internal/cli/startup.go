package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/archivio/internal/cli/formatter"
)

// runStartupScan raises deadline notifications once per invocation and,
// on a terminal, reports how many are unread. Failures are logged and never
// block the command itself.
func runStartupScan(cmd *cobra.Command, app *App) {
	if app.Config == nil || !app.Config.ScanOnStart || skipsStartupScan(cmd) {
		return
	}
	ctx := cmd.Context()

	result, err := app.scanUseCase().Scan(ctx)
	if err != nil {
		app.logger().WarnContext(ctx, "startup scan failed", "error", err)
		return
	}
	app.logger().DebugContext(ctx, "startup scan finished",
		"created", result.Created, "skipped", result.Skipped, "failed", result.Failed)

	if !app.interactive() {
		return
	}
	count, err := app.Notifications.UnreadCount(ctx)
	if err != nil {
		app.logger().WarnContext(ctx, "counting unread notifications failed", "error", err)
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), formatter.FormatUnreadBanner(count))
}

func skipsStartupScan(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStartupScan] == "true" {
			return true
		}
	}
	return false
}

func noStartupScan() map[string]string {
	return map[string]string{skipStartupScan: "true"}
}
