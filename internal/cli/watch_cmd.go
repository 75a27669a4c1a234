package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/scheduler"
)

const defaultWatchInterval = time.Hour

func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:         "watch",
		Short:       "Scan deadlines periodically until interrupted",
		Annotations: noStartupScan(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("interval") && app.Config != nil && app.Config.WatchInterval > 0 {
				interval = app.Config.WatchInterval
			}
			if interval <= 0 {
				return domain.Invalidf("--interval must be positive, got %s", interval)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanning every %s; press Ctrl+C to stop\n", interval)

			runner := scheduler.NewRunner(interval, func(ctx context.Context) error {
				result, err := app.scanUseCase().Scan(ctx)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.Dim(time.Now().Format("15:04:05"))+" "+formatter.FormatScanResult(result))
				return nil
			}, app.logger())
			runner.Timeout = interval

			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "Time between scans (default from config watch_interval)")

	return cmd
}
