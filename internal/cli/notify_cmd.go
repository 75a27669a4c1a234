package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	archivioapp "github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
)

const defaultNotificationLimit = 20

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"n", "inbox"},
		Short:   "Read and manage notifications",
	}

	cmd.AddCommand(
		newNotifyListCmd(app),
		newNotifyReadCmd(app),
		newNotifyReadAllCmd(app),
		newNotifyRemoveCmd(app),
		newNotifyOpenCmd(app),
		newNotifyAddCmd(app),
		newNotifyScanCmd(app),
	)

	return cmd
}

func newNotifyListCmd(app *App) *cobra.Command {
	var unread bool
	var limit int

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := app.Notifications.List(cmd.Context(), limit, unread)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNotificationList(list))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unread, "unread", false, "Only unread notifications")
	cmd.Flags().IntVar(&limit, "limit", defaultNotificationLimit, "Maximum notifications to show (0 for all)")

	return cmd
}

func newNotifyReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNotificationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Notifications.MarkRead(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", formatter.ShortID(id))
			return nil
		},
	}
}

func newNotifyReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Notifications.MarkAllRead(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", plural(n, "notification", "notifications"))
			return nil
		},
	}
}

func newNotifyRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a notification",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNotificationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Notifications.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.ShortID(id))
			return nil
		},
	}
}

func newNotifyOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open ID",
		Short: "Show a notification, mark it read and follow its link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNotificationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			n, err := app.Notifications.Open(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatNotification(n))

			if n.Link != domain.LinkDeadlines {
				return nil
			}
			resp, err := app.Deadlines.Upcoming(ctx, archivioapp.NewUpcomingRequest())
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatUpcoming(resp))
			return nil
		},
	}
}

func newNotifyAddCmd(app *App) *cobra.Command {
	var typ, title, message, link string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a system or info notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Notifications.Create(cmd.Context(), archivioapp.NotificationInput{
				Type:    typ,
				Title:   title,
				Message: message,
				Link:    link,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created notification %s\n", formatter.ShortID(n.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", string(domain.NotificationInfo), "Notification type (system, info)")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&message, "message", "", "Message body")
	cmd.Flags().StringVar(&link, "link", "", "View to open, e.g. deadlines")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNotifyScanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "scan",
		Short:       "Raise notifications for expired and upcoming deadlines",
		Annotations: noStartupScan(),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.scanUseCase().Scan(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScanResult(result))
			return nil
		},
	}
}
