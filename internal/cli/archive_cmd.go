package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	archivioapp "github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
)

func newArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "archive",
		Aliases: []string{"ar"},
		Short:   "Manage the archive folder tree",
	}

	cmd.AddCommand(
		newArchiveAddCmd(app),
		newArchiveUpdateCmd(app),
		newArchiveRemoveCmd(app),
		newArchiveListCmd(app),
		newArchivePathCmd(app),
		newArchiveTreeCmd(app),
		newArchiveShowCmd(app),
		newArchiveOrphansCmd(app),
		newArchiveBrowseCmd(app),
	)

	return cmd
}

type archiveFlags struct {
	code, description, period, dateLabel, notes, parent string
}

func (f *archiveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "Folder description")
	cmd.Flags().StringVar(&f.code, "code", "", "Short code shown before the description, e.g. FY26")
	cmd.Flags().StringVar(&f.period, "period", "", "Period covered, e.g. Q1 2026")
	cmd.Flags().StringVar(&f.dateLabel, "date-label", "", "Free-form date label")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&f.parent, "parent", "", "Parent node (id, code or id prefix)")
}

func newArchiveAddCmd(app *App) *cobra.Command {
	var f archiveFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an archive node",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in := archivioapp.ArchiveNodeInput{
				Code:        f.code,
				Description: f.description,
				Period:      f.period,
				DateLabel:   f.dateLabel,
				Notes:       f.notes,
			}
			if f.parent != "" {
				parentID, err := resolveArchiveID(ctx, app, f.parent)
				if err != nil {
					return err
				}
				in.ParentID = &parentID
			}

			node, err := app.Archive.Create(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created archive node %s (%s)\n", node.DisplayName(), formatter.ShortID(node.ID))
			return nil
		},
	}

	f.register(cmd)
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newArchiveUpdateCmd(app *App) *cobra.Command {
	var f archiveFlags
	var toRoot bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit or move an archive node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveArchiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			current, err := app.Archive.Get(ctx, id)
			if err != nil {
				return err
			}

			// Unset flags keep the stored value.
			in := archivioapp.ArchiveNodeInput{
				Code:        current.Code,
				Description: current.Description,
				Period:      current.Period,
				DateLabel:   current.DateLabel,
				Notes:       current.Notes,
				ParentID:    current.ParentID,
			}
			flags := cmd.Flags()
			if flags.Changed("code") {
				in.Code = f.code
			}
			if flags.Changed("description") {
				in.Description = f.description
			}
			if flags.Changed("period") {
				in.Period = f.period
			}
			if flags.Changed("date-label") {
				in.DateLabel = f.dateLabel
			}
			if flags.Changed("notes") {
				in.Notes = f.notes
			}
			switch {
			case toRoot && flags.Changed("parent"):
				return domain.Invalidf("--root and --parent are mutually exclusive")
			case toRoot:
				in.ParentID = nil
			case flags.Changed("parent"):
				parentID, err := resolveArchiveID(ctx, app, f.parent)
				if err != nil {
					return err
				}
				in.ParentID = &parentID
			}

			node, err := app.Archive.Update(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated archive node %s (%s)\n", node.DisplayName(), formatter.ShortID(node.ID))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&toRoot, "root", false, "Move the node to the top level")

	return cmd
}

func newArchiveRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an archive node (children and documents are kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveArchiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Archive.Detail(ctx, id)
			if err != nil && !errors.Is(err, domain.ErrCycle) {
				return err
			}
			node, err := app.Archive.Get(ctx, id)
			if err != nil {
				return err
			}

			if !yes {
				description := "Nothing else refers to it."
				if detail != nil && (len(detail.Children) > 0 || len(detail.Documents) > 0) {
					description = fmt.Sprintf("%s and %s will keep pointing at the removed node.",
						plural(len(detail.Children), "sub-folder", "sub-folders"),
						plural(len(detail.Documents), "document", "documents"))
				}
				ok, err := app.confirm(fmt.Sprintf("Delete %q?", node.DisplayName()), description)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Archive.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed archive node %s\n", node.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newArchiveListCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List top-level nodes or the children of --parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var parentID *string
			if parent != "" {
				id, err := resolveArchiveID(ctx, app, parent)
				if err != nil {
					return err
				}
				parentID = &id
			}
			nodes, err := app.Archive.ListChildren(ctx, parentID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatArchiveList(nodes))
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Parent node (id, code or id prefix)")

	return cmd
}

func newArchivePathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path ID",
		Short: "Print the breadcrumb path of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveArchiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			path, err := app.Archive.Breadcrumbs(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBreadcrumbs(path))
			return nil
		},
	}
}

func newArchiveTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the whole archive as a tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			forest, err := app.Archive.Tree(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatArchiveTree(forest))
			return nil
		},
	}
}

func newArchiveShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a node with its path, sub-folders and documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveArchiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Archive.Detail(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatArchiveDetail(detail))
			return nil
		},
	}
}

func newArchiveOrphansCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "List nodes whose parent was deleted",
		RunE: func(cmd *cobra.Command, args []string) error {
			orphans, err := app.Archive.Orphans(cmd.Context())
			if err != nil {
				return err
			}
			if len(orphans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orphaned archive nodes.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatArchiveList(orphans))
			return nil
		},
	}
}
