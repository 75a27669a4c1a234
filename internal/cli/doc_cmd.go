package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	archivioapp "github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/cli/formatter"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/service"
)

func newDocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"docs"},
		Short:   "Register documents and link them to the archive",
	}

	cmd.AddCommand(
		newDocSearchCmd(app),
		newDocLinkCmd(app),
		newDocUnlinkCmd(app),
		newDocLinkedCmd(app),
		newDocShowCmd(app),
		newDocAddGeneralCmd(app),
		newDocAddInvoiceCmd(app),
		newDocDanglingCmd(app),
	)

	return cmd
}

func newDocSearchCmd(app *App) *cobra.Command {
	var kind, entity string
	var limit int

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Find unlinked documents by reference, type or owner",
		Long: `Find documents not yet linked to an archive node.

Matching ignores case and accents. General documents are listed before
invoices, and each kind is capped separately by --limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := archivioapp.NewSearchRequest(strings.Join(args, " "))
			req.Kind = kind
			req.EntityType = entity
			req.Limit = limit
			if req.Limit <= 0 {
				req.Limit = app.searchLimit()
			}

			resp, err := app.Documents.Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSearchResults(resp, req.Limit))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", domain.FilterAll, "Document kind (all, general, invoice)")
	cmd.Flags().StringVar(&entity, "entity", domain.FilterAll, "Owner type (all, supplier, client, staff)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum results per kind (default from config)")

	return cmd
}

func newDocLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link REF ARCHIVE",
		Short: "Link a document (general:<id> or invoice:<id>) to an archive node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := service.ParseDocumentRef(args[0])
			if err != nil {
				return err
			}
			archiveID, err := resolveArchiveID(ctx, app, args[1])
			if err != nil {
				return err
			}
			if err := app.Documents.Link(ctx, ref, archiveID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to %s\n",
				formatter.DocumentRef(ref.Kind, ref.ID), formatter.ShortID(archiveID))
			return nil
		},
	}
}

func newDocUnlinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink REF",
		Short: "Remove a document from its archive node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := service.ParseDocumentRef(args[0])
			if err != nil {
				return err
			}
			if err := app.Documents.Unlink(cmd.Context(), ref); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlinked %s\n", formatter.DocumentRef(ref.Kind, ref.ID))
			return nil
		},
	}
}

func newDocLinkedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "linked ARCHIVE",
		Short: "List the documents linked to an archive node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			archiveID, err := resolveArchiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			docs, err := app.Documents.ListLinked(ctx, archiveID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocumentList(docs))
			return nil
		},
	}
}

func newDocShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Show one document with its owner and archive location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := service.ParseDocumentRef(args[0])
			if err != nil {
				return err
			}
			doc, err := app.Documents.Get(ctx, ref)
			if err != nil {
				return err
			}

			var ownerName string
			if owner := doc.OwnerRef(); owner != nil {
				p, err := app.Parties.Get(ctx, owner.ID)
				if err != nil && !errors.Is(err, domain.ErrNotFound) {
					return err
				}
				if p != nil {
					ownerName = p.Name
				}
			}

			var path []*domain.ArchiveNode
			if archiveID := doc.ArchiveRef(); archiveID != nil {
				path, err = app.Archive.Breadcrumbs(ctx, *archiveID)
				if err != nil && !errors.Is(err, domain.ErrNotFound) {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocumentDetail(doc, ownerName, path))
			return nil
		},
	}
}

// ownerFor looks up the party so its kind becomes the document's owner type.
func ownerFor(ctx context.Context, app *App, partyID string) (*domain.Party, error) {
	if strings.TrimSpace(partyID) == "" {
		return nil, nil
	}
	return app.Parties.Get(ctx, strings.TrimSpace(partyID))
}

func newDocAddGeneralCmd(app *App) *cobra.Command {
	var description, typeCode, issued, expires, owner, notes string
	var attachments []string

	cmd := &cobra.Command{
		Use:   "add-general",
		Short: "Register a general document (certificate, contract, permit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			issueDate, err := parseDate("issued", issued)
			if err != nil {
				return err
			}
			expiryDate, err := parseOptionalDate("expires", expires)
			if err != nil {
				return err
			}

			in := archivioapp.GeneralDocumentInput{
				Description: description,
				TypeCode:    typeCode,
				IssueDate:   issueDate,
				ExpiryDate:  expiryDate,
				Attachments: attachments,
				Notes:       notes,
			}
			party, err := ownerFor(ctx, app, owner)
			if err != nil {
				return err
			}
			if party != nil {
				in.OwnerType = string(party.Kind)
				in.OwnerID = party.ID
			}

			doc, err := app.Documents.CreateGeneral(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s %s\n",
				formatter.DocumentRef(domain.DocGeneral, doc.ID), doc.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Document description")
	cmd.Flags().StringVar(&typeCode, "type", "", "Document type code, e.g. DURC")
	cmd.Flags().StringVar(&issued, "issued", "", "Issue date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&owner, "owner", "", "Owning party id")
	cmd.Flags().StringSliceVar(&attachments, "attach", nil, "Attachment file path (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("issued")

	return cmd
}

func newDocAddInvoiceCmd(app *App) *cobra.Command {
	var typeCode, number, issued, due, owner, pdf, total string

	cmd := &cobra.Command{
		Use:   "add-invoice",
		Short: "Register an invoice from a supplier or to a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			issueDate, err := parseDate("issued", issued)
			if err != nil {
				return err
			}
			dueDate, err := parseOptionalDate("due", due)
			if err != nil {
				return err
			}
			party, err := ownerFor(ctx, app, owner)
			if err != nil {
				return err
			}

			in := archivioapp.InvoiceInput{
				TypeCode:  typeCode,
				Number:    number,
				IssueDate: issueDate,
				DueDate:   dueDate,
				PDFPath:   pdf,
				Total:     total,
			}
			if party != nil {
				in.OwnerType = string(party.Kind)
				in.OwnerID = party.ID
			}

			inv, err := app.Documents.CreateInvoice(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s invoice %s\n",
				formatter.DocumentRef(domain.DocInvoice, inv.ID), inv.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeCode, "type", "", "Invoice type code, e.g. TD01")
	cmd.Flags().StringVar(&number, "number", "", "Invoice number")
	cmd.Flags().StringVar(&issued, "issued", "", "Issue date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&owner, "owner", "", "Supplier or client party id")
	cmd.Flags().StringVar(&pdf, "pdf", "", "Path to the invoice PDF")
	cmd.Flags().StringVar(&total, "total", "", "Invoice total, e.g. 1220.50")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("issued")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newDocDanglingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dangling",
		Short: "List documents linked to an archive node that no longer exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := app.Documents.Dangling(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No dangling document links.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDocumentList(docs))
			return nil
		},
	}
}
