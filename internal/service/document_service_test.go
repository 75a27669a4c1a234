package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/testutil"
)

func references(docs []domain.DocumentSummary) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Reference)
	}
	return out
}

func TestDocumentService_SearchFoldsCase(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Chiusura été 2025")))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Inventario")))

	resp, err := svc.Search(ctx, app.NewSearchRequest("ÉTÉ"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Chiusura été 2025"}, references(resp.Results))
}

func TestDocumentService_SearchMatchesOwnerName(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	supplier := testutil.NewTestParty(domain.EntitySupplier, "Rossi Forniture")
	require.NoError(t, env.parties.Create(ctx, supplier))
	inv := testutil.NewTestInvoice(supplier, testutil.WithNumber("FT-88"))
	require.NoError(t, env.invoices.Create(ctx, inv))

	resp, err := svc.Search(ctx, app.NewSearchRequest("rossi"))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, inv.ID, resp.Results[0].ID)
	assert.Equal(t, "Rossi Forniture", resp.Results[0].OwnerName)
}

func TestDocumentService_SearchSkipsLinkedAndOrdersGeneralsFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	node := testutil.NewTestArchiveNode("Box")
	require.NoError(t, env.nodes.Create(ctx, node))
	client := testutil.NewTestParty(domain.EntityClient, "Bianchi")
	require.NoError(t, env.parties.Create(ctx, client))
	require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(client, testutil.WithNumber("A-1"))))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("A-general")))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("A-linked", testutil.WithGeneralArchive(node.ID))))

	resp, err := svc.Search(ctx, app.NewSearchRequest("a-"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A-general", "A-1"}, references(resp.Results))
}

func TestDocumentService_SearchFilters(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	staff := testutil.NewTestParty(domain.EntityStaff, "Mario")
	supplier := testutil.NewTestParty(domain.EntitySupplier, "Acme")
	require.NoError(t, env.parties.Create(ctx, staff))
	require.NoError(t, env.parties.Create(ctx, supplier))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Contratto Mario", testutil.WithOwner(staff))))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Contratto Acme", testutil.WithOwner(supplier))))
	require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(supplier)))

	tests := []struct {
		name   string
		kind   string
		entity string
		want   int
	}{
		{"all", domain.FilterAll, domain.FilterAll, 3},
		{"general only", "general", "", 2},
		{"invoice only", "invoice", "all", 1},
		{"staff", "all", "staff", 1},
		{"invoice for staff is empty", "invoice", "staff", 0},
		{"supplier", "", "supplier", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Search(ctx, app.SearchRequest{Kind: tt.kind, EntityType: tt.entity})
			require.NoError(t, err)
			assert.Len(t, resp.Results, tt.want)
		})
	}
}

func TestDocumentService_SearchRejectsUnknownFilters(t *testing.T) {
	svc := newTestEnv(t).documentService(0)
	ctx := context.Background()

	_, err := svc.Search(ctx, app.SearchRequest{Kind: "receipt"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Search(ctx, app.SearchRequest{EntityType: "partner"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentService_SearchCapsEachKind(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(3)
	ctx := context.Background()

	supplier := testutil.NewTestParty(domain.EntitySupplier, "Acme")
	require.NoError(t, env.parties.Create(ctx, supplier))
	for i := 0; i < 5; i++ {
		require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument(fmt.Sprintf("Doc %d", i))))
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(supplier)))
	}

	resp, err := svc.Search(ctx, app.NewSearchRequest(""))
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5, "three generals plus both invoices")
	assert.True(t, resp.Truncated[domain.DocGeneral])
	assert.False(t, resp.Truncated[domain.DocInvoice])

	req := app.NewSearchRequest("")
	req.Limit = 10
	resp, err = svc.Search(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Results, 7)
	assert.Empty(t, resp.Truncated)
}

func TestDocumentService_LinkUnlinkRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	node := testutil.NewTestArchiveNode("Box 2025")
	require.NoError(t, env.nodes.Create(ctx, node))
	supplier := testutil.NewTestParty(domain.EntitySupplier, "Acme")
	require.NoError(t, env.parties.Create(ctx, supplier))
	inv := testutil.NewTestInvoice(supplier)
	require.NoError(t, env.invoices.Create(ctx, inv))
	ref := app.DocumentRef{Kind: domain.DocInvoice, ID: inv.ID}

	require.NoError(t, svc.Link(ctx, ref, node.ID))

	linked, err := svc.ListLinked(ctx, node.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, inv.ID, linked[0].ID)

	resp, err := svc.Search(ctx, app.NewSearchRequest(""))
	require.NoError(t, err)
	assert.Empty(t, resp.Results, "linked documents leave the search pool")

	require.NoError(t, svc.Unlink(ctx, ref))
	linked, err = svc.ListLinked(ctx, node.ID)
	require.NoError(t, err)
	assert.Empty(t, linked)

	doc, err := svc.Get(ctx, ref)
	require.NoError(t, err)
	assert.Nil(t, doc.ArchiveRef())
}

func TestDocumentService_LinkErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	node := testutil.NewTestArchiveNode("Box")
	require.NoError(t, env.nodes.Create(ctx, node))
	doc := testutil.NewTestGeneralDocument("DURC")
	require.NoError(t, env.generals.Create(ctx, doc))

	err := svc.Link(ctx, app.DocumentRef{Kind: domain.DocGeneral, ID: doc.ID}, "missing-node")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Link(ctx, app.DocumentRef{Kind: domain.DocGeneral, ID: "missing-doc"}, node.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Link(ctx, app.DocumentRef{Kind: "receipt", ID: doc.ID}, node.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentService_DanglingAfterNodeDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	node := testutil.NewTestArchiveNode("Box")
	require.NoError(t, env.nodes.Create(ctx, node))
	doc := testutil.NewTestGeneralDocument("DURC", testutil.WithGeneralArchive(node.ID))
	require.NoError(t, env.generals.Create(ctx, doc))
	require.NoError(t, env.archiveService().Delete(ctx, node.ID))

	dangling, err := svc.Dangling(ctx)
	require.NoError(t, err)
	require.Len(t, dangling, 1)
	assert.Equal(t, doc.ID, dangling[0].ID)
}

func TestDocumentService_CreateGeneral(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	staff := testutil.NewTestParty(domain.EntityStaff, "Giulia")
	require.NoError(t, env.parties.Create(ctx, staff))
	expiry := testutil.Days(30)

	doc, err := svc.CreateGeneral(ctx, app.GeneralDocumentInput{
		Description: "Contratto Giulia",
		TypeCode:    "contr",
		IssueDate:   testutil.TestToday,
		ExpiryDate:  &expiry,
		OwnerType:   "staff",
		OwnerID:     staff.ID,
		Attachments: []string{"/scans/contratto.pdf", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, "CONTR", doc.TypeCode)

	stored, err := env.generals.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Owner)
	assert.Equal(t, staff.ID, stored.Owner.ID)
	require.Len(t, stored.Attachments, 1)
	assert.Equal(t, "/scans/contratto.pdf", stored.Attachments[0].Path)
	require.NotNil(t, stored.ExpiryDate)
	assert.True(t, expiry.Equal(*stored.ExpiryDate))
}

func TestDocumentService_CreateGeneralValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()
	supplier := testutil.NewTestParty(domain.EntitySupplier, "Acme")
	require.NoError(t, env.parties.Create(ctx, supplier))
	before := testutil.Days(-1)

	tests := []struct {
		name    string
		in      app.GeneralDocumentInput
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing description",
			in:      app.GeneralDocumentInput{IssueDate: testutil.TestToday},
			wantErr: domain.ErrValidation,
			wantMsg: "description is required",
		},
		{
			name:    "missing issue date",
			in:      app.GeneralDocumentInput{Description: "x"},
			wantErr: domain.ErrValidation,
			wantMsg: "issuedate is required",
		},
		{
			name:    "expiry before issue",
			in:      app.GeneralDocumentInput{Description: "x", IssueDate: testutil.TestToday, ExpiryDate: &before},
			wantErr: domain.ErrValidation,
			wantMsg: "before issue date",
		},
		{
			name:    "owner kind mismatch",
			in:      app.GeneralDocumentInput{Description: "x", IssueDate: testutil.TestToday, OwnerType: "client", OwnerID: supplier.ID},
			wantErr: domain.ErrValidation,
			wantMsg: "not a client",
		},
		{
			name:    "unknown owner",
			in:      app.GeneralDocumentInput{Description: "x", IssueDate: testutil.TestToday, OwnerType: "client", OwnerID: "nobody"},
			wantErr: domain.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGeneral(ctx, tt.in)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDocumentService_CreateInvoice(t *testing.T) {
	env := newTestEnv(t)
	svc := env.documentService(0)
	ctx := context.Background()

	client := testutil.NewTestParty(domain.EntityClient, "Bianchi SRL")
	staff := testutil.NewTestParty(domain.EntityStaff, "Luca")
	require.NoError(t, env.parties.Create(ctx, client))
	require.NoError(t, env.parties.Create(ctx, staff))
	due := testutil.Days(60)

	inv, err := svc.CreateInvoice(ctx, app.InvoiceInput{
		TypeCode:  "td01",
		Number:    "12/2026",
		IssueDate: testutil.TestToday,
		DueDate:   &due,
		OwnerType: "client",
		OwnerID:   client.ID,
		Total:     "1220.50",
	})
	require.NoError(t, err)

	stored, err := env.invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "TD01", stored.TypeCode)
	require.NotNil(t, stored.Total)
	assert.Equal(t, "1220.5", stored.Total.String())

	_, err = svc.CreateInvoice(ctx, app.InvoiceInput{
		TypeCode: "TD01", Number: "13/2026", IssueDate: testutil.TestToday,
		OwnerType: "staff", OwnerID: staff.ID,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateInvoice(ctx, app.InvoiceInput{
		TypeCode: "TD01", Number: "14/2026", IssueDate: testutil.TestToday,
		OwnerType: "client", OwnerID: client.ID, Total: "lots",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "total must be a number")
}

func TestParseDocumentRef(t *testing.T) {
	ref, err := ParseDocumentRef("Invoice:abc-123")
	require.NoError(t, err)
	assert.Equal(t, app.DocumentRef{Kind: domain.DocInvoice, ID: "abc-123"}, ref)
	assert.Equal(t, "invoice:abc-123", formatRef(ref))

	for _, bad := range []string{"", "abc", "general:", "receipt:1"} {
		_, err := ParseDocumentRef(bad)
		assert.ErrorIs(t, err, domain.ErrValidation, bad)
	}
}

func TestPartyService_CreateAndList(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPartyService(env.parties, env.clock())
	ctx := context.Background()

	_, err := svc.Create(ctx, app.PartyInput{Kind: "supplier", Name: "Zeta"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, app.PartyInput{Kind: "client", Name: "alfa"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "all")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alfa", all[0].Name)

	suppliers, err := svc.List(ctx, "supplier")
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Zeta", suppliers[0].Name)

	_, err = svc.Create(ctx, app.PartyInput{Kind: "partner", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.List(ctx, "partner")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
