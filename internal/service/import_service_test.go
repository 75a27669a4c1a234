package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/importer"
	"github.com/alexanderramin/archivio/internal/testutil"
)

const seedFile = "../importer/testdata/seed.yaml"

func TestImportService_ImportFile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.uow, env.clock())
	ctx := context.Background()

	result, err := svc.ImportFile(ctx, seedFile)
	require.NoError(t, err)
	assert.Equal(t, app.ImportResult{Parties: 3, ArchiveNodes: 2, Documents: 2, Invoices: 1, DeadlineConfigs: 2}, *result)

	forest, err := env.archiveService().Tree(ctx)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, "FY26 Fiscal year 2026", forest[0].Node.DisplayName())
	assert.Equal(t, 1, forest[0].Documents)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, 1, forest[0].Children[0].Documents)

	configs, err := env.deadlineService().Configs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "general:DURC", configs[1].Key)
}

func TestImportService_SeedFeedsScan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := NewImportService(env.uow, env.clock()).ImportFile(ctx, seedFile)
	require.NoError(t, err)

	result, err := env.notificationService(nil).Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, app.ScanResult{Created: 2}, *result)

	list, err := env.notifRepo.List(ctx, 0, false)
	require.NoError(t, err)
	titles := []string{list[0].Title, list[1].Title}
	assert.ElementsMatch(t, []string{"Expiring soon: Contrato X", "Expired: Invoice 12/2026"}, titles)
}

func TestImportService_ValidationErrorsWriteNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.uow, env.clock())
	ctx := context.Background()

	schema := &importer.SeedSchema{
		Parties: []importer.PartyImport{{Ref: "p", Kind: "partner", Name: "X"}},
		Archive: []importer.ArchiveNodeImport{{Ref: "a", Description: ""}},
	}
	_, err := svc.ImportSchema(ctx, schema)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "import validation failed")

	parties, err := env.parties.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, parties)
}

func TestImportService_RollbackOnWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Writes: #1-3 parties, #4-5 archive nodes, #6 first document,
	// #7 second document, #8 its attachment.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     env.db,
		FailOn: 7,
		Err:    fmt.Errorf("injected document insert failure"),
	}
	svc := NewImportService(failUoW, env.clock())

	_, err := svc.ImportFile(ctx, seedFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected document insert failure")
	assert.Contains(t, err.Error(), `creating document "DURC"`)

	parties, err := env.parties.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, parties, "parties written before the failure are rolled back")

	nodes, err := env.nodes.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestImportService_MissingFile(t *testing.T) {
	svc := NewImportService(newTestEnv(t).uow)

	_, err := svc.ImportFile(context.Background(), "testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading seed file")
}
