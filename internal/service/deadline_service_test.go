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

func itemByLabel(items []app.DeadlineItem, label string) *app.DeadlineItem {
	for i := range items {
		if items[i].Label == label {
			return &items[i]
		}
	}
	return nil
}

func TestDeadlineService_ClassifiesAndSorts(t *testing.T) {
	env := newTestEnv(t)
	svc := env.deadlineService()
	ctx := context.Background()

	supplier := testutil.NewTestParty(domain.EntitySupplier, "Acme")
	require.NoError(t, env.parties.Create(ctx, supplier))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Scaduto", testutil.WithExpiry(testutil.Days(-2)))))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Oggi", testutil.WithExpiry(testutil.Days(0)))))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Lontano", testutil.WithExpiry(testutil.Days(90)))))
	require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(supplier, testutil.WithNumber("7/2026"), testutil.WithDue(testutil.Days(15)))))
	require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(supplier, testutil.WithNumber("8/2026"), testutil.WithDue(testutil.Days(16)))))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Senza scadenza")))

	resp, err := svc.Upcoming(ctx, app.NewUpcomingRequest())
	require.NoError(t, err)

	labels := make([]string, 0, len(resp.Items))
	for _, it := range resp.Items {
		labels = append(labels, it.Label)
	}
	assert.Equal(t, []string{"Scaduto", "Oggi", "Invoice 7/2026"}, labels)
	assert.Equal(t, domain.StatusExpired, resp.Items[0].Status)
	assert.Equal(t, -2, resp.Items[0].DaysRemaining)
	assert.Equal(t, 0, resp.Items[1].DaysRemaining)
	assert.Equal(t, domain.StatusUpcoming, resp.Items[1].Status)
	assert.Equal(t, "Acme", resp.Items[2].OwnerName)
	assert.Equal(t, app.DeadlineSummary{Expired: 1, Upcoming: 2, Total: 3}, resp.Summary)
	assert.Equal(t, testutil.TestNow, resp.GeneratedAt)
}

func TestDeadlineService_IncludeOK(t *testing.T) {
	env := newTestEnv(t)
	svc := env.deadlineService()
	ctx := context.Background()

	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Soon", testutil.WithExpiry(testutil.Days(3)))))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Later", testutil.WithExpiry(testutil.Days(40)))))

	req := app.NewUpcomingRequest()
	req.IncludeOK = true
	resp, err := svc.Upcoming(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, domain.StatusOK, resp.Items[1].Status)
	assert.Equal(t, 1, resp.Summary.Total, "OK documents never count as alerts")
}

func TestDeadlineService_ThresholdPrecedence(t *testing.T) {
	env := newTestEnv(t)
	svc := env.deadlineService()
	ctx := context.Background()

	require.NoError(t, svc.UpdateConfigs(ctx, []domain.DeadlineConfig{
		{Key: "general:durc", DaysBefore: 30},
		{Key: "General", DaysBefore: 20},
	}))

	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("DURC", testutil.WithGeneralType("DURC"), testutil.WithExpiry(testutil.Days(25)))))
	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("Visura", testutil.WithGeneralType("VIS"), testutil.WithExpiry(testutil.Days(18)))))
	supplier := testutil.NewTestParty(domain.EntitySupplier, "Acme")
	require.NoError(t, env.parties.Create(ctx, supplier))
	require.NoError(t, env.invoices.Create(ctx, testutil.NewTestInvoice(supplier, testutil.WithNumber("1/2026"), testutil.WithDue(testutil.Days(12)))))

	resp, err := svc.Upcoming(ctx, app.NewUpcomingRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)

	durc := itemByLabel(resp.Items, "DURC")
	require.NotNil(t, durc)
	assert.Equal(t, 30, durc.ThresholdDays)
	assert.Equal(t, domain.ThresholdFromType, durc.ThresholdSource)

	visura := itemByLabel(resp.Items, "Visura")
	require.NotNil(t, visura)
	assert.Equal(t, 20, visura.ThresholdDays)
	assert.Equal(t, domain.ThresholdFromCategory, visura.ThresholdSource)

	inv := itemByLabel(resp.Items, "Invoice 1/2026")
	require.NotNil(t, inv)
	assert.Equal(t, domain.DefaultInvoiceDays, inv.ThresholdDays)
	assert.Equal(t, domain.ThresholdFromDefault, inv.ThresholdSource)

	require.NoError(t, svc.ResetConfig(ctx, "GENERAL:Durc"))
	resp, err = svc.Upcoming(ctx, app.NewUpcomingRequest())
	require.NoError(t, err)
	durc = itemByLabel(resp.Items, "DURC")
	assert.Nil(t, durc, "25 days out is beyond the category threshold of 20")
}

func TestDeadlineService_ResetConfigWithoutOverride(t *testing.T) {
	env := newTestEnv(t)
	svc := env.deadlineService()
	ctx := context.Background()

	err := svc.ResetConfig(ctx, "general")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.ResetConfig(ctx, "bogus:key:x")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDeadlineService_WindowedMatchesFullScan(t *testing.T) {
	env := newTestEnv(t)
	svc := env.deadlineService()
	ctx := context.Background()

	for i, days := range []int{-400, -1, 0, 6, 7, 8, 15, 16, 200} {
		doc := testutil.NewTestGeneralDocument(fmt.Sprintf("G%d", i), testutil.WithExpiry(testutil.Days(days)))
		require.NoError(t, env.generals.Create(ctx, doc))
	}

	full, err := svc.Upcoming(ctx, app.NewUpcomingRequest())
	require.NoError(t, err)
	req := app.NewUpcomingRequest()
	req.Windowed = true
	windowed, err := svc.Upcoming(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, full.Items, windowed.Items)
	assert.Equal(t, full.Summary, windowed.Summary)
	assert.Equal(t, 5, full.Summary.Total)
}

func TestDeadlineService_SkipsUnreadableDeadlines(t *testing.T) {
	env := newTestEnv(t)
	svc := env.deadlineService()
	ctx := context.Background()

	good := testutil.NewTestGeneralDocument("Good", testutil.WithExpiry(testutil.Days(1)))
	bad := testutil.NewTestGeneralDocument("Bad", testutil.WithExpiry(testutil.Days(1)))
	require.NoError(t, env.generals.Create(ctx, good))
	require.NoError(t, env.generals.Create(ctx, bad))
	_, err := env.db.ExecContext(ctx, `UPDATE general_documents SET expiry_date = '31/12/2026' WHERE id = ?`, bad.ID)
	require.NoError(t, err)

	resp, err := svc.Upcoming(ctx, app.NewUpcomingRequest())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, good.ID, resp.Items[0].ID)
	assert.Equal(t, []string{"general:" + bad.ID}, resp.Skipped)
}

func TestDeadlineService_UpdateConfigsIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := env.deadlineService()
	ctx := context.Background()

	err := svc.UpdateConfigs(ctx, []domain.DeadlineConfig{
		{Key: "invoice", DaysBefore: 10},
		{Key: "receipt", DaysBefore: 5},
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	err = svc.UpdateConfigs(ctx, []domain.DeadlineConfig{{Key: "invoice", DaysBefore: -3}})
	require.ErrorIs(t, err, domain.ErrValidation)

	configs, err := svc.Configs(ctx)
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestDeadlineService_UpdateConfigsRollsBackOnWriteFailure(t *testing.T) {
	env := newTestEnv(t)
	failUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 2, Err: fmt.Errorf("injected upsert failure")}
	svc := NewDeadlineService(env.index, env.configs, failUoW, domain.DefaultThresholds(), env.clock())
	ctx := context.Background()

	err := svc.UpdateConfigs(ctx, []domain.DeadlineConfig{
		{Key: "invoice", DaysBefore: 10},
		{Key: "general", DaysBefore: 5},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected upsert failure")

	configs, err := svc.Configs(ctx)
	require.NoError(t, err)
	assert.Empty(t, configs)
}

func TestDeadlineService_ConfiguredDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := NewDeadlineService(env.index, env.configs, env.uow, domain.ThresholdDefaults{General: 2, Invoice: 30}, env.clock())
	ctx := context.Background()

	require.NoError(t, env.generals.Create(ctx, testutil.NewTestGeneralDocument("G", testutil.WithExpiry(testutil.Days(5)))))

	resp, err := svc.Upcoming(ctx, app.NewUpcomingRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, domain.ThresholdDefaults{General: 2, Invoice: 30}, svc.Defaults())
}
