package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineTitle_DependsOnlyOnStatusAndLabel(t *testing.T) {
	assert.Equal(t, "Expiring soon: Contrato X", DeadlineTitle(StatusUpcoming, "Contrato X"))
	assert.Equal(t, "Expired: Contrato X", DeadlineTitle(StatusExpired, "Contrato X"))
	assert.Equal(t, DeadlineTitle(StatusUpcoming, "A"), DeadlineTitle(StatusUpcoming, "A"))
}

func TestDeadlineDedupKey(t *testing.T) {
	assert.Equal(t, "general:doc-1:UPCOMING", DeadlineDedupKey(DocGeneral, "doc-1", StatusUpcoming))
	assert.NotEqual(t,
		DeadlineDedupKey(DocGeneral, "doc-1", StatusUpcoming),
		DeadlineDedupKey(DocGeneral, "doc-1", StatusExpired))
}

func TestDeadlineMessage(t *testing.T) {
	due := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Contrato X expires in 3 days (2026-03-13).", DeadlineMessage(StatusUpcoming, "Contrato X", due, 3))
	assert.Equal(t, "Contrato X expires today (2026-03-13).", DeadlineMessage(StatusUpcoming, "Contrato X", due, 0))
	assert.Equal(t, "Contrato X expired yesterday (2026-03-13).", DeadlineMessage(StatusExpired, "Contrato X", due, -1))
	assert.Equal(t, "Contrato X expired 4 days ago (2026-03-13).", DeadlineMessage(StatusExpired, "Contrato X", due, -4))
}

func TestNotification_MarkReadAndCreatedOn(t *testing.T) {
	n := &Notification{CreatedAt: testNow}
	assert.Equal(t, "2026-03-10", n.CreatedOn())
	n.MarkRead()
	assert.True(t, n.IsRead)
}

func TestSummarize_BothKinds(t *testing.T) {
	archive := "arch-1"
	expiry := testNow.AddDate(0, 0, 10)
	g := &GeneralDocument{
		ID: "g1", Description: "DURC 2026", TypeCode: "DURC",
		IssueDate: testNow, ExpiryDate: &expiry,
		Owner: &OwnerRef{Type: EntityStaff, ID: "p1"}, ArchiveID: &archive,
	}
	s := Summarize(g, "Mario Rossi")
	assert.Equal(t, DocGeneral, s.Kind)
	assert.Equal(t, "DURC 2026", s.Label())
	assert.Equal(t, EntityStaff, s.OwnerType)
	assert.Equal(t, "Mario Rossi", s.OwnerName)
	assert.Equal(t, "general:DURC", s.ThresholdKey())
	assert.Equal(t, &expiry, s.DeadlineDate)

	inv := &Invoice{ID: "i1", Number: "12/2026", Owner: OwnerRef{Type: EntityClient, ID: "c1"}}
	s = Summarize(inv, "ACME")
	assert.Equal(t, DocInvoice, s.Kind)
	assert.Equal(t, "Invoice 12/2026", s.Label())
	assert.Equal(t, EntityClient, s.OwnerType)
	assert.Empty(t, s.ThresholdKey())
	assert.Nil(t, s.ArchiveID)
}
