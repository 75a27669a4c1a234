package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/archivio/internal/domain"
)

var testNumberCounter atomic.Int64

// Fixed dates keep deadline arithmetic deterministic across fixtures.
var (
	TestToday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	TestNow   = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
)

// Days returns TestToday shifted by n calendar days.
func Days(n int) time.Time {
	return TestToday.AddDate(0, 0, n)
}

// Archive node options
type ArchiveOption func(*domain.ArchiveNode)

func WithParent(id string) ArchiveOption {
	return func(n *domain.ArchiveNode) {
		n.ParentID = &id
	}
}

func WithCode(code string) ArchiveOption {
	return func(n *domain.ArchiveNode) {
		n.Code = code
	}
}

func WithPeriod(period string) ArchiveOption {
	return func(n *domain.ArchiveNode) {
		n.Period = period
	}
}

// WithCreatedAt overrides both timestamps, for ordering tests.
func WithCreatedAt(t time.Time) ArchiveOption {
	return func(n *domain.ArchiveNode) {
		n.CreatedAt = t
		n.UpdatedAt = t
	}
}

func NewTestArchiveNode(description string, opts ...ArchiveOption) *domain.ArchiveNode {
	now := time.Now().UTC()
	n := &domain.ArchiveNode{
		ID:          uuid.New().String(),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Party fixtures
func NewTestParty(kind domain.EntityType, name string) *domain.Party {
	return &domain.Party{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// General document options
type GeneralOption func(*domain.GeneralDocument)

func WithExpiry(d time.Time) GeneralOption {
	return func(g *domain.GeneralDocument) {
		g.ExpiryDate = &d
	}
}

func WithGeneralType(code string) GeneralOption {
	return func(g *domain.GeneralDocument) {
		g.TypeCode = code
	}
}

func WithOwner(p *domain.Party) GeneralOption {
	return func(g *domain.GeneralDocument) {
		g.Owner = &domain.OwnerRef{Type: p.Kind, ID: p.ID}
	}
}

func WithGeneralArchive(id string) GeneralOption {
	return func(g *domain.GeneralDocument) {
		g.ArchiveID = &id
	}
}

func WithAttachment(path string) GeneralOption {
	return func(g *domain.GeneralDocument) {
		g.Attachments = append(g.Attachments, domain.Attachment{
			ID:      uuid.New().String(),
			Path:    path,
			AddedAt: time.Now().UTC(),
		})
	}
}

func NewTestGeneralDocument(description string, opts ...GeneralOption) *domain.GeneralDocument {
	now := time.Now().UTC()
	g := &domain.GeneralDocument{
		ID:          uuid.New().String(),
		Description: description,
		IssueDate:   TestToday.AddDate(0, -1, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Invoice options
type InvoiceOption func(*domain.Invoice)

func WithDue(d time.Time) InvoiceOption {
	return func(inv *domain.Invoice) {
		inv.DueDate = &d
	}
}

func WithInvoiceType(code string) InvoiceOption {
	return func(inv *domain.Invoice) {
		inv.TypeCode = code
	}
}

func WithInvoiceArchive(id string) InvoiceOption {
	return func(inv *domain.Invoice) {
		inv.ArchiveID = &id
	}
}

func WithTotal(amount string) InvoiceOption {
	return func(inv *domain.Invoice) {
		d := decimal.RequireFromString(amount)
		inv.Total = &d
	}
}

func WithNumber(number string) InvoiceOption {
	return func(inv *domain.Invoice) {
		inv.Number = number
	}
}

// NewTestInvoice builds an invoice owned by p, which must be a supplier or
// client.
func NewTestInvoice(p *domain.Party, opts ...InvoiceOption) *domain.Invoice {
	now := time.Now().UTC()
	inv := &domain.Invoice{
		ID:        uuid.New().String(),
		TypeCode:  "TD01",
		Number:    fmt.Sprintf("%d/2026", testNumberCounter.Add(1)),
		IssueDate: TestToday.AddDate(0, -1, 0),
		Owner:     domain.OwnerRef{Type: p.Kind, ID: p.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Notification options
type NotificationOption func(*domain.Notification)

func WithDedupKey(key string) NotificationOption {
	return func(n *domain.Notification) {
		n.DedupKey = &key
	}
}

func WithRead() NotificationOption {
	return func(n *domain.Notification) {
		n.IsRead = true
	}
}

func WithNotificationTime(t time.Time) NotificationOption {
	return func(n *domain.Notification) {
		n.CreatedAt = t
	}
}

func NewTestNotification(title string, opts ...NotificationOption) *domain.Notification {
	n := &domain.Notification{
		ID:        uuid.New().String(),
		Type:      domain.NotificationInfo,
		Title:     title,
		CreatedAt: TestNow,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}
