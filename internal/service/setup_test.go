package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/repository"
	"github.com/alexanderramin/archivio/internal/testutil"
)

// testEnv wires every repository against one in-memory database with the
// clock pinned to testutil.TestNow.
type testEnv struct {
	db        *sql.DB
	uow       db.UnitOfWork
	nodes     *repository.SQLiteArchiveRepo
	parties   *repository.SQLitePartyRepo
	generals  *repository.SQLiteGeneralDocumentRepo
	invoices  *repository.SQLiteInvoiceRepo
	index     *repository.SQLiteDocumentIndexRepo
	configs   *repository.SQLiteDeadlineConfigRepo
	notifRepo *repository.SQLiteNotificationRepo
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:        database,
		uow:       testutil.NewTestUoW(database),
		nodes:     repository.NewSQLiteArchiveRepo(database),
		parties:   repository.NewSQLitePartyRepo(database),
		generals:  repository.NewSQLiteGeneralDocumentRepo(database),
		invoices:  repository.NewSQLiteInvoiceRepo(database),
		index:     repository.NewSQLiteDocumentIndexRepo(database),
		configs:   repository.NewSQLiteDeadlineConfigRepo(database),
		notifRepo: repository.NewSQLiteNotificationRepo(database),
		now:       testutil.TestNow,
	}
}

func (e *testEnv) clock() Option {
	return WithClock(func() time.Time { return e.now })
}

func (e *testEnv) archiveService() ArchiveService {
	return NewArchiveService(e.nodes, e.index, e.clock())
}

func (e *testEnv) documentService(limit int) DocumentService {
	return NewDocumentService(e.nodes, e.parties, e.generals, e.invoices, e.index, e.uow, limit, e.clock())
}

func (e *testEnv) deadlineService() DeadlineService {
	return NewDeadlineService(e.index, e.configs, e.uow, domain.DefaultThresholds(), e.clock())
}

func (e *testEnv) notificationService(uow db.UnitOfWork) NotificationService {
	if uow == nil {
		uow = e.uow
	}
	return NewNotificationService(e.notifRepo, e.deadlineService(), uow, e.clock())
}
