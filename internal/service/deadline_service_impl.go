package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/db"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/repository"
	"github.com/alexanderramin/archivio/internal/scheduler"
)

type deadlineService struct {
	index    repository.DocumentIndexRepo
	configs  repository.DeadlineConfigRepo
	uow      db.UnitOfWork
	defaults domain.ThresholdDefaults
	opts     options
}

func NewDeadlineService(
	index repository.DocumentIndexRepo,
	configs repository.DeadlineConfigRepo,
	uow db.UnitOfWork,
	defaults domain.ThresholdDefaults,
	opts ...Option,
) DeadlineService {
	return &deadlineService{
		index:    index,
		configs:  configs,
		uow:      uow,
		defaults: defaults,
		opts:     applyOptions(opts),
	}
}

func (s *deadlineService) Defaults() domain.ThresholdDefaults {
	return s.defaults
}

// Upcoming recomputes every deadline from the stored documents. Nothing is
// cached between calls.
func (s *deadlineService) Upcoming(ctx context.Context, req app.UpcomingRequest) (*app.UpcomingResponse, error) {
	now := s.opts.now()
	if req.Now != nil {
		now = *req.Now
	}
	today := domain.DateOnly(now)

	thresholds, err := s.thresholdMap(ctx)
	if err != nil {
		return nil, err
	}

	var until *time.Time
	if req.Windowed {
		end := scheduler.WindowEnd(today, s.maxThreshold(thresholds))
		until = &end
	}

	var generals, invoices []domain.DocumentSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		generals, err = s.index.ListWithDeadline(gctx, domain.DocGeneral, until)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.index.ListWithDeadline(gctx, domain.DocInvoice, until)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &app.UpcomingResponse{GeneratedAt: now}
	var summary scheduler.Summary
	classified := make([]scheduler.Classified, 0, len(generals)+len(invoices))
	for _, d := range append(generals, invoices...) {
		if d.DeadlineDate == nil {
			s.opts.logger.WarnContext(ctx, "skipping document with unreadable deadline",
				"kind", d.Kind, "id", d.ID)
			resp.Skipped = append(resp.Skipped, formatRef(app.DocumentRef{Kind: d.Kind, ID: d.ID}))
			continue
		}
		days, source := domain.ResolveThreshold(thresholds, d.Kind, d.TypeCode, s.defaults)
		result := scheduler.ClassifyDeadline(scheduler.DeadlineInput{
			Today:         today,
			Deadline:      *d.DeadlineDate,
			ThresholdDays: days,
		})
		summary.Add(result.Status)
		if result.Status == domain.StatusOK && !req.IncludeOK {
			continue
		}
		classified = append(classified, scheduler.Classified{
			Document:  d,
			Threshold: days,
			Source:    source,
			Result:    result,
		})
	}

	scheduler.CanonicalSort(classified)
	resp.Items = make([]app.DeadlineItem, 0, len(classified))
	for _, c := range classified {
		resp.Items = append(resp.Items, app.DeadlineItem{
			ID:              c.Document.ID,
			Kind:            c.Document.Kind,
			Label:           c.Document.Label(),
			DeadlineDate:    c.Deadline().Format("2006-01-02"),
			OwnerName:       c.Document.OwnerName,
			ThresholdDays:   c.Threshold,
			ThresholdSource: c.Source,
			DaysRemaining:   c.Result.DaysRemaining,
			Status:          c.Result.Status,
		})
	}
	resp.Summary = app.DeadlineSummary{
		Expired:  summary.Expired,
		Upcoming: summary.Upcoming,
		Total:    summary.Total,
	}
	return resp, nil
}

func (s *deadlineService) thresholdMap(ctx context.Context) (map[string]int, error) {
	configs, err := s.configs.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int, len(configs))
	for _, c := range configs {
		m[c.Key] = c.DaysBefore
	}
	return m, nil
}

// maxThreshold is the widest window any document can alert in.
func (s *deadlineService) maxThreshold(thresholds map[string]int) int {
	widest := max(s.defaults.General, s.defaults.Invoice)
	for _, days := range thresholds {
		widest = max(widest, days)
	}
	return widest
}

func (s *deadlineService) Configs(ctx context.Context) ([]domain.DeadlineConfig, error) {
	return s.configs.List(ctx)
}

// UpdateConfigs validates every entry before writing any, then upserts
// them in one transaction.
func (s *deadlineService) UpdateConfigs(ctx context.Context, configs []domain.DeadlineConfig) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"count": len(configs)}
	defer func() { observe(ctx, s.opts.observer, "deadline-config-update", startedAt, fields, err) }()

	now := s.opts.now().UTC()
	normalized := make([]domain.DeadlineConfig, len(configs))
	for i, c := range configs {
		if err = c.Validate(); err != nil {
			return err
		}
		c.UpdatedAt = now
		normalized[i] = c
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteDeadlineConfigRepo(tx)
		for i := range normalized {
			if err := repo.Upsert(ctx, &normalized[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// ResetConfig drops the override for key so the next fallback applies.
func (s *deadlineService) ResetConfig(ctx context.Context, key string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"key": key}
	defer func() { observe(ctx, s.opts.observer, "deadline-config-reset", startedAt, fields, err) }()

	normalized, err := domain.NormalizeConfigKey(key)
	if err != nil {
		return err
	}
	return s.configs.Delete(ctx, normalized)
}
