package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/repository"
)

type partyService struct {
	parties repository.PartyRepo
	opts    options
}

func NewPartyService(parties repository.PartyRepo, opts ...Option) PartyService {
	return &partyService{parties: parties, opts: applyOptions(opts)}
}

func (s *partyService) Create(ctx context.Context, in app.PartyInput) (p *domain.Party, err error) {
	startedAt := time.Now()
	fields := map[string]any{"kind": in.Kind}
	defer func() { observe(ctx, s.opts.observer, "party-create", startedAt, fields, err) }()

	trimInput(&in.Kind, &in.Name, &in.TaxCode)
	in.Kind = strings.ToLower(in.Kind)
	if err = validateInput(in); err != nil {
		return nil, err
	}
	p = &domain.Party{
		ID:        uuid.New().String(),
		Kind:      domain.EntityType(in.Kind),
		Name:      in.Name,
		TaxCode:   strings.ToUpper(in.TaxCode),
		CreatedAt: s.opts.now().UTC(),
	}
	if err = s.parties.Create(ctx, p); err != nil {
		return nil, err
	}
	fields["id"] = p.ID
	return p, nil
}

func (s *partyService) Get(ctx context.Context, id string) (*domain.Party, error) {
	return s.parties.GetByID(ctx, id)
}

func (s *partyService) List(ctx context.Context, kind string) ([]*domain.Party, error) {
	filter, err := parseEntityFilter(kind)
	if err != nil {
		return nil, err
	}
	return s.parties.List(ctx, filter)
}
