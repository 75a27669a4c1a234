package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/archivio/internal/app"
	"github.com/alexanderramin/archivio/internal/domain"
	"github.com/alexanderramin/archivio/internal/repository"
)

type archiveService struct {
	nodes     repository.ArchiveRepo
	documents repository.DocumentIndexRepo
	opts      options
}

func NewArchiveService(
	nodes repository.ArchiveRepo,
	documents repository.DocumentIndexRepo,
	opts ...Option,
) ArchiveService {
	return &archiveService{
		nodes:     nodes,
		documents: documents,
		opts:      applyOptions(opts),
	}
}

func normalizeArchiveInput(in *app.ArchiveNodeInput) error {
	trimInput(&in.Code, &in.Description, &in.Period, &in.DateLabel, &in.Notes)
	in.ParentID = domain.StrPtr(domain.StrFromPtr(in.ParentID))
	return validateInput(in)
}

func (s *archiveService) Create(ctx context.Context, in app.ArchiveNodeInput) (node *domain.ArchiveNode, err error) {
	startedAt := time.Now()
	fields := map[string]any{"description": in.Description}
	defer func() { observe(ctx, s.opts.observer, "archive-create", startedAt, fields, err) }()

	if err = normalizeArchiveInput(&in); err != nil {
		return nil, err
	}
	if in.ParentID != nil {
		if _, err = s.nodes.GetByID(ctx, *in.ParentID); err != nil {
			return nil, err
		}
	}

	now := s.opts.now().UTC()
	node = &domain.ArchiveNode{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Description: in.Description,
		Period:      in.Period,
		DateLabel:   in.DateLabel,
		Notes:       in.Notes,
		ParentID:    in.ParentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.nodes.Create(ctx, node); err != nil {
		return nil, err
	}
	fields["id"] = node.ID
	return node, nil
}

func (s *archiveService) Update(ctx context.Context, id string, in app.ArchiveNodeInput) (node *domain.ArchiveNode, err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() { observe(ctx, s.opts.observer, "archive-update", startedAt, fields, err) }()

	if err = normalizeArchiveInput(&in); err != nil {
		return nil, err
	}
	node, err = s.nodes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.ParentID != nil && domain.StrFromPtr(node.ParentID) != *in.ParentID {
		if err = s.checkReparent(ctx, id, *in.ParentID); err != nil {
			return nil, err
		}
		fields["reparented"] = true
	}

	node.Code = in.Code
	node.Description = in.Description
	node.Period = in.Period
	node.DateLabel = in.DateLabel
	node.Notes = in.Notes
	node.ParentID = in.ParentID
	node.UpdatedAt = s.opts.now().UTC()
	if err = s.nodes.Update(ctx, node); err != nil {
		return nil, err
	}
	return node, nil
}

// checkReparent loads the whole forest so the upward walk from the new
// parent never issues one query per level.
func (s *archiveService) checkReparent(ctx context.Context, id, parentID string) error {
	arena, err := s.arena(ctx)
	if err != nil {
		return err
	}
	if _, ok := arena[parentID]; !ok {
		return domain.NotFoundf("archive node %s", parentID)
	}
	return arena.CheckReparent(id, parentID)
}

func (s *archiveService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"id": id}
	defer func() { observe(ctx, s.opts.observer, "archive-delete", startedAt, fields, err) }()

	children, err := s.nodes.ListChildren(ctx, &id)
	if err != nil {
		return err
	}
	linked, err := s.documents.ListByArchive(ctx, id)
	if err != nil {
		return err
	}
	fields["orphaned_children"] = len(children)
	fields["orphaned_documents"] = len(linked)

	return s.nodes.Delete(ctx, id)
}

func (s *archiveService) Get(ctx context.Context, id string) (*domain.ArchiveNode, error) {
	return s.nodes.GetByID(ctx, id)
}

func (s *archiveService) List(ctx context.Context) ([]*domain.ArchiveNode, error) {
	return s.nodes.ListAll(ctx)
}

func (s *archiveService) Detail(ctx context.Context, id string) (*app.ArchiveDetail, error) {
	arena, err := s.arena(ctx)
	if err != nil {
		return nil, err
	}
	path, err := arena.AncestorPath(id)
	if err != nil {
		return nil, err
	}
	children, err := s.nodes.ListChildren(ctx, &id)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.ListByArchive(ctx, id)
	if err != nil {
		return nil, err
	}
	return &app.ArchiveDetail{
		Node:        arena[id],
		Breadcrumbs: path,
		Children:    children,
		Documents:   docs,
	}, nil
}

func (s *archiveService) ListChildren(ctx context.Context, parentID *string) ([]*domain.ArchiveNode, error) {
	if parentID != nil && *parentID == "" {
		parentID = nil
	}
	return s.nodes.ListChildren(ctx, parentID)
}

// Breadcrumbs returns the root-first path ending with id. The walk is
// bounded by the node count and fails with ErrCycle rather than spinning.
func (s *archiveService) Breadcrumbs(ctx context.Context, id string) ([]*domain.ArchiveNode, error) {
	arena, err := s.arena(ctx)
	if err != nil {
		return nil, err
	}
	return arena.AncestorPath(id)
}

func (s *archiveService) Tree(ctx context.Context) ([]*app.ArchiveTreeNode, error) {
	all, err := s.nodes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.documents.CountByArchive(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[string][]*domain.ArchiveNode)
	var roots []*domain.ArchiveNode
	for _, n := range all {
		if n.IsRoot() {
			roots = append(roots, n)
			continue
		}
		children[*n.ParentID] = append(children[*n.ParentID], n)
	}

	visited := make(map[string]bool, len(all))
	var build func(n *domain.ArchiveNode) *app.ArchiveTreeNode
	build = func(n *domain.ArchiveNode) *app.ArchiveTreeNode {
		visited[n.ID] = true
		tn := &app.ArchiveTreeNode{Node: n, Documents: counts[n.ID]}
		kids := children[n.ID]
		domain.SortNewestFirst(kids)
		for _, c := range kids {
			if visited[c.ID] {
				continue
			}
			tn.Children = append(tn.Children, build(c))
		}
		return tn
	}

	domain.SortNewestFirst(roots)
	forest := make([]*app.ArchiveTreeNode, 0, len(roots))
	for _, r := range roots {
		forest = append(forest, build(r))
	}
	return forest, nil
}

func (s *archiveService) Orphans(ctx context.Context) ([]*domain.ArchiveNode, error) {
	arena, err := s.arena(ctx)
	if err != nil {
		return nil, err
	}
	return arena.Orphans(), nil
}

func (s *archiveService) arena(ctx context.Context) (domain.ArchiveArena, error) {
	all, err := s.nodes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewArchiveArena(all), nil
}
