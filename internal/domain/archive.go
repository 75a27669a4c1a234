package domain

import (
	"fmt"
	"sort"
	"time"
)

// ArchiveNode is a folder in the archive forest. ParentID nil marks a root.
// A non-nil ParentID may dangle after its parent was deleted; such nodes are
// orphans and only reachable by id.
type ArchiveNode struct {
	ID          string
	Code        string
	Description string
	Period      string
	DateLabel   string
	Notes       string
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsRoot reports whether the node has no parent reference.
func (n *ArchiveNode) IsRoot() bool {
	return n.ParentID == nil
}

// DisplayName returns "CODE Description" when a code is set.
func (n *ArchiveNode) DisplayName() string {
	if n.Code == "" {
		return n.Description
	}
	return fmt.Sprintf("%s %s", n.Code, n.Description)
}

// ArchiveArena indexes nodes by id for parent-chain walks.
type ArchiveArena map[string]*ArchiveNode

// NewArchiveArena builds an arena from a flat node list.
func NewArchiveArena(nodes []*ArchiveNode) ArchiveArena {
	arena := make(ArchiveArena, len(nodes))
	for _, n := range nodes {
		arena[n.ID] = n
	}
	return arena
}

// AncestorPath returns the chain from the root down to id (inclusive).
// The walk stops at a nil or dangling parent. It takes at most len(a) steps;
// exceeding that means the chain loops and ErrCycle is returned together with
// the nodes visited so far (nearest first).
func (a ArchiveArena) AncestorPath(id string) ([]*ArchiveNode, error) {
	cur, ok := a[id]
	if !ok {
		return nil, NotFoundf("archive node %s", id)
	}

	limit := len(a)
	var path []*ArchiveNode
	for cur != nil {
		if len(path) >= limit {
			return path, fmt.Errorf("walking ancestors of %s: %w", id, ErrCycle)
		}
		path = append(path, cur)
		if cur.ParentID == nil {
			break
		}
		cur = a[*cur.ParentID]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// CheckReparent validates moving nodeID under parentID. It walks upward from
// the proposed parent and rejects the move if nodeID is met, which covers
// parentID == nodeID. A pre-existing loop above the parent is reported as
// ErrCycle.
func (a ArchiveArena) CheckReparent(nodeID, parentID string) error {
	if nodeID == parentID {
		return Invalidf("archive node %s cannot be its own parent", nodeID)
	}

	limit := len(a)
	cur := a[parentID]
	for steps := 0; cur != nil; steps++ {
		if steps > limit {
			return fmt.Errorf("walking ancestors of %s: %w", parentID, ErrCycle)
		}
		if cur.ID == nodeID {
			return Invalidf("moving archive node %s under %s would create a cycle", nodeID, parentID)
		}
		if cur.ParentID == nil {
			return nil
		}
		cur = a[*cur.ParentID]
	}
	return nil
}

// Orphans returns nodes whose parent reference no longer resolves.
func (a ArchiveArena) Orphans() []*ArchiveNode {
	var out []*ArchiveNode
	for _, n := range a {
		if n.IsRoot() {
			continue
		}
		if _, ok := a[*n.ParentID]; !ok {
			out = append(out, n)
		}
	}
	SortNewestFirst(out)
	return out
}

// SortNewestFirst orders nodes by creation time descending, ties by id.
func SortNewestFirst(nodes []*ArchiveNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if !nodes[i].CreatedAt.Equal(nodes[j].CreatedAt) {
			return nodes[i].CreatedAt.After(nodes[j].CreatedAt)
		}
		return nodes[i].ID < nodes[j].ID
	})
}
