package bom

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

// orderTree walks the parent adjacency from the roots and returns the
// depth-annotated, path-ordered sequence: every parent precedes its
// descendants and siblings keep insertion order. Items whose parent chain
// is broken or cyclic are skipped rather than looping forever.
func orderTree(items []ItemRow) []TreeNode {
	children := make(map[uuid.UUID][]ItemRow, len(items))
	var roots []ItemRow
	for _, item := range items {
		if item.ParentID == nil {
			roots = append(roots, item)
			continue
		}
		children[*item.ParentID] = append(children[*item.ParentID], item)
	}

	sortSiblings(roots)
	for parent := range children {
		sortSiblings(children[parent])
	}

	ordered := make([]TreeNode, 0, len(items))
	visited := make(map[uuid.UUID]bool, len(items))

	type frame struct {
		item  ItemRow
		depth int
		path  string
	}

	// Depth-first with an explicit stack; push siblings in reverse so the
	// first sibling is popped first.
	var stack []frame
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{item: roots[i], depth: 0, path: roots[i].ID.String()})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[top.item.ID] {
			continue
		}
		visited[top.item.ID] = true

		ordered = append(ordered, TreeNode{ItemRow: top.item, Depth: top.depth, Path: top.path})

		kids := children[top.item.ID]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				item:  kids[i],
				depth: top.depth + 1,
				path:  top.path + "/" + kids[i].ID.String(),
			})
		}
	}

	return ordered
}

func sortSiblings(items []ItemRow) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID.String() < items[j].ID.String()
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

// subtreeIDs returns the ids of root and all its descendants. The visited
// set guards against parent cycles in corrupted data.
func subtreeIDs(items []ItemRow, root uuid.UUID) []uuid.UUID {
	children := make(map[uuid.UUID][]uuid.UUID, len(items))
	for _, item := range items {
		if item.ParentID != nil {
			children[*item.ParentID] = append(children[*item.ParentID], item.ID)
		}
	}

	var ids []uuid.UUID
	visited := make(map[uuid.UUID]bool)
	queue := []uuid.UUID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		ids = append(ids, id)
		queue = append(queue, children[id]...)
	}
	return ids
}

// summarize aggregates type counts and Σ(unit_cost × quantity) over items.
func summarize(items []ItemRow) TreeSummary {
	summary := TreeSummary{Total: len(items), TotalCost: decimal.Zero}
	for _, item := range items {
		switch item.ItemType {
		case enums.BOMItemTypeSerialized:
			summary.Serialized++
		case enums.BOMItemTypeBulk:
			summary.Bulk++
		}
		summary.TotalCost = summary.TotalCost.Add(item.UnitCostUSD.Mul(item.Quantity))
	}
	return summary
}
