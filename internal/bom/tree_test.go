package bom

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rigtrack/rigtrack-backend/pkg/enums"
)

func testItem(id uuid.UUID, parent *uuid.UUID, createdAt time.Time) ItemRow {
	return ItemRow{
		ID:          id,
		ParentID:    parent,
		ItemType:    enums.BOMItemTypeSerialized,
		Quantity:    decimal.NewFromInt(1),
		UnitCostUSD: decimal.Zero,
		CreatedAt:   createdAt,
	}
}

func TestOrderTreeDepthAndOrdering(t *testing.T) {
	base := time.Now()
	root := uuid.New()
	childA := uuid.New()
	childB := uuid.New()
	grandchild := uuid.New()

	items := []ItemRow{
		testItem(grandchild, &childA, base.Add(3*time.Second)),
		testItem(childB, &root, base.Add(2*time.Second)),
		testItem(childA, &root, base.Add(time.Second)),
		testItem(root, nil, base),
	}

	ordered := orderTree(items)
	if len(ordered) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(ordered))
	}

	position := make(map[uuid.UUID]int, len(ordered))
	depth := make(map[uuid.UUID]int, len(ordered))
	for i, node := range ordered {
		position[node.ID] = i
		depth[node.ID] = node.Depth
	}

	// Every node appears after its parent with depth = parent depth + 1.
	for _, node := range ordered {
		if node.ParentID == nil {
			if node.Depth != 0 {
				t.Fatalf("root %s has depth %d", node.ID, node.Depth)
			}
			continue
		}
		if position[node.ID] <= position[*node.ParentID] {
			t.Fatalf("node %s appears before its parent", node.ID)
		}
		if node.Depth != depth[*node.ParentID]+1 {
			t.Fatalf("node %s depth %d, parent depth %d", node.ID, node.Depth, depth[*node.ParentID])
		}
	}

	// Siblings keep insertion order: childA was created before childB.
	if position[childA] >= position[childB] {
		t.Fatal("expected childA before childB")
	}

	// Paths concatenate ancestor ids root-to-leaf.
	wantPath := root.String() + "/" + childA.String() + "/" + grandchild.String()
	if got := ordered[position[grandchild]].Path; got != wantPath {
		t.Fatalf("unexpected path %q, want %q", got, wantPath)
	}
}

func TestOrderTreeTerminatesOnCycle(t *testing.T) {
	base := time.Now()
	a := uuid.New()
	b := uuid.New()
	root := uuid.New()

	// a and b point at each other; only the root subtree is reachable.
	items := []ItemRow{
		testItem(root, nil, base),
		testItem(a, &b, base.Add(time.Second)),
		testItem(b, &a, base.Add(2*time.Second)),
	}

	ordered := orderTree(items)
	if len(ordered) != 1 {
		t.Fatalf("expected only the root to be emitted, got %d nodes", len(ordered))
	}
	if ordered[0].ID != root {
		t.Fatalf("expected root node, got %s", ordered[0].ID)
	}
}

func TestSubtreeIDsIncludesRootAndDescendants(t *testing.T) {
	base := time.Now()
	root := uuid.New()
	child := uuid.New()
	grandchild := uuid.New()
	unrelated := uuid.New()

	items := []ItemRow{
		testItem(root, nil, base),
		testItem(child, &root, base.Add(time.Second)),
		testItem(grandchild, &child, base.Add(2*time.Second)),
		testItem(unrelated, nil, base.Add(3*time.Second)),
	}

	ids := subtreeIDs(items, root)
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[root] || !seen[child] || !seen[grandchild] {
		t.Fatal("subtree missing expected members")
	}
	if seen[unrelated] {
		t.Fatal("subtree must not contain unrelated items")
	}
}

func TestSubtreeIDsTerminatesOnCycle(t *testing.T) {
	base := time.Now()
	a := uuid.New()
	b := uuid.New()

	items := []ItemRow{
		testItem(a, &b, base),
		testItem(b, &a, base.Add(time.Second)),
	}

	ids := subtreeIDs(items, a)
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids from cyclic pair, got %d", len(ids))
	}
}

func TestSummarize(t *testing.T) {
	base := time.Now()
	root := uuid.New()

	rootItem := testItem(root, nil, base)
	rootItem.UnitCostUSD = decimal.NewFromInt(100)

	bulkID := uuid.New()
	bulk := testItem(bulkID, &root, base.Add(time.Second))
	bulk.ItemType = enums.BOMItemTypeBulk
	bulk.Quantity = decimal.NewFromInt(2)
	bulk.UnitCostUSD = decimal.NewFromInt(10)

	serialID := uuid.New()
	serial := testItem(serialID, &root, base.Add(2*time.Second))
	serial.Quantity = decimal.NewFromInt(1)
	serial.UnitCostUSD = decimal.NewFromInt(50)

	summary := summarize([]ItemRow{rootItem, bulk, serial})
	if summary.Total != 3 {
		t.Fatalf("expected total 3, got %d", summary.Total)
	}
	if summary.Bulk != 1 || summary.Serialized != 2 {
		t.Fatalf("unexpected type counts: %+v", summary)
	}
	// 2x10 + 1x50 + 1x100
	if !summary.TotalCost.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("expected total cost 170, got %s", summary.TotalCost)
	}
}
