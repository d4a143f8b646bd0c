package bom

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

type fakeRepository struct {
	itemsByAsset map[uuid.UUID][]ItemRow
	itemsByID    map[uuid.UUID]*models.BOMItem
	inserted     []*models.BOMItem
	updated      map[string]any
	deletedIDs   []uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		itemsByAsset: map[uuid.UUID][]ItemRow{},
		itemsByID:    map[uuid.UUID]*models.BOMItem{},
	}
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) ListByAsset(ctx context.Context, assetID uuid.UUID) ([]ItemRow, error) {
	return f.itemsByAsset[assetID], nil
}

func (f *fakeRepository) ListFlat(ctx context.Context, filter FlatFilter) ([]FlatRow, error) {
	return nil, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BOMItem, error) {
	item, ok := f.itemsByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeRepository) GetDetail(ctx context.Context, id uuid.UUID) (*FlatRow, error) {
	if _, ok := f.itemsByID[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &FlatRow{}, nil
}

func (f *fakeRepository) Insert(ctx context.Context, item *models.BOMItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.inserted = append(f.inserted, item)
	f.itemsByID[item.ID] = item
	return nil
}

func (f *fakeRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	f.updated = fields
	return nil
}

func (f *fakeRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	f.deletedIDs = ids
	return int64(len(ids)), nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newServiceWithRepo(repo Repository) Service {
	svc, _ := NewService(repo, fakeTxRunner{})
	return svc
}

func strPtr(s string) *string {
	return &s
}

func TestService_CreateForcesNullSerialForBulk(t *testing.T) {
	repo := newFakeRepository()
	svc := newServiceWithRepo(repo)

	id, err := svc.Create(context.Background(), CreateItemInput{
		AssetID:      uuid.New(),
		Name:         "Drill Pipe Joint",
		ItemType:     enums.BOMItemTypeBulk,
		SerialNumber: strPtr("SN-123"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if repo.inserted[0].SerialNumber != nil {
		t.Fatalf("expected serial dropped for bulk item, got %q", *repo.inserted[0].SerialNumber)
	}
}

func TestService_CreateRequiresAssetAndName(t *testing.T) {
	svc := newServiceWithRepo(newFakeRepository())

	_, err := svc.Create(context.Background(), CreateItemInput{Name: "no asset"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateItemInput{AssetID: uuid.New()})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_CreateRejectsBulkParent(t *testing.T) {
	repo := newFakeRepository()
	assetID := uuid.New()
	parentID := uuid.New()
	repo.itemsByID[parentID] = &models.BOMItem{
		ID:       parentID,
		AssetID:  assetID,
		ItemType: enums.BOMItemTypeBulk,
	}
	svc := newServiceWithRepo(repo)

	_, err := svc.Create(context.Background(), CreateItemInput{
		AssetID:  assetID,
		Name:     "child",
		ParentID: &parentID,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestService_CreateRejectsMissingParent(t *testing.T) {
	repo := newFakeRepository()
	svc := newServiceWithRepo(repo)

	missing := uuid.New()
	_, err := svc.Create(context.Background(), CreateItemInput{
		AssetID:  uuid.New(),
		Name:     "child",
		ParentID: &missing,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_CreateRejectsCrossAssetParent(t *testing.T) {
	repo := newFakeRepository()
	parentID := uuid.New()
	repo.itemsByID[parentID] = &models.BOMItem{
		ID:       parentID,
		AssetID:  uuid.New(),
		ItemType: enums.BOMItemTypeSerialized,
	}
	svc := newServiceWithRepo(repo)

	_, err := svc.Create(context.Background(), CreateItemInput{
		AssetID:  uuid.New(),
		Name:     "child",
		ParentID: &parentID,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestService_CreateDefaults(t *testing.T) {
	repo := newFakeRepository()
	svc := newServiceWithRepo(repo)

	if _, err := svc.Create(context.Background(), CreateItemInput{
		AssetID: uuid.New(),
		Name:    "Mud Pump Liner",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	item := repo.inserted[0]
	if item.ItemType != enums.BOMItemTypeSerialized {
		t.Fatalf("expected default type Serialized, got %s", item.ItemType)
	}
	if item.Status != enums.BOMItemStatusActive {
		t.Fatalf("expected default status Active, got %s", item.Status)
	}
	if item.UOM != "EA" {
		t.Fatalf("expected default uom EA, got %s", item.UOM)
	}
	if !item.Quantity.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected default quantity 1, got %s", item.Quantity)
	}
}

func TestService_UpdateReDerivesBulkSerial(t *testing.T) {
	repo := newFakeRepository()
	id := uuid.New()
	repo.itemsByID[id] = &models.BOMItem{
		ID:           id,
		AssetID:      uuid.New(),
		ItemType:     enums.BOMItemTypeSerialized,
		SerialNumber: strPtr("SN-9"),
	}
	svc := newServiceWithRepo(repo)

	bulk := enums.BOMItemTypeBulk
	if err := svc.Update(context.Background(), id, UpdateItemInput{ItemType: &bulk}); err != nil {
		t.Fatalf("update: %v", err)
	}

	serial, ok := repo.updated["serial_number"]
	if !ok {
		t.Fatal("expected serial_number in update set")
	}
	if serial != nil {
		t.Fatalf("expected serial cleared when type becomes Bulk, got %v", serial)
	}
}

func TestService_UpdateRejectsBulkWithChildren(t *testing.T) {
	repo := newFakeRepository()
	assetID := uuid.New()
	id := uuid.New()
	child := uuid.New()
	repo.itemsByID[id] = &models.BOMItem{
		ID:       id,
		AssetID:  assetID,
		ItemType: enums.BOMItemTypeSerialized,
	}
	base := time.Now()
	repo.itemsByAsset[assetID] = []ItemRow{
		testItem(id, nil, base),
		testItem(child, &id, base.Add(time.Second)),
	}
	svc := newServiceWithRepo(repo)

	bulk := enums.BOMItemTypeBulk
	err := svc.Update(context.Background(), id, UpdateItemInput{ItemType: &bulk})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("expected no update applied, got %v", repo.updated)
	}
}

func TestService_UpdateRejectsDescendantParent(t *testing.T) {
	repo := newFakeRepository()
	assetID := uuid.New()
	root := uuid.New()
	child := uuid.New()
	grandchild := uuid.New()
	repo.itemsByID[root] = &models.BOMItem{
		ID:       root,
		AssetID:  assetID,
		ItemType: enums.BOMItemTypeSerialized,
	}
	repo.itemsByID[grandchild] = &models.BOMItem{
		ID:       grandchild,
		AssetID:  assetID,
		ItemType: enums.BOMItemTypeSerialized,
	}
	base := time.Now()
	repo.itemsByAsset[assetID] = []ItemRow{
		testItem(root, nil, base),
		testItem(child, &root, base.Add(time.Second)),
		testItem(grandchild, &child, base.Add(2*time.Second)),
	}
	svc := newServiceWithRepo(repo)

	err := svc.Update(context.Background(), root, UpdateItemInput{ParentID: &grandchild})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("expected no update applied, got %v", repo.updated)
	}
}

func TestService_UpdateAllowsValidReparent(t *testing.T) {
	repo := newFakeRepository()
	assetID := uuid.New()
	root := uuid.New()
	child := uuid.New()
	sibling := uuid.New()
	repo.itemsByID[child] = &models.BOMItem{
		ID:       child,
		AssetID:  assetID,
		ItemType: enums.BOMItemTypeSerialized,
	}
	repo.itemsByID[sibling] = &models.BOMItem{
		ID:       sibling,
		AssetID:  assetID,
		ItemType: enums.BOMItemTypeSerialized,
	}
	base := time.Now()
	repo.itemsByAsset[assetID] = []ItemRow{
		testItem(root, nil, base),
		testItem(child, &root, base.Add(time.Second)),
		testItem(sibling, nil, base.Add(2*time.Second)),
	}
	svc := newServiceWithRepo(repo)

	if err := svc.Update(context.Background(), child, UpdateItemInput{ParentID: &sibling}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.updated["parent_id"] != sibling {
		t.Fatalf("expected parent_id %s in update set, got %v", sibling, repo.updated)
	}
}

func TestService_UpdateNotFound(t *testing.T) {
	svc := newServiceWithRepo(newFakeRepository())

	err := svc.Update(context.Background(), uuid.New(), UpdateItemInput{Name: strPtr("x")})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_UpdateLeavesUnspecifiedFieldsAlone(t *testing.T) {
	repo := newFakeRepository()
	id := uuid.New()
	repo.itemsByID[id] = &models.BOMItem{
		ID:       id,
		AssetID:  uuid.New(),
		ItemType: enums.BOMItemTypeSerialized,
	}
	svc := newServiceWithRepo(repo)

	if err := svc.Update(context.Background(), id, UpdateItemInput{Name: strPtr("renamed")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(repo.updated) != 1 {
		t.Fatalf("expected only name in update set, got %v", repo.updated)
	}
	if repo.updated["name"] != "renamed" {
		t.Fatalf("unexpected update set %v", repo.updated)
	}
}

func TestService_DeleteReportsSubtreeCount(t *testing.T) {
	repo := newFakeRepository()
	assetID := uuid.New()
	root := uuid.New()
	child := uuid.New()
	grandchild := uuid.New()

	repo.itemsByID[root] = &models.BOMItem{ID: root, AssetID: assetID}
	base := time.Now()
	repo.itemsByAsset[assetID] = []ItemRow{
		testItem(root, nil, base),
		testItem(child, &root, base.Add(time.Second)),
		testItem(grandchild, &child, base.Add(2*time.Second)),
		testItem(uuid.New(), nil, base.Add(3*time.Second)),
	}
	svc := newServiceWithRepo(repo)

	count, err := svc.Delete(context.Background(), root)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 deleted, got %d", count)
	}
	if len(repo.deletedIDs) != 3 {
		t.Fatalf("expected 3 ids passed to delete, got %d", len(repo.deletedIDs))
	}
}

func TestService_DeleteNotFound(t *testing.T) {
	svc := newServiceWithRepo(newFakeRepository())

	_, err := svc.Delete(context.Background(), uuid.New())
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_TreeSummary(t *testing.T) {
	repo := newFakeRepository()
	assetID := uuid.New()
	base := time.Now()

	root := testItem(uuid.New(), nil, base)
	root.UnitCostUSD = decimal.NewFromInt(5)

	bulk := testItem(uuid.New(), &root.ID, base.Add(time.Second))
	bulk.ItemType = enums.BOMItemTypeBulk
	bulk.Quantity = decimal.NewFromInt(2)
	bulk.UnitCostUSD = decimal.NewFromInt(10)

	repo.itemsByAsset[assetID] = []ItemRow{root, bulk}
	svc := newServiceWithRepo(repo)

	result, err := svc.Tree(context.Background(), assetID)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(result.Items))
	}
	if result.Summary.Total != 2 || result.Summary.Bulk != 1 || result.Summary.Serialized != 1 {
		t.Fatalf("unexpected summary %+v", result.Summary)
	}
	if !result.Summary.TotalCost.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected total cost 25, got %s", result.Summary.TotalCost)
	}
}
