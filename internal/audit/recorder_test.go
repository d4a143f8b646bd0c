package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"gorm.io/gorm"
)

type fakeRepository struct {
	inserted  []models.AssetHistory
	insertErr error
	listFn    func(ctx context.Context, assetID uuid.UUID, limit int) ([]HistoryRow, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Insert(ctx context.Context, entry *models.AssetHistory) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *entry)
	return nil
}

func (f *fakeRepository) ListByAsset(ctx context.Context, assetID uuid.UUID, limit int) ([]HistoryRow, error) {
	if f.listFn != nil {
		return f.listFn(ctx, assetID, limit)
	}
	return nil, nil
}

func TestRecorder_RecordCreation(t *testing.T) {
	repo := &fakeRepository{}
	recorder, err := NewRecorder(repo)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	assetID := uuid.New()
	actor := uuid.New()
	if err := recorder.RecordCreation(context.Background(), nil, assetID, &actor); err != nil {
		t.Fatalf("record creation: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(repo.inserted))
	}
	entry := repo.inserted[0]
	if entry.Action != ActionCreated {
		t.Fatalf("expected action %q, got %q", ActionCreated, entry.Action)
	}
	if entry.AssetID != assetID {
		t.Fatalf("unexpected asset id %s", entry.AssetID)
	}
	if entry.FieldName != nil {
		t.Fatal("creation rows should not carry a field name")
	}
}

func TestRecorder_RecordDeltasOneRowPerField(t *testing.T) {
	repo := &fakeRepository{}
	recorder, _ := NewRecorder(repo)

	assetID := uuid.New()
	deltas := []Delta{
		{Field: "status", Old: strPtr("Active"), New: strPtr("Retired")},
		{Field: "location", Old: strPtr("Field A"), New: strPtr("Field B")},
	}
	if err := recorder.RecordDeltas(context.Background(), nil, assetID, deltas, nil); err != nil {
		t.Fatalf("record deltas: %v", err)
	}

	if len(repo.inserted) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(repo.inserted))
	}
	for i, want := range []string{"status", "location"} {
		entry := repo.inserted[i]
		if entry.Action != ActionUpdated {
			t.Fatalf("row %d: expected action %q, got %q", i, ActionUpdated, entry.Action)
		}
		if entry.FieldName == nil || *entry.FieldName != want {
			t.Fatalf("row %d: expected field %q, got %v", i, want, entry.FieldName)
		}
	}
}

func TestRecorder_RecordDeltasPropagatesError(t *testing.T) {
	repo := &fakeRepository{insertErr: errors.New("boom")}
	recorder, _ := NewRecorder(repo)

	deltas := []Delta{{Field: "status", New: strPtr("Retired")}}
	if err := recorder.RecordDeltas(context.Background(), nil, uuid.New(), deltas, nil); err == nil {
		t.Fatal("expected insert error to propagate")
	}
}

func TestNewRecorderRequiresRepo(t *testing.T) {
	if _, err := NewRecorder(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
