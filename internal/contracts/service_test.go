package contracts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	"github.com/rigtrack/rigtrack-backend/pkg/enums"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
)

type fakeRepository struct {
	byID          map[uuid.UUID]*models.Contract
	inserted      []*models.Contract
	updatedFields map[string]any
	deleteCount   int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[uuid.UUID]*models.Contract{}}
}

func (f *fakeRepository) List(ctx context.Context, filter ListFilter) ([]ContractRow, error) {
	return nil, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	contract, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return contract, nil
}

func (f *fakeRepository) Insert(ctx context.Context, contract *models.Contract) error {
	contract.ID = uuid.New()
	f.inserted = append(f.inserted, contract)
	return nil
}

func (f *fakeRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	f.updatedFields = fields
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return f.deleteCount, nil
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestService_CreateDefaultsToPending(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := NewService(repo)

	id, err := svc.Create(context.Background(), CreateContractInput{
		ContractNo: "CT-2026-001",
		StartDate:  date(2026, 1, 1),
		EndDate:    date(2026, 12, 31),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if repo.inserted[0].Status != enums.ContractStatusPending {
		t.Fatalf("expected pending status, got %q", repo.inserted[0].Status)
	}
}

func TestService_CreateRejectsInvertedDates(t *testing.T) {
	svc, _ := NewService(newFakeRepository())

	_, err := svc.Create(context.Background(), CreateContractInput{
		ContractNo: "CT-2026-002",
		StartDate:  date(2026, 6, 1),
		EndDate:    date(2026, 1, 1),
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_UpdateRejectsInvertedDates(t *testing.T) {
	repo := newFakeRepository()
	contract := &models.Contract{
		ID:        uuid.New(),
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 12, 31),
	}
	repo.byID[contract.ID] = contract
	svc, _ := NewService(repo)

	end := date(2025, 1, 1)
	err := svc.Update(context.Background(), contract.ID, UpdateContractInput{EndDate: &end})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestService_DeleteNotFound(t *testing.T) {
	svc, _ := NewService(newFakeRepository())

	err := svc.Delete(context.Background(), uuid.New())
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
