package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rigtrack/rigtrack-backend/pkg/db/models"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	// ActionCreated labels the history row written when an asset is registered.
	ActionCreated = "Created"
	// ActionUpdated labels one history row per changed field on update.
	ActionUpdated = "Updated"

	defaultHistoryLimit = 50
)

// Recorder appends immutable history rows for asset changes.
type Recorder struct {
	repo Repository
}

// NewRecorder wires the history trail dependencies.
func NewRecorder(repo Repository) (*Recorder, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "audit repository required")
	}
	return &Recorder{repo: repo}, nil
}

// RecordCreation writes the single "Created" row for a new asset. The
// provided tx keeps the row in the same transaction as the insert.
func (r *Recorder) RecordCreation(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, performedBy *uuid.UUID) error {
	notes := "Asset registered in system"
	entry := &models.AssetHistory{
		AssetID:     assetID,
		Action:      ActionCreated,
		Notes:       &notes,
		PerformedBy: performedBy,
	}
	if err := r.repo.WithTx(tx).Insert(ctx, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record asset creation")
	}
	return nil
}

// RecordDeltas writes one "Updated" row per changed field, in delta order,
// inside the caller's transaction.
func (r *Recorder) RecordDeltas(ctx context.Context, tx *gorm.DB, assetID uuid.UUID, deltas []Delta, performedBy *uuid.UUID) error {
	repo := r.repo.WithTx(tx)
	for _, delta := range deltas {
		field := delta.Field
		entry := &models.AssetHistory{
			AssetID:     assetID,
			Action:      ActionUpdated,
			FieldName:   &field,
			OldValue:    delta.Old,
			NewValue:    delta.New,
			PerformedBy: performedBy,
		}
		if err := repo.Insert(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record field change")
		}
	}
	return nil
}

// History returns the most recent history rows for an asset, newest first.
func (r *Recorder) History(ctx context.Context, assetID uuid.UUID) ([]HistoryRow, error) {
	rows, err := r.repo.ListByAsset(ctx, assetID, defaultHistoryLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list asset history")
	}
	return rows, nil
}
