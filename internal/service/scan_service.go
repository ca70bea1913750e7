package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recircle-core/internal/model"
	"recircle-core/pkg/errno"
	"recircle-core/pkg/monitor"
)

// ScanTrailLimit caps the audit trail page returned to callers.
const ScanTrailLimit = 50

// ScanService owns the append-only per-item scan audit log. Events are only
// ever inserted, never updated or deleted.
type ScanService struct {
	db *gorm.DB
}

func NewScanService(db *gorm.DB) *ScanService {
	return &ScanService{db: db}
}

// Record appends one scan event inside the caller's transaction.
func (s *ScanService) Record(tx *gorm.DB, itemID, scanType string, shopID *string) (*model.ScanEvent, error) {
	ev := model.ScanEvent{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		ScanType:  scanType,
		ShopID:    shopID,
		ScannedAt: time.Now(),
	}
	if err := tx.Create(&ev).Error; err != nil {
		return nil, err
	}
	if monitor.Business != nil {
		monitor.Business.ScanEventsTotal.WithLabelValues(scanType).Inc()
	}
	return &ev, nil
}

// RecordItemView appends an ITEM_VIEW event for the read path.
func (s *ScanService) RecordItemView(ctx context.Context, itemID string, shopID *string) (*model.ScanEvent, error) {
	if itemID == "" {
		return nil, errno.ErrMissingID
	}

	var item model.Item
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.ErrItemNotFound
		}
		return nil, err
	}

	return s.Record(s.db.WithContext(ctx), itemID, model.ScanItemView, shopID)
}

// Trail returns the item's scan events, most recent first, capped at
// ScanTrailLimit rows.
func (s *ScanService) Trail(ctx context.Context, itemID string) ([]model.ScanEvent, error) {
	return s.trail(s.db.WithContext(ctx), itemID)
}

// trail is the transaction-aware variant used by the completion engine so the
// returned audit view matches the state being committed.
func (s *ScanService) trail(tx *gorm.DB, itemID string) ([]model.ScanEvent, error) {
	var events []model.ScanEvent
	err := tx.
		Where("item_id = ?", itemID).
		Order("scanned_at DESC").
		Limit(ScanTrailLimit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
