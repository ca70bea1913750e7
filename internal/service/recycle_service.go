package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recircle-core/internal/event"
	"recircle-core/internal/model"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
	"recircle-core/pkg/monitor"
)

// RecycleResult is returned by the intake/outtake scans.
type RecycleResult struct {
	ItemID     string           `json:"item_id"`
	ItemStatus string           `json:"item_status"`
	ScanType   string           `json:"scan_type"`
	Replayed   bool             `json:"replayed"`
	ScanEvent  *model.ScanEvent `json:"scan_event"`
}

// RecycleService runs the claim-independent two-step machine for
// recycle-option items: pending_recycle → pending_recycle_processing →
// recycled. Re-scanning a finished step appends an audit event but skips the
// status write.
type RecycleService struct {
	db       *gorm.DB
	scans    *ScanService
	shops    ShopDirectory
	notifier *Notifier
}

func NewRecycleService(db *gorm.DB, scans *ScanService, shops ShopDirectory, notifier *Notifier) *RecycleService {
	return &RecycleService{db: db, scans: scans, shops: shops, notifier: notifier}
}

// In records the facility intake scan.
func (s *RecycleService) In(ctx context.Context, actor *auth.ActorContext, itemID, shopID string) (*RecycleResult, error) {
	return s.step(ctx, actor, itemID, shopID,
		model.ItemStatusPendingRecycle, model.ItemStatusRecycleProcessing, model.ScanRecycleIn)
}

// Out records the processing-complete scan.
func (s *RecycleService) Out(ctx context.Context, actor *auth.ActorContext, itemID, shopID string) (*RecycleResult, error) {
	return s.step(ctx, actor, itemID, shopID,
		model.ItemStatusRecycleProcessing, model.ItemStatusRecycled, model.ScanRecycleOut)
}

func (s *RecycleService) step(ctx context.Context, actor *auth.ActorContext, itemID, shopID, from, to, scanType string) (*RecycleResult, error) {
	if itemID == "" || shopID == "" {
		return nil, errno.ErrMissingID
	}

	shop, err := s.shops.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	var result RecycleResult
	var donorID uint64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireActiveUser(tx, actor); err != nil {
			return err
		}
		if !actor.HasAnyRole(privilegedScanRoles...) {
			return errno.ErrRoleNotAllowed
		}

		var item model.Item
		if err := lockForUpdate(tx, "items").First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrItemNotFound
			}
			return err
		}
		donorID = item.DonorID

		if item.PickupOption != model.PickupRecycle {
			return errno.ErrNotRecycleItem
		}

		switch item.Status {
		case to:
			// Replay: keep the audit trail complete, leave the status alone.
			result.Replayed = true
		case from:
			item.Status = to
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		default:
			return errno.ErrRecycleSequence
		}

		ev, err := s.scans.Record(tx, item.ID, scanType, &shop.ID)
		if err != nil {
			return err
		}
		result.ItemID = item.ID
		result.ItemStatus = item.Status
		result.ScanType = scanType
		result.ScanEvent = ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	if monitor.Business != nil {
		monitor.Business.RecycleStepsTotal.WithLabelValues(scanType).Inc()
	}
	if !result.Replayed {
		s.notifier.Emit(event.TopicRecycleStep, donorID, event.RecycleStepEvent{
			ItemID: result.ItemID,
			Step:   scanType,
			ShopID: shop.ID,
		})
	}
	return &result, nil
}
