package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"recircle-core/internal/model"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
)

// ItemService handles the drop-off leg of the donate flow: a donor delivers
// the item to a shop, and the shop accepts or rejects it.
type ItemService struct {
	db    *gorm.DB
	scans *ScanService
	shops ShopDirectory
}

func NewItemService(db *gorm.DB, scans *ScanService, shops ShopDirectory) *ItemService {
	return &ItemService{db: db, scans: scans, shops: shops}
}

// AcceptDropOff moves pending_dropoff → awaiting_collection and appends a
// DROP_OFF_IN scan event.
func (s *ItemService) AcceptDropOff(ctx context.Context, actor *auth.ActorContext, itemID, shopID string) (*model.Item, error) {
	return s.resolveDropOff(ctx, actor, itemID, shopID, true)
}

// RejectDropOff moves pending_dropoff → rejected. Rejecting an item that is
// no longer pending is a conflict, not a no-op.
func (s *ItemService) RejectDropOff(ctx context.Context, actor *auth.ActorContext, itemID, shopID string) (*model.Item, error) {
	return s.resolveDropOff(ctx, actor, itemID, shopID, false)
}

func (s *ItemService) resolveDropOff(ctx context.Context, actor *auth.ActorContext, itemID, shopID string, accept bool) (*model.Item, error) {
	if itemID == "" || shopID == "" {
		return nil, errno.ErrMissingID
	}

	shop, err := s.shops.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	var item model.Item
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireActiveUser(tx, actor); err != nil {
			return err
		}
		if !actor.HasAnyRole(privilegedScanRoles...) {
			return errno.ErrRoleNotAllowed
		}

		if err := lockForUpdate(tx, "items").First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrItemNotFound
			}
			return err
		}

		if item.Status != model.ItemStatusPendingDropoff {
			return errno.ErrNotPendingDropoff
		}
		if item.DropOffShopID != nil && !strings.EqualFold(shop.ID, *item.DropOffShopID) {
			return errno.ErrShopMismatch
		}

		if !accept {
			item.Status = model.ItemStatusRejected
			return tx.Save(&item).Error
		}

		item.Status = model.ItemStatusAwaitingCollection
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		_, err := s.scans.Record(tx, item.ID, model.ScanDropOffIn, &shop.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
