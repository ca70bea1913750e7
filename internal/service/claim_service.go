package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"recircle-core/internal/event"
	"recircle-core/internal/model"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
	"recircle-core/pkg/monitor"
)

// ClaimService creates and approves claims. Completion lives in
// CompletionService; rejected and cancelled transitions are donor
// self-service handled outside this core.
type ClaimService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewClaimService(db *gorm.DB, notifier *Notifier) *ClaimService {
	return &ClaimService{db: db, notifier: notifier}
}

// Create opens a pending_approval claim for the actor on the item.
// Several collectors may hold pending claims on one item at once; the
// (item, collector) pair is unique.
func (s *ClaimService) Create(ctx context.Context, actor *auth.ActorContext, itemID string) (*model.Claim, error) {
	if itemID == "" {
		return nil, errno.ErrMissingID
	}

	var claim model.Claim
	var item model.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireActiveUser(tx, actor); err != nil {
			return err
		}
		if !actor.HasAnyRole(auth.RoleCollector, auth.RoleAdmin) {
			return errno.ErrRoleNotAllowed
		}

		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrItemNotFound
			}
			return err
		}
		if !model.ItemClaimable(item.Status) {
			return errno.ErrItemNotClaimable
		}

		claim = model.Claim{
			ID:          uuid.NewString(),
			ItemID:      item.ID,
			CollectorID: actor.SubjectID,
			Status:      model.ClaimStatusPendingApproval,
		}
		if err := tx.Create(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errno.ErrClaimExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if monitor.Business != nil {
		monitor.Business.ClaimsCreatedTotal.Inc()
	}
	s.notifier.Emit(event.TopicClaimCreated, item.DonorID, event.ClaimCreatedEvent{
		ClaimID:     claim.ID,
		ItemID:      item.ID,
		DonorID:     item.DonorID,
		CollectorID: claim.CollectorID,
	})
	return &claim, nil
}

// Approve moves a pending claim to approved. Only the item's donor or an
// admin may approve, and only while the item is still claimable. Sibling
// pending claims are left as they are, but only one claim per item may ever
// be promoted; approving a second sibling is a conflict.
func (s *ClaimService) Approve(ctx context.Context, actor *auth.ActorContext, claimID string) (*model.Claim, error) {
	if claimID == "" {
		return nil, errno.ErrMissingID
	}

	var claim model.Claim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireActiveUser(tx, actor); err != nil {
			return err
		}

		if err := lockForUpdate(tx, "claims").First(&claim, "id = ?", claimID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrClaimNotFound
			}
			return err
		}

		var item model.Item
		if err := tx.First(&item, "id = ?", claim.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrItemNotFound
			}
			return err
		}

		if item.DonorID != actor.SubjectID && !actor.HasRole(auth.RoleAdmin) {
			return errno.ErrNotItemDonor
		}
		if claim.Status != model.ClaimStatusPendingApproval {
			return errno.ErrClaimNotPending
		}
		if !model.ItemClaimable(item.Status) {
			return errno.ErrItemNotClaimable
		}

		// At most one claim per item ever reaches approved/complete. The
		// check locks every claim row of the item so two concurrent
		// approvals of different siblings serialize here.
		var siblings []model.Claim
		if err := lockForUpdate(tx, "claims").
			Where("item_id = ?", claim.ItemID).
			Find(&siblings).Error; err != nil {
			return err
		}
		for _, sibling := range siblings {
			if sibling.ID == claim.ID {
				continue
			}
			if sibling.Status == model.ClaimStatusApproved || sibling.Status == model.ClaimStatusComplete {
				return errno.ErrItemClaimApproved
			}
		}

		now := time.Now()
		claim.Status = model.ClaimStatusApproved
		claim.ApprovedAt = &now
		return tx.Save(&claim).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Emit(event.TopicClaimApproved, claim.CollectorID, event.ClaimApprovedEvent{
		ClaimID:     claim.ID,
		ItemID:      claim.ItemID,
		CollectorID: claim.CollectorID,
	})
	return &claim, nil
}

// rankClaims orders candidates by lifecycle priority (approved first, then
// complete, then pending, then terminal), tie-broken by newest creation.
// Deterministic for a fixed snapshot; the completion engine operates on the
// top-ranked row.
func rankClaims(claims []model.Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		pi, pj := model.ClaimPriority(claims[i].Status), model.ClaimPriority(claims[j].Status)
		if pi != pj {
			return pi < pj
		}
		return claims[i].CreatedAt.After(claims[j].CreatedAt)
	})
}
