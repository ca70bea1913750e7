package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"recircle-core/internal/event"
	"recircle-core/internal/model"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
	"recircle-core/pkg/monitor"
)

// EntrySource tags how a completion request reached the engine. QR and
// manual completion share the whole transaction body; the tag only changes
// the authorization predicate and whether a shop id is mandatory.
type EntrySource string

const (
	EntryQR     EntrySource = "qr"
	EntryManual EntrySource = "manual"
)

// Scan results
const (
	ScanResultCompleted        = "completed"
	ScanResultAlreadyCompleted = "already_completed"
)

// CompletionResult is returned to the scan caller.
type CompletionResult struct {
	ClaimID     string            `json:"claim_id"`
	ClaimStatus string            `json:"claim_status"`
	ScanType    string            `json:"scan_type"`
	ScanResult  string            `json:"scan_result"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	ScanEvents  []model.ScanEvent `json:"scan_events"`
}

// CompletionService is the transactional engine that finishes a claim:
// lock, validate, transition claim and item, append the audit event, and
// issue rewards, all in one transaction that is re-entrant under scanner
// retries.
type CompletionService struct {
	db       *gorm.DB
	rewards  *RewardService
	scans    *ScanService
	notifier *Notifier
}

func NewCompletionService(db *gorm.DB, rewards *RewardService, scans *ScanService, notifier *Notifier) *CompletionService {
	return &CompletionService{
		db:       db,
		rewards:  rewards,
		scans:    scans,
		notifier: notifier,
	}
}

// CompleteClaim certifies the physical handover of an item. Both entry paths
// land here; everything below runs in one transaction holding a pessimistic
// write lock on the item's claim rows.
func (s *CompletionService) CompleteClaim(ctx context.Context, actor *auth.ActorContext, itemID, shopID string, source EntrySource) (*CompletionResult, error) {
	if itemID == "" {
		return nil, errno.ErrMissingID
	}
	if source == EntryQR && shopID == "" {
		return nil, errno.ErrMissingID
	}

	var result CompletionResult
	var item model.Item
	var claim model.Claim
	replay := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Actor must be authenticated, active, and allowed on this path.
		if _, err := requireActiveUser(tx, actor); err != nil {
			return err
		}
		roleOK := actor.HasAnyRole(auth.RoleAdmin, auth.RoleFacility, auth.RolePartner, auth.RoleCollector)
		if !roleOK && source == EntryQR {
			return errno.ErrRoleNotAllowed
		}

		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errno.ErrItemNotFound
			}
			return err
		}
		// Manual path: the item's donor may complete without a scan role.
		if !roleOK && item.DonorID != actor.SubjectID {
			return errno.ErrRoleNotAllowed
		}

		// 2. Resolve the candidate claim under a write lock scoped to the
		// claims table. Locking every claim row of the item serializes
		// concurrent scans regardless of which row each of them ranks first.
		var candidates []model.Claim
		if err := lockForUpdate(tx, "claims").
			Where("item_id = ?", itemID).
			Find(&candidates).Error; err != nil {
			return err
		}
		if len(candidates) == 0 {
			return errno.ErrClaimNotFound
		}
		rankClaims(candidates)
		claim = candidates[0]

		// A completed item pins the retry to the claim that completed it,
		// even when legacy data left another approved sibling ranked first.
		// Without this, a scanner retry would complete the sibling and pay
		// a second reward pair.
		if item.Status == model.ItemStatusComplete {
			for i := range candidates {
				if candidates[i].Status == model.ClaimStatusComplete {
					claim = candidates[i]
					break
				}
			}
		}

		// 3. A declared drop-off location pins the completion to that shop.
		if item.DropOffShopID != nil && !strings.EqualFold(shopID, *item.DropOffShopID) {
			return errno.ErrShopMismatch
		}

		// 4. Non-privileged actors must be a party to the handover.
		if !actor.HasAnyRole(privilegedScanRoles...) {
			isCollector := claim.CollectorID == actor.SubjectID
			isDonor := source == EntryManual && item.DonorID == actor.SubjectID
			if !isCollector && !isDonor {
				return errno.ErrNotClaimParty
			}
		}

		// 5. Terminal and not-yet-approved guards.
		switch claim.Status {
		case model.ClaimStatusRejected, model.ClaimStatusCancelled:
			return errno.ErrClaimTerminal
		case model.ClaimStatusPendingApproval:
			return errno.ErrClaimNotApproved
		case model.ClaimStatusComplete:
			// Idempotent replay: no new mutation, no duplicate rewards.
			// Back-fill the completion timestamp if a past write lost it.
			replay = true
			if claim.CompletedAt == nil {
				now := time.Now()
				claim.CompletedAt = &now
				if err := tx.Model(&model.Claim{}).
					Where("id = ?", claim.ID).
					Update("completed_at", now).Error; err != nil {
					return err
				}
			}
			events, err := s.scans.trail(tx, itemID)
			if err != nil {
				return err
			}
			result = CompletionResult{
				ClaimID:     claim.ID,
				ClaimStatus: claim.Status,
				ScanType:    model.ScanClaimOut,
				ScanResult:  ScanResultAlreadyCompleted,
				CompletedAt: claim.CompletedAt,
				ScanEvents:  events,
			}
			return nil
		case model.ClaimStatusApproved:
			// fall through to the success path
		default:
			return errno.ErrClaimNotCompletable
		}

		// Completion only leaves the statuses a claim can be collected from.
		if !model.ItemClaimable(item.Status) {
			return errno.ErrItemNotCompletable
		}

		// 6. Success path: complete claim and item, append CLAIM_OUT,
		// award both parties. All inside this transaction.
		now := time.Now()
		claim.Status = model.ClaimStatusComplete
		claim.CompletedAt = &now
		if err := tx.Save(&claim).Error; err != nil {
			return err
		}

		item.Status = model.ItemStatusComplete
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		var scanShop *string
		if shopID != "" {
			scanShop = &shopID
		}
		if _, err := s.scans.Record(tx, item.ID, model.ScanClaimOut, scanShop); err != nil {
			return err
		}

		if err := s.rewards.AwardOnClaimComplete(tx, &claim, &item); err != nil {
			return err
		}

		events, err := s.scans.trail(tx, itemID)
		if err != nil {
			return err
		}
		result = CompletionResult{
			ClaimID:     claim.ID,
			ClaimStatus: claim.Status,
			ScanType:    model.ScanClaimOut,
			ScanResult:  ScanResultCompleted,
			CompletedAt: claim.CompletedAt,
			ScanEvents:  events,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replay {
		if monitor.Business != nil {
			monitor.Business.CompletionReplayTotal.Inc()
		}
		return &result, nil
	}

	if monitor.Business != nil {
		monitor.Business.ClaimsCompletedTotal.WithLabelValues(string(source)).Inc()
	}
	collected := event.ItemCollectedEvent{
		ClaimID:     claim.ID,
		ItemID:      item.ID,
		DonorID:     item.DonorID,
		CollectorID: claim.CollectorID,
		ShopID:      shopID,
	}
	s.notifier.Emit(event.TopicItemCollected, item.DonorID, collected)
	s.notifier.Emit(event.TopicItemCollected, claim.CollectorID, collected)

	return &result, nil
}
