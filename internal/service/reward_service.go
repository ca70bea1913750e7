package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recircle-core/internal/model"
	"recircle-core/pkg/config"
	"recircle-core/pkg/errno"
	"recircle-core/pkg/logger"
	"recircle-core/pkg/monitor"
)

// RewardService owns wallets and the ledger. Wallet and ledger rows are
// created and mutated here only; the completion engine is the sole caller of
// the award path.
type RewardService struct {
	db              *gorm.DB
	currency        string
	collectorAmount decimal.Decimal
	donorAmount     decimal.Decimal
}

func NewRewardService(db *gorm.DB, cfg config.RewardConfig) *RewardService {
	currency := cfg.Currency
	if currency == "" {
		currency = "PTS"
	}
	collector, err := decimal.NewFromString(cfg.CollectorAmount)
	if err != nil {
		collector = decimal.NewFromInt(10)
	}
	donor, err := decimal.NewFromString(cfg.DonorAmount)
	if err != nil {
		donor = decimal.NewFromInt(10)
	}
	return &RewardService{
		db:              db,
		currency:        currency,
		collectorAmount: collector,
		donorAmount:     donor,
	}
}

// Credit applies one idempotent credit inside the caller's transaction:
// insert a ledger row with the post-credit balance snapshot, then move the
// wallet's available balance. A duplicate (wallet, purpose, reference) means
// the credit already happened; that is success, not an error.
func (s *RewardService) Credit(tx *gorm.DB, walletID string, amount decimal.Decimal, purpose, reference string) error {
	var wallet model.Wallet
	if err := lockForUpdate(tx, "wallets").First(&wallet, "id = ?", walletID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errno.ErrWalletNotFound
		}
		return err
	}
	if wallet.Status != model.WalletStatusActive {
		return errno.ErrWalletFrozen
	}

	newBalance := wallet.AvailableAmount.Add(amount).Round(2)

	entry := model.LedgerEntry{
		ID:           uuid.NewString(),
		WalletID:     wallet.ID,
		Type:         model.EntryTypeCredit,
		Amount:       amount.Round(2),
		Currency:     wallet.Currency,
		BalanceAfter: newBalance,
		Purpose:      purpose,
		Reference:    reference,
	}
	if err := tx.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Idempotent duplicate: the ledger already holds this credit.
			return nil
		}
		return err
	}

	err := tx.Model(&model.Wallet{}).
		Where("id = ?", wallet.ID).
		Update("available_amount", newBalance).Error
	if err != nil {
		return err
	}

	if monitor.Business != nil {
		monitor.Business.RewardsIssuedTotal.WithLabelValues(purpose).Inc()
	}
	return nil
}

// AwardOnClaimComplete credits both parties of a completed claim, keyed by
// the claim id. The collector credit is mandatory; the donor side is
// best-effort: if the donor cannot be resolved the reward is skipped and
// logged, never failing the completion.
func (s *RewardService) AwardOnClaimComplete(tx *gorm.DB, claim *model.Claim, item *model.Item) error {
	collectorWallet, err := s.resolveWallet(tx, claim.CollectorID)
	if err != nil {
		return err
	}
	if err := s.Credit(tx, collectorWallet.ID, s.collectorAmount, model.PurposeClaimCompleteCollector, claim.ID); err != nil {
		return err
	}

	donorID, ok := s.resolveDonor(tx, claim, item)
	if !ok {
		logger.Warn("donor resolution failed, skipping donor reward", zap.String("claim_id", claim.ID))
		return nil
	}

	donorWallet, err := s.resolveWallet(tx, donorID)
	if err != nil {
		logger.Warn("donor wallet resolution failed, skipping donor reward",
			zap.String("claim_id", claim.ID), zap.Uint64("donor_id", donorID), zap.Error(err))
		return nil
	}
	if err := s.Credit(tx, donorWallet.ID, s.donorAmount, model.PurposeClaimCompleteDonor, claim.ID); err != nil {
		// A frozen donor wallet skips the donor side only; the completed
		// handover stands.
		if errors.Is(err, errno.ErrWalletFrozen) {
			logger.Warn("donor wallet frozen, skipping donor reward",
				zap.String("claim_id", claim.ID), zap.Uint64("donor_id", donorID))
			return nil
		}
		return err
	}
	return nil
}

// resolveDonor prefers the eagerly loaded item and falls back to a secondary
// lookup by the claim's item id.
func (s *RewardService) resolveDonor(tx *gorm.DB, claim *model.Claim, item *model.Item) (uint64, bool) {
	if item != nil && item.DonorID != 0 {
		return item.DonorID, true
	}
	var loaded model.Item
	if err := tx.First(&loaded, "id = ?", claim.ItemID).Error; err != nil {
		return 0, false
	}
	return loaded.DonorID, true
}

// resolveWallet finds the owner's wallet in the configured currency, creating
// it with zero balances on first need.
func (s *RewardService) resolveWallet(tx *gorm.DB, ownerID uint64) (*model.Wallet, error) {
	var wallet model.Wallet
	err := tx.Where("owner_id = ? AND currency = ?", ownerID, s.currency).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet = model.Wallet{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Currency:        s.currency,
		AvailableAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
		Status:          model.WalletStatusActive,
	}
	if err := tx.Create(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a create race; the winner's row is the wallet.
			if err := tx.Where("owner_id = ? AND currency = ?", ownerID, s.currency).First(&wallet).Error; err != nil {
				return nil, err
			}
			return &wallet, nil
		}
		return nil, err
	}
	return &wallet, nil
}

// GetWallet returns the actor's wallet in the configured reward currency.
func (s *RewardService) GetWallet(ctx context.Context, ownerID uint64) (*model.Wallet, error) {
	var wallet model.Wallet
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND currency = ?", ownerID, s.currency).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.ErrWalletNotFound
		}
		return nil, err
	}
	return &wallet, nil
}

// GetLedger returns the actor's ledger entries, newest first.
func (s *RewardService) GetLedger(ctx context.Context, ownerID uint64, page, pageSize int) ([]model.LedgerEntry, error) {
	wallet, err := s.GetWallet(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 50
	}

	var entries []model.LedgerEntry
	err = s.db.WithContext(ctx).
		Where("wallet_id = ?", wallet.ID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
