package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"recircle-core/internal/model"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/config"
)

// newTestDB opens an in-memory database migrated to the full schema.
// MaxOpenConns(1) keeps every goroutine on the single shared connection.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func newTestRewards(db *gorm.DB) *RewardService {
	return NewRewardService(db, config.RewardConfig{
		Currency:        "PTS",
		CollectorAmount: "10",
		DonorAmount:     "10",
	})
}

// nilNotifier has no producer wired, so Emit is a no-op.
func nilNotifier() *Notifier {
	return NewNotifier(nil, nil)
}

func seedUser(t *testing.T, db *gorm.DB, id uint64, roles ...auth.Role) *model.User {
	t.Helper()

	codes := make([]string, 0, len(roles))
	for _, r := range roles {
		codes = append(codes, string(r))
	}
	user := model.User{
		ID:       id,
		Username: "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Roles:    strings.Join(codes, ","),
		Status:   model.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedShop(t *testing.T, db *gorm.DB, id string) *model.Shop {
	t.Helper()

	shop := model.Shop{ID: id, Name: "Shop " + id, Active: true}
	require.NoError(t, db.Create(&shop).Error)
	return &shop
}

func seedItem(t *testing.T, db *gorm.DB, donorID uint64, pickup, status string, shopID *string) *model.Item {
	t.Helper()

	item := model.Item{
		ID:            uuid.NewString(),
		DonorID:       donorID,
		Title:         "Test item",
		PickupOption:  pickup,
		Status:        status,
		DropOffShopID: shopID,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func seedClaim(t *testing.T, db *gorm.DB, itemID string, collectorID uint64, status string, createdAt time.Time) *model.Claim {
	t.Helper()

	claim := model.Claim{
		ID:          uuid.NewString(),
		ItemID:      itemID,
		CollectorID: collectorID,
		Status:      status,
		CreatedAt:   createdAt,
	}
	if status == model.ClaimStatusApproved {
		at := createdAt
		claim.ApprovedAt = &at
	}
	require.NoError(t, db.Create(&claim).Error)
	return &claim
}

func actorWith(id uint64, roles ...auth.Role) *auth.ActorContext {
	return auth.NewActorContext(id, roles...)
}

func countLedger(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&model.LedgerEntry{}).Count(&n).Error)
	return n
}

func countScans(t *testing.T, db *gorm.DB, itemID, scanType string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&model.ScanEvent{}).
		Where("item_id = ? AND scan_type = ?", itemID, scanType).
		Count(&n).Error)
	return n
}
