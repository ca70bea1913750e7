package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recircle-core/internal/model"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
)

func newRecycleService(db *gorm.DB) *RecycleService {
	scans := NewScanService(db)
	shops := NewShopService(db, nil)
	return NewRecycleService(db, scans, shops, nilNotifier())
}

func TestRecycleTwoStepFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newRecycleService(db)
	ctx := context.Background()

	seedUser(t, db, 1, auth.RoleCustomer)
	seedUser(t, db, 3, auth.RoleFacility)
	shop := seedShop(t, db, "shop-a")
	item := seedItem(t, db, 1, model.PickupRecycle, model.ItemStatusPendingRecycle, nil)
	facility := actorWith(3, auth.RoleFacility)

	in, err := svc.In(ctx, facility, item.ID, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusRecycleProcessing, in.ItemStatus)
	assert.Equal(t, model.ScanRecycleIn, in.ScanType)
	assert.False(t, in.Replayed)
	require.NotNil(t, in.ScanEvent)

	out, err := svc.Out(ctx, facility, item.ID, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusRecycled, out.ItemStatus)
	assert.False(t, out.Replayed)

	var got model.Item
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, model.ItemStatusRecycled, got.Status)

	assert.EqualValues(t, 1, countScans(t, db, item.ID, model.ScanRecycleIn))
	assert.EqualValues(t, 1, countScans(t, db, item.ID, model.ScanRecycleOut))
}

func TestRecycleOutOfSequence(t *testing.T) {
	db := newTestDB(t)
	svc := newRecycleService(db)

	seedUser(t, db, 1, auth.RoleCustomer)
	seedUser(t, db, 3, auth.RoleFacility)
	shop := seedShop(t, db, "shop-a")
	item := seedItem(t, db, 1, model.PickupRecycle, model.ItemStatusPendingRecycle, nil)

	// Outtake before intake is a conflict.
	_, err := svc.Out(context.Background(), actorWith(3, auth.RoleFacility), item.ID, shop.ID)
	assert.ErrorIs(t, err, errno.ErrRecycleSequence)

	var got model.Item
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, model.ItemStatusPendingRecycle, got.Status)
	assert.EqualValues(t, 0, countScans(t, db, item.ID, model.ScanRecycleOut))
}

func TestRecycleReplayAppendsEventOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newRecycleService(db)
	ctx := context.Background()

	seedUser(t, db, 1, auth.RoleCustomer)
	seedUser(t, db, 3, auth.RoleFacility)
	shop := seedShop(t, db, "shop-a")
	item := seedItem(t, db, 1, model.PickupRecycle, model.ItemStatusPendingRecycle, nil)
	facility := actorWith(3, auth.RoleFacility)

	_, err := svc.In(ctx, facility, item.ID, shop.ID)
	require.NoError(t, err)

	// Scanner retries the intake: the trail grows, the status does not move.
	replay, err := svc.In(ctx, facility, item.ID, shop.ID)
	require.NoError(t, err)
	assert.True(t, replay.Replayed)
	assert.Equal(t, model.ItemStatusRecycleProcessing, replay.ItemStatus)

	assert.EqualValues(t, 2, countScans(t, db, item.ID, model.ScanRecycleIn))

	var got model.Item
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, model.ItemStatusRecycleProcessing, got.Status)
}

func TestRecycleGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newRecycleService(db)
	ctx := context.Background()

	seedUser(t, db, 1, auth.RoleCustomer)
	seedUser(t, db, 3, auth.RoleFacility)
	seedUser(t, db, 4, auth.RoleCustomer)
	shop := seedShop(t, db, "shop-a")
	recycleItem := seedItem(t, db, 1, model.PickupRecycle, model.ItemStatusPendingRecycle, nil)
	donateItem := seedItem(t, db, 1, model.PickupDonate, model.ItemStatusAwaitingCollection, nil)
	facility := actorWith(3, auth.RoleFacility)

	_, err := svc.In(ctx, facility, "", shop.ID)
	assert.ErrorIs(t, err, errno.ErrMissingID)

	_, err = svc.In(ctx, facility, recycleItem.ID, "no-such-shop")
	assert.ErrorIs(t, err, errno.ErrShopNotFound)

	_, err = svc.In(ctx, facility, "no-such-item", shop.ID)
	assert.ErrorIs(t, err, errno.ErrItemNotFound)

	// Only recycle-option items pass through this machine.
	_, err = svc.In(ctx, facility, donateItem.ID, shop.ID)
	assert.ErrorIs(t, err, errno.ErrNotRecycleItem)

	// Facility-side roles only.
	_, err = svc.In(ctx, actorWith(4, auth.RoleCustomer), recycleItem.ID, shop.ID)
	assert.ErrorIs(t, err, errno.ErrRoleNotAllowed)
}
