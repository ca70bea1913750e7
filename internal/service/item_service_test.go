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

func newItemService(db *gorm.DB) *ItemService {
	return NewItemService(db, NewScanService(db), NewShopService(db, nil))
}

func TestAcceptDropOff(t *testing.T) {
	db := newTestDB(t)
	svc := newItemService(db)

	seedUser(t, db, 1, auth.RoleCustomer)
	seedUser(t, db, 3, auth.RoleFacility)
	shop := seedShop(t, db, "shop-a")
	item := seedItem(t, db, 1, model.PickupDonate, model.ItemStatusPendingDropoff, &shop.ID)

	got, err := svc.AcceptDropOff(context.Background(), actorWith(3, auth.RoleFacility), item.ID, "Shop-A")
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusAwaitingCollection, got.Status)

	assert.EqualValues(t, 1, countScans(t, db, item.ID, model.ScanDropOffIn))
}

func TestRejectDropOff(t *testing.T) {
	db := newTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	seedUser(t, db, 1, auth.RoleCustomer)
	seedUser(t, db, 3, auth.RoleFacility)
	shop := seedShop(t, db, "shop-a")
	item := seedItem(t, db, 1, model.PickupDonate, model.ItemStatusPendingDropoff, &shop.ID)
	facility := actorWith(3, auth.RoleFacility)

	got, err := svc.RejectDropOff(ctx, facility, item.ID, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusRejected, got.Status)

	// Rejection leaves no intake event behind.
	assert.EqualValues(t, 0, countScans(t, db, item.ID, model.ScanDropOffIn))

	// A second rejection finds nothing pending.
	_, err = svc.RejectDropOff(ctx, facility, item.ID, shop.ID)
	assert.ErrorIs(t, err, errno.ErrNotPendingDropoff)
}

func TestDropOffGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	seedUser(t, db, 1, auth.RoleCustomer)
	seedUser(t, db, 3, auth.RoleFacility)
	seedUser(t, db, 4, auth.RoleCustomer)
	shopA := seedShop(t, db, "shop-a")
	seedShop(t, db, "shop-b")
	item := seedItem(t, db, 1, model.PickupDonate, model.ItemStatusPendingDropoff, &shopA.ID)
	facility := actorWith(3, auth.RoleFacility)

	_, err := svc.AcceptDropOff(ctx, facility, item.ID, "")
	assert.ErrorIs(t, err, errno.ErrMissingID)

	_, err = svc.AcceptDropOff(ctx, facility, item.ID, "no-such-shop")
	assert.ErrorIs(t, err, errno.ErrShopNotFound)

	// The item was announced for shop-a; shop-b cannot take it in.
	_, err = svc.AcceptDropOff(ctx, facility, item.ID, "shop-b")
	assert.ErrorIs(t, err, errno.ErrShopMismatch)

	_, err = svc.AcceptDropOff(ctx, actorWith(4, auth.RoleCustomer), item.ID, shopA.ID)
	assert.ErrorIs(t, err, errno.ErrRoleNotAllowed)

	var got model.Item
	require.NoError(t, db.First(&got, "id = ?", item.ID).Error)
	assert.Equal(t, model.ItemStatusPendingDropoff, got.Status)
}
