package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recircle-core/pkg/cache"
	"recircle-core/pkg/errno"
)

func TestShopLookupCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	svc := NewShopService(db, nil)
	ctx := context.Background()

	seedShop(t, db, "Shop-A")

	for _, id := range []string{"Shop-A", "shop-a", "SHOP-A"} {
		shop, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Shop-A", shop.ID)
	}

	_, err := svc.Get(ctx, "shop-b")
	assert.ErrorIs(t, err, errno.ErrShopNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, errno.ErrMissingID)
}

func TestShopLookupCachesResult(t *testing.T) {
	db := newTestDB(t)
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	svc := NewShopService(db, c)
	ctx := context.Background()

	shop := seedShop(t, db, "shop-a")

	first, err := svc.Get(ctx, "SHOP-A")
	require.NoError(t, err)
	assert.Equal(t, shop.ID, first.ID)

	// Gone from the table, still served from cache under any casing.
	require.NoError(t, db.Delete(shop).Error)
	second, err := svc.Get(ctx, "shop-a")
	require.NoError(t, err)
	assert.Equal(t, shop.ID, second.ID)
}
