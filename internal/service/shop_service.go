package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"recircle-core/internal/model"
	"recircle-core/pkg/cache"
	"recircle-core/pkg/errno"
)

const shopCacheTTL = 10 * time.Minute

// ShopService implements ShopDirectory over the shops table with a cache in
// front; the directory changes rarely and is read on every scan.
type ShopService struct {
	db    *gorm.DB
	cache cache.Cache
}

// NewShopService builds the directory. cache may be nil (tests).
func NewShopService(db *gorm.DB, c cache.Cache) *ShopService {
	return &ShopService{db: db, cache: c}
}

func shopCacheKey(id string) string {
	return "shop:" + strings.ToLower(id)
}

func (s *ShopService) Get(ctx context.Context, id string) (*model.Shop, error) {
	if id == "" {
		return nil, errno.ErrMissingID
	}

	if s.cache != nil {
		var cached model.Shop
		if err := s.cache.Get(ctx, shopCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	var shop model.Shop
	err := s.db.WithContext(ctx).
		Where("LOWER(id) = ?", strings.ToLower(id)).
		First(&shop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.ErrShopNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, shopCacheKey(id), shop, shopCacheTTL)
	}
	return &shop, nil
}
