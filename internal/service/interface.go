package service

import (
	"context"

	"recircle-core/internal/model"
)

// ShopDirectory is the read-only facility lookup consumed by the scan flows.
// The production implementation is ShopService; tests may stub it.
type ShopDirectory interface {
	// Get resolves a shop by id, case-insensitively.
	Get(ctx context.Context, id string) (*model.Shop, error)
}
