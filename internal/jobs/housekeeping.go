package jobs

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/pkg/storage"
)

// StorageExpiryJob deletes expired entries from backends that keep them
// around (SQL rows, process memory).
type StorageExpiryJob struct {
	purger storage.Purger
}

// NewStorageExpiryJob returns nil when adapter expires entries on its own.
func NewStorageExpiryJob(adapter storage.Adapter) Job {
	purger, ok := storage.AsPurger(adapter)
	if !ok {
		return nil
	}
	return &StorageExpiryJob{purger: purger}
}

func (j *StorageExpiryJob) Name() string { return "storage-expiry" }

func (j *StorageExpiryJob) Run(ctx context.Context) (int64, error) {
	removed, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge expired entries: %w", err)
	}
	return removed, nil
}

type cartEvicter interface {
	Evict(ctx context.Context) int
}

// CartEvictionJob releases carts whose sessions went idle. The carts stay in
// storage and are rehydrated on the next request.
type CartEvictionJob struct {
	carts cartEvicter
}

func NewCartEvictionJob(carts cartEvicter) Job {
	if carts == nil {
		return nil
	}
	return &CartEvictionJob{carts: carts}
}

func (j *CartEvictionJob) Name() string { return "cart-eviction" }

func (j *CartEvictionJob) Run(ctx context.Context) (int64, error) {
	return int64(j.carts.Evict(ctx)), nil
}
