// Package cache provides a small TTL read-through cache for master data.
//
// Units and characters change only when seeds are re-applied, yet nearly
// every page needs them. Store keeps one entry per key and uses
// singleflight so that an expired entry is rebuilt by a single caller while
// concurrent callers wait for the same result.
//
// # Usage
//
//	units := cache.FromConfig[[]models.Unit](cfg.Cache)
//	list, err := units.GetOrLoad(ctx, "all", func(ctx context.Context) ([]models.Unit, error) {
//	    return loadUnits(ctx, db)
//	})
package cache
