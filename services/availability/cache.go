package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cached range reads are keyed by a per-hotel version counter, so a single
// INCR invalidates every cached range for the hotel at once.
const cacheTTL = 10 * time.Minute

func versionKey(hotelID string) string {
	return "avail:ver:" + hotelID
}

func rangeKey(hotelID string, version int64, startDate, endDate string) string {
	return fmt.Sprintf("avail:%s:%d:%s:%s", hotelID, version, startDate, endDate)
}

// InvalidateHotel bumps the hotel's availability cache version. Writers call
// this after any committed change to the hotel's ledger. Cache trouble is
// logged, never surfaced: the store stays the source of truth.
func InvalidateHotel(ctx context.Context, rdb *redis.Client, hotelID string) {
	if rdb == nil {
		return
	}
	if err := rdb.Incr(ctx, versionKey(hotelID)).Err(); err != nil {
		zap.L().Warn("failed to bump availability cache version",
			zap.String("hotelID", hotelID), zap.Error(err))
	}
}

func (s *DefaultService) cacheVersion(ctx context.Context, hotelID string) int64 {
	if s.Cache == nil {
		return 0
	}
	v, err := s.Cache.Get(ctx, versionKey(hotelID)).Int64()
	if err != nil && err != redis.Nil {
		zap.L().Warn("failed to read availability cache version", zap.Error(err))
	}
	return v
}
