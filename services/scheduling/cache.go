package scheduling

import (
	"context"
	"encoding/json"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/utils"

	"go.uber.org/zap"
)

func slotCacheKey(doctorID string) string {
	return "slots:" + doctorID
}

func slotCacheTTL() time.Duration {
	secs := config.AppConfig.SlotCacheTTLSecs
	if secs <= 0 {
		secs = 60
	}
	return time.Duration(secs) * time.Second
}

// cachedSlots returns the cached hint for the doctor, if any. Cache failures
// are treated as misses; the cache is never authoritative.
func (s *DefaultSchedulingService) cachedSlots(ctx context.Context, doctorID string) ([]models.DaySlots, bool) {
	if s.Cache == nil {
		return nil, false
	}
	data, err := s.Cache.Get(ctx, slotCacheKey(doctorID)).Result()
	if err != nil {
		return nil, false
	}
	var slots []models.DaySlots
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		utils.GetLogger().Debug("discarding malformed slot cache entry",
			zap.String("doctorId", doctorID), zap.Error(err))
		return nil, false
	}
	return slots, true
}

func (s *DefaultSchedulingService) cacheSlots(ctx context.Context, doctorID string, slots []models.DaySlots) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, slotCacheKey(doctorID), data, slotCacheTTL()).Err(); err != nil {
		utils.GetLogger().Debug("failed to cache slot hint",
			zap.String("doctorId", doctorID), zap.Error(err))
	}
}

// invalidateSlotCache drops the hint after any ledger or template mutation.
func (s *DefaultSchedulingService) invalidateSlotCache(ctx context.Context, doctorID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, slotCacheKey(doctorID)).Err(); err != nil {
		utils.GetLogger().Debug("failed to invalidate slot hint",
			zap.String("doctorId", doctorID), zap.Error(err))
	}
}
