package diary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CalendarIndex maps a (year, month) to the dates having an entry and their
// color tag. It is a derived read-through view of one backend range query;
// the month result is cached in Redis and invalidated whenever a save or
// delete changes membership, so a re-render after a write always sees the
// fresh mapping. With no Redis client it queries straight through.
type CalendarIndex struct {
	docs   DocumentStore
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewCalendarIndex creates the index; redisClient may be nil.
func NewCalendarIndex(docs DocumentStore, redisClient *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *CalendarIndex {
	return &CalendarIndex{docs: docs, redis: redisClient, ttl: ttl, logger: logger}
}

func monthCacheKey(userID string, year, month int) string {
	return fmt.Sprintf("calendar:%s:%04d-%02d", userID, year, month)
}

// BuildForMonth returns date -> color for every date in the month that has a
// persisted entry. The result is a snapshot, not live.
//
// The range query keeps the original key bounds: first day "-01" to the
// literal "-31", regardless of the month's real length. Date keys are
// compared lexicographically and no writer ever creates an invalid calendar
// date, so the loose upper bound can never match anything extra.
func (ci *CalendarIndex) BuildForMonth(ctx context.Context, userID string, year, month int) (map[string]int, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidDate
	}

	key := monthCacheKey(userID, year, month)
	if ci.redis != nil {
		if cached, err := ci.redis.Get(ctx, key).Result(); err == nil {
			days := make(map[string]int)
			if err := json.Unmarshal([]byte(cached), &days); err == nil {
				return days, nil
			}
			// Unreadable cache entry; fall through to the query.
			ci.redis.Del(ctx, key)
		}
	}

	startDate := fmt.Sprintf("%04d-%02d-01", year, month)
	endDate := fmt.Sprintf("%04d-%02d-31", year, month)

	entries, err := ci.docs.EntriesInRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	days := make(map[string]int, len(entries))
	for date, entry := range entries {
		days[date] = entry.Color
	}

	if ci.redis != nil {
		if body, err := json.Marshal(days); err == nil {
			if err := ci.redis.Set(ctx, key, body, ci.ttl).Err(); err != nil && ci.logger != nil {
				ci.logger.Warnw("failed to cache calendar month", "key", key, "error", err)
			}
		}
	}

	return days, nil
}

// Invalidate drops the cached month containing date. Called by the editor
// session after a successful save or delete.
func (ci *CalendarIndex) Invalidate(ctx context.Context, userID, date string) {
	if ci.redis == nil || len(date) < 7 {
		return
	}
	key := fmt.Sprintf("calendar:%s:%s", userID, date[:7])
	if err := ci.redis.Del(ctx, key).Err(); err != nil && ci.logger != nil {
		ci.logger.Warnw("failed to invalidate calendar month", "key", key, "error", err)
	}
}
