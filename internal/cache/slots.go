package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/chamadospro/field-scheduler/internal/domain/booking"
)

// SlotCache guarda grades de disponibilidade já calculadas, com TTL
// configurável. A invalidação é por versão: cada agendamento criado
// incrementa a versão do técnico, tornando as chaves antigas órfãs
// (expiram sozinhas pelo TTL).
//
// O receiver nil é válido e desliga o cache.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func (c *SlotCache) version(ctx context.Context, userID uint) int64 {
	ver, err := c.rdb.Get(ctx, fmt.Sprintf("slots:ver:%d", userID)).Int64()
	if err != nil {
		return 0
	}
	return ver
}

func (c *SlotCache) key(ctx context.Context, userID, serviceID uint, start, end time.Time) string {
	return fmt.Sprintf(
		"slots:%d:%d:%d:%d:%d",
		userID,
		c.version(ctx, userID),
		serviceID,
		start.Unix(),
		end.Unix(),
	)
}

func (c *SlotCache) Get(
	ctx context.Context,
	userID uint,
	serviceID uint,
	start time.Time,
	end time.Time,
) ([]domain.AvailableSlot, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.key(ctx, userID, serviceID, start, end)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.AvailableSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *SlotCache) Set(
	ctx context.Context,
	userID uint,
	serviceID uint,
	start time.Time,
	end time.Time,
	slots []domain.AvailableSlot,
) {

	if c == nil || c.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, c.key(ctx, userID, serviceID, start, end), raw, c.ttl)
}

// Invalidate descarta toda a disponibilidade cacheada do técnico.
func (c *SlotCache) Invalidate(ctx context.Context, userID uint) {
	if c == nil {
		return
	}

	c.rdb.Incr(ctx, fmt.Sprintf("slots:ver:%d", userID))
}
