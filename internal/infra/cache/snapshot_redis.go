package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/alysonbarber/agenda-api/internal/domain/schedule"
	"github.com/alysonbarber/agenda-api/internal/models"
)

// TTL curto: o snapshot de exibição pode ficar levemente defasado, o
// re-check na submissão sempre busca direto no banco.
const snapshotTTL = 30 * time.Second

// SnapshotCache serve o caminho de exibição da disponibilidade com o
// snapshot do dia em Redis. Sem Redis (rdb nil) vira passthrough.
type SnapshotCache struct {
	rdb    *redis.Client
	source schedule.SnapshotSource
}

func NewSnapshotCache(rdb *redis.Client, source schedule.SnapshotSource) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, source: source}
}

func snapshotKey(barberID uint, day time.Time) string {
	return fmt.Sprintf("agenda:snapshot:%d:%s", barberID, day.Format("2006-01-02"))
}

func (c *SnapshotCache) BookingsForDay(
	ctx context.Context,
	barberID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	key := snapshotKey(barberID, dayStart)

	if c.rdb != nil {
		if raw, err := c.rdb.Get(ctx, key).Result(); err == nil {
			var apps []models.Appointment
			if err := json.Unmarshal([]byte(raw), &apps); err == nil {
				return apps, nil
			}
		}
	}

	apps, err := c.source.BookingsForDay(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	if c.rdb != nil {
		if b, err := json.Marshal(apps); err == nil {
			if err := c.rdb.Set(ctx, key, b, snapshotTTL).Err(); err != nil {
				// cache indisponível não derruba a disponibilidade
				log.Println("snapshot cache set:", err)
			}
		}
	}

	return apps, nil
}

// Invalidate descarta o snapshot do dia após uma gravação.
func (c *SnapshotCache) Invalidate(ctx context.Context, barberID uint, day time.Time) {
	if c.rdb == nil {
		return
	}

	if err := c.rdb.Del(ctx, snapshotKey(barberID, day)).Err(); err != nil {
		log.Println("snapshot cache del:", err)
	}
}

var _ schedule.SnapshotSource = (*SnapshotCache)(nil)
