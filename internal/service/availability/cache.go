package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/booking-api/internal/model"
)

// Cache holds computed per-date slot lists. It is owned by the
// availability service and invalidated explicitly on every booking
// mutation; there is no ambient process-wide state.
type Cache struct {
	store *gocache.Cache
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

func slotKey(businessID, serviceID uuid.UUID, date string) string {
	return fmt.Sprintf("slots:%s:%s:%s", businessID, serviceID, date)
}

func (c *Cache) Get(businessID, serviceID uuid.UUID, date string) ([]model.TimeSlot, bool) {
	v, ok := c.store.Get(slotKey(businessID, serviceID, date))
	if !ok {
		return nil, false
	}
	slots, ok := v.([]model.TimeSlot)
	return slots, ok
}

func (c *Cache) Set(businessID, serviceID uuid.UUID, date string, slots []model.TimeSlot) {
	c.store.SetDefault(slotKey(businessID, serviceID, date), slots)
}

// InvalidateDate drops cached slots for every service of the business
// on the given date. Booking mutations change technician load, which
// affects all services sharing the technician pool.
func (c *Cache) InvalidateDate(businessID uuid.UUID, date string) {
	prefix := "slots:" + businessID.String() + ":"
	suffix := ":" + date
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, suffix) {
			c.store.Delete(key)
		}
	}
}
