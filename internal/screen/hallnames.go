package screen

import (
	"context"
	"sync"

	"github.com/cheflink/backoffice/internal/model"
)

// HallGetter resolves a single hall by id.
type HallGetter interface {
	Lister[model.Hall]
	Get(ctx context.Context, id int) (model.Hall, error)
}

// HallNameCache is a read-through cache of hall display names, used by
// the tables screen to label each row with its hall. It replaces the
// one-lookup-per-row pattern: a miss triggers one full hall list fetch,
// and only a hall still absent after that is fetched individually.
type HallNameCache struct {
	halls HallGetter

	mu    sync.Mutex
	names map[int]string
}

func NewHallNameCache(halls HallGetter) *HallNameCache {
	return &HallNameCache{halls: halls, names: make(map[int]string)}
}

// Names resolves display names for the given hall ids. Unresolvable ids
// are simply absent from the result; the caller renders a blank label.
func (c *HallNameCache) Names(ctx context.Context, ids []int) map[int]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	missing := false
	for _, id := range ids {
		if _, ok := c.names[id]; !ok {
			missing = true
			break
		}
	}
	if missing {
		if halls, err := c.halls.List(ctx); err == nil {
			for _, h := range halls {
				c.names[h.ID] = h.Name
			}
		}
		for _, id := range ids {
			if _, ok := c.names[id]; ok {
				continue
			}
			if h, err := c.halls.Get(ctx, id); err == nil {
				c.names[h.ID] = h.Name
			}
		}
	}

	out := make(map[int]string, len(ids))
	for _, id := range ids {
		if name, ok := c.names[id]; ok {
			out[id] = name
		}
	}
	return out
}

// Invalidate clears the cache. Called after hall mutations.
func (c *HallNameCache) Invalidate() {
	c.mu.Lock()
	c.names = make(map[int]string)
	c.mu.Unlock()
}
