package lifecycle

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// ErrInFlight is returned while the same action is already being submitted.
var ErrInFlight = errors.New("request already in progress")

// Guard tracks in-flight mutations by key.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Acquire claims key. The returned release must be called exactly once.
func (g *Guard) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[key]; busy {
		return nil, fmt.Errorf("%w: %s", ErrInFlight, key)
	}
	g.active[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key is claimed.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.active[key]
	return ok
}

func listingKey(action, category string, id int64) string {
	return action + ":" + category + "/" + strconv.FormatInt(id, 10)
}

func createKey(category string) string {
	return "create:" + category
}
