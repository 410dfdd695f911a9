package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// Cache is an in-memory usecase.Cache. TTLs are ignored.
type Cache struct {
	mu     sync.Mutex
	values map[string]string
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{values: make(map[string]string)}
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", usecase.ErrCacheMiss
	}
	return v, nil
}

func (c *Cache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

// IDs is a sequential usecase.IDGenerator producing sortable ids.
type IDs struct {
	mu   sync.Mutex
	next int
}

func (g *IDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%08d", g.next)
}
