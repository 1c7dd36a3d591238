package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the read-through cache used for resolved profiles and dashboard
// stats. Values are serialized by the caller.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Key builds a school-scoped cache key. Keys always begin with the school ID
// so one tenant's entries can never collide with another's.
func Key(schoolID uuid.UUID, parts ...string) string {
	return schoolID.String() + ":" + strings.Join(parts, ":")
}

// GlobalKey builds a key for data not owned by any school (the super-admin
// console).
func GlobalKey(parts ...string) string {
	return "global:" + strings.Join(parts, ":")
}
