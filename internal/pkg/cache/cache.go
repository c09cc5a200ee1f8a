// Package cache memoizes read-path results under keys that embed a
// per-entity-type version counter. Bumping a scope's version makes every
// cached read for that scope unreachable; stale entries simply age out.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Scopes bumped by mutations and read by cached queries.
const (
	ScopeUser           = "user"
	ScopeDepartment     = "department"
	ScopeWorkshop       = "workshop"
	ScopeEmployee       = "employee"
	ScopeSalaryChange   = "salary_change"
	ScopeAttendance     = "attendance"
	ScopeLogistics      = "logistics"
	ScopeSocialSecurity = "social_security"
	ScopeBonus          = "bonus"
	ScopePayroll        = "payroll"
	ScopePayrollItem    = "payroll_item"
)

// Store holds serialized results.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Versions is a map from scope to a monotonically increasing counter.
// A scope that was never bumped reports version 1.
type Versions interface {
	Version(ctx context.Context, scope string) (int64, error)
	Bump(ctx context.Context, scope string) (int64, error)
}

type Cache struct {
	store    Store
	versions Versions
	logger   *slog.Logger
}

// Option configures a Cache
type Option func(*Cache)

// WithLogger sets the logger used for cache backend failures
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

func New(store Store, versions Versions, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		versions: versions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bump advances the version of every scope. Backend failures are logged and
// swallowed: the mutation that triggered the bump has already committed.
func (c *Cache) Bump(ctx context.Context, scopes ...string) {
	if c == nil {
		return
	}
	for _, scope := range scopes {
		if _, err := c.versions.Bump(ctx, scope); err != nil {
			c.logger.Error("cache version bump failed", "scope", scope, "error", err)
		}
	}
}

// Entry describes one cached read.
type Entry struct {
	Method string
	Args   interface{}
	Scopes []string
	TTL    time.Duration
}

// Key renders svc:<method>:v<versions>:<json args>.
func (c *Cache) Key(ctx context.Context, e Entry) (string, error) {
	versions := make([]string, 0, len(e.Scopes))
	for _, scope := range e.Scopes {
		v, err := c.versions.Version(ctx, scope)
		if err != nil {
			return "", fmt.Errorf("read version for %s: %w", scope, err)
		}
		versions = append(versions, strconv.FormatInt(v, 10))
	}

	args, err := json.Marshal(e.Args)
	if err != nil {
		return "", fmt.Errorf("encode cache args: %w", err)
	}

	return "svc:" + e.Method + ":v" + strings.Join(versions, ".") + ":" + string(args), nil
}

// Remember returns the cached result for e, calling load and storing its
// result on a miss. A nil cache, or any cache backend failure, falls
// through to load.
func Remember[T any](ctx context.Context, c *Cache, e Entry, load func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	key, err := c.Key(ctx, e)
	if err != nil {
		c.logger.Warn("cache key unavailable", "method", e.Method, "error", err)
		return load(ctx)
	}

	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
	} else if ok {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("cache entry undecodable", "key", key)
	}

	result, err := load(ctx)
	if err != nil {
		return result, err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return result, nil
	}
	if err := c.store.Set(ctx, key, raw, e.TTL); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}

	return result, nil
}
