// Package cache provides a Redis-backed read-through cache for task lists.
//
// Cached lists are keyed by owner and board so a hit can never leak another
// user's tasks. Every write through the cache evicts the board's entry; a
// Redis failure degrades to the backing store and is never surfaced.
//
// Each board also has a generation counter that Evict increments. A list
// read from the store is only cached if the generation is still the one seen
// before the read, so a write that lands during a miss is never shadowed by
// the older list.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/redis/go-redis/v9"
)

// generationTTL bounds the lifetime of idle generation counters. It only has
// to outlive the slowest list read.
const generationTTL = 24 * time.Hour

// errGenerationChanged aborts a save whose list predates a write.
var errGenerationChanged = errors.New("task list generation changed")

// TaskCache wraps a store.TaskStore with Redis caching of ListByBoard.
type TaskCache struct {
	base   store.TaskStore
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Ensure TaskCache implements store.TaskStore interface
var _ store.TaskStore = (*TaskCache)(nil)

// NewTaskCache creates a caching TaskStore. A nil client or a zero TTL
// turns the cache into a pass-through.
func NewTaskCache(base store.TaskStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *TaskCache {
	if base == nil {
		panic("cache.NewTaskCache: base store is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskCache{
		base:   base,
		redis:  client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "task_cache")),
	}
}

// NewClient connects to the Redis server named by cfg.RedisURL and pings it.
// It returns nil, nil when no URL is configured.
func NewClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// ListByBoard implements store.TaskStore.ListByBoard
func (c *TaskCache) ListByBoard(ctx context.Context, ownerID, boardID uuid.UUID) ([]domain.Task, error) {
	key := tasksCacheKey(ownerID, boardID)
	if tasks, ok := c.load(ctx, key); ok {
		return tasks, nil
	}

	genKey := generationKey(ownerID, boardID)
	gen, genOK := c.generation(ctx, genKey)

	tasks, err := c.base.ListByBoard(ctx, ownerID, boardID)
	if err != nil {
		return nil, err
	}

	if genOK {
		c.save(ctx, key, genKey, gen, tasks)
	}
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (c *TaskCache) Create(ctx context.Context, ownerID uuid.UUID, draft domain.TaskDraft) (*domain.Task, error) {
	task, err := c.base.Create(ctx, ownerID, draft)
	if err != nil {
		return nil, err
	}
	c.Evict(ctx, ownerID, draft.BoardID)
	return task, nil
}

// Update implements store.TaskStore.Update
func (c *TaskCache) Update(
	ctx context.Context,
	ownerID, id uuid.UUID,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	task, err := c.base.Update(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	c.Evict(ctx, ownerID, patch.BoardID)
	return task, nil
}

// Evict drops the cached task list of a board and advances its generation,
// so a list read before the eviction is not cached afterwards.
func (c *TaskCache) Evict(ctx context.Context, ownerID, boardID uuid.UUID) {
	if c.redis == nil {
		return
	}
	genKey := generationKey(ownerID, boardID)
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, generationTTL)
		pipe.Del(ctx, tasksCacheKey(ownerID, boardID))
		return nil
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("failed to evict task list",
			slog.String("board_id", boardID.String()),
			slog.String("error", err.Error()))
	}
}

func (c *TaskCache) load(ctx context.Context, key string) ([]domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContextOrDefault(ctx, c.logger).Warn("task list cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return tasks, true
}

// generation returns the current value of genKey, "" when it was never set.
// It reports false when Redis cannot be read.
func (c *TaskCache) generation(ctx context.Context, genKey string) (string, bool) {
	if c.redis == nil || c.ttl == 0 {
		return "", false
	}
	gen, err := c.redis.Get(ctx, genKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.FromContextOrDefault(ctx, c.logger).Warn("task list generation read failed",
			slog.String("key", genKey),
			slog.String("error", err.Error()))
		return "", false
	}
	return gen, true
}

// save stores tasks under key unless genKey moved past seen. WATCH makes the
// check and the SET atomic against a concurrent Evict.
func (c *TaskCache) save(ctx context.Context, key, genKey, seen string, tasks []domain.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}

	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != seen {
			return errGenerationChanged
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errGenerationChanged), errors.Is(err, redis.TxFailedErr):
		logger.FromContextOrDefault(ctx, c.logger).Debug("stale task list not cached",
			slog.String("key", key))
	default:
		logger.FromContextOrDefault(ctx, c.logger).Warn("task list cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func tasksCacheKey(ownerID, boardID uuid.UUID) string {
	return "tasks:" + ownerID.String() + ":" + boardID.String()
}

func generationKey(ownerID, boardID uuid.UUID) string {
	return "tasks:gen:" + ownerID.String() + ":" + boardID.String()
}
