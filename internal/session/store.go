package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"storefront-client/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Snapshot is the serializable part of a view session: what the browser shell would otherwise
// keep in page globals. It is created on view entry and expires with the session TTL.
type Snapshot struct {
	ID        string `json:"id"`
	View      string `json:"view"`
	Page      int    `json:"page"`
	Category  string `json:"category"`
	Query     string `json:"query"`
	UID       string `json:"uid"`
	ProductID string `json:"product_id"`
	LastCount int    `json:"last_count"`

	// RenderID and Generation identify the render the snapshot was taken from.
	RenderID   string    `json:"render_id,omitempty"`
	Generation uint64    `json:"generation,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Store defines the interface for session state operations
type Store interface {
	Load(ctx context.Context, id string) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
	Delete(ctx context.Context, id string) error
	// Touch restarts the TTL of the session's snapshot and hover state.
	Touch(ctx context.Context, id string) error
	// StartHover records when the pointer entered a product card.
	StartHover(ctx context.Context, id, pid string, at time.Time) error
	// EndHover returns and forgets the recorded start. ok is false when no start was recorded.
	EndHover(ctx context.Context, id, pid string) (start time.Time, ok bool, err error)
}

// NewStore creates a Redis-backed store, falling back to memory when Redis is disabled or unreachable
func NewStore(cfg *config.Config, logger *zap.Logger) Store {
	if !cfg.UseRedis {
		logger.Info("Session store: in-memory (USE_REDIS=false)")
		return NewMemoryStore(cfg.SessionTTL)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, using in-memory session store",
			zap.String("host", cfg.RedisHost),
			zap.String("port", cfg.RedisPort),
			zap.Error(err),
		)
		rdb.Close()
		return NewMemoryStore(cfg.SessionTTL)
	}

	logger.Info("Redis session store initialized successfully",
		zap.String("host", cfg.RedisHost),
		zap.String("port", cfg.RedisPort),
		zap.Int("db", cfg.RedisDB),
	)

	return NewRedisStore(rdb, cfg.SessionTTL, logger)
}

// RedisStore implements Store using Redis
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func snapshotKey(id string) string {
	return "storefront:session:" + id
}

func hoverKey(id string) string {
	return "storefront:hover:" + id
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Warn("Redis Get error", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &snapshot, nil
}

func (s *RedisStore) Save(ctx context.Context, snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(snapshot.ID), data, s.ttl)
	pipe.Expire(ctx, hoverKey(snapshot.ID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("Redis Set error", zap.String("session_id", snapshot.ID), zap.Error(err))
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, snapshotKey(id), hoverKey(id)).Err(); err != nil {
		s.logger.Warn("Redis Delete error", zap.String("session_id", id), zap.Error(err))
		return fmt.Errorf("redis delete error: %w", err)
	}
	return nil
}

func (s *RedisStore) Touch(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Expire(ctx, snapshotKey(id), s.ttl)
	pipe.Expire(ctx, hoverKey(id), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("Redis Expire error", zap.String("session_id", id), zap.Error(err))
		return fmt.Errorf("redis expire error: %w", err)
	}
	return nil
}

func (s *RedisStore) StartHover(ctx context.Context, id, pid string, at time.Time) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, hoverKey(id), pid, at.UnixNano())
	pipe.Expire(ctx, hoverKey(id), s.ttl)
	pipe.Expire(ctx, snapshotKey(id), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("Redis HSet error", zap.String("session_id", id), zap.String("pid", pid), zap.Error(err))
		return fmt.Errorf("redis hset error: %w", err)
	}
	return nil
}

func (s *RedisStore) EndHover(ctx context.Context, id, pid string) (time.Time, bool, error) {
	pipe := s.client.TxPipeline()
	get := pipe.HGet(ctx, hoverKey(id), pid)
	pipe.HDel(ctx, hoverKey(id), pid)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		s.logger.Warn("Redis HGet error", zap.String("session_id", id), zap.String("pid", pid), zap.Error(err))
		return time.Time{}, false, fmt.Errorf("redis hget error: %w", err)
	}

	raw, err := get.Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("redis hget error: %w", err)
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid hover timestamp %q: %w", raw, err)
	}
	return time.Unix(0, nanos), true, nil
}

// MemoryStore is the single-process implementation used when Redis is not available.
// Any write or Touch restarts the TTL of the whole session entry.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memorySession
	now      func() time.Time
}

type memorySession struct {
	snapshot  *Snapshot
	hovers    map[string]time.Time
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

// live returns the unexpired entry for id. Callers hold s.mu.
func (s *MemoryStore) live(id string) (*memorySession, bool) {
	entry, exists := s.sessions[id]
	if !exists {
		return nil, false
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return entry, true
}

// refresh returns the entry for id, creating it, with its TTL restarted. Callers hold s.mu.
func (s *MemoryStore) refresh(id string) *memorySession {
	entry, exists := s.live(id)
	if !exists {
		entry = &memorySession{hovers: make(map[string]time.Time)}
		s.sessions[id] = entry
	}
	entry.expiresAt = s.now().Add(s.ttl)
	return entry
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.live(id)
	if !exists || entry.snapshot == nil {
		return nil, ErrSessionNotFound
	}
	snapshot := *entry.snapshot
	return &snapshot, nil
}

func (s *MemoryStore) Save(ctx context.Context, snapshot *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *snapshot
	s.refresh(snapshot.ID).snapshot = &stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Touch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.live(id); exists {
		s.refresh(id)
	}
	return nil
}

func (s *MemoryStore) StartHover(ctx context.Context, id, pid string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refresh(id).hovers[pid] = at
	return nil
}

func (s *MemoryStore) EndHover(ctx context.Context, id, pid string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.live(id)
	if !exists {
		return time.Time{}, false, nil
	}
	start, ok := entry.hovers[pid]
	if ok {
		delete(entry.hovers, pid)
	}
	return start, ok, nil
}

// Expire drops sessions whose last activity is older than the TTL, hover state included.
func (s *MemoryStore) Expire(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
