package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReplayHeader marks a response served from the idempotency store.
const ReplayHeader = "X-Idempotent-Replay"

// Replay is a stored write response.
type Replay struct {
	Status      int
	ContentType string
	Body        []byte
}

// ReplayStore keeps write responses so a retried cart or wishlist submission is not sent twice.
type ReplayStore interface {
	Load(ctx context.Context, key string) (Replay, bool, error)
	Save(ctx context.Context, key string, replay Replay, ttl time.Duration) error
}

// MemoryReplayStore is an in-memory ReplayStore with a periodic sweep.
type MemoryReplayStore struct {
	mu      sync.Mutex
	entries map[string]replayEntry
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

type replayEntry struct {
	replay    Replay
	expiresAt time.Time
}

func NewMemoryReplayStore(sweepInterval time.Duration) *MemoryReplayStore {
	s := &MemoryReplayStore{
		entries: make(map[string]replayEntry),
		ticker:  time.NewTicker(sweepInterval),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryReplayStore) Load(ctx context.Context, key string) (Replay, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return Replay{}, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		return Replay{}, false, nil
	}
	return entry.replay, true, nil
}

func (s *MemoryReplayStore) Save(ctx context.Context, key string, replay Replay, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = replayEntry{replay: replay, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Len reports the number of stored responses, expired ones included until the next sweep.
func (s *MemoryReplayStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the background sweep. It is safe to call more than once.
func (s *MemoryReplayStore) Close() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

func (s *MemoryReplayStore) sweep() {
	for {
		select {
		case <-s.done:
			return
		case now := <-s.ticker.C:
			s.mu.Lock()
			for key, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// IdempotencyMiddleware replays the stored response when a write is retried with the same
// client-supplied X-Request-ID in the same view session. Only 2xx responses with a body are kept.
// Reads and writes without the header pass through.
func IdempotencyMiddleware(store ReplayStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if isReadOnly(c.Request.Method) || requestID == "" {
			c.Next()
			return
		}

		key := replayKey(GetSessionID(c), requestID)
		replay, found, err := store.Load(c.Request.Context(), key)
		if err != nil {
			// fail open
			logger.Warn("Failed to load stored response",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
		if found {
			logger.Info("Duplicate request detected, returning stored response",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header(ReplayHeader, "true")
			c.Data(replay.Status, replay.ContentType, replay.Body)
			c.Abort()
			return
		}

		writer := &capturingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 || len(writer.body) == 0 {
			return
		}
		replay = Replay{
			Status:      status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body,
		}
		if err := store.Save(c.Request.Context(), key, replay, ttl); err != nil {
			logger.Warn("Failed to store response for idempotency",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
	}
}

func replayKey(sessionID, requestID string) string {
	if sessionID == "" {
		return requestID
	}
	return sessionID + "/" + requestID
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// capturingWriter copies the response body while writing it through.
type capturingWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *capturingWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
