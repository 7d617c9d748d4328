package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-timer-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Session state lives in a local map; sessions are not serialized.
//   - Redis holds one liveness key per session with a TTL. Once the key
//     expires the session is treated as gone and dropped locally.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Save(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.ID()), session.StartedAt().UTC().Format(time.RFC3339), s.ttl).Err()
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !s.alive(context.Background(), sessionID) {
		s.Delete(sessionID)
		return nil, false
	}
	return session, true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

// EvictExpired drops local sessions whose liveness key has expired and returns their ids.
func (s *SessionStore) EvictExpired(ctx context.Context) []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	var evicted []string
	for _, id := range ids {
		if !s.alive(ctx, id) {
			s.Delete(id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// alive treats Redis errors as live so an outage does not drop sessions.
func (s *SessionStore) alive(ctx context.Context, sessionID string) bool {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return true
	}
	return n > 0
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
