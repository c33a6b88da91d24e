/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package session

import (
	"context"
	"sync"
	"time"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/cache"
	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/log"
)

const sessionCacheName = "AuthenticationSessionCache"

// memoryStore keeps sessions in an in-memory cache. Entries are cloned on the way in and out.
type memoryStore struct {
	mu     sync.Mutex
	cache  cache.CacheInterface[*model.AuthenticationSession]
	now    func() time.Time
	logger *log.Logger
}

var _ ExpiredSessionPurgerInterface = (*memoryStore)(nil)

// NewMemoryStore creates a session store backed by the in-memory cache.
func NewMemoryStore(cacheConfig config.CacheConfig) SessionStoreInterface {
	// Sessions are the source of truth here, so the cache cannot be disabled.
	cacheConfig.Disabled = false
	return &memoryStore{
		cache:  cache.NewCache[*model.AuthenticationSession](sessionCacheName, cacheConfig),
		now:    time.Now,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "MemorySessionStore")),
	}
}

func (s *memoryStore) CreateSession(_ context.Context, session *model.AuthenticationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.cache.Get(cache.CacheKey{Key: session.ID}); ok && !existing.IsExpired(s.now()) {
		return ErrSessionExists
	}
	return s.put(session)
}

func (s *memoryStore) GetSession(_ context.Context, sessionID string) (*model.AuthenticationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.cache.Get(cache.CacheKey{Key: sessionID})
	if !ok {
		return nil, nil
	}
	if stored.IsExpired(s.now()) {
		_ = s.cache.Delete(cache.CacheKey{Key: sessionID})
		return nil, nil
	}
	return stored.Clone(), nil
}

func (s *memoryStore) UpdateSession(_ context.Context, session *model.AuthenticationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.cache.Get(cache.CacheKey{Key: session.ID}); !ok || existing.IsExpired(s.now()) {
		return ErrSessionNotFound
	}
	return s.put(session)
}

func (s *memoryStore) DeleteSession(_ context.Context, sessionID string) error {
	return s.cache.Delete(cache.CacheKey{Key: sessionID})
}

// PurgeExpiredSessions removes the expired entries from the cache.
func (s *memoryStore) PurgeExpiredSessions(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.cache.CleanupExpired()
	if s.logger.IsDebugEnabled() {
		stats := s.cache.GetStats()
		s.logger.Debug("Session cache state", log.Int("size", stats.Size), log.Int("maxSize", stats.MaxSize),
			log.Int64("evicted", stats.EvictCount), log.Any("hitRate", stats.HitRate))
	}
	return int64(removed), nil
}

func (s *memoryStore) put(session *model.AuthenticationSession) error {
	ttl := ttlOf(session, s.now())
	if ttl <= 0 {
		return nil
	}
	return s.cache.SetWithTTL(cache.CacheKey{Key: session.ID}, session.Clone(), ttl)
}
