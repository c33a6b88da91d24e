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

// Package session provides the stores that persist in-progress authentication sessions between requests.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/database/provider"
)

const (
	// StoreTypeMemory keeps sessions in the process local cache.
	StoreTypeMemory = "memory"
	// StoreTypeRedis keeps sessions in Redis.
	StoreTypeRedis = "redis"
	// StoreTypeDatabase keeps sessions in the runtime database.
	StoreTypeDatabase = "database"

	defaultTTL = 30 * time.Minute
)

var (
	// ErrSessionExists is returned when a session with the same id is already stored.
	ErrSessionExists = errors.New("authentication session already exists")
	// ErrSessionNotFound is returned when updating a session that is not stored.
	ErrSessionNotFound = errors.New("authentication session not found")
)

// SessionStoreInterface persists authentication sessions. Sessions expire at their ExpiresAt time; writes
// refresh the expiry of the stored entry.
type SessionStoreInterface interface {
	CreateSession(ctx context.Context, session *model.AuthenticationSession) error
	// GetSession returns nil without an error when the session is unknown or expired.
	GetSession(ctx context.Context, sessionID string) (*model.AuthenticationSession, error)
	UpdateSession(ctx context.Context, session *model.AuthenticationSession) error
	DeleteSession(ctx context.Context, sessionID string) error
}

// ExpiredSessionPurgerInterface is implemented by stores that need expired sessions removed explicitly.
type ExpiredSessionPurgerInterface interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// NewSessionStore creates the session store selected by the configuration.
func NewSessionStore(cfg config.Config, dbProvider provider.DBProviderInterface) (SessionStoreInterface, error) {
	switch cfg.Session.Store {
	case "", StoreTypeMemory:
		return NewMemoryStore(cfg.Cache), nil
	case StoreTypeRedis:
		return NewRedisStore(NewRedisClient(cfg.Redis), cfg.Redis.KeyPrefix), nil
	case StoreTypeDatabase:
		return NewSQLStore(dbProvider), nil
	default:
		return nil, fmt.Errorf("unsupported session store type: %s", cfg.Session.Store)
	}
}

// ttlOf returns the time left until the session expires, falling back to the default when no expiry is set.
func ttlOf(session *model.AuthenticationSession, now time.Time) time.Duration {
	if session.ExpiresAt.IsZero() {
		return defaultTTL
	}
	return session.ExpiresAt.Sub(now)
}
