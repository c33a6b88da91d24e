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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/config"
)

// DefaultRedisKeyPrefix is prepended to the session id to build the Redis key.
const DefaultRedisKeyPrefix = "authflow:session:"

// redisStore keeps sessions as JSON values with a native Redis expiry.
type redisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisClient creates a Redis client from the connection configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisStore creates a session store on the given client. An empty prefix uses DefaultRedisKeyPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) SessionStoreInterface {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &redisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *redisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *redisStore) CreateSession(ctx context.Context, session *model.AuthenticationSession) error {
	data, ttl, err := s.encode(session)
	if err != nil || ttl <= 0 {
		return err
	}
	created, err := s.client.SetNX(ctx, s.key(session.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store authentication session: %w", err)
	}
	if !created {
		return ErrSessionExists
	}
	return nil
}

func (s *redisStore) GetSession(ctx context.Context, sessionID string) (*model.AuthenticationSession, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read authentication session: %w", err)
	}
	var session model.AuthenticationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode authentication session: %w", err)
	}
	if session.IsExpired(s.now()) {
		return nil, nil
	}
	return &session, nil
}

func (s *redisStore) UpdateSession(ctx context.Context, session *model.AuthenticationSession) error {
	data, ttl, err := s.encode(session)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		return s.DeleteSession(ctx, session.ID)
	}
	updated, err := s.client.SetXX(ctx, s.key(session.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to update authentication session: %w", err)
	}
	if !updated {
		return ErrSessionNotFound
	}
	return nil
}

func (s *redisStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete authentication session: %w", err)
	}
	return nil
}

func (s *redisStore) encode(session *model.AuthenticationSession) ([]byte, time.Duration, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to encode authentication session: %w", err)
	}
	return data, ttlOf(session, s.now()), nil
}
