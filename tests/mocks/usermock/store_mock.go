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

// Package usermock provides test doubles for the user package.
package usermock

import (
	"context"
	"strings"
	"sync"

	"github.com/asgardeo/authflow/internal/user"
)

// InMemoryUserStore is a map backed implementation of the UserStoreInterface.
type InMemoryUserStore struct {
	mu    sync.Mutex
	users map[string]user.User
	// Err is returned from every operation when set.
	Err error
}

// NewInMemoryUserStore creates a store holding the given users.
func NewInMemoryUserStore(users ...user.User) *InMemoryUserStore {
	s := &InMemoryUserStore{users: make(map[string]user.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// GetUserByID returns the user with the given id.
func (s *InMemoryUserStore) GetUserByID(_ context.Context, realm, userID string) (*user.User, error) {
	return s.find(func(u user.User) bool { return u.Realm == realm && u.ID == userID })
}

// GetUserByUsername returns the user with the given username, ignoring case.
func (s *InMemoryUserStore) GetUserByUsername(_ context.Context, realm, username string) (*user.User, error) {
	return s.find(func(u user.User) bool { return u.Realm == realm && strings.EqualFold(u.Username, username) })
}

// GetUserByEmail returns the user with the given e-mail address, ignoring case.
func (s *InMemoryUserStore) GetUserByEmail(_ context.Context, realm, email string) (*user.User, error) {
	return s.find(func(u user.User) bool {
		return u.Realm == realm && u.Email != "" && strings.EqualFold(u.Email, email)
	})
}

// AddUser stores a user.
func (s *InMemoryUserStore) AddUser(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.users[u.ID] = u
	return nil
}

// RemoveUser deletes a user.
func (s *InMemoryUserStore) RemoveUser(_ context.Context, realm, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[userID]
	if !ok || u.Realm != realm {
		return user.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

func (s *InMemoryUserStore) find(match func(user.User) bool) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, user.ErrUserNotFound
}
