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

// Package user provides local user lookup and management for authentication flows.
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// UserServiceInterface defines the user operations used by authenticators and adapters.
type UserServiceInterface interface {
	GetUser(ctx context.Context, realm, userID string) (*User, *serviceerror.ServiceError)
	GetUserByUsername(ctx context.Context, realm, username string) (*User, *serviceerror.ServiceError)
	GetUserByEmail(ctx context.Context, realm, email string) (*User, *serviceerror.ServiceError)
	FindUser(ctx context.Context, realm, identifier string) (*User, *serviceerror.ServiceError)
	CreateUser(ctx context.Context, user User) (*User, *serviceerror.ServiceError)
	DeleteUser(ctx context.Context, realm, userID string) *serviceerror.ServiceError
}

type userService struct {
	store UserStoreInterface
}

// NewUserService creates a user service over the given store.
func NewUserService(store UserStoreInterface) UserServiceInterface {
	return &userService{store: store}
}

// GetUser returns the user with the given id.
func (s *userService) GetUser(ctx context.Context, realm, userID string) (*User, *serviceerror.ServiceError) {
	if userID == "" {
		return nil, &ErrorUserNotFound
	}
	u, err := s.store.GetUserByID(ctx, realm, userID)
	return s.handleLookup(u, err)
}

// GetUserByUsername returns the user with the given username.
func (s *userService) GetUserByUsername(ctx context.Context, realm,
	username string) (*User, *serviceerror.ServiceError) {
	if strings.TrimSpace(username) == "" {
		return nil, &ErrorUserNotFound
	}
	u, err := s.store.GetUserByUsername(ctx, realm, username)
	return s.handleLookup(u, err)
}

// GetUserByEmail returns the user with the given e-mail address.
func (s *userService) GetUserByEmail(ctx context.Context, realm, email string) (*User, *serviceerror.ServiceError) {
	if strings.TrimSpace(email) == "" {
		return nil, &ErrorUserNotFound
	}
	u, err := s.store.GetUserByEmail(ctx, realm, email)
	return s.handleLookup(u, err)
}

// FindUser resolves a login identifier as a username first and falls back to an e-mail lookup.
func (s *userService) FindUser(ctx context.Context, realm, identifier string) (*User, *serviceerror.ServiceError) {
	u, svcErr := s.GetUserByUsername(ctx, realm, identifier)
	if svcErr == nil || svcErr.Code != ErrorUserNotFound.Code || !strings.Contains(identifier, "@") {
		return u, svcErr
	}
	return s.GetUserByEmail(ctx, realm, identifier)
}

// CreateUser creates a new user in the realm.
func (s *userService) CreateUser(ctx context.Context, user User) (*User, *serviceerror.ServiceError) {
	if user.Realm == "" || strings.TrimSpace(user.Username) == "" {
		return nil, &ErrorInvalidRequest
	}
	if existing, svcErr := s.GetUserByUsername(ctx, user.Realm, user.Username); svcErr == nil && existing != nil {
		return nil, &ErrorUsernameConflict
	} else if svcErr != nil && svcErr.Code != ErrorUserNotFound.Code {
		return nil, svcErr
	}

	if user.ID == "" {
		user.ID = sysutils.GenerateUUID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := s.store.AddUser(ctx, user); err != nil {
		s.logger().Error("Failed to create user", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}
	return &user, nil
}

// DeleteUser removes a user from the realm.
func (s *userService) DeleteUser(ctx context.Context, realm, userID string) *serviceerror.ServiceError {
	if err := s.store.RemoveUser(ctx, realm, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return &ErrorUserNotFound
		}
		s.logger().Error("Failed to delete user", log.Error(err))
		return &serviceerror.InternalServerError
	}
	return nil
}

func (s *userService) handleLookup(u *User, err error) (*User, *serviceerror.ServiceError) {
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, &ErrorUserNotFound
		}
		s.logger().Error("Failed to look up user", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}
	return u, nil
}

func (s *userService) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, "UserService"))
}
