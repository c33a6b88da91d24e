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

package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/database/model"
	"github.com/asgardeo/authflow/internal/system/database/provider"
)

// UserStoreInterface defines the persistence operations for users.
type UserStoreInterface interface {
	GetUserByID(ctx context.Context, realm, userID string) (*User, error)
	GetUserByUsername(ctx context.Context, realm, username string) (*User, error)
	GetUserByEmail(ctx context.Context, realm, email string) (*User, error)
	AddUser(ctx context.Context, user User) error
	RemoveUser(ctx context.Context, realm, userID string) error
}

// userStore is the SQL implementation of UserStoreInterface.
type userStore struct {
	dbProvider provider.DBProviderInterface
}

// NewUserStore creates a user store backed by the identity database.
func NewUserStore(dbProvider provider.DBProviderInterface) UserStoreInterface {
	return &userStore{dbProvider: dbProvider}
}

func (s *userStore) GetUserByID(ctx context.Context, realm, userID string) (*User, error) {
	return s.getUser(ctx, QueryGetUserByID, realm, userID)
}

func (s *userStore) GetUserByUsername(ctx context.Context, realm, username string) (*User, error) {
	return s.getUser(ctx, QueryGetUserByUsername, realm, username)
}

func (s *userStore) GetUserByEmail(ctx context.Context, realm, email string) (*User, error) {
	return s.getUser(ctx, QueryGetUserByEmail, realm, email)
}

func (s *userStore) AddUser(ctx context.Context, user User) error {
	dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	attributes, err := json.Marshal(user.Attributes)
	if err != nil {
		return fmt.Errorf("failed to marshal user attributes: %w", err)
	}

	_, err = dbClient.Execute(ctx, QueryCreateUser, user.ID, user.Realm, user.Username, user.Email,
		user.FirstName, user.LastName, user.Enabled, string(attributes), user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *userStore) RemoveUser(ctx context.Context, realm, userID string) error {
	dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	rows, err := dbClient.Execute(ctx, QueryDeleteUser, realm, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userStore) getUser(ctx context.Context, query model.DBQuery, args ...interface{}) (*User, error) {
	dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}

	results, err := dbClient.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrUserNotFound
	}
	if len(results) > 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}
	return buildUserFromResultRow(results[0])
}

func buildUserFromResultRow(row map[string]interface{}) (*User, error) {
	user := &User{
		ID:        asString(row["user_id"]),
		Realm:     asString(row["realm"]),
		Username:  asString(row["username"]),
		Email:     asString(row["email"]),
		FirstName: asString(row["first_name"]),
		LastName:  asString(row["last_name"]),
		Enabled:   asBool(row["enabled"]),
	}
	if user.ID == "" {
		return nil, fmt.Errorf("failed to parse user_id from result row")
	}

	if attributes := asString(row["attributes"]); attributes != "" && attributes != "null" {
		if err := json.Unmarshal([]byte(attributes), &user.Attributes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user attributes: %w", err)
		}
	}
	if created, ok := row["created_at"].(time.Time); ok {
		user.CreatedAt = created
	}
	return user, nil
}

func asString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case []byte:
		return string(v) == "true" || string(v) == "1"
	case string:
		return v == "true" || v == "1"
	default:
		return false
	}
}
