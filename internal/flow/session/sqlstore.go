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
	"fmt"
	"time"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/database/client"
	"github.com/asgardeo/authflow/internal/system/database/provider"
)

// sqlStore keeps sessions as JSON documents in the AUTH_SESSION table of the runtime database.
type sqlStore struct {
	dbProvider provider.DBProviderInterface
	now        func() time.Time
}

var _ ExpiredSessionPurgerInterface = (*sqlStore)(nil)

// NewSQLStore creates a session store backed by the runtime database.
func NewSQLStore(dbProvider provider.DBProviderInterface) SessionStoreInterface {
	return &sqlStore{dbProvider: dbProvider, now: time.Now}
}

func (s *sqlStore) CreateSession(ctx context.Context, session *model.AuthenticationSession) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	results, err := dbClient.Query(ctx, QueryCountSession, session.ID)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) > 0 && asInt64(results[0]["total"]) > 0 {
		return ErrSessionExists
	}

	data, expiry, err := s.encode(session)
	if err != nil {
		return err
	}
	if _, err := dbClient.Execute(ctx, QueryCreateSession, session.ID, session.Realm, data, expiry); err != nil {
		return fmt.Errorf("failed to store authentication session: %w", err)
	}
	return nil
}

func (s *sqlStore) GetSession(ctx context.Context, sessionID string) (*model.AuthenticationSession, error) {
	dbClient, err := s.client()
	if err != nil {
		return nil, err
	}
	results, err := dbClient.Query(ctx, QueryGetSession, sessionID, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	var session model.AuthenticationSession
	if err := json.Unmarshal([]byte(asString(results[0]["session_data"])), &session); err != nil {
		return nil, fmt.Errorf("failed to decode authentication session: %w", err)
	}
	return &session, nil
}

func (s *sqlStore) UpdateSession(ctx context.Context, session *model.AuthenticationSession) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	data, expiry, err := s.encode(session)
	if err != nil {
		return err
	}
	rows, err := dbClient.Execute(ctx, QueryUpdateSession, session.ID, data, expiry)
	if err != nil {
		return fmt.Errorf("failed to update authentication session: %w", err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *sqlStore) DeleteSession(ctx context.Context, sessionID string) error {
	dbClient, err := s.client()
	if err != nil {
		return err
	}
	if _, err := dbClient.Execute(ctx, QueryDeleteSession, sessionID); err != nil {
		return fmt.Errorf("failed to delete authentication session: %w", err)
	}
	return nil
}

// PurgeExpiredSessions deletes the expired sessions and returns how many were removed.
func (s *sqlStore) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	dbClient, err := s.client()
	if err != nil {
		return 0, err
	}
	rows, err := dbClient.Execute(ctx, QueryDeleteExpiredSessions, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired authentication sessions: %w", err)
	}
	return rows, nil
}

func (s *sqlStore) client() (client.DBClientInterface, error) {
	dbClient, err := s.dbProvider.GetDBClient(constants.RuntimeDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return dbClient, nil
}

func (s *sqlStore) encode(session *model.AuthenticationSession) (string, time.Time, error) {
	data, err := json.Marshal(session)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode authentication session: %w", err)
	}
	return string(data), s.now().Add(ttlOf(session, s.now())).UTC(), nil
}

func asString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

func asInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
