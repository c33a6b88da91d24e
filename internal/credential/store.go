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

package credential

import (
	"context"
	"fmt"
	"time"

	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/database/provider"
)

// CredentialStoreInterface defines the persistence operations for credentials.
type CredentialStoreInterface interface {
	GetCredentials(ctx context.Context, realm, userID string) ([]Credential, error)
	GetCredentialsByType(ctx context.Context, realm, userID, credentialType string) ([]Credential, error)
	AddCredential(ctx context.Context, credential Credential) error
	UpdateCredential(ctx context.Context, credential Credential) error
	UpdateCredentialLabel(ctx context.Context, realm, userID, credentialID, label string) error
	RemoveCredential(ctx context.Context, realm, userID, credentialID string) error
}

type credentialStore struct {
	dbProvider provider.DBProviderInterface
}

// NewCredentialStore creates a credential store backed by the identity database.
func NewCredentialStore(dbProvider provider.DBProviderInterface) CredentialStoreInterface {
	return &credentialStore{dbProvider: dbProvider}
}

func (s *credentialStore) GetCredentials(ctx context.Context, realm, userID string) ([]Credential, error) {
	dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	results, err := dbClient.Query(ctx, QueryGetCredentials, realm, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return buildCredentials(results)
}

func (s *credentialStore) GetCredentialsByType(ctx context.Context, realm, userID,
	credentialType string) ([]Credential, error) {
	dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	results, err := dbClient.Query(ctx, QueryGetCredentialsByType, realm, userID, credentialType)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return buildCredentials(results)
}

func (s *credentialStore) AddCredential(ctx context.Context, c Credential) error {
	dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}
	_, err = dbClient.Execute(ctx, QueryCreateCredential, c.ID, c.Realm, c.UserID, c.Type, c.UserLabel,
		c.SecretData, c.CredentialData, c.CreatedDate.UTC(), c.Priority)
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	return nil
}

func (s *credentialStore) UpdateCredential(ctx context.Context, c Credential) error {
	return s.execute(func() (int64, error) {
		dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
		if err != nil {
			return 0, fmt.Errorf("failed to get database client: %w", err)
		}
		return dbClient.Execute(ctx, QueryUpdateCredential, c.Realm, c.UserID, c.ID, c.SecretData,
			c.CredentialData, c.CreatedDate.UTC())
	})
}

func (s *credentialStore) UpdateCredentialLabel(ctx context.Context, realm, userID, credentialID, label string) error {
	return s.execute(func() (int64, error) {
		dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
		if err != nil {
			return 0, fmt.Errorf("failed to get database client: %w", err)
		}
		return dbClient.Execute(ctx, QueryUpdateCredentialLabel, realm, userID, credentialID, label)
	})
}

func (s *credentialStore) RemoveCredential(ctx context.Context, realm, userID, credentialID string) error {
	return s.execute(func() (int64, error) {
		dbClient, err := s.dbProvider.GetDBClient(constants.IdentityDBName)
		if err != nil {
			return 0, fmt.Errorf("failed to get database client: %w", err)
		}
		return dbClient.Execute(ctx, QueryDeleteCredential, realm, userID, credentialID)
	})
}

// execute runs a single row statement and maps zero affected rows to ErrCredentialNotFound.
func (s *credentialStore) execute(fn func() (int64, error)) error {
	rows, err := fn()
	if err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	if rows == 0 {
		return ErrCredentialNotFound
	}
	return nil
}

func buildCredentials(results []map[string]interface{}) ([]Credential, error) {
	credentials := make([]Credential, 0, len(results))
	for _, row := range results {
		id, ok := row["credential_id"].(string)
		if !ok {
			return nil, fmt.Errorf("failed to parse credential_id from result row")
		}
		c := Credential{
			ID:             id,
			Realm:          asString(row["realm"]),
			UserID:         asString(row["user_id"]),
			Type:           asString(row["type"]),
			UserLabel:      asString(row["user_label"]),
			SecretData:     asString(row["secret_data"]),
			CredentialData: asString(row["credential_data"]),
		}
		if created, ok := row["created_date"].(time.Time); ok {
			c.CreatedDate = created
		}
		if priority, ok := row["priority"].(int64); ok {
			c.Priority = int(priority)
		}
		credentials = append(credentials, c)
	}
	return credentials, nil
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
