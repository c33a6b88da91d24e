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

// Package credentialmock provides test doubles for the credential package.
package credentialmock

import (
	"context"
	"sort"
	"sync"

	"github.com/asgardeo/authflow/internal/credential"
)

// InMemoryCredentialStore is a map backed implementation of the CredentialStoreInterface.
type InMemoryCredentialStore struct {
	mu          sync.Mutex
	credentials map[string]credential.Credential
	// Err is returned from every operation when set.
	Err error
}

// NewInMemoryCredentialStore creates an empty in-memory credential store.
func NewInMemoryCredentialStore() *InMemoryCredentialStore {
	return &InMemoryCredentialStore{credentials: make(map[string]credential.Credential)}
}

// GetCredentials returns all credentials of the user.
func (s *InMemoryCredentialStore) GetCredentials(_ context.Context, realm, userID string) (
	[]credential.Credential, error) {
	return s.filter(func(c credential.Credential) bool { return c.Realm == realm && c.UserID == userID })
}

// GetCredentialsByType returns the credentials of the user of the given type.
func (s *InMemoryCredentialStore) GetCredentialsByType(_ context.Context, realm, userID,
	credentialType string) ([]credential.Credential, error) {
	return s.filter(func(c credential.Credential) bool {
		return c.Realm == realm && c.UserID == userID && c.Type == credentialType
	})
}

// AddCredential stores a new credential.
func (s *InMemoryCredentialStore) AddCredential(_ context.Context, c credential.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.credentials[c.ID] = c
	return nil
}

// UpdateCredential replaces the secret and data of an existing credential.
func (s *InMemoryCredentialStore) UpdateCredential(_ context.Context, c credential.Credential) error {
	return s.update(c.Realm, c.UserID, c.ID, func(existing *credential.Credential) {
		existing.SecretData = c.SecretData
		existing.CredentialData = c.CredentialData
		existing.CreatedDate = c.CreatedDate
	})
}

// UpdateCredentialLabel sets the label of an existing credential.
func (s *InMemoryCredentialStore) UpdateCredentialLabel(_ context.Context, realm, userID, credentialID,
	label string) error {
	return s.update(realm, userID, credentialID, func(existing *credential.Credential) {
		existing.UserLabel = label
	})
}

// RemoveCredential deletes a credential.
func (s *InMemoryCredentialStore) RemoveCredential(_ context.Context, realm, userID, credentialID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	c, ok := s.credentials[credentialID]
	if !ok || c.Realm != realm || c.UserID != userID {
		return credential.ErrCredentialNotFound
	}
	delete(s.credentials, credentialID)
	return nil
}

func (s *InMemoryCredentialStore) update(realm, userID, credentialID string,
	apply func(*credential.Credential)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	c, ok := s.credentials[credentialID]
	if !ok || c.Realm != realm || c.UserID != userID {
		return credential.ErrCredentialNotFound
	}
	apply(&c)
	s.credentials[credentialID] = c
	return nil
}

func (s *InMemoryCredentialStore) filter(match func(credential.Credential) bool) ([]credential.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]credential.Credential, 0)
	for _, c := range s.credentials {
		if match(c) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
