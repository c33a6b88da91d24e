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

package credentialmock

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/asgardeo/authflow/internal/credential"
)

// SeedPassword stores a bcrypt password credential for the user. The minimum cost keeps tests fast.
func (s *InMemoryCredentialStore) SeedPassword(realm, userID, password string) credential.Credential {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return s.seed(credential.Credential{
		Realm:          realm,
		UserID:         userID,
		Type:           credential.TypePassword,
		SecretData:     string(hashed),
		CredentialData: `{"algorithm":"bcrypt"}`,
		Priority:       10,
	})
}

// SeedOTP stores a TOTP credential with the given base32 secret for the user.
func (s *InMemoryCredentialStore) SeedOTP(realm, userID, secret string) credential.Credential {
	return s.seed(credential.Credential{
		Realm:          realm,
		UserID:         userID,
		Type:           credential.TypeOTP,
		UserLabel:      "authenticator",
		SecretData:     secret,
		CredentialData: `{"digits":6,"period":30,"algorithm":"SHA1"}`,
		Priority:       20,
	})
}

func (s *InMemoryCredentialStore) seed(c credential.Credential) credential.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = fmt.Sprintf("%s-%s-%d", c.UserID, c.Type, len(s.credentials)+1)
	c.CreatedDate = time.Now().UTC()
	s.credentials[c.ID] = c
	return c
}
