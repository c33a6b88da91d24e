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

// Package tokenmock provides test doubles for the token package.
package tokenmock

import (
	"sync"

	"github.com/asgardeo/authflow/internal/token"
)

// MockIssuer records issue requests and returns IssueFunc's result, or a fixed token when it is unset.
type MockIssuer struct {
	mu        sync.Mutex
	IssueFunc func(req token.IssueRequest) (*token.TokenResponse, error)
	Requests  []token.IssueRequest
}

// IssueToken records the request.
func (m *MockIssuer) IssueToken(req token.IssueRequest) (*token.TokenResponse, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.IssueFunc != nil {
		return m.IssueFunc(req)
	}
	return &token.TokenResponse{AccessToken: "token-" + req.SessionID, TokenType: "Bearer", ExpiresIn: 3600}, nil
}

// Calls returns the number of issue requests.
func (m *MockIssuer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
