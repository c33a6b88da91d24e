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

package model

import (
	"slices"
	"time"
)

// AuthenticationSession holds the state of one in-progress authentication attempt.
type AuthenticationSession struct {
	ID                  string            `json:"id"`
	Realm               string            `json:"realm"`
	FlowID              string            `json:"flowId"`
	FlowAlias           string            `json:"flowAlias"`
	CurrentExecutionID  string            `json:"currentExecutionId,omitempty"`
	ExecutionStack      []string          `json:"executionStack,omitempty"`
	CompletedExecutions []string          `json:"completedExecutions,omitempty"`
	AuthNotes           map[string]string `json:"authNotes,omitempty"`
	ClientNotes         map[string]string `json:"clientNotes,omitempty"`
	AuthenticatedUserID string            `json:"authenticatedUserId,omitempty"`
	UserBoundBy         string            `json:"userBoundBy,omitempty"`
	RequiredActions     []string          `json:"requiredActions,omitempty"`
	LastChallenge       *Challenge        `json:"lastChallenge,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	ExpiresAt           time.Time         `json:"expiresAt"`
}

// IsExpired reports whether the session has expired at the given time.
func (s *AuthenticationSession) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// IsCompleted reports whether the execution has been satisfied in this session.
func (s *AuthenticationSession) IsCompleted(executionID string) bool {
	return slices.Contains(s.CompletedExecutions, executionID)
}

// MarkCompleted records the execution as satisfied. Recording twice has no effect.
func (s *AuthenticationSession) MarkCompleted(executionID string) {
	if !s.IsCompleted(executionID) {
		s.CompletedExecutions = append(s.CompletedExecutions, executionID)
	}
}

// TruncateCompletedFrom removes the execution and every execution completed after it.
func (s *AuthenticationSession) TruncateCompletedFrom(executionID string) {
	idx := slices.Index(s.CompletedExecutions, executionID)
	if idx >= 0 {
		s.CompletedExecutions = s.CompletedExecutions[:idx]
	}
}

// PushExecution pushes an interactive execution onto the back navigation stack.
func (s *AuthenticationSession) PushExecution(executionID string) {
	if n := len(s.ExecutionStack); n > 0 && s.ExecutionStack[n-1] == executionID {
		return
	}
	s.ExecutionStack = append(s.ExecutionStack, executionID)
}

// PopExecution removes and returns the top of the back navigation stack.
func (s *AuthenticationSession) PopExecution() (string, bool) {
	n := len(s.ExecutionStack)
	if n == 0 {
		return "", false
	}
	top := s.ExecutionStack[n-1]
	s.ExecutionStack = s.ExecutionStack[:n-1]
	return top, true
}

// GetAuthNote returns the auth note stored under the key.
func (s *AuthenticationSession) GetAuthNote(key string) string {
	if s.AuthNotes == nil {
		return ""
	}
	return s.AuthNotes[key]
}

// SetAuthNote stores an auth note.
func (s *AuthenticationSession) SetAuthNote(key, value string) {
	if s.AuthNotes == nil {
		s.AuthNotes = make(map[string]string)
	}
	s.AuthNotes[key] = value
}

// RemoveAuthNote removes an auth note.
func (s *AuthenticationSession) RemoveAuthNote(key string) {
	delete(s.AuthNotes, key)
}

// GetClientNote returns the client note stored under the key.
func (s *AuthenticationSession) GetClientNote(key string) string {
	if s.ClientNotes == nil {
		return ""
	}
	return s.ClientNotes[key]
}

// AddRequiredAction records a required action once.
func (s *AuthenticationSession) AddRequiredAction(action string) {
	if !slices.Contains(s.RequiredActions, action) {
		s.RequiredActions = append(s.RequiredActions, action)
	}
}

// BindUser binds the authenticated user and records the execution that bound it.
func (s *AuthenticationSession) BindUser(userID, executionID string) {
	s.AuthenticatedUserID = userID
	s.UserBoundBy = executionID
}

// ClearUser removes the user binding.
func (s *AuthenticationSession) ClearUser() {
	s.AuthenticatedUserID = ""
	s.UserBoundBy = ""
}

// Clone returns a deep copy of the session.
func (s *AuthenticationSession) Clone() *AuthenticationSession {
	c := *s
	c.ExecutionStack = slices.Clone(s.ExecutionStack)
	c.CompletedExecutions = slices.Clone(s.CompletedExecutions)
	c.RequiredActions = slices.Clone(s.RequiredActions)
	c.AuthNotes = cloneMap(s.AuthNotes)
	c.ClientNotes = cloneMap(s.ClientNotes)
	if s.LastChallenge != nil {
		c.LastChallenge = s.LastChallenge.Clone()
	}
	return &c
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
