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

package token

import "github.com/golang-jwt/jwt/v5"

// Subject is the authenticated subject a token is issued for.
type Subject struct {
	UserID   string
	Username string
	Email    string
}

// IssueRequest carries everything needed to issue a token for a completed authentication.
type IssueRequest struct {
	Realm           string
	SessionID       string
	Subject         Subject
	ClientNotes     map[string]string
	RequiredActions []string
}

// TokenResponse is the issued token artifact.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// Claims are the claims carried by issued access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Realm             string   `json:"realm"`
	PreferredUsername string   `json:"preferred_username,omitempty"`
	Email             string   `json:"email,omitempty"`
	SessionState      string   `json:"session_state,omitempty"`
	Scope             string   `json:"scope,omitempty"`
	RequiredActions   []string `json:"required_actions,omitempty"`
}
