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

// Package authenticator defines the capability contract of authenticators and the registry that resolves them.
package authenticator

import "context"

// AuthenticatorInterface is the capability contract every authenticator implements.
type AuthenticatorInterface interface {
	GetID() string
	GetDisplayName() string
	// Authenticate is invoked when the execution is reached and no action is pending for it.
	Authenticate(actx *Context) (*Response, error)
	// HandleAction is invoked with the inputs submitted for the challenge the authenticator issued.
	HandleAction(actx *Context) (*Response, error)
	// RequiresUser reports whether a user must be bound before the authenticator runs.
	RequiresUser() bool
	// ConfiguredFor reports whether the user has what the authenticator needs, e.g. a stored credential.
	ConfiguredFor(ctx context.Context, realm, userID string) (bool, error)
}

// ConditionalAuthenticatorInterface is implemented by authenticators that act as conditions of a
// CONDITIONAL sub-flow.
type ConditionalAuthenticatorInterface interface {
	AuthenticatorInterface
	MatchCondition(actx *Context) (bool, error)
}

// CredentialValidatorInterface is implemented by authenticators that validate a credential type.
type CredentialValidatorInterface interface {
	GetCredentialType() string
}

// RequiredActionProviderInterface is implemented by authenticators that can ask an unconfigured user
// to set up the missing credential after login.
type RequiredActionProviderInterface interface {
	GetRequiredAction() string
}

// IsConditional reports whether the authenticator is a condition.
func IsConditional(a AuthenticatorInterface) bool {
	_, ok := a.(ConditionalAuthenticatorInterface)
	return ok
}
