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

// Package autolink provides the non-interactive authenticator that binds the local account matching a
// brokered identity.
package autolink

import (
	"context"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/system/log"
	"github.com/asgardeo/authflow/internal/user"
)

// ID is the id of the auto link authenticator.
const ID = "idp-auto-link"

// AutoLinkAuthenticator binds the existing account without user interaction.
type AutoLinkAuthenticator struct {
	authenticator.Base
	userService user.UserServiceInterface
}

var _ authenticator.AuthenticatorInterface = (*AutoLinkAuthenticator)(nil)

// New creates the authenticator.
func New(userService user.UserServiceInterface) *AutoLinkAuthenticator {
	return &AutoLinkAuthenticator{
		Base:        authenticator.NewBase(ID, "Automatically Set Existing User", "", nil),
		userService: userService,
	}
}

// RequiresUser returns false.
func (a *AutoLinkAuthenticator) RequiresUser() bool {
	return false
}

// ConfiguredFor always returns true.
func (a *AutoLinkAuthenticator) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

// Authenticate binds the existing account, or reports ATTEMPTED when there is none.
func (a *AutoLinkAuthenticator) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	existing, err := FindExistingUser(actx, a.userService)
	if err != nil {
		return nil, err
	}
	if existing == nil || !existing.Enabled {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AutoLinkAuthenticator")).
			Debug("No enabled account to link", log.String(log.LoggerKeyExecutionID, actx.Execution.ID))
		return actx.Attempted(), nil
	}
	actx.SetAuthNote(constants.AuthNoteExistingUserID, existing.ID)
	actx.SetUser(existing.ID)
	return actx.Success(), nil
}

// HandleAction behaves like Authenticate; the authenticator never challenges.
func (a *AutoLinkAuthenticator) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	return a.Authenticate(actx)
}

// FindExistingUser resolves the local account matching the brokered identity from the session notes.
// It returns nil when no account matches.
func FindExistingUser(actx *authenticator.Context, userService user.UserServiceInterface) (*user.User, error) {
	lookups := []struct {
		note string
		find func(ctx context.Context, realm, value string) (*user.User, error)
	}{
		{constants.AuthNoteExistingUserID, wrap(userService.GetUser)},
		{constants.AuthNoteBrokeredUserEmail, wrap(userService.GetUserByEmail)},
		{constants.AuthNoteBrokeredUsername, wrap(userService.GetUserByUsername)},
	}
	for _, l := range lookups {
		value := actx.GetAuthNote(l.note)
		if value == "" {
			continue
		}
		u, err := l.find(actx.Context(), actx.Realm.Name, value)
		if err != nil || u != nil {
			return u, err
		}
	}
	return nil, nil
}
