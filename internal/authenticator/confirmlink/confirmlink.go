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

// Package confirmlink provides the authenticator that asks the user to confirm linking a brokered identity
// to an existing local account.
package confirmlink

import (
	"context"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/authenticator/autolink"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/user"
)

const (
	// ID is the id of the confirm link authenticator.
	ID = "idp-confirm-link"
	// Form is the name of the link confirmation form.
	Form = "login-idp-link-confirm"

	// ActionLinkAccount confirms the link.
	ActionLinkAccount = "linkAccount"
	// ActionUpdateProfile declines the link.
	ActionUpdateProfile = "updateProfile"

	inputSubmitAction = "submitAction"
)

// ConfirmLinkAuthenticator challenges the user to confirm that the brokered identity belongs to the existing
// account. On confirmation the existing account becomes the account the rest of the flow must verify.
type ConfirmLinkAuthenticator struct {
	authenticator.Base
	userService user.UserServiceInterface
}

var _ authenticator.AuthenticatorInterface = (*ConfirmLinkAuthenticator)(nil)

// New creates the authenticator.
func New(userService user.UserServiceInterface) *ConfirmLinkAuthenticator {
	return &ConfirmLinkAuthenticator{
		Base: authenticator.NewBase(ID, "Confirm Link Existing Account", Form, []model.InputData{
			{Name: inputSubmitAction, Type: "action", Required: true},
		}),
		userService: userService,
	}
}

// RequiresUser returns false.
func (a *ConfirmLinkAuthenticator) RequiresUser() bool {
	return false
}

// ConfiguredFor always returns true.
func (a *ConfirmLinkAuthenticator) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

// Authenticate issues the confirmation page, or reports ATTEMPTED when there is no account to link.
func (a *ConfirmLinkAuthenticator) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	existing, err := autolink.FindExistingUser(actx, a.userService)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return actx.Attempted(), nil
	}
	return actx.Challenge(a.challenge(actx, existing)), nil
}

// HandleAction links on confirmation and fails the attempt otherwise.
func (a *ConfirmLinkAuthenticator) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	existing, err := autolink.FindExistingUser(actx, a.userService)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return actx.Attempted(), nil
	}

	switch actx.GetInput(inputSubmitAction) {
	case ActionLinkAccount:
		actx.SetAuthNote(constants.AuthNoteExistingUserID, existing.ID)
		return actx.Success(), nil
	case ActionUpdateProfile:
		return actx.Failure(constants.ErrorCodeLinkRejected), nil
	default:
		return actx.FailureChallenge(constants.ErrorCodeMissingInput, a.challenge(actx, existing)), nil
	}
}

func (a *ConfirmLinkAuthenticator) challenge(actx *authenticator.Context, existing *user.User) *model.Challenge {
	ch := a.NewChallenge()
	ch.Attributes["username"] = existing.Username
	ch.Attributes["email"] = existing.Email
	if idp := actx.GetAuthNote(constants.AuthNoteBrokeredIdentityProvider); idp != "" {
		ch.Attributes["identityProvider"] = idp
	}
	return ch
}
