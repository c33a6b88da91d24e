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

// Package passwordform provides the authenticator that validates the password of an already identified user.
package passwordform

import (
	"context"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/bruteforce"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
)

const (
	// ID is the id of the password form authenticator.
	ID = "auth-password-form"
	// Form is the name of the password form.
	Form = "login-password"

	inputPassword = "password"
)

// PasswordFormAuthenticator validates the password of the bound user.
type PasswordFormAuthenticator struct {
	authenticator.Base
	credentialService credential.CredentialServiceInterface
	detector          bruteforce.DetectorInterface
}

var (
	_ authenticator.AuthenticatorInterface       = (*PasswordFormAuthenticator)(nil)
	_ authenticator.CredentialValidatorInterface = (*PasswordFormAuthenticator)(nil)
)

// New creates the authenticator. The detector may be nil.
func New(credentialService credential.CredentialServiceInterface,
	detector bruteforce.DetectorInterface) *PasswordFormAuthenticator {
	return &PasswordFormAuthenticator{
		Base: authenticator.NewBase(ID, "Password Form", Form, []model.InputData{
			{Name: inputPassword, Type: "password", Required: true},
		}),
		credentialService: credentialService,
		detector:          detector,
	}
}

// RequiresUser returns true.
func (a *PasswordFormAuthenticator) RequiresUser() bool {
	return true
}

// ConfiguredFor reports whether the user has a stored password.
func (a *PasswordFormAuthenticator) ConfiguredFor(ctx context.Context, realm, userID string) (bool, error) {
	return a.credentialService.IsConfiguredFor(ctx, realm, userID, credential.TypePassword)
}

// GetCredentialType returns the password credential type.
func (a *PasswordFormAuthenticator) GetCredentialType() string {
	return credential.TypePassword
}

// Authenticate issues the password form.
func (a *PasswordFormAuthenticator) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Challenge(a.NewChallenge()), nil
}

// HandleAction validates the submitted password against the bound user's credential.
func (a *PasswordFormAuthenticator) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	if len(a.MissingInputs(actx)) > 0 {
		return actx.FailureChallenge(constants.ErrorCodeMissingInput, a.NewChallenge()), nil
	}
	userID := actx.GetUserID()
	if a.detector != nil && a.detector.IsTemporarilyDisabled(actx.Realm.Name, userID) {
		return actx.FailureChallenge(constants.ErrorCodeUserTemporarilyDisabled, a.NewChallenge()), nil
	}

	valid, err := a.credentialService.IsValid(actx.Context(), actx.Realm.Name, userID,
		credential.CredentialInput{Type: credential.TypePassword, Value: actx.GetInput(inputPassword)})
	if err != nil {
		return nil, err
	}
	if !valid {
		if authenticator.RecordFailedAttempt(actx) {
			return actx.Failure(constants.ErrorCodeTooManyAttempts), nil
		}
		return actx.FailureChallenge(constants.ErrorCodeInvalidCredentials, a.NewChallenge()), nil
	}

	authenticator.ResetFailedAttempts(actx)
	return actx.Success(), nil
}
