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

// Package usernamepassword provides the authenticator that identifies and authenticates a user with a
// username (or e-mail) and password.
package usernamepassword

import (
	"context"
	"fmt"
	"strings"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/bruteforce"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/log"
	"github.com/asgardeo/authflow/internal/user"
)

const (
	// ID is the id of the username password authenticator.
	ID = "auth-username-password-form"
	// Form is the name of the login form.
	Form = "login-username-password"

	loggerComponentName = "UsernamePasswordAuthenticator"
	inputUsername       = "username"
	inputPassword       = "password"
)

// UsernamePasswordAuthenticator binds the user identified by the submitted username or e-mail once the
// password validates.
type UsernamePasswordAuthenticator struct {
	authenticator.Base
	userService       user.UserServiceInterface
	credentialService credential.CredentialServiceInterface
	detector          bruteforce.DetectorInterface
}

var (
	_ authenticator.AuthenticatorInterface       = (*UsernamePasswordAuthenticator)(nil)
	_ authenticator.CredentialValidatorInterface = (*UsernamePasswordAuthenticator)(nil)
)

// New creates the authenticator. The detector may be nil.
func New(userService user.UserServiceInterface, credentialService credential.CredentialServiceInterface,
	detector bruteforce.DetectorInterface) *UsernamePasswordAuthenticator {
	return &UsernamePasswordAuthenticator{
		Base: authenticator.NewBase(ID, "Username Password Form", Form, []model.InputData{
			{Name: inputUsername, Type: "string", Required: true},
			{Name: inputPassword, Type: "password", Required: true},
		}),
		userService:       userService,
		credentialService: credentialService,
		detector:          detector,
	}
}

// RequiresUser returns false; the authenticator identifies the user itself.
func (a *UsernamePasswordAuthenticator) RequiresUser() bool {
	return false
}

// ConfiguredFor always returns true.
func (a *UsernamePasswordAuthenticator) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

// GetCredentialType returns the password credential type.
func (a *UsernamePasswordAuthenticator) GetCredentialType() string {
	return credential.TypePassword
}

// Authenticate issues the login form, prefilled with the expected or last attempted username.
func (a *UsernamePasswordAuthenticator) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Challenge(a.challenge(actx)), nil
}

// HandleAction validates the submitted username and password.
func (a *UsernamePasswordAuthenticator) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyExecutionID, actx.Execution.ID))

	if len(a.MissingInputs(actx)) > 0 {
		return actx.FailureChallenge(constants.ErrorCodeMissingInput, a.challenge(actx)), nil
	}
	username := strings.TrimSpace(actx.GetInput(inputUsername))
	password := actx.GetInput(inputPassword)
	actx.SetAuthNote(constants.AuthNoteAttemptedUsername, username)

	u, svcErr := a.userService.FindUser(actx.Context(), actx.Realm.Name, username)
	if svcErr != nil && svcErr.Code != user.ErrorUserNotFound.Code {
		logger.Error("Failed to look up user", log.String("error", svcErr.Error), log.String("code", svcErr.Code))
		return nil, fmt.Errorf("failed to look up user: %s", svcErr.Code)
	}
	if u == nil {
		logger.Debug("No user matches the submitted username", log.String("username", log.MaskString(username)))
		return a.failedAttempt(actx, constants.ErrorCodeInvalidUser), nil
	}
	if expected := actx.GetAuthNote(constants.AuthNoteExistingUserID); expected != "" && expected != u.ID {
		logger.Debug("Submitted username does not match the account being linked")
		return a.failedAttempt(actx, constants.ErrorCodeInvalidUser), nil
	}
	if !u.Enabled {
		return actx.FailureChallenge(constants.ErrorCodeUserDisabled, a.challenge(actx)), nil
	}
	if a.detector != nil && a.detector.IsTemporarilyDisabled(actx.Realm.Name, u.ID) {
		actx.SetAttemptedUser(u.ID)
		return actx.FailureChallenge(constants.ErrorCodeUserTemporarilyDisabled, a.challenge(actx)), nil
	}

	valid, err := a.credentialService.IsValid(actx.Context(), actx.Realm.Name, u.ID,
		credential.CredentialInput{Type: credential.TypePassword, Value: password})
	if err != nil {
		return nil, err
	}
	if !valid {
		actx.SetAttemptedUser(u.ID)
		return a.failedAttempt(actx, constants.ErrorCodeInvalidCredentials), nil
	}

	authenticator.ResetFailedAttempts(actx)
	actx.RemoveAuthNote(constants.AuthNoteAttemptedUsername)
	actx.SetUser(u.ID)
	logger.Debug("User authenticated with username and password")
	return actx.Success(), nil
}

func (a *UsernamePasswordAuthenticator) failedAttempt(actx *authenticator.Context,
	code string) *authenticator.Response {
	if authenticator.RecordFailedAttempt(actx) {
		return actx.Failure(constants.ErrorCodeTooManyAttempts)
	}
	return actx.FailureChallenge(code, a.challenge(actx))
}

func (a *UsernamePasswordAuthenticator) challenge(actx *authenticator.Context) *model.Challenge {
	ch := a.NewChallenge()
	if username := actx.GetAuthNote(constants.AuthNoteAttemptedUsername); username != "" {
		ch.Attributes[inputUsername] = username
	}
	if expected := actx.GetAuthNote(constants.AuthNoteExistingUserID); expected != "" {
		if u, svcErr := a.userService.GetUser(actx.Context(), actx.Realm.Name, expected); svcErr == nil {
			ch.Attributes[inputUsername] = u.Username
			ch.Attributes["usernameEditDisabled"] = "true"
		}
	}
	return ch
}
