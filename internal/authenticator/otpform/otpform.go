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

// Package otpform provides the authenticator that validates a time based one time password of the bound user.
package otpform

import (
	"context"
	"strings"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/bruteforce"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
)

const (
	// ID is the id of the OTP form authenticator.
	ID = "auth-otp-form"
	// Form is the name of the OTP form.
	Form = "login-otp"

	inputOTP          = "otp"
	inputCredentialID = "selectedCredentialId"
)

// OTPFormAuthenticator validates an OTP code against the OTP credentials of the bound user.
type OTPFormAuthenticator struct {
	authenticator.Base
	credentialService credential.CredentialServiceInterface
	detector          bruteforce.DetectorInterface
}

var (
	_ authenticator.AuthenticatorInterface          = (*OTPFormAuthenticator)(nil)
	_ authenticator.CredentialValidatorInterface    = (*OTPFormAuthenticator)(nil)
	_ authenticator.RequiredActionProviderInterface = (*OTPFormAuthenticator)(nil)
)

// New creates the authenticator. The detector may be nil.
func New(credentialService credential.CredentialServiceInterface,
	detector bruteforce.DetectorInterface) *OTPFormAuthenticator {
	return &OTPFormAuthenticator{
		Base: authenticator.NewBase(ID, "OTP Form", Form, []model.InputData{
			{Name: inputOTP, Type: "otp", Required: true},
			{Name: inputCredentialID, Type: "string"},
		}),
		credentialService: credentialService,
		detector:          detector,
	}
}

// RequiresUser returns true.
func (a *OTPFormAuthenticator) RequiresUser() bool {
	return true
}

// ConfiguredFor reports whether the user has at least one OTP credential.
func (a *OTPFormAuthenticator) ConfiguredFor(ctx context.Context, realm, userID string) (bool, error) {
	return a.credentialService.IsConfiguredFor(ctx, realm, userID, credential.TypeOTP)
}

// GetCredentialType returns the OTP credential type.
func (a *OTPFormAuthenticator) GetCredentialType() string {
	return credential.TypeOTP
}

// GetRequiredAction returns the action that registers an OTP device.
func (a *OTPFormAuthenticator) GetRequiredAction() string {
	return credential.RequiredActionConfigureTOTP
}

// Authenticate issues the OTP form listing the user's OTP devices.
func (a *OTPFormAuthenticator) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	ch, err := a.challenge(actx)
	if err != nil {
		return nil, err
	}
	return actx.Challenge(ch), nil
}

// HandleAction validates the submitted OTP code.
func (a *OTPFormAuthenticator) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	ch, err := a.challenge(actx)
	if err != nil {
		return nil, err
	}
	if len(a.MissingInputs(actx)) > 0 {
		return actx.FailureChallenge(constants.ErrorCodeMissingInput, ch), nil
	}
	userID := actx.GetUserID()
	if a.detector != nil && a.detector.IsTemporarilyDisabled(actx.Realm.Name, userID) {
		return actx.FailureChallenge(constants.ErrorCodeUserTemporarilyDisabled, ch), nil
	}

	valid, err := a.credentialService.IsValid(actx.Context(), actx.Realm.Name, userID, credential.CredentialInput{
		Type:         credential.TypeOTP,
		Value:        strings.TrimSpace(actx.GetInput(inputOTP)),
		CredentialID: actx.GetInput(inputCredentialID),
	})
	if err != nil {
		return nil, err
	}
	if !valid {
		if authenticator.RecordFailedAttempt(actx) {
			return actx.Failure(constants.ErrorCodeTooManyAttempts), nil
		}
		// Failed codes count as credential failures; the form shows the OTP specific message.
		ch.Error = constants.ErrorCodeInvalidTOTP
		return actx.FailureChallenge(constants.ErrorCodeInvalidCredentials, ch), nil
	}

	authenticator.ResetFailedAttempts(actx)
	return actx.Success(), nil
}

func (a *OTPFormAuthenticator) challenge(actx *authenticator.Context) (*model.Challenge, error) {
	ch := a.NewChallenge()
	creds, err := a.credentialService.GetStoredCredentialsByType(actx.Context(), actx.Realm.Name,
		actx.GetUserID(), credential.TypeOTP)
	if err != nil {
		return nil, err
	}
	if len(creds) > 1 {
		ids := make([]string, 0, len(creds))
		for _, c := range creds {
			ids = append(ids, c.ID)
		}
		ch.Attributes["otpCredentials"] = strings.Join(ids, ",")
	}
	return ch, nil
}
