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

// Package constants defines the constants shared by the authentication flow packages.
package constants

const (
	// ProviderBasicFlow is the provider id of flows built from authenticator executions.
	ProviderBasicFlow = "basic-flow"
	// ProviderFormFlow is the provider id of flows rendered as a single form.
	ProviderFormFlow = "form-flow"
)

const (
	// AuthNoteSelectedExecution holds the alternative execution selected by the user.
	AuthNoteSelectedExecution = "selected_execution"
	// AuthNoteLoginAttempts holds the number of failed login attempts of the session.
	AuthNoteLoginAttempts = "login_attempts"
	// AuthNoteAttemptedUsername holds the username submitted in the last login form.
	AuthNoteAttemptedUsername = "attempted_username"
	// AuthNoteBrokeredUserEmail holds the e-mail address of the brokered identity.
	AuthNoteBrokeredUserEmail = "brokered_user_email"
	// AuthNoteBrokeredUsername holds the username of the brokered identity.
	AuthNoteBrokeredUsername = "brokered_username"
	// AuthNoteBrokeredIdentityProvider holds the alias of the identity provider that authenticated the user.
	AuthNoteBrokeredIdentityProvider = "brokered_identity_provider"
	// AuthNoteExistingUserID holds the id of the local account matching the brokered identity.
	AuthNoteExistingUserID = "existing_user_id"
)

const (
	// ConfigCredentialType is the execution configuration key naming a credential type.
	ConfigCredentialType = "credential_type"
	// ConfigNegate is the execution configuration key inverting a condition.
	ConfigNegate = "negate"
)

const (
	// ErrorCodeInvalidCredentials is reported when submitted credentials do not validate.
	ErrorCodeInvalidCredentials = "invalid_user_credentials"
	// ErrorCodeInvalidUser is reported when no user matches the submitted identifier.
	ErrorCodeInvalidUser = "invalid_user"
	// ErrorCodeUserDisabled is reported when the user account is disabled.
	ErrorCodeUserDisabled = "user_disabled"
	// ErrorCodeUserTemporarilyDisabled is reported while a user is locked by brute-force protection.
	ErrorCodeUserTemporarilyDisabled = "user_temporarily_disabled"
	// ErrorCodeMissingInput is reported when a required form input is absent.
	ErrorCodeMissingInput = "missing_input"
	// ErrorCodeInvalidTOTP is reported when an OTP code does not validate.
	ErrorCodeInvalidTOTP = "invalid_totp"
	// ErrorCodeUserNotSet is reported when a step needs a user and none is bound.
	ErrorCodeUserNotSet = "user_not_set"
	// ErrorCodeCredentialSetupRequired is reported when a required credential is not configured.
	ErrorCodeCredentialSetupRequired = "credential_setup_required"
	// ErrorCodeNoAlternative is reported when no alternative can be offered or all alternatives failed.
	ErrorCodeNoAlternative = "no_alternative_available"
	// ErrorCodeTooManyAttempts is reported when the realm's login attempt limit is reached.
	ErrorCodeTooManyAttempts = "too_many_attempts"
	// ErrorCodeLinkRejected is reported when the user declines to link a brokered identity.
	ErrorCodeLinkRejected = "link_rejected"
	// ErrorCodeNotApplicable is reported when a required step cannot apply to the session.
	ErrorCodeNotApplicable = "not_applicable"
)
