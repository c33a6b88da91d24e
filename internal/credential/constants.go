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

package credential

import (
	"errors"

	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
)

const (
	// TypePassword is the credential type of passwords.
	TypePassword = "password"
	// TypeOTP is the credential type of time based one time passwords.
	TypeOTP = "otp"

	// RequiredActionConfigureTOTP is the required action that asks a user to register an OTP device.
	RequiredActionConfigureTOTP = "CONFIGURE_TOTP"
	// RequiredActionUpdatePassword is the required action that asks a user to set a password.
	RequiredActionUpdatePassword = "UPDATE_PASSWORD"

	defaultOTPDigits    = 6
	defaultOTPPeriod    = 30
	defaultOTPAlgorithm = "SHA1"
	otpSkew             = 1
)

// ErrCredentialNotFound is returned by stores when no credential matches.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrorCredentialNotFound is the error returned when a credential does not exist.
var ErrorCredentialNotFound = serviceerror.ServiceError{
	Code:             "CRD-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Credential not found",
	ErrorDescription: "No credential matches the provided identifier",
}

// ErrorUnsupportedCredentialType is the error returned for unknown credential types.
var ErrorUnsupportedCredentialType = serviceerror.ServiceError{
	Code:             "CRD-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Unsupported credential type",
	ErrorDescription: "The credential type is not supported",
}

// ErrorInvalidCredentialValue is the error returned when a credential value is empty or malformed.
var ErrorInvalidCredentialValue = serviceerror.ServiceError{
	Code:             "CRD-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid credential value",
	ErrorDescription: "The credential value is empty or malformed",
}

// ErrorInvalidCurrentPassword is the error returned when the current password does not validate.
var ErrorInvalidCurrentPassword = serviceerror.ServiceError{
	Code:             "CRD-60004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid password",
	ErrorDescription: "The current password is invalid",
}

// ErrorPasswordConfirmationMismatch is the error returned when the new password confirmation does not match.
var ErrorPasswordConfirmationMismatch = serviceerror.ServiceError{
	Code:             "CRD-60005",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid password confirmation",
	ErrorDescription: "The password confirmation does not match",
}

// ErrorInvalidOTPCode is the error returned when an OTP registration code does not validate.
var ErrorInvalidOTPCode = serviceerror.ServiceError{
	Code:             "CRD-60006",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid OTP code",
	ErrorDescription: "The one time code does not match the provided secret",
}

// supportedTypes lists the credential types with their account management metadata.
var supportedTypes = []CredentialTypeMetadata{
	{
		Type:         TypePassword,
		Category:     "basic-authentication",
		DisplayName:  "password-display-name",
		HelpText:     "password-help-text",
		IconCSSClass: "kcAuthenticatorPasswordClass",
		UpdateAction: RequiredActionUpdatePassword,
		RemoveAble:   false,
	},
	{
		Type:         TypeOTP,
		Category:     "two-factor",
		DisplayName:  "otp-display-name",
		HelpText:     "otp-help-text",
		IconCSSClass: "kcAuthenticatorOTPClass",
		CreateAction: RequiredActionConfigureTOTP,
		RemoveAble:   true,
	},
}
