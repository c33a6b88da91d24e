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

import "time"

// Credential is a stored credential of a user.
type Credential struct {
	ID             string    `json:"id"`
	Realm          string    `json:"-"`
	UserID         string    `json:"-"`
	Type           string    `json:"type"`
	UserLabel      string    `json:"userLabel,omitempty"`
	SecretData     string    `json:"-"`
	CredentialData string    `json:"credentialData,omitempty"`
	CreatedDate    time.Time `json:"createdDate"`
	Priority       int       `json:"-"`
}

// CredentialInput carries a credential value presented by a user.
type CredentialInput struct {
	Type         string
	Value        string
	CredentialID string
}

// OTPCredentialData holds the non secret parameters of an OTP credential.
type OTPCredentialData struct {
	Digits    int    `json:"digits"`
	Period    uint   `json:"period"`
	Algorithm string `json:"algorithm"`
}

// PasswordCredentialData holds the non secret parameters of a password credential.
type PasswordCredentialData struct {
	Algorithm string `json:"algorithm"`
}

// CredentialTypeMetadata describes a credential type for account management.
type CredentialTypeMetadata struct {
	Type              string `json:"type"`
	Category          string `json:"category"`
	DisplayName       string `json:"displayName"`
	HelpText          string `json:"helptext"`
	IconCSSClass      string `json:"iconCssClass"`
	CreateAction      string `json:"createAction,omitempty"`
	UpdateAction      string `json:"updateAction,omitempty"`
	RemoveAble        bool   `json:"removeable"`
	ConfiguredAtLeast bool   `json:"-"`
}
