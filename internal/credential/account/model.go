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

package account

import "github.com/asgardeo/authflow/internal/credential"

// CredentialContainer describes a credential type and, unless filtered out, the user's credentials of it.
type CredentialContainer struct {
	Type            string                  `json:"type"`
	Category        string                  `json:"category"`
	DisplayName     string                  `json:"displayName"`
	HelpText        string                  `json:"helptext"`
	IconCSSClass    string                  `json:"iconCssClass"`
	Enabled         bool                    `json:"enabled"`
	CreateAction    string                  `json:"createAction,omitempty"`
	UpdateAction    string                  `json:"updateAction,omitempty"`
	RemoveAble      bool                    `json:"removeable"`
	UserCredentials []credential.Credential `json:"userCredentials,omitempty"`
}

// CredentialFilter narrows the credential type listing.
type CredentialFilter struct {
	// Type restricts the listing to one credential type when set.
	Type        string
	EnabledOnly bool
	// OmitUserCredentials leaves UserCredentials unset on every container.
	OmitUserCredentials bool
}

// PasswordDetails reports whether the user has a password and when it was last set, in epoch millis.
type PasswordDetails struct {
	Registered bool  `json:"registered"`
	LastUpdate int64 `json:"lastUpdate"`
}

// PasswordUpdateRequest is the body of a password change.
type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	Confirmation    string `json:"confirmation,omitempty"`
}
