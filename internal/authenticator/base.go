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

package authenticator

import (
	"slices"
	"strconv"
	"strings"

	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
)

// Base holds the identity and form of an authenticator. Authenticators embed it.
type Base struct {
	id          string
	displayName string
	form        string
	inputs      []model.InputData
}

// NewBase creates a Base.
func NewBase(id, displayName, form string, inputs []model.InputData) Base {
	return Base{
		id:          id,
		displayName: displayName,
		form:        form,
		inputs:      inputs,
	}
}

// GetID returns the authenticator id.
func (b Base) GetID() string {
	return b.id
}

// GetDisplayName returns the authenticator display name.
func (b Base) GetDisplayName() string {
	return b.displayName
}

// NewChallenge returns a fresh challenge for the authenticator's form.
func (b Base) NewChallenge() *model.Challenge {
	return &model.Challenge{
		AuthenticatorID: b.id,
		Form:            b.form,
		Inputs:          slices.Clone(b.inputs),
		Attributes:      map[string]string{},
	}
}

// MissingInputs returns the names of required inputs that were not submitted.
func (b Base) MissingInputs(actx *Context) []string {
	missing := []string{}
	for _, input := range b.inputs {
		if input.Required && strings.TrimSpace(actx.GetInput(input.Name)) == "" {
			missing = append(missing, input.Name)
		}
	}
	return missing
}

// RecordFailedAttempt increments the failed login attempt counter of the session and reports whether
// the realm's limit has been reached.
func RecordFailedAttempt(actx *Context) bool {
	attempts, _ := strconv.Atoi(actx.GetAuthNote(constants.AuthNoteLoginAttempts))
	attempts++
	actx.SetAuthNote(constants.AuthNoteLoginAttempts, strconv.Itoa(attempts))
	return actx.Realm.MaxLoginAttempts > 0 && attempts >= actx.Realm.MaxLoginAttempts
}

// ResetFailedAttempts clears the failed login attempt counter of the session.
func ResetFailedAttempts(actx *Context) {
	actx.RemoveAuthNote(constants.AuthNoteLoginAttempts)
}
