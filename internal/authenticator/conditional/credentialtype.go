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

package conditional

import (
	"context"
	"strconv"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
)

// CredentialTypeID is the id of the credential type condition.
const CredentialTypeID = "conditional-credential-type"

// CredentialTypeCondition matches when the bound user has a stored credential of the configured type.
// The "negate" configuration inverts the result.
type CredentialTypeCondition struct {
	authenticator.Base
	credentialService credential.CredentialServiceInterface
}

var _ authenticator.ConditionalAuthenticatorInterface = (*CredentialTypeCondition)(nil)

// NewCredentialTypeCondition creates the condition.
func NewCredentialTypeCondition(credentialService credential.CredentialServiceInterface) *CredentialTypeCondition {
	return &CredentialTypeCondition{
		Base:              authenticator.NewBase(CredentialTypeID, "Condition - Credential Type", "", nil),
		credentialService: credentialService,
	}
}

// MatchCondition checks the stored credentials of the bound user.
func (c *CredentialTypeCondition) MatchCondition(actx *authenticator.Context) (bool, error) {
	credentialType := actx.GetConfig(constants.ConfigCredentialType)
	if credentialType == "" {
		return false, &model.ConfigurationError{
			FlowID:      actx.Flow.ID,
			ExecutionID: actx.Execution.ID,
			Reason:      "credential type condition has no credential_type configured",
		}
	}
	negate, _ := strconv.ParseBool(actx.GetConfig(constants.ConfigNegate))

	userID := actx.GetUserID()
	if userID == "" {
		return false, nil
	}
	configured, err := c.credentialService.IsConfiguredFor(actx.Context(), actx.Realm.Name, userID, credentialType)
	if err != nil {
		return false, err
	}
	return configured != negate, nil
}

// RequiresUser returns false; an unbound session does not match.
func (c *CredentialTypeCondition) RequiresUser() bool {
	return false
}

// ConfiguredFor always returns true.
func (c *CredentialTypeCondition) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

// Authenticate succeeds; conditions are evaluated, not executed.
func (c *CredentialTypeCondition) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}

// HandleAction succeeds; conditions are evaluated, not executed.
func (c *CredentialTypeCondition) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}
