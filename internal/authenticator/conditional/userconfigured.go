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

// Package conditional provides the condition authenticators used by CONDITIONAL sub-flows.
package conditional

import (
	"context"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/model"
)

// UserConfiguredID is the id of the user configured condition.
const UserConfiguredID = "conditional-user-configured"

// UserConfiguredCondition matches when the bound user is configured for the authenticators of its sub-flow.
type UserConfiguredCondition struct {
	authenticator.Base
}

var _ authenticator.ConditionalAuthenticatorInterface = (*UserConfiguredCondition)(nil)

// NewUserConfiguredCondition creates the condition.
func NewUserConfiguredCondition() *UserConfiguredCondition {
	return &UserConfiguredCondition{
		Base: authenticator.NewBase(UserConfiguredID, "Condition - User Configured", "", nil),
	}
}

// MatchCondition requires every REQUIRED authenticator of the sub-flow, and at least one ALTERNATIVE
// authenticator when there are any, to be configured for the bound user. Sub-flow siblings are not inspected.
func (c *UserConfiguredCondition) MatchCondition(actx *authenticator.Context) (bool, error) {
	userID := actx.GetUserID()
	if userID == "" {
		return false, nil
	}

	hasAlternative := false
	alternativeConfigured := false
	for _, sibling := range actx.Siblings {
		if sibling.ID == actx.Execution.ID || sibling.IsSubFlow() ||
			sibling.Requirement == model.RequirementDisabled {
			continue
		}
		a, err := actx.Registry.Get(sibling.AuthenticatorID)
		if err != nil {
			return false, err
		}
		if authenticator.IsConditional(a) {
			continue
		}
		configured, err := a.ConfiguredFor(actx.Context(), actx.Realm.Name, userID)
		if err != nil {
			return false, err
		}
		if sibling.Requirement == model.RequirementAlternative {
			hasAlternative = true
			alternativeConfigured = alternativeConfigured || configured
			continue
		}
		if !configured {
			return false, nil
		}
	}
	return !hasAlternative || alternativeConfigured, nil
}

// RequiresUser returns false; an unbound session does not match.
func (c *UserConfiguredCondition) RequiresUser() bool {
	return false
}

// ConfiguredFor always returns true.
func (c *UserConfiguredCondition) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

// Authenticate succeeds; conditions are evaluated, not executed.
func (c *UserConfiguredCondition) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}

// HandleAction succeeds; conditions are evaluated, not executed.
func (c *UserConfiguredCondition) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}
