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

package flowmgt

import (
	"context"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
)

// CredentialTypeUsage reports the credential types validated by the flows of a realm.
type CredentialTypeUsage struct {
	store    store.FlowStoreInterface
	registry *authenticator.Registry
}

// NewCredentialTypeUsage creates a CredentialTypeUsage over the flow store and registry.
func NewCredentialTypeUsage(flowStore store.FlowStoreInterface, registry *authenticator.Registry) *CredentialTypeUsage {
	return &CredentialTypeUsage{store: flowStore, registry: registry}
}

// EnabledCredentialTypes returns the credential types for which some non disabled execution of the realm
// references an authenticator validating that type.
func (u *CredentialTypeUsage) EnabledCredentialTypes(ctx context.Context, realm string) (map[string]bool, error) {
	flows, err := u.store.GetAuthenticationFlows(ctx, realm)
	if err != nil {
		return nil, err
	}
	enabled := map[string]bool{}
	for _, flow := range flows {
		executions, err := u.store.GetExecutions(ctx, flow.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range executions {
			if e.IsSubFlow() || e.Requirement == model.RequirementDisabled {
				continue
			}
			a, err := u.registry.Get(e.AuthenticatorID)
			if err != nil {
				continue
			}
			if validator, ok := a.(authenticator.CredentialValidatorInterface); ok {
				enabled[validator.GetCredentialType()] = true
			}
		}
	}
	return enabled, nil
}
