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

import "github.com/asgardeo/authflow/internal/flow/model"

// FlowDefinition describes a flow tree to import. Sub-flows are nested inside the executions that
// reference them.
type FlowDefinition struct {
	// Realm restricts the definition to one realm. An empty realm imports it into every realm.
	Realm       string                `json:"realm,omitempty" yaml:"realm,omitempty"`
	Alias       string                `json:"alias" yaml:"alias"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	ProviderID  string                `json:"providerId,omitempty" yaml:"providerId,omitempty"`
	TopLevel    bool                  `json:"topLevel" yaml:"topLevel"`
	Executions  []ExecutionDefinition `json:"executions" yaml:"executions"`
}

// ExecutionDefinition describes one execution of a FlowDefinition. Exactly one of Authenticator and Flow
// is set.
type ExecutionDefinition struct {
	Authenticator string            `json:"authenticator,omitempty" yaml:"authenticator,omitempty"`
	Flow          *FlowDefinition   `json:"flow,omitempty" yaml:"flow,omitempty"`
	Requirement   model.Requirement `json:"requirement" yaml:"requirement"`
	Config        map[string]string `json:"config,omitempty" yaml:"config,omitempty"`
}

// ExecutionInfo is one row of the flattened execution tree of a flow.
type ExecutionInfo struct {
	ID                string            `json:"id"`
	ParentFlowID      string            `json:"parentFlowId"`
	AuthenticatorID   string            `json:"authenticator,omitempty"`
	DisplayName       string            `json:"displayName"`
	Requirement       model.Requirement `json:"requirement"`
	Priority          int               `json:"priority"`
	Level             int               `json:"level"`
	Index             int               `json:"index"`
	AuthenticatorFlow bool              `json:"authenticationFlow"`
	FlowID            string            `json:"flowId,omitempty"`
	Config            map[string]string `json:"config,omitempty"`
}

// ExecutionUpdate holds the changes applied to an execution. Zero values leave the field unchanged.
type ExecutionUpdate struct {
	Requirement model.Requirement `json:"requirement,omitempty"`
	Priority    int               `json:"priority,omitempty"`
	Config      map[string]string `json:"config,omitempty"`
}

// ValidationReport lists the configuration problems found in a flow tree.
type ValidationReport struct {
	FlowID   string   `json:"flowId"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// CreateFlowRequest is the body of a create flow request.
type CreateFlowRequest struct {
	Alias       string `json:"alias"`
	Description string `json:"description"`
	ProviderID  string `json:"providerId"`
	TopLevel    bool   `json:"topLevel"`
}

// CopyFlowRequest is the body of a copy flow request.
type CopyFlowRequest struct {
	NewName string `json:"newName"`
}

// AddExecutionRequest is the body of an add execution request. Provider selects an authenticator;
// Alias adds a sub-flow instead.
type AddExecutionRequest struct {
	Provider    string            `json:"provider,omitempty"`
	Alias       string            `json:"alias,omitempty"`
	Type        string            `json:"type,omitempty"`
	Requirement model.Requirement `json:"requirement,omitempty"`
	Priority    int               `json:"priority,omitempty"`
}
