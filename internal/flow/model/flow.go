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

// Package model defines the data structures of authentication flows and authentication sessions.
package model

// Requirement defines how an execution participates in its parent flow.
type Requirement string

const (
	// RequirementRequired means the execution must succeed.
	RequirementRequired Requirement = "REQUIRED"
	// RequirementAlternative means one member of the alternative set must succeed.
	RequirementAlternative Requirement = "ALTERNATIVE"
	// RequirementConditional means the sub-flow runs only when its conditions match.
	RequirementConditional Requirement = "CONDITIONAL"
	// RequirementDisabled means the execution is never invoked.
	RequirementDisabled Requirement = "DISABLED"
)

// IsValid reports whether the requirement is one of the known values.
func (r Requirement) IsValid() bool {
	switch r {
	case RequirementRequired, RequirementAlternative, RequirementConditional, RequirementDisabled:
		return true
	}
	return false
}

// FlowModel represents a named, ordered container of executions.
type FlowModel struct {
	ID          string `json:"id" yaml:"id"`
	Realm       string `json:"realm" yaml:"realm"`
	Alias       string `json:"alias" yaml:"alias"`
	ProviderID  string `json:"providerId" yaml:"providerId"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	TopLevel    bool   `json:"topLevel" yaml:"topLevel"`
	BuiltIn     bool   `json:"builtIn" yaml:"builtIn"`
}

// ExecutionModel represents one entry of a flow. Exactly one of AuthenticatorID and FlowID is set.
type ExecutionModel struct {
	ID                string            `json:"id"`
	ParentFlowID      string            `json:"parentFlowId"`
	AuthenticatorID   string            `json:"authenticator,omitempty"`
	FlowID            string            `json:"flowId,omitempty"`
	Requirement       Requirement       `json:"requirement"`
	Priority          int               `json:"priority"`
	AuthenticatorFlow bool              `json:"authenticatorFlow"`
	Config            map[string]string `json:"config,omitempty"`
}

// IsSubFlow reports whether the execution references a sub-flow.
func (e ExecutionModel) IsSubFlow() bool {
	return e.AuthenticatorFlow
}

// Clone returns a copy of the execution that shares no mutable state with the receiver.
func (e ExecutionModel) Clone() ExecutionModel {
	c := e
	if e.Config != nil {
		c.Config = make(map[string]string, len(e.Config))
		for k, v := range e.Config {
			c.Config[k] = v
		}
	}
	return c
}

// GetConfig returns the configuration value for the key, or an empty string.
func (e ExecutionModel) GetConfig(key string) string {
	if e.Config == nil {
		return ""
	}
	return e.Config[key]
}
