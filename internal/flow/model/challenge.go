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

package model

import "slices"

// InputData describes one input requested by a challenge.
type InputData struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// AlternativeOption describes an alternative the user can switch to.
type AlternativeOption struct {
	ExecutionID     string `json:"executionId"`
	AuthenticatorID string `json:"authenticator,omitempty"`
	DisplayName     string `json:"displayName"`
}

// Challenge is the interactive step returned to the caller when the flow suspends.
type Challenge struct {
	ExecutionID     string              `json:"executionId"`
	AuthenticatorID string              `json:"authenticator"`
	Form            string              `json:"form"`
	Inputs          []InputData         `json:"inputs,omitempty"`
	Error           string              `json:"error,omitempty"`
	Attributes      map[string]string   `json:"attributes,omitempty"`
	Alternatives    []AlternativeOption `json:"alternatives,omitempty"`
	BackAvailable   bool                `json:"backAvailable"`
}

// Clone returns a deep copy of the challenge.
func (c *Challenge) Clone() *Challenge {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Inputs = slices.Clone(c.Inputs)
	cp.Alternatives = slices.Clone(c.Alternatives)
	cp.Attributes = cloneMap(c.Attributes)
	return &cp
}
