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

package flowexec

import (
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/token"
)

// FlowStatus is the status of a flow attempt returned to the caller.
type FlowStatus string

const (
	// FlowStatusIncomplete means the attempt is waiting for the caller to answer a challenge.
	FlowStatusIncomplete FlowStatus = "INCOMPLETE"
	// FlowStatusComplete means the attempt succeeded and a token was issued.
	FlowStatusComplete FlowStatus = "COMPLETE"
)

// FlowRequest is a request to start or resume a flow attempt. An empty SessionID starts a new attempt.
type FlowRequest struct {
	Realm               string            `json:"realm"`
	FlowAlias           string            `json:"flowAlias,omitempty"`
	SessionID           string            `json:"sessionId,omitempty"`
	Action              string            `json:"action,omitempty"`
	ExecutionID         string            `json:"executionId,omitempty"`
	SelectedExecutionID string            `json:"selectedExecutionId,omitempty"`
	Inputs              map[string]string `json:"inputs,omitempty"`
	ClientNotes         map[string]string `json:"clientNotes,omitempty"`
}

// FlowStep is the outcome of a flow request.
type FlowStep struct {
	SessionID string           `json:"sessionId,omitempty"`
	Status    FlowStatus       `json:"flowStatus"`
	Challenge *model.Challenge `json:"challenge,omitempty"`
	// Restarted is set when the referenced session was unknown or expired and a new attempt was started.
	Restarted bool `json:"restarted,omitempty"`
	// Stale is set when the request targeted an earlier step and the current challenge is re-displayed.
	Stale           bool                 `json:"stale,omitempty"`
	Token           *token.TokenResponse `json:"token,omitempty"`
	RequiredActions []string             `json:"requiredActions,omitempty"`
}
