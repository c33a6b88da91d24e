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

package engine

import (
	"context"
	"errors"

	"github.com/asgardeo/authflow/internal/flow/model"
)

// ActionType identifies what a resume request asks the engine to do.
type ActionType string

const (
	// ActionSubmit delivers inputs to the current challenge.
	ActionSubmit ActionType = "submit"
	// ActionSelect switches to another offered alternative.
	ActionSelect ActionType = "select"
	// ActionBack returns to the previous interactive step.
	ActionBack ActionType = "back"
)

// IsValid reports whether the action type is known. An empty type means submit.
func (a ActionType) IsValid() bool {
	switch a {
	case "", ActionSubmit, ActionSelect, ActionBack:
		return true
	}
	return false
}

// Action is a user action on the current challenge.
type Action struct {
	Type ActionType
	// ExecutionID is the execution the action targets; it must equal the session's current execution.
	ExecutionID         string
	SelectedExecutionID string
	Inputs              map[string]string
}

// ResultStatus is the outcome of an engine invocation that did not fail.
type ResultStatus string

const (
	// ResultIncomplete means the flow is suspended on a challenge.
	ResultIncomplete ResultStatus = "INCOMPLETE"
	// ResultComplete means the top-level flow succeeded.
	ResultComplete ResultStatus = "COMPLETE"
)

// Result is returned by the engine when the flow suspends or completes.
type Result struct {
	Status    ResultStatus
	Challenge *model.Challenge
}

// ErrInvalidSelection is returned when a selected alternative is not offered by the current challenge.
var ErrInvalidSelection = errors.New("selected alternative is not offered")

// FlowValidatorInterface validates a flow tree before it is executed.
type FlowValidatorInterface interface {
	ValidateFlow(ctx context.Context, flowID string) error
}
