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

// Package condition evaluates the conditions that decide whether a CONDITIONAL sub-flow runs.
package condition

import (
	"fmt"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/system/log"
)

// EvaluatorInterface evaluates the conditions of a CONDITIONAL sub-flow.
type EvaluatorInterface interface {
	// Evaluate reports whether every active condition matches. The context must be positioned on the
	// sub-flow whose conditions are evaluated, with the sub-flow's executions as siblings.
	Evaluate(actx *authenticator.Context, conditions []model.ExecutionModel) (bool, error)
}

type evaluator struct {
	logger *log.Logger
}

// NewEvaluator creates a condition evaluator.
func NewEvaluator() EvaluatorInterface {
	return &evaluator{
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConditionEvaluator")),
	}
}

// Evaluate ANDs the non-disabled conditions and stops at the first one that does not match.
// A sub-flow without active conditions does not match.
func (e *evaluator) Evaluate(actx *authenticator.Context, conditions []model.ExecutionModel) (bool, error) {
	evaluated := 0
	for _, execution := range conditions {
		if execution.Requirement == model.RequirementDisabled {
			continue
		}
		a, err := actx.Registry.Get(execution.AuthenticatorID)
		if err != nil {
			return false, err
		}
		condition, ok := a.(authenticator.ConditionalAuthenticatorInterface)
		if !ok {
			return false, &model.ConfigurationError{
				FlowID:      actx.Flow.ID,
				ExecutionID: execution.ID,
				Reason:      fmt.Sprintf("authenticator %s is not a condition", execution.AuthenticatorID),
			}
		}

		match, err := condition.MatchCondition(actx.WithExecution(execution))
		if err != nil {
			return false, err
		}
		evaluated++
		if !match {
			e.logger.Debug("Condition did not match",
				log.String(log.LoggerKeyExecutionID, execution.ID),
				log.String(log.LoggerKeyAuthenticatorID, execution.AuthenticatorID))
			return false, nil
		}
	}
	return evaluated > 0, nil
}
