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
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/engine"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/system/log"
)

// FlowValidator checks flow trees for configuration problems. Results are cached per root flow until
// Invalidate is called.
type FlowValidator struct {
	store    store.FlowStoreInterface
	registry *authenticator.Registry
	// strict rejects ALTERNATIVE sets with a single member instead of running them as REQUIRED.
	strict bool
	mu     sync.RWMutex
	cache  map[string][]error
	logger *log.Logger
}

var _ engine.FlowValidatorInterface = (*FlowValidator)(nil)

// NewFlowValidator creates a validator over the flow store and registry.
func NewFlowValidator(flowStore store.FlowStoreInterface, registry *authenticator.Registry,
	strict bool) *FlowValidator {
	return &FlowValidator{
		store:    flowStore,
		registry: registry,
		strict:   strict,
		cache:    make(map[string][]error),
		logger:   log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowValidator")),
	}
}

// ValidateFlow returns a ConfigurationError describing every problem of the flow tree, or nil when the
// tree is valid.
func (v *FlowValidator) ValidateFlow(ctx context.Context, flowID string) error {
	problems, err := v.check(ctx, flowID)
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		return nil
	}
	return &model.ConfigurationError{FlowID: flowID, Reason: multierr.Combine(problems...).Error()}
}

// Problems returns the message of every problem of the flow tree.
func (v *FlowValidator) Problems(ctx context.Context, flowID string) ([]string, error) {
	problems, err := v.check(ctx, flowID)
	if err != nil {
		return nil, err
	}
	list := make([]string, 0, len(problems))
	for _, p := range problems {
		list = append(list, p.Error())
	}
	return list, nil
}

// check returns the cached problems of the flow tree. Store failures are returned as the error and are
// not cached.
func (v *FlowValidator) check(ctx context.Context, flowID string) ([]error, error) {
	v.mu.RLock()
	cached, ok := v.cache[flowID]
	v.mu.RUnlock()
	if ok {
		return cached, nil
	}

	w := &treeWalk{validator: v, ctx: ctx, path: map[string]bool{}}
	if err := w.walkFlow(flowID, false); err != nil {
		return nil, err
	}
	problems := multierr.Errors(w.problems)
	if len(problems) > 0 {
		v.logger.Debug("Flow failed validation", log.String(log.LoggerKeyFlowID, flowID),
			log.Int("problems", len(problems)))
	}

	v.mu.Lock()
	v.cache[flowID] = problems
	v.mu.Unlock()
	return problems, nil
}

// Invalidate drops every cached result.
func (v *FlowValidator) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cache = make(map[string][]error)
}

// treeWalk collects the problems of one flow tree.
type treeWalk struct {
	validator *FlowValidator
	ctx       context.Context
	path      map[string]bool
	problems  error
}

func (w *treeWalk) report(flowID, executionID, format string, args ...interface{}) {
	w.problems = multierr.Append(w.problems, &model.ConfigurationError{
		FlowID:      flowID,
		ExecutionID: executionID,
		Reason:      fmt.Sprintf(format, args...),
	})
}

// walkFlow checks the executions of a flow. Conditional reports whether the flow is the sub-flow of a
// CONDITIONAL execution, which is the only place condition authenticators may appear.
func (w *treeWalk) walkFlow(flowID string, conditional bool) error {
	w.path[flowID] = true
	defer delete(w.path, flowID)

	if _, err := w.validator.store.GetFlowByID(w.ctx, flowID); err != nil {
		if errors.Is(err, store.ErrFlowNotFound) {
			w.report(flowID, "", "flow does not exist")
			return nil
		}
		return err
	}
	executions, err := w.validator.store.GetExecutions(w.ctx, flowID)
	if err != nil {
		return err
	}

	priorities := map[int]string{}
	alternatives := 0
	conditions := 0
	for _, e := range executions {
		if other, ok := priorities[e.Priority]; ok {
			w.report(flowID, e.ID, "priority %d is also used by execution %s", e.Priority, other)
		}
		priorities[e.Priority] = e.ID

		if !e.Requirement.IsValid() {
			w.report(flowID, e.ID, "unknown requirement %q", e.Requirement)
			continue
		}
		if e.Requirement == model.RequirementDisabled {
			continue
		}

		isCondition, err := w.checkExecution(flowID, e)
		if err != nil {
			return err
		}
		if isCondition {
			conditions++
			if !conditional {
				w.report(flowID, e.ID, "condition authenticator %q is outside a CONDITIONAL sub-flow",
					e.AuthenticatorID)
			}
			continue
		}
		if e.Requirement == model.RequirementAlternative {
			alternatives++
		}
	}

	if conditional && conditions == 0 {
		w.report(flowID, "", "CONDITIONAL sub-flow has no condition authenticators")
	}
	if w.validator.strict && alternatives == 1 {
		w.report(flowID, "", "ALTERNATIVE set has a single member")
	}
	return nil
}

// checkExecution checks one non-disabled execution and descends into its sub-flow. It reports whether the
// execution is a condition authenticator.
func (w *treeWalk) checkExecution(flowID string, e model.ExecutionModel) (bool, error) {
	hasAuthenticator := e.AuthenticatorID != ""
	hasFlow := e.FlowID != "" || e.AuthenticatorFlow
	switch {
	case hasAuthenticator && hasFlow:
		w.report(flowID, e.ID, "execution references both an authenticator and a sub-flow")
		return false, nil
	case !hasAuthenticator && !hasFlow:
		w.report(flowID, e.ID, "execution references neither an authenticator nor a sub-flow")
		return false, nil
	}

	if hasAuthenticator {
		if e.Requirement == model.RequirementConditional {
			w.report(flowID, e.ID, "CONDITIONAL requirement is only valid on a sub-flow")
		}
		a, err := w.validator.registry.Get(e.AuthenticatorID)
		if err != nil {
			w.report(flowID, e.ID, "unknown authenticator %q", e.AuthenticatorID)
			return false, nil
		}
		return authenticator.IsConditional(a), nil
	}

	if e.FlowID == "" {
		w.report(flowID, e.ID, "sub-flow execution has no flow reference")
		return false, nil
	}
	if w.path[e.FlowID] {
		w.report(flowID, e.ID, "sub-flow %s creates a cycle", e.FlowID)
		return false, nil
	}
	if _, err := w.validator.store.GetFlowByID(w.ctx, e.FlowID); err != nil {
		if errors.Is(err, store.ErrFlowNotFound) {
			w.report(flowID, e.ID, "sub-flow %s does not exist", e.FlowID)
			return false, nil
		}
		return false, err
	}
	return false, w.walkFlow(e.FlowID, e.Requirement == model.RequirementConditional)
}
