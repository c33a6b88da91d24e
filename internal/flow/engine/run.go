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
	"fmt"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/realm"
	"github.com/asgardeo/authflow/internal/system/log"
)

type outcomeStatus int

const (
	outcomeSuccess outcomeStatus = iota
	outcomeChallenge
	outcomeFailure
	outcomeAttempted
)

// outcome is the resolution of one execution or flow during a walk.
type outcome struct {
	status          outcomeStatus
	challenge       *model.Challenge
	code            string
	executionID     string
	authenticatorID string
}

var success = outcome{status: outcomeSuccess}

// run is one walk of the flow tree for a single engine invocation.
type run struct {
	*processor
	ctx     context.Context
	realm   realm.Realm
	session *model.AuthenticationSession
	root    model.FlowModel
	// action is delivered to the execution it targets and cleared once consumed.
	action   *Action
	visiting map[string]bool
	logger   *log.Logger
}

func (r *run) execute() (*Result, error) {
	out, err := r.processFlow(r.root)
	if err != nil {
		return nil, err
	}

	switch out.status {
	case outcomeChallenge:
		ch := out.challenge
		ch.BackAvailable = len(r.session.ExecutionStack) > 0
		r.session.CurrentExecutionID = ch.ExecutionID
		r.session.LastChallenge = ch.Clone()
		r.logger.Debug("Flow suspended on challenge", log.String(log.LoggerKeyExecutionID, ch.ExecutionID),
			log.String(log.LoggerKeyAuthenticatorID, ch.AuthenticatorID))
		return &Result{Status: ResultIncomplete, Challenge: ch}, nil
	case outcomeSuccess:
		if r.session.AuthenticatedUserID == "" {
			r.logger.Debug("Flow completed without an authenticated user")
			return nil, r.fail(outcome{status: outcomeFailure, code: constants.ErrorCodeUserNotSet})
		}
		r.session.CurrentExecutionID = ""
		r.session.LastChallenge = nil
		r.emit(r.ctx, r.event(audit.EventLogin, "", "", r.session.AuthenticatedUserID, ""))
		r.logger.Debug("Flow completed")
		return &Result{Status: ResultComplete}, nil
	default:
		return nil, r.fail(out)
	}
}

func (r *run) fail(out outcome) error {
	code := out.code
	if code == "" {
		code = constants.ErrorCodeNoAlternative
	}
	r.emit(r.ctx, r.event(audit.EventLoginError, out.executionID, out.authenticatorID,
		r.session.AuthenticatedUserID, code))
	r.logger.Debug("Flow failed", log.String("error", code))
	return &model.AuthenticationFailedError{
		ExecutionID:     out.executionID,
		AuthenticatorID: out.authenticatorID,
		Code:            code,
	}
}

// processFlow resolves the executions of a flow in priority order. The ALTERNATIVE set of the flow is
// resolved as a unit at the position of its first member.
func (r *run) processFlow(flow model.FlowModel) (outcome, error) {
	if r.visiting[flow.ID] {
		return outcome{}, &model.ConfigurationError{FlowID: flow.ID, Reason: "flow references itself"}
	}
	r.visiting[flow.ID] = true
	defer delete(r.visiting, flow.ID)

	executions, err := r.store.GetExecutions(r.ctx, flow.ID)
	if err != nil {
		return outcome{}, fmt.Errorf("failed to load executions of flow %s: %w", flow.ID, err)
	}
	active, err := r.activeExecutions(flow, executions)
	if err != nil {
		return outcome{}, err
	}

	alternatives := []model.ExecutionModel{}
	for _, e := range active {
		if e.Requirement == model.RequirementAlternative {
			alternatives = append(alternatives, e)
		}
	}
	// A lone alternative has nothing to choose from and is treated as required.
	promoted := len(alternatives) == 1

	alternativesDone := false
	for _, e := range active {
		var out outcome
		switch {
		case e.Requirement == model.RequirementAlternative && !promoted:
			if alternativesDone {
				continue
			}
			alternativesDone = true
			out, err = r.processAlternatives(flow, executions, alternatives)
		case e.Requirement == model.RequirementConditional:
			out, err = r.processConditional(e)
		default:
			out, err = r.processRequired(flow, executions, e)
		}
		if err != nil {
			return outcome{}, err
		}
		if out.status != outcomeSuccess {
			return out, nil
		}
	}
	return success, nil
}

// activeExecutions drops disabled executions and condition authenticators, which are only evaluated
// by their CONDITIONAL parent.
func (r *run) activeExecutions(flow model.FlowModel, executions []model.ExecutionModel) (
	[]model.ExecutionModel, error) {
	active := make([]model.ExecutionModel, 0, len(executions))
	for _, e := range executions {
		if e.Requirement == model.RequirementDisabled {
			continue
		}
		if !e.IsSubFlow() {
			a, err := r.authenticator(flow, e)
			if err != nil {
				return nil, err
			}
			if authenticator.IsConditional(a) {
				continue
			}
		}
		active = append(active, e)
	}
	return active, nil
}

func (r *run) processRequired(flow model.FlowModel, siblings []model.ExecutionModel,
	e model.ExecutionModel) (outcome, error) {
	if r.session.IsCompleted(e.ID) {
		return success, nil
	}
	if !e.IsSubFlow() {
		return r.processAuthenticator(flow, siblings, e, true)
	}

	child, err := r.subFlow(e)
	if err != nil {
		return outcome{}, err
	}
	out, err := r.processFlow(*child)
	if err != nil {
		return outcome{}, err
	}
	if out.status == outcomeSuccess {
		r.session.MarkCompleted(e.ID)
	}
	return out, nil
}

func (r *run) processConditional(e model.ExecutionModel) (outcome, error) {
	if r.session.IsCompleted(e.ID) {
		return success, nil
	}
	if !e.IsSubFlow() {
		return outcome{}, &model.ConfigurationError{FlowID: e.ParentFlowID, ExecutionID: e.ID,
			Reason: "CONDITIONAL requirement is only valid on a sub-flow"}
	}

	child, err := r.subFlow(e)
	if err != nil {
		return outcome{}, err
	}
	children, err := r.store.GetExecutions(r.ctx, child.ID)
	if err != nil {
		return outcome{}, fmt.Errorf("failed to load executions of flow %s: %w", child.ID, err)
	}
	conditions := []model.ExecutionModel{}
	for _, c := range children {
		if c.IsSubFlow() {
			continue
		}
		a, err := r.authenticator(*child, c)
		if err != nil {
			return outcome{}, err
		}
		if authenticator.IsConditional(a) {
			conditions = append(conditions, c)
		}
	}
	if len(conditions) == 0 {
		return outcome{}, &model.ConfigurationError{FlowID: child.ID, ExecutionID: e.ID,
			Reason: "CONDITIONAL sub-flow has no condition authenticators"}
	}

	actx := authenticator.NewContext(r.ctx, r.realm, *child, e, children, r.session, nil, r.registry)
	match, err := r.evaluator.Evaluate(actx, conditions)
	if err != nil {
		return outcome{}, r.withLocation(err, child.ID, e.ID)
	}
	if !match {
		r.session.MarkCompleted(e.ID)
		r.emit(r.ctx, r.event(audit.EventConditionSkipped, e.ID, "", r.session.AuthenticatedUserID, ""))
		r.logger.Debug("Conditional sub-flow skipped", log.String(log.LoggerKeyExecutionID, e.ID))
		return success, nil
	}

	out, err := r.processFlow(*child)
	if err != nil {
		return outcome{}, err
	}
	if out.status == outcomeSuccess {
		r.session.MarkCompleted(e.ID)
	}
	return out, nil
}

// processAlternatives resolves an ALTERNATIVE set. The set succeeds when one offered member succeeds and
// fails when every offered member fails.
func (r *run) processAlternatives(flow model.FlowModel, siblings []model.ExecutionModel,
	members []model.ExecutionModel) (outcome, error) {
	for _, m := range members {
		if r.session.IsCompleted(m.ID) {
			return success, nil
		}
	}

	offered, err := r.offeredAlternatives(flow, members)
	if err != nil {
		return outcome{}, err
	}
	if len(offered) == 0 {
		r.logger.Debug("No alternative can be offered", log.String(log.LoggerKeyFlowID, flow.ID))
		return outcome{status: outcomeFailure, code: constants.ErrorCodeNoAlternative}, nil
	}
	ordered, err := r.prioritise(offered)
	if err != nil {
		return outcome{}, err
	}

	last := outcome{status: outcomeFailure, code: constants.ErrorCodeNoAlternative}
	for _, m := range ordered {
		var out outcome
		if m.IsSubFlow() {
			out, err = r.processRequired(flow, siblings, m)
		} else {
			out, err = r.processAuthenticator(flow, siblings, m, false)
		}
		if err != nil {
			return outcome{}, err
		}

		switch out.status {
		case outcomeSuccess:
			r.session.RemoveAuthNote(constants.AuthNoteSelectedExecution)
			return success, nil
		case outcomeChallenge:
			if len(offered) > 1 {
				out.challenge.Alternatives, err = r.alternativeOptions(offered)
				if err != nil {
					return outcome{}, err
				}
			}
			return out, nil
		case outcomeFailure:
			last = out
		}
	}
	return last, nil
}

// offeredAlternatives returns the members the user can use: sub-flows, authenticators that do not need a
// user, and authenticators the bound user is configured for.
func (r *run) offeredAlternatives(flow model.FlowModel, members []model.ExecutionModel) (
	[]model.ExecutionModel, error) {
	offered := []model.ExecutionModel{}
	for _, m := range members {
		if m.IsSubFlow() {
			offered = append(offered, m)
			continue
		}
		a, err := r.authenticator(flow, m)
		if err != nil {
			return nil, err
		}
		if !a.RequiresUser() {
			offered = append(offered, m)
			continue
		}
		userID := r.session.AuthenticatedUserID
		if userID == "" {
			continue
		}
		configured, err := a.ConfiguredFor(r.ctx, r.realm.Name, userID)
		if err != nil {
			return nil, err
		}
		if configured {
			offered = append(offered, m)
		}
	}
	return offered, nil
}

// prioritise moves the selected member, or else the member holding the current execution, to the front.
func (r *run) prioritise(offered []model.ExecutionModel) ([]model.ExecutionModel, error) {
	preferred := -1
	if selected := r.session.GetAuthNote(constants.AuthNoteSelectedExecution); selected != "" {
		for i, m := range offered {
			if m.ID == selected {
				preferred = i
				break
			}
		}
	}
	if preferred < 0 && r.session.CurrentExecutionID != "" {
		for i, m := range offered {
			holds, err := r.holdsExecution(m, r.session.CurrentExecutionID)
			if err != nil {
				return nil, err
			}
			if holds {
				preferred = i
				break
			}
		}
	}
	if preferred <= 0 {
		return offered, nil
	}

	ordered := make([]model.ExecutionModel, 0, len(offered))
	ordered = append(ordered, offered[preferred])
	ordered = append(ordered, offered[:preferred]...)
	return append(ordered, offered[preferred+1:]...), nil
}

// holdsExecution reports whether the execution is the member itself or lies in the member's sub-flow tree.
func (r *run) holdsExecution(member model.ExecutionModel, executionID string) (bool, error) {
	if member.ID == executionID {
		return true, nil
	}
	if !member.IsSubFlow() {
		return false, nil
	}
	seen := map[string]bool{}
	pending := []string{member.FlowID}
	for len(pending) > 0 {
		flowID := pending[0]
		pending = pending[1:]
		if seen[flowID] {
			continue
		}
		seen[flowID] = true
		children, err := r.store.GetExecutions(r.ctx, flowID)
		if err != nil {
			return false, fmt.Errorf("failed to load executions of flow %s: %w", flowID, err)
		}
		for _, c := range children {
			if c.ID == executionID {
				return true, nil
			}
			if c.IsSubFlow() {
				pending = append(pending, c.FlowID)
			}
		}
	}
	return false, nil
}

func (r *run) alternativeOptions(offered []model.ExecutionModel) ([]model.AlternativeOption, error) {
	options := make([]model.AlternativeOption, 0, len(offered))
	for _, m := range offered {
		option := model.AlternativeOption{ExecutionID: m.ID, AuthenticatorID: m.AuthenticatorID}
		if m.IsSubFlow() {
			child, err := r.subFlow(m)
			if err != nil {
				return nil, err
			}
			option.DisplayName = child.Alias
		} else {
			a, err := r.registry.Get(m.AuthenticatorID)
			if err != nil {
				return nil, err
			}
			option.DisplayName = a.GetDisplayName()
		}
		options = append(options, option)
	}
	return options, nil
}

// processAuthenticator invokes the authenticator of a leaf execution. Required reports whether the
// execution must succeed on its own, as opposed to being one member of an alternative set.
func (r *run) processAuthenticator(flow model.FlowModel, siblings []model.ExecutionModel, e model.ExecutionModel,
	required bool) (outcome, error) {
	if r.session.IsCompleted(e.ID) {
		return success, nil
	}
	a, err := r.authenticator(flow, e)
	if err != nil {
		return outcome{}, err
	}
	logger := r.logger.With(log.String(log.LoggerKeyExecutionID, e.ID),
		log.String(log.LoggerKeyAuthenticatorID, e.AuthenticatorID))

	var resp *authenticator.Response
	var actx *authenticator.Context
	interactive := false
	if r.action != nil && r.action.ExecutionID == e.ID {
		actx = authenticator.NewContext(r.ctx, r.realm, flow, e, siblings, r.session, r.action.Inputs, r.registry)
		r.action = nil
		interactive = true
		logger.Debug("Delivering action to authenticator")
		resp, err = a.HandleAction(actx)
	} else {
		actx = authenticator.NewContext(r.ctx, r.realm, flow, e, siblings, r.session, nil, r.registry)
		if a.RequiresUser() {
			out, handled, err := r.checkUser(a, actx, required)
			if err != nil || handled {
				return out, err
			}
		}
		logger.Debug("Invoking authenticator")
		resp, err = a.Authenticate(actx)
	}
	if err != nil {
		return outcome{}, r.withLocation(err, flow.ID, e.ID)
	}
	if resp == nil {
		return outcome{}, &model.ConfigurationError{FlowID: flow.ID, ExecutionID: e.ID,
			Reason: "authenticator returned no response"}
	}
	return r.handleResponse(actx, resp, interactive, required)
}

// checkUser enforces that a user is bound and configured before an authenticator that requires one runs.
// Handled reports whether the returned outcome resolves the execution.
func (r *run) checkUser(a authenticator.AuthenticatorInterface, actx *authenticator.Context,
	required bool) (outcome, bool, error) {
	e := actx.Execution
	userID := r.session.AuthenticatedUserID
	if userID == "" {
		r.stepFailure(actx, constants.ErrorCodeUserNotSet)
		return r.failure(e, constants.ErrorCodeUserNotSet), true, nil
	}
	configured, err := a.ConfiguredFor(r.ctx, r.realm.Name, userID)
	if err != nil {
		return outcome{}, true, err
	}
	if configured {
		return outcome{}, false, nil
	}
	if !required {
		return outcome{status: outcomeAttempted, executionID: e.ID, authenticatorID: e.AuthenticatorID}, true, nil
	}
	if provider, ok := a.(authenticator.RequiredActionProviderInterface); ok {
		r.session.AddRequiredAction(provider.GetRequiredAction())
		r.session.MarkCompleted(e.ID)
		event := r.event(audit.EventStepSuccess, e.ID, e.AuthenticatorID, userID, "")
		event.Details = map[string]string{"requiredAction": provider.GetRequiredAction()}
		r.emit(r.ctx, event)
		return success, true, nil
	}
	r.stepFailure(actx, constants.ErrorCodeCredentialSetupRequired)
	return r.failure(e, constants.ErrorCodeCredentialSetupRequired), true, nil
}

func (r *run) handleResponse(actx *authenticator.Context, resp *authenticator.Response, interactive,
	required bool) (outcome, error) {
	e := actx.Execution
	switch resp.Status {
	case authenticator.StatusSuccess:
		r.session.MarkCompleted(e.ID)
		if interactive {
			r.session.PushExecution(e.ID)
		}
		r.emit(r.ctx, r.event(audit.EventStepSuccess, e.ID, e.AuthenticatorID, r.session.AuthenticatedUserID, ""))
		return success, nil
	case authenticator.StatusChallenge, authenticator.StatusForceChallenge:
		if resp.ErrorCode != "" {
			r.stepFailure(actx, resp.ErrorCode)
		}
		ch := resp.Challenge
		if ch == nil {
			ch = &model.Challenge{}
		}
		ch.ExecutionID = e.ID
		ch.AuthenticatorID = e.AuthenticatorID
		return outcome{status: outcomeChallenge, challenge: ch, executionID: e.ID,
			authenticatorID: e.AuthenticatorID}, nil
	case authenticator.StatusAttempted:
		if !required {
			return outcome{status: outcomeAttempted, executionID: e.ID, authenticatorID: e.AuthenticatorID}, nil
		}
		code := resp.ErrorCode
		if code == "" {
			code = constants.ErrorCodeNotApplicable
		}
		r.stepFailure(actx, code)
		return r.failure(e, code), nil
	default:
		r.stepFailure(actx, resp.ErrorCode)
		return r.failure(e, resp.ErrorCode), nil
	}
}

func (r *run) failure(e model.ExecutionModel, code string) outcome {
	return outcome{status: outcomeFailure, code: code, executionID: e.ID, authenticatorID: e.AuthenticatorID}
}

func (r *run) stepFailure(actx *authenticator.Context, code string) {
	e := actx.Execution
	r.emit(r.ctx, r.event(audit.EventStepFailure, e.ID, e.AuthenticatorID, actx.GetAttemptedUser(), code))
}

func (r *run) authenticator(flow model.FlowModel, e model.ExecutionModel) (
	authenticator.AuthenticatorInterface, error) {
	if e.AuthenticatorID == "" {
		return nil, &model.ConfigurationError{FlowID: flow.ID, ExecutionID: e.ID,
			Reason: "execution references neither an authenticator nor a sub-flow"}
	}
	a, err := r.registry.Get(e.AuthenticatorID)
	if err != nil {
		return nil, r.withLocation(err, flow.ID, e.ID)
	}
	return a, nil
}

func (r *run) subFlow(e model.ExecutionModel) (*model.FlowModel, error) {
	child, err := r.store.GetFlowByID(r.ctx, e.FlowID)
	if err != nil {
		if errors.Is(err, store.ErrFlowNotFound) {
			return nil, &model.ConfigurationError{FlowID: e.ParentFlowID, ExecutionID: e.ID,
				Reason: fmt.Sprintf("sub-flow %q does not exist", e.FlowID)}
		}
		return nil, err
	}
	return child, nil
}

// withLocation fills in the flow and execution of a configuration error that lacks them.
func (r *run) withLocation(err error, flowID, executionID string) error {
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		if cfgErr.FlowID == "" {
			cfgErr.FlowID = flowID
		}
		if cfgErr.ExecutionID == "" {
			cfgErr.ExecutionID = executionID
		}
	}
	return err
}

func (r *run) event(eventType audit.EventType, executionID, authenticatorID, userID, code string) audit.Event {
	return audit.Event{
		Type:            eventType,
		Realm:           r.realm.Name,
		SessionID:       r.session.ID,
		UserID:          userID,
		FlowID:          r.root.ID,
		ExecutionID:     executionID,
		AuthenticatorID: authenticatorID,
		Error:           code,
	}
}
