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

// Package engine implements the authentication processor that walks a flow tree, applies the requirement
// semantics of its executions and suspends on challenges.
package engine

import (
	"context"
	"errors"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/condition"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/realm"
	"github.com/asgardeo/authflow/internal/system/log"
)

const loggerComponentName = "AuthenticationProcessor"

// ProcessorInterface drives one authentication session through its flow.
// The session is mutated in place; callers persist it afterwards. Calls for one session must be serialised.
type ProcessorInterface interface {
	// Start walks the flow from the root until it suspends, completes or fails.
	Start(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession) (*Result, error)
	// HandleAction delivers a user action to the current execution and resumes the walk.
	HandleAction(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession,
		action Action) (*Result, error)
	// SelectAlternative switches the current alternative set to another offered member.
	SelectAlternative(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession,
		selectedExecutionID string) (*Result, error)
	// Back returns to the previous interactive step and re-issues its challenge.
	Back(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession) (*Result, error)
}

type processor struct {
	store     store.FlowStoreInterface
	registry  *authenticator.Registry
	evaluator condition.EvaluatorInterface
	sink      audit.SinkInterface
	validator FlowValidatorInterface
	logger    *log.Logger
}

// NewProcessor creates the processor. The sink and the validator may be nil.
func NewProcessor(flowStore store.FlowStoreInterface, registry *authenticator.Registry,
	evaluator condition.EvaluatorInterface, sink audit.SinkInterface,
	validator FlowValidatorInterface) ProcessorInterface {
	if sink == nil {
		sink = audit.NoOpSink{}
	}
	return &processor{
		store:     flowStore,
		registry:  registry,
		evaluator: evaluator,
		sink:      sink,
		validator: validator,
		logger:    log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)),
	}
}

func (p *processor) Start(ctx context.Context, rlm realm.Realm,
	session *model.AuthenticationSession) (*Result, error) {
	r, err := p.newRun(ctx, rlm, session, nil)
	if err != nil {
		return nil, err
	}
	return r.execute()
}

func (p *processor) HandleAction(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession,
	action Action) (*Result, error) {
	if session.CurrentExecutionID == "" || action.ExecutionID != session.CurrentExecutionID {
		p.logger.Debug("Rejecting stale action", log.String(log.LoggerKeySessionID, session.ID),
			log.String(log.LoggerKeyExecutionID, action.ExecutionID))
		return nil, &model.StaleRequestError{
			ExpectedExecutionID: session.CurrentExecutionID,
			ReceivedExecutionID: action.ExecutionID,
			Challenge:           session.LastChallenge.Clone(),
		}
	}

	switch action.Type {
	case ActionSelect:
		return p.SelectAlternative(ctx, rlm, session, action.SelectedExecutionID)
	case ActionBack:
		return p.Back(ctx, rlm, session)
	}

	r, err := p.newRun(ctx, rlm, session, &action)
	if err != nil {
		return nil, err
	}
	return r.execute()
}

func (p *processor) SelectAlternative(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession,
	selectedExecutionID string) (*Result, error) {
	if !isOffered(session.LastChallenge, selectedExecutionID) {
		return nil, ErrInvalidSelection
	}
	session.SetAuthNote(constants.AuthNoteSelectedExecution, selectedExecutionID)

	r, err := p.newRun(ctx, rlm, session, nil)
	if err != nil {
		return nil, err
	}
	return r.execute()
}

func (p *processor) Back(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession) (*Result, error) {
	target, ok := session.PopExecution()
	if !ok {
		return nil, &model.BackNavigationUnavailableError{Challenge: session.LastChallenge.Clone()}
	}

	session.TruncateCompletedFrom(target)
	session.RemoveAuthNote(constants.AuthNoteSelectedExecution)
	if session.UserBoundBy != "" && !session.IsCompleted(session.UserBoundBy) {
		session.ClearUser()
	}
	session.CurrentExecutionID = target
	p.logger.Debug("Navigating back", log.String(log.LoggerKeySessionID, session.ID),
		log.String(log.LoggerKeyExecutionID, target))

	r, err := p.newRun(ctx, rlm, session, nil)
	if err != nil {
		return nil, err
	}
	return r.execute()
}

func (p *processor) newRun(ctx context.Context, rlm realm.Realm, session *model.AuthenticationSession,
	action *Action) (*run, error) {
	root, err := p.store.GetFlowByID(ctx, session.FlowID)
	if err != nil {
		if errors.Is(err, store.ErrFlowNotFound) {
			return nil, &model.ConfigurationError{FlowID: session.FlowID, Reason: "flow does not exist"}
		}
		return nil, err
	}
	if p.validator != nil {
		if err := p.validator.ValidateFlow(ctx, root.ID); err != nil {
			return nil, err
		}
	}
	return &run{
		processor: p,
		ctx:       ctx,
		realm:     rlm,
		session:   session,
		root:      *root,
		action:    action,
		visiting:  make(map[string]bool),
		logger: p.logger.With(log.String(log.LoggerKeySessionID, session.ID),
			log.String(log.LoggerKeyFlowID, root.ID)),
	}, nil
}

func (p *processor) emit(ctx context.Context, event audit.Event) {
	p.sink.Emit(ctx, event)
}

func isOffered(challenge *model.Challenge, executionID string) bool {
	if challenge == nil || executionID == "" {
		return false
	}
	for _, alt := range challenge.Alternatives {
		if alt.ExecutionID == executionID {
			return true
		}
	}
	return false
}
