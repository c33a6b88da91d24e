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

// Package flowexec provides the flow execution service that starts and resumes authentication attempts,
// and its HTTP adapter.
package flowexec

import (
	"context"
	"errors"
	"time"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/engine"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/session"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/realm"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
	"github.com/asgardeo/authflow/internal/token"
	"github.com/asgardeo/authflow/internal/user"
)

// FlowExecServiceInterface is the entry point for starting and resuming authentication attempts.
type FlowExecServiceInterface interface {
	Execute(ctx context.Context, req FlowRequest) (*FlowStep, *serviceerror.ServiceError)
	// StartWithNotes starts an attempt whose session carries the given notes, e.g. the brokered identity
	// handed over to the first broker login flow.
	StartWithNotes(ctx context.Context, realmName, flowAlias string, authNotes,
		clientNotes map[string]string) (*FlowStep, *serviceerror.ServiceError)
}

type flowExecService struct {
	realms    realm.RealmProviderInterface
	flowStore store.FlowStoreInterface
	sessions  session.SessionStoreInterface
	processor engine.ProcessorInterface
	issuer    token.IssuerInterface
	users     user.UserServiceInterface
	sink      audit.SinkInterface
	locks     *keyedMutex
	now       func() time.Time
}

func newFlowExecService(realms realm.RealmProviderInterface, flowStore store.FlowStoreInterface,
	sessions session.SessionStoreInterface, processor engine.ProcessorInterface, issuer token.IssuerInterface,
	users user.UserServiceInterface, sink audit.SinkInterface) *flowExecService {
	if sink == nil {
		sink = audit.NoOpSink{}
	}
	return &flowExecService{
		realms:    realms,
		flowStore: flowStore,
		sessions:  sessions,
		processor: processor,
		issuer:    issuer,
		users:     users,
		sink:      sink,
		locks:     newKeyedMutex(),
		now:       time.Now,
	}
}

// Execute starts a new attempt when the request has no session id and resumes the referenced session
// otherwise. Requests for the same session are serialised.
func (s *flowExecService) Execute(ctx context.Context, req FlowRequest) (*FlowStep, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecService"),
		log.String(log.LoggerKeyRealm, req.Realm))

	actionType := engine.ActionType(req.Action)
	if !actionType.IsValid() {
		return nil, &constants.ErrorInvalidAction
	}
	if actionType == engine.ActionBack && req.ExecutionID == "" {
		return nil, serviceerror.CustomServiceError(constants.ErrorInvalidRequestFormat,
			"The execution id is required to navigate back")
	}
	rlm, svcErr := s.realms.GetRealm(req.Realm)
	if svcErr != nil {
		return nil, &constants.ErrorInvalidRealm
	}

	if isNewFlow(req.SessionID) {
		return s.start(ctx, *rlm, req.FlowAlias, nil, req.ClientNotes, false)
	}

	unlock := s.locks.lock(req.SessionID)
	defer unlock()

	authSession, err := s.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		logger.Error("Failed to load authentication session", log.String(log.LoggerKeySessionID, req.SessionID),
			log.Error(err))
		return nil, &constants.ErrorSessionPersistence
	}
	if authSession == nil || authSession.Realm != rlm.Name {
		expired := &model.SessionExpiredError{SessionID: req.SessionID}
		logger.Debug("Restarting flow", log.Error(expired))
		s.sink.Emit(ctx, audit.Event{
			Type:      audit.EventFlowRestarted,
			Time:      s.now(),
			Realm:     rlm.Name,
			SessionID: req.SessionID,
			Error:     expired.Error(),
		})
		return s.start(ctx, *rlm, req.FlowAlias, nil, req.ClientNotes, true)
	}

	action := engine.Action{
		Type:                actionType,
		ExecutionID:         req.ExecutionID,
		SelectedExecutionID: req.SelectedExecutionID,
		Inputs:              req.Inputs,
	}
	result, err := s.processor.HandleAction(ctx, *rlm, authSession, action)
	return s.complete(ctx, *rlm, authSession, result, err, false, false)
}

func (s *flowExecService) StartWithNotes(ctx context.Context, realmName, flowAlias string, authNotes,
	clientNotes map[string]string) (*FlowStep, *serviceerror.ServiceError) {
	rlm, svcErr := s.realms.GetRealm(realmName)
	if svcErr != nil {
		return nil, &constants.ErrorInvalidRealm
	}
	return s.start(ctx, *rlm, flowAlias, authNotes, clientNotes, false)
}

// start creates a session for the flow, defaulting to the browser flow of the realm, and runs it until it
// suspends or ends.
func (s *flowExecService) start(ctx context.Context, rlm realm.Realm, flowAlias string, authNotes,
	clientNotes map[string]string, restarted bool) (*FlowStep, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecService"),
		log.String(log.LoggerKeyRealm, rlm.Name))

	if flowAlias == "" {
		flowAlias = rlm.BrowserFlow
	}
	flow, err := s.flowStore.GetFlow(ctx, rlm.Name, flowAlias)
	if err != nil {
		if errors.Is(err, store.ErrFlowNotFound) {
			return nil, &constants.ErrorFlowNotFound
		}
		logger.Error("Failed to load flow", log.String("alias", flowAlias), log.Error(err))
		return nil, &serviceerror.InternalServerError
	}

	now := s.now()
	authSession := &model.AuthenticationSession{
		ID:          sysutils.GenerateUUID(),
		Realm:       rlm.Name,
		FlowID:      flow.ID,
		FlowAlias:   flow.Alias,
		AuthNotes:   sysutils.DeepCopyMapOfStrings(authNotes),
		ClientNotes: sysutils.DeepCopyMapOfStrings(clientNotes),
		CreatedAt:   now,
		ExpiresAt:   now.Add(rlm.SessionTTL),
	}
	logger.Debug("Starting authentication flow", log.String(log.LoggerKeySessionID, authSession.ID),
		log.String(log.LoggerKeyFlowID, flow.ID), log.Bool("restarted", restarted))

	result, err := s.processor.Start(ctx, rlm, authSession)
	return s.complete(ctx, rlm, authSession, result, err, true, restarted)
}

// complete persists or tears down the session according to the engine outcome and builds the step.
func (s *flowExecService) complete(ctx context.Context, rlm realm.Realm, authSession *model.AuthenticationSession,
	result *engine.Result, err error, isNew, restarted bool) (*FlowStep, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecService"),
		log.String(log.LoggerKeyRealm, rlm.Name), log.String(log.LoggerKeySessionID, authSession.ID))

	if err != nil {
		return s.handleEngineError(ctx, authSession, err, isNew, logger)
	}

	if result.Status == engine.ResultComplete {
		return s.issueToken(ctx, rlm, authSession, isNew, logger)
	}

	authSession.ExpiresAt = s.now().Add(rlm.SessionTTL)
	var storeErr error
	if isNew {
		storeErr = s.sessions.CreateSession(ctx, authSession)
	} else {
		storeErr = s.sessions.UpdateSession(ctx, authSession)
	}
	if storeErr != nil {
		logger.Error("Failed to store authentication session", log.Error(storeErr))
		return nil, &constants.ErrorSessionPersistence
	}

	return &FlowStep{
		SessionID: authSession.ID,
		Status:    FlowStatusIncomplete,
		Challenge: result.Challenge,
		Restarted: restarted,
	}, nil
}

func (s *flowExecService) handleEngineError(ctx context.Context, authSession *model.AuthenticationSession,
	err error, isNew bool, logger *log.Logger) (*FlowStep, *serviceerror.ServiceError) {
	var staleErr *model.StaleRequestError
	var backErr *model.BackNavigationUnavailableError
	var failedErr *model.AuthenticationFailedError
	var cfgErr *model.ConfigurationError

	switch {
	case errors.As(err, &staleErr):
		logger.Debug("Re-displaying current step for stale request", log.Error(err))
		return &FlowStep{
			SessionID: authSession.ID,
			Status:    FlowStatusIncomplete,
			Challenge: staleErr.Challenge,
			Stale:     true,
		}, nil
	case errors.As(err, &backErr):
		return nil, &constants.ErrorBackNavigationUnavailable
	case errors.Is(err, engine.ErrInvalidSelection):
		return nil, &constants.ErrorInvalidSelection
	case errors.As(err, &failedErr):
		logger.Debug("Authentication attempt failed", log.String(log.LoggerKeyExecutionID, failedErr.ExecutionID),
			log.String("code", failedErr.Code))
		s.discard(ctx, authSession, isNew, logger)
		return nil, &constants.ErrorAuthenticationFailed
	case errors.As(err, &cfgErr):
		logger.Error("Authentication flow is misconfigured", log.Error(err))
		s.discard(ctx, authSession, isNew, logger)
		return nil, &constants.ErrorFlowConfiguration
	}
	logger.Error("Failed to execute authentication flow", log.Error(err))
	return nil, &serviceerror.InternalServerError
}

// issueToken issues the token for a completed attempt. The session is deleted first so that a replayed
// request can never complete the same attempt twice.
func (s *flowExecService) issueToken(ctx context.Context, rlm realm.Realm, authSession *model.AuthenticationSession,
	isNew bool, logger *log.Logger) (*FlowStep, *serviceerror.ServiceError) {
	if !isNew {
		if err := s.sessions.DeleteSession(ctx, authSession.ID); err != nil {
			logger.Error("Failed to delete completed authentication session", log.Error(err))
			return nil, &constants.ErrorSessionPersistence
		}
	}

	subject := token.Subject{UserID: authSession.AuthenticatedUserID}
	if u, svcErr := s.users.GetUser(ctx, rlm.Name, authSession.AuthenticatedUserID); svcErr == nil {
		subject.Username = u.Username
		subject.Email = u.Email
	} else {
		logger.Warn("Failed to load authenticated user", log.String("error", svcErr.Error))
	}

	issued, err := s.issuer.IssueToken(token.IssueRequest{
		Realm:           rlm.Name,
		SessionID:       authSession.ID,
		Subject:         subject,
		ClientNotes:     authSession.ClientNotes,
		RequiredActions: authSession.RequiredActions,
	})
	if err != nil {
		logger.Error("Failed to issue token", log.Error(err))
		return nil, &constants.ErrorTokenIssuance
	}
	logger.Debug("Authentication flow completed", log.String(log.LoggerKeyFlowID, authSession.FlowID))

	return &FlowStep{
		SessionID:       authSession.ID,
		Status:          FlowStatusComplete,
		Token:           issued,
		RequiredActions: authSession.RequiredActions,
	}, nil
}

func (s *flowExecService) discard(ctx context.Context, authSession *model.AuthenticationSession, isNew bool,
	logger *log.Logger) {
	if isNew {
		return
	}
	if err := s.sessions.DeleteSession(ctx, authSession.ID); err != nil {
		logger.Error("Failed to delete failed authentication session", log.Error(err))
	}
}

func isNewFlow(sessionID string) bool {
	return sessionID == ""
}
