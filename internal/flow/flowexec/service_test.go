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
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/engine"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/session"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/realm"
	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/token"
	"github.com/asgardeo/authflow/internal/user"
	"github.com/asgardeo/authflow/tests/mocks/tokenmock"
	"github.com/asgardeo/authflow/tests/mocks/usermock"
)

const testRealm = "master"

type stubProcessor struct {
	startFunc  func(session *model.AuthenticationSession) (*engine.Result, error)
	actionFunc func(session *model.AuthenticationSession, action engine.Action) (*engine.Result, error)
	starts     int32
}

func (p *stubProcessor) Start(_ context.Context, _ realm.Realm,
	session *model.AuthenticationSession) (*engine.Result, error) {
	atomic.AddInt32(&p.starts, 1)
	return p.startFunc(session)
}

func (p *stubProcessor) HandleAction(_ context.Context, _ realm.Realm, session *model.AuthenticationSession,
	action engine.Action) (*engine.Result, error) {
	return p.actionFunc(session, action)
}

func (p *stubProcessor) SelectAlternative(context.Context, realm.Realm, *model.AuthenticationSession,
	string) (*engine.Result, error) {
	return nil, errors.New("not expected")
}

func (p *stubProcessor) Back(context.Context, realm.Realm, *model.AuthenticationSession) (*engine.Result, error) {
	return nil, errors.New("not expected")
}

func challengeAt(session *model.AuthenticationSession, executionID string) (*engine.Result, error) {
	session.CurrentExecutionID = executionID
	session.LastChallenge = &model.Challenge{ExecutionID: executionID, AuthenticatorID: "auth-password-form"}
	return &engine.Result{Status: engine.ResultIncomplete, Challenge: session.LastChallenge.Clone()}, nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Emit(_ context.Context, event audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

type failingSessionStore struct {
	session.SessionStoreInterface
}

func (failingSessionStore) GetSession(context.Context, string) (*model.AuthenticationSession, error) {
	return nil, errors.New("redis: connection refused")
}

type FlowExecServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	sessions  session.SessionStoreInterface
	processor *stubProcessor
	issuer    *tokenmock.MockIssuer
	sink      *recordingSink
	service   *flowExecService
}

func TestFlowExecServiceSuite(t *testing.T) {
	suite.Run(t, new(FlowExecServiceTestSuite))
}

func (suite *FlowExecServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	flowStore := store.NewArenaStore()
	require.NoError(suite.T(), flowStore.AddFlow(suite.ctx, model.FlowModel{
		ID: "browser-id", Realm: testRealm, Alias: "browser", TopLevel: true,
	}))

	suite.sessions = session.NewMemoryStore(config.CacheConfig{Size: 100, TTL: 600})
	suite.processor = &stubProcessor{
		startFunc: func(s *model.AuthenticationSession) (*engine.Result, error) { return challengeAt(s, "e1") },
	}
	suite.issuer = &tokenmock.MockIssuer{}
	suite.sink = &recordingSink{}
	users := user.NewUserService(usermock.NewInMemoryUserStore(
		user.User{ID: "u1", Realm: testRealm, Username: "alice", Email: "alice@example.com", Enabled: true},
	))
	realms := realm.NewRealmProvider([]config.RealmConfig{{Name: testRealm, SessionTTL: 300}}, 1800)

	suite.service = newFlowExecService(realms, flowStore, suite.sessions, suite.processor, suite.issuer,
		users, suite.sink)
}

func (suite *FlowExecServiceTestSuite) start() *FlowStep {
	step, svcErr := suite.service.Execute(suite.ctx, FlowRequest{Realm: testRealm})
	require.Nil(suite.T(), svcErr)
	require.NotEmpty(suite.T(), step.SessionID)
	return step
}

func (suite *FlowExecServiceTestSuite) stored(sessionID string) *model.AuthenticationSession {
	s, err := suite.sessions.GetSession(suite.ctx, sessionID)
	require.NoError(suite.T(), err)
	return s
}

func (suite *FlowExecServiceTestSuite) resume(sessionID string) (*FlowStep, *serviceerror.ServiceError) {
	return suite.service.Execute(suite.ctx, FlowRequest{Realm: testRealm, SessionID: sessionID, ExecutionID: "e1",
		Inputs: map[string]string{"password": "pw"}})
}

func (suite *FlowExecServiceTestSuite) TestStartPersistsSession() {
	suite.processor.startFunc = func(s *model.AuthenticationSession) (*engine.Result, error) {
		assert.Equal(suite.T(), "browser-id", s.FlowID)
		assert.Equal(suite.T(), "web", s.ClientNotes["client_id"])
		return challengeAt(s, "e1")
	}

	step, svcErr := suite.service.Execute(suite.ctx, FlowRequest{Realm: testRealm,
		ClientNotes: map[string]string{"client_id": "web"}})

	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), FlowStatusIncomplete, step.Status)
	assert.Equal(suite.T(), "e1", step.Challenge.ExecutionID)
	assert.False(suite.T(), step.Restarted)

	stored := suite.stored(step.SessionID)
	require.NotNil(suite.T(), stored)
	assert.Equal(suite.T(), "e1", stored.CurrentExecutionID)
	assert.Equal(suite.T(), testRealm, stored.Realm)
	assert.WithinDuration(suite.T(), time.Now().Add(300*time.Second), stored.ExpiresAt, 5*time.Second)
}

func (suite *FlowExecServiceTestSuite) TestResumeRefreshesExpiry() {
	step := suite.start()
	later := time.Now().Add(2 * time.Minute)
	suite.service.now = func() time.Time { return later }
	suite.processor.actionFunc = func(s *model.AuthenticationSession, _ engine.Action) (*engine.Result, error) {
		return challengeAt(s, "e2")
	}

	next, svcErr := suite.resume(step.SessionID)

	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), step.SessionID, next.SessionID)
	stored := suite.stored(step.SessionID)
	assert.Equal(suite.T(), "e2", stored.CurrentExecutionID)
	assert.WithinDuration(suite.T(), later.Add(300*time.Second), stored.ExpiresAt, time.Second)
}

func (suite *FlowExecServiceTestSuite) TestRequestValidation() {
	_, svcErr := suite.service.Execute(suite.ctx, FlowRequest{Realm: testRealm, Action: "jump"})
	assert.Equal(suite.T(), constants.ErrorInvalidAction.Code, svcErr.Code)

	suite.processor.actionFunc = func(*model.AuthenticationSession, engine.Action) (*engine.Result, error) {
		suite.T().Fatal("back without an execution id reached the processor")
		return nil, nil
	}
	_, svcErr = suite.service.Execute(suite.ctx, FlowRequest{Realm: testRealm, SessionID: "s1",
		Action: string(engine.ActionBack)})
	assert.Equal(suite.T(), constants.ErrorInvalidRequestFormat.Code, svcErr.Code)

	_, svcErr = suite.service.Execute(suite.ctx, FlowRequest{Realm: "unknown"})
	assert.Equal(suite.T(), constants.ErrorInvalidRealm.Code, svcErr.Code)

	_, svcErr = suite.service.Execute(suite.ctx, FlowRequest{Realm: testRealm, FlowAlias: "missing"})
	assert.Equal(suite.T(), constants.ErrorFlowNotFound.Code, svcErr.Code)
}

func (suite *FlowExecServiceTestSuite) TestUnknownSessionRestartsFlow() {
	step, svcErr := suite.resume("expired-session")

	require.Nil(suite.T(), svcErr)
	assert.True(suite.T(), step.Restarted)
	assert.NotEqual(suite.T(), "expired-session", step.SessionID)
	assert.Equal(suite.T(), "e1", step.Challenge.ExecutionID)
	require.Len(suite.T(), suite.sink.events, 1)
	assert.Equal(suite.T(), audit.EventFlowRestarted, suite.sink.events[0].Type)
	assert.Equal(suite.T(), "expired-session", suite.sink.events[0].SessionID)
}

func (suite *FlowExecServiceTestSuite) TestSessionOfAnotherRealmRestartsFlow() {
	foreign := &model.AuthenticationSession{ID: "foreign", Realm: "other", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(suite.T(), suite.sessions.CreateSession(suite.ctx, foreign))

	step, svcErr := suite.resume("foreign")
	require.Nil(suite.T(), svcErr)
	assert.True(suite.T(), step.Restarted)
}

func (suite *FlowExecServiceTestSuite) TestCompletionIssuesTokenOnce() {
	step := suite.start()
	suite.processor.actionFunc = func(s *model.AuthenticationSession, action engine.Action) (*engine.Result, error) {
		assert.Equal(suite.T(), "pw", action.Inputs["password"])
		s.BindUser("u1", "e1")
		s.CompletedExecutions = append(s.CompletedExecutions, "e1")
		s.RequiredActions = []string{"CONFIGURE_TOTP"}
		return &engine.Result{Status: engine.ResultComplete}, nil
	}

	done, svcErr := suite.resume(step.SessionID)
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), FlowStatusComplete, done.Status)
	require.NotNil(suite.T(), done.Token)
	assert.Equal(suite.T(), []string{"CONFIGURE_TOTP"}, done.RequiredActions)
	require.Equal(suite.T(), 1, suite.issuer.Calls())
	assert.Equal(suite.T(), token.Subject{UserID: "u1", Username: "alice", Email: "alice@example.com"},
		suite.issuer.Requests[0].Subject)
	assert.Nil(suite.T(), suite.stored(step.SessionID))

	// A replay of the final request starts a new attempt instead of issuing a second token.
	replay, svcErr := suite.resume(step.SessionID)
	require.Nil(suite.T(), svcErr)
	assert.True(suite.T(), replay.Restarted)
	assert.Equal(suite.T(), 1, suite.issuer.Calls())
}

func (suite *FlowExecServiceTestSuite) TestCompletionWithoutInteraction() {
	suite.processor.startFunc = func(s *model.AuthenticationSession) (*engine.Result, error) {
		s.BindUser("u1", "e1")
		return &engine.Result{Status: engine.ResultComplete}, nil
	}

	step := suite.start()
	assert.Equal(suite.T(), FlowStatusComplete, step.Status)
	assert.Equal(suite.T(), 1, suite.issuer.Calls())
	assert.Nil(suite.T(), suite.stored(step.SessionID))
}

func (suite *FlowExecServiceTestSuite) TestTokenIssuanceFailure() {
	suite.issuer.IssueFunc = func(token.IssueRequest) (*token.TokenResponse, error) {
		return nil, errors.New("signing key unavailable")
	}
	suite.processor.startFunc = func(s *model.AuthenticationSession) (*engine.Result, error) {
		s.BindUser("u1", "e1")
		return &engine.Result{Status: engine.ResultComplete}, nil
	}

	_, svcErr := suite.service.Execute(suite.ctx, FlowRequest{Realm: testRealm})
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ErrorTokenIssuance.Code, svcErr.Code)
	assert.Equal(suite.T(), serviceerror.ServerErrorType, svcErr.Type)
}

func (suite *FlowExecServiceTestSuite) TestStaleRequestRedisplaysCurrentStep() {
	step := suite.start()
	current := &model.Challenge{ExecutionID: "e2", AuthenticatorID: "auth-otp-form"}
	suite.processor.actionFunc = func(s *model.AuthenticationSession, action engine.Action) (*engine.Result, error) {
		s.CurrentExecutionID = "mutated"
		return nil, &model.StaleRequestError{ExpectedExecutionID: "e2", ReceivedExecutionID: action.ExecutionID,
			Challenge: current}
	}

	stale, svcErr := suite.resume(step.SessionID)

	require.Nil(suite.T(), svcErr)
	assert.True(suite.T(), stale.Stale)
	assert.Equal(suite.T(), step.SessionID, stale.SessionID)
	assert.Equal(suite.T(), current, stale.Challenge)
	// Nothing is persisted for a stale request.
	assert.Equal(suite.T(), "e1", suite.stored(step.SessionID).CurrentExecutionID)
}

func (suite *FlowExecServiceTestSuite) TestRecoverableClientErrorsKeepSession() {
	step := suite.start()
	cases := []struct {
		err      error
		expected serviceerror.ServiceError
	}{
		{&model.BackNavigationUnavailableError{}, constants.ErrorBackNavigationUnavailable},
		{engine.ErrInvalidSelection, constants.ErrorInvalidSelection},
		{errors.New("store unavailable"), serviceerror.InternalServerError},
	}
	for _, tc := range cases {
		suite.processor.actionFunc = func(*model.AuthenticationSession, engine.Action) (*engine.Result, error) {
			return nil, tc.err
		}
		_, svcErr := suite.resume(step.SessionID)
		require.NotNil(suite.T(), svcErr)
		assert.Equal(suite.T(), tc.expected.Code, svcErr.Code)
		assert.NotNil(suite.T(), suite.stored(step.SessionID))
	}
}

func (suite *FlowExecServiceTestSuite) TestTerminalErrorsDeleteSession() {
	cases := []struct {
		err      error
		expected serviceerror.ServiceError
	}{
		{&model.AuthenticationFailedError{ExecutionID: "e1", Code: "invalid_user_credentials"},
			constants.ErrorAuthenticationFailed},
		{&model.ConfigurationError{FlowID: "browser-id", Reason: "unknown authenticator"},
			constants.ErrorFlowConfiguration},
	}
	for _, tc := range cases {
		step := suite.start()
		suite.processor.actionFunc = func(*model.AuthenticationSession, engine.Action) (*engine.Result, error) {
			return nil, tc.err
		}
		_, svcErr := suite.resume(step.SessionID)
		require.NotNil(suite.T(), svcErr)
		assert.Equal(suite.T(), tc.expected.Code, svcErr.Code)
		assert.Nil(suite.T(), suite.stored(step.SessionID))
	}
}

func (suite *FlowExecServiceTestSuite) TestSessionStoreFailure() {
	suite.service.sessions = failingSessionStore{suite.sessions}
	_, svcErr := suite.resume("s1")
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ErrorSessionPersistence.Code, svcErr.Code)
}

func (suite *FlowExecServiceTestSuite) TestStartWithNotes() {
	suite.processor.startFunc = func(s *model.AuthenticationSession) (*engine.Result, error) {
		assert.Equal(suite.T(), "alice", s.GetAuthNote(constants.AuthNoteBrokeredUsername))
		return challengeAt(s, "e1")
	}
	notes := map[string]string{constants.AuthNoteBrokeredUsername: "alice"}

	step, svcErr := suite.service.StartWithNotes(suite.ctx, testRealm, "browser", notes, nil)
	require.Nil(suite.T(), svcErr)
	notes[constants.AuthNoteBrokeredUsername] = "changed"
	assert.Equal(suite.T(), "alice", suite.stored(step.SessionID).GetAuthNote(constants.AuthNoteBrokeredUsername))

	_, svcErr = suite.service.StartWithNotes(suite.ctx, "unknown", "browser", notes, nil)
	assert.Equal(suite.T(), constants.ErrorInvalidRealm.Code, svcErr.Code)
}

func (suite *FlowExecServiceTestSuite) TestRequestsForOneSessionAreSerialised() {
	step := suite.start()
	var inFlight, maxInFlight int32
	suite.processor.actionFunc = func(s *model.AuthenticationSession, _ engine.Action) (*engine.Result, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return challengeAt(s, "e1")
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, svcErr := suite.resume(step.SessionID)
			assert.Nil(suite.T(), svcErr)
		}()
	}
	wg.Wait()

	assert.Equal(suite.T(), int32(1), atomic.LoadInt32(&maxInFlight))
	assert.Equal(suite.T(), 0, suite.service.locks.size())
}
