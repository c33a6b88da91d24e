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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/condition"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/realm"
)

// scriptedAuthenticator answers every invocation with a fixed status and records the executions it ran for.
type scriptedAuthenticator struct {
	authenticator.Base
	status authenticator.Status
	calls  *[]string
}

func (a *scriptedAuthenticator) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	*a.calls = append(*a.calls, actx.Execution.ID)
	switch a.status {
	case authenticator.StatusSuccess:
		if actx.GetUserID() == "" {
			actx.SetUser("u1")
		}
		return actx.Success(), nil
	case authenticator.StatusFailure:
		return actx.Failure(constants.ErrorCodeInvalidCredentials), nil
	}
	return actx.Attempted(), nil
}

func (a *scriptedAuthenticator) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	return a.Authenticate(actx)
}

func (a *scriptedAuthenticator) RequiresUser() bool {
	return false
}

func (a *scriptedAuthenticator) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

type scriptedFlow struct {
	store    store.FlowStoreInterface
	registry *authenticator.Registry
	calls    []string
}

func newScriptedFlow(t *testing.T) *scriptedFlow {
	f := &scriptedFlow{store: store.NewArenaStore(), registry: authenticator.NewRegistry()}
	for id, status := range map[string]authenticator.Status{
		"ok":        authenticator.StatusSuccess,
		"fail":      authenticator.StatusFailure,
		"attempted": authenticator.StatusAttempted,
	} {
		f.registry.MustRegister(&scriptedAuthenticator{
			Base: authenticator.NewBase(id, id, "", nil), status: status, calls: &f.calls,
		})
	}
	require.NoError(t, f.store.AddFlow(context.Background(), model.FlowModel{
		ID: "root", Realm: testRealm, Alias: "root", ProviderID: constants.ProviderBasicFlow, TopLevel: true,
	}))
	return f
}

func (f *scriptedFlow) add(t *testing.T, id, authenticatorID string, requirement model.Requirement, priority int) {
	require.NoError(t, f.store.AddExecution(context.Background(), model.ExecutionModel{
		ID: id, ParentFlowID: "root", AuthenticatorID: authenticatorID, Requirement: requirement, Priority: priority,
	}))
}

func (f *scriptedFlow) start() (*Result, error) {
	processor := NewProcessor(f.store, f.registry, condition.NewEvaluator(), nil, nil)
	session := &model.AuthenticationSession{ID: "s1", Realm: testRealm, FlowID: "root"}
	return processor.Start(context.Background(), realm.Realm{Name: testRealm}, session)
}

func TestAlternativeSetStopsAtFirstSuccess(t *testing.T) {
	f := newScriptedFlow(t)
	f.add(t, "a", "ok", model.RequirementRequired, 10)
	f.add(t, "b", "attempted", model.RequirementAlternative, 20)
	f.add(t, "c", "ok", model.RequirementAlternative, 30)
	f.add(t, "d", "ok", model.RequirementAlternative, 40)
	f.add(t, "e", "ok", model.RequirementRequired, 50)

	result, err := f.start()

	require.NoError(t, err)
	assert.Equal(t, ResultComplete, result.Status)
	assert.Equal(t, []string{"a", "b", "c", "e"}, f.calls)
}

func TestFailingRequiredStepStopsFlow(t *testing.T) {
	f := newScriptedFlow(t)
	f.add(t, "a", "ok", model.RequirementRequired, 10)
	f.add(t, "b", "fail", model.RequirementRequired, 20)
	f.add(t, "c", "ok", model.RequirementRequired, 30)

	result, err := f.start()

	assert.Nil(t, result)
	var failed *model.AuthenticationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "b", failed.ExecutionID)
	assert.Equal(t, []string{"a", "b"}, f.calls)
}

func TestAlternativeSetFailsWhenEveryMemberFails(t *testing.T) {
	f := newScriptedFlow(t)
	f.add(t, "a", "attempted", model.RequirementAlternative, 10)
	f.add(t, "b", "fail", model.RequirementAlternative, 20)
	f.add(t, "c", "ok", model.RequirementRequired, 30)

	_, err := f.start()

	var failed *model.AuthenticationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, []string{"a", "b"}, f.calls)
}
