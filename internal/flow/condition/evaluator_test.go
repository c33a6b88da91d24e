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

package condition

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/realm"
)

type fixedCondition struct {
	authenticator.Base
	match bool
	calls *int
}

func (f *fixedCondition) RequiresUser() bool { return false }

func (f *fixedCondition) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

func (f *fixedCondition) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}

func (f *fixedCondition) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}

func (f *fixedCondition) MatchCondition(actx *authenticator.Context) (bool, error) {
	*f.calls++
	if actx.Execution.GetConfig("fail") != "" {
		return false, errors.New("condition error")
	}
	return f.match, nil
}

type plainAuthenticator struct {
	authenticator.Base
}

func (p *plainAuthenticator) RequiresUser() bool { return false }

func (p *plainAuthenticator) ConfiguredFor(context.Context, string, string) (bool, error) {
	return true, nil
}

func (p *plainAuthenticator) Authenticate(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}

func (p *plainAuthenticator) HandleAction(actx *authenticator.Context) (*authenticator.Response, error) {
	return actx.Success(), nil
}

type EvaluatorTestSuite struct {
	suite.Suite
	calls     int
	registry  *authenticator.Registry
	evaluator EvaluatorInterface
	actx      *authenticator.Context
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func (suite *EvaluatorTestSuite) SetupTest() {
	suite.calls = 0
	suite.registry = authenticator.NewRegistry()
	suite.registry.MustRegister(
		&fixedCondition{Base: authenticator.NewBase("yes", "yes", "", nil), match: true, calls: &suite.calls},
		&fixedCondition{Base: authenticator.NewBase("no", "no", "", nil), match: false, calls: &suite.calls},
		&plainAuthenticator{Base: authenticator.NewBase("plain", "plain", "", nil)},
	)
	suite.evaluator = NewEvaluator()
	suite.actx = authenticator.NewContext(context.Background(), realm.Realm{Name: "master"},
		model.FlowModel{ID: "sub"}, model.ExecutionModel{ID: "sub-exec"}, nil,
		&model.AuthenticationSession{}, nil, suite.registry)
}

func condition(id, authenticatorID string, requirement model.Requirement) model.ExecutionModel {
	return model.ExecutionModel{ID: id, AuthenticatorID: authenticatorID, Requirement: requirement}
}

func (suite *EvaluatorTestSuite) TestAllMatch() {
	match, err := suite.evaluator.Evaluate(suite.actx, []model.ExecutionModel{
		condition("c1", "yes", model.RequirementRequired),
		condition("c2", "yes", model.RequirementRequired),
	})

	require.NoError(suite.T(), err)
	assert.True(suite.T(), match)
	assert.Equal(suite.T(), 2, suite.calls)
}

func (suite *EvaluatorTestSuite) TestShortCircuitsOnFirstMismatch() {
	match, err := suite.evaluator.Evaluate(suite.actx, []model.ExecutionModel{
		condition("c1", "no", model.RequirementRequired),
		condition("c2", "yes", model.RequirementRequired),
	})

	require.NoError(suite.T(), err)
	assert.False(suite.T(), match)
	assert.Equal(suite.T(), 1, suite.calls)
}

func (suite *EvaluatorTestSuite) TestDisabledConditionsAreIgnored() {
	match, err := suite.evaluator.Evaluate(suite.actx, []model.ExecutionModel{
		condition("c1", "no", model.RequirementDisabled),
		condition("c2", "yes", model.RequirementRequired),
	})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), match)

	match, err = suite.evaluator.Evaluate(suite.actx, []model.ExecutionModel{
		condition("c1", "yes", model.RequirementDisabled),
	})
	require.NoError(suite.T(), err)
	assert.False(suite.T(), match)
}

func (suite *EvaluatorTestSuite) TestNonConditionIsConfigurationError() {
	_, err := suite.evaluator.Evaluate(suite.actx, []model.ExecutionModel{
		condition("c1", "plain", model.RequirementRequired),
	})

	var cfgErr *model.ConfigurationError
	require.True(suite.T(), errors.As(err, &cfgErr))
	assert.Equal(suite.T(), "c1", cfgErr.ExecutionID)
}

func (suite *EvaluatorTestSuite) TestConditionErrorPropagates() {
	c := condition("c1", "yes", model.RequirementRequired)
	c.Config = map[string]string{"fail": "1"}

	_, err := suite.evaluator.Evaluate(suite.actx, []model.ExecutionModel{c})

	assert.EqualError(suite.T(), err, "condition error")
}
