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

package usernamepassword

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/flow/constants"
	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/realm"
	"github.com/asgardeo/authflow/internal/user"
	"github.com/asgardeo/authflow/tests/mocks/credentialmock"
	"github.com/asgardeo/authflow/tests/mocks/usermock"
)

type lockedUsers map[string]bool

func (l lockedUsers) IsTemporarilyDisabled(_, userID string) bool {
	return l[userID]
}

type UsernamePasswordTestSuite struct {
	suite.Suite
	locked        lockedUsers
	session       *model.AuthenticationSession
	authenticator *UsernamePasswordAuthenticator
	rlm           realm.Realm
}

func TestUsernamePasswordSuite(t *testing.T) {
	suite.Run(t, new(UsernamePasswordTestSuite))
}

func (suite *UsernamePasswordTestSuite) SetupTest() {
	users := usermock.NewInMemoryUserStore(
		user.User{ID: "u1", Realm: "master", Username: "alice", Email: "alice@example.com", Enabled: true},
		user.User{ID: "u2", Realm: "master", Username: "bob", Enabled: false},
		user.User{ID: "u3", Realm: "master", Username: "carol", Enabled: true},
	)
	creds := credentialmock.NewInMemoryCredentialStore()
	creds.SeedPassword("master", "u1", "alice-secret")
	creds.SeedPassword("master", "u2", "bob-secret")
	creds.SeedPassword("master", "u3", "carol-secret")

	suite.locked = lockedUsers{}
	suite.session = &model.AuthenticationSession{ID: "s1", Realm: "master"}
	suite.rlm = realm.Realm{Name: "master", MaxLoginAttempts: 3}
	suite.authenticator = New(user.NewUserService(users), credential.NewCredentialService(creds), suite.locked)
}

func (suite *UsernamePasswordTestSuite) context(inputs map[string]string) *authenticator.Context {
	return authenticator.NewContext(context.Background(), suite.rlm, model.FlowModel{ID: "browser"},
		model.ExecutionModel{ID: "e1", AuthenticatorID: ID}, nil, suite.session, inputs, nil)
}

func (suite *UsernamePasswordTestSuite) TestAuthenticateIssuesLoginForm() {
	suite.session.SetAuthNote(constants.AuthNoteAttemptedUsername, "alice")

	resp, err := suite.authenticator.Authenticate(suite.context(nil))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), authenticator.StatusChallenge, resp.Status)
	assert.Equal(suite.T(), Form, resp.Challenge.Form)
	assert.Equal(suite.T(), ID, resp.Challenge.AuthenticatorID)
	assert.Len(suite.T(), resp.Challenge.Inputs, 2)
	assert.Equal(suite.T(), "alice", resp.Challenge.Attributes["username"])
	assert.False(suite.T(), suite.authenticator.RequiresUser())
	assert.Equal(suite.T(), credential.TypePassword, suite.authenticator.GetCredentialType())
}

func (suite *UsernamePasswordTestSuite) TestValidCredentialsBindUser() {
	suite.session.SetAuthNote(constants.AuthNoteLoginAttempts, "1")

	resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{
		"username": "alice", "password": "alice-secret",
	}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), authenticator.StatusSuccess, resp.Status)
	assert.Equal(suite.T(), "u1", suite.session.AuthenticatedUserID)
	assert.Equal(suite.T(), "e1", suite.session.UserBoundBy)
	assert.Empty(suite.T(), suite.session.GetAuthNote(constants.AuthNoteLoginAttempts))
}

func (suite *UsernamePasswordTestSuite) TestEmailIdentifier() {
	resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{
		"username": "ALICE@example.com", "password": "alice-secret",
	}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), authenticator.StatusSuccess, resp.Status)
	assert.Equal(suite.T(), "u1", suite.session.AuthenticatedUserID)
}

func (suite *UsernamePasswordTestSuite) TestInvalidPassword() {
	actx := suite.context(map[string]string{"username": "alice", "password": "wrong"})

	resp, err := suite.authenticator.HandleAction(actx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), authenticator.StatusChallenge, resp.Status)
	assert.Equal(suite.T(), constants.ErrorCodeInvalidCredentials, resp.ErrorCode)
	assert.Equal(suite.T(), constants.ErrorCodeInvalidCredentials, resp.Challenge.Error)
	assert.Equal(suite.T(), "alice", resp.Challenge.Attributes["username"])
	assert.Equal(suite.T(), "u1", actx.GetAttemptedUser())
	assert.Empty(suite.T(), suite.session.AuthenticatedUserID)
}

func (suite *UsernamePasswordTestSuite) TestUnknownUser() {
	actx := suite.context(map[string]string{"username": "mallory", "password": "x"})

	resp, err := suite.authenticator.HandleAction(actx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.ErrorCodeInvalidUser, resp.ErrorCode)
	assert.Empty(suite.T(), actx.GetAttemptedUser())
}

func (suite *UsernamePasswordTestSuite) TestAttemptLimitFailsTheAttempt() {
	for i := 0; i < 2; i++ {
		resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{
			"username": "alice", "password": "wrong",
		}))
		require.NoError(suite.T(), err)
		assert.True(suite.T(), resp.IsChallenge())
	}

	resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{
		"username": "alice", "password": "wrong",
	}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), authenticator.StatusFailure, resp.Status)
	assert.Equal(suite.T(), constants.ErrorCodeTooManyAttempts, resp.ErrorCode)
}

func (suite *UsernamePasswordTestSuite) TestDisabledUser() {
	resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{
		"username": "bob", "password": "bob-secret",
	}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.ErrorCodeUserDisabled, resp.ErrorCode)
	assert.Empty(suite.T(), suite.session.AuthenticatedUserID)
}

func (suite *UsernamePasswordTestSuite) TestTemporarilyDisabledUser() {
	suite.locked["u1"] = true

	resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{
		"username": "alice", "password": "alice-secret",
	}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.ErrorCodeUserTemporarilyDisabled, resp.ErrorCode)
	assert.Empty(suite.T(), suite.session.AuthenticatedUserID)
}

func (suite *UsernamePasswordTestSuite) TestMissingInput() {
	resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{"username": "alice"}))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.ErrorCodeMissingInput, resp.ErrorCode)
}

func (suite *UsernamePasswordTestSuite) TestExistingAccountMustMatch() {
	suite.session.SetAuthNote(constants.AuthNoteExistingUserID, "u3")

	challenge, err := suite.authenticator.Authenticate(suite.context(nil))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "carol", challenge.Challenge.Attributes["username"])
	assert.Equal(suite.T(), "true", challenge.Challenge.Attributes["usernameEditDisabled"])

	resp, err := suite.authenticator.HandleAction(suite.context(map[string]string{
		"username": "alice", "password": "alice-secret",
	}))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.ErrorCodeInvalidUser, resp.ErrorCode)

	resp, err = suite.authenticator.HandleAction(suite.context(map[string]string{
		"username": "carol", "password": "carol-secret",
	}))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), authenticator.StatusSuccess, resp.Status)
	assert.Equal(suite.T(), "u3", suite.session.AuthenticatedUserID)
}
