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

package account

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/tests/mocks/credentialmock"
)

const (
	testRealm    = "master"
	testUser     = "u1"
	testPassword = "s3cret!"
)

type stubEnabledTypes struct {
	types map[string]bool
	err   error
}

func (s stubEnabledTypes) EnabledCredentialTypes(context.Context, string) (map[string]bool, error) {
	return s.types, s.err
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

type AccountCredentialServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *credentialmock.InMemoryCredentialStore
	credentials credential.CredentialServiceInterface
	sink        *recordingSink
	service     AccountCredentialServiceInterface
	otp         credential.Credential
}

func TestAccountCredentialServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountCredentialServiceTestSuite))
}

func (suite *AccountCredentialServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = credentialmock.NewInMemoryCredentialStore()
	suite.store.SeedPassword(testRealm, testUser, testPassword)
	suite.otp = suite.store.SeedOTP(testRealm, testUser, "JBSWY3DPEHPK3PXP")
	suite.credentials = credential.NewCredentialService(suite.store)
	suite.sink = &recordingSink{}
	suite.service = NewAccountCredentialService(suite.credentials,
		stubEnabledTypes{types: map[string]bool{credential.TypePassword: true}}, suite.sink)
}

func (suite *AccountCredentialServiceTestSuite) TestListCredentialTypes() {
	containers, svcErr := suite.service.ListCredentialTypes(suite.ctx, testRealm, testUser, CredentialFilter{})

	require.Nil(suite.T(), svcErr)
	require.Len(suite.T(), containers, 2)
	assert.Equal(suite.T(), credential.TypePassword, containers[0].Type)
	assert.True(suite.T(), containers[0].Enabled)
	assert.Len(suite.T(), containers[0].UserCredentials, 1)
	assert.Equal(suite.T(), credential.TypeOTP, containers[1].Type)
	assert.False(suite.T(), containers[1].Enabled)
	assert.True(suite.T(), containers[1].RemoveAble)
	require.Len(suite.T(), containers[1].UserCredentials, 1)
	assert.Equal(suite.T(), suite.otp.ID, containers[1].UserCredentials[0].ID)
}

func (suite *AccountCredentialServiceTestSuite) TestListCredentialTypesFilters() {
	cases := []struct {
		name     string
		filter   CredentialFilter
		expected []string
	}{
		{"ByType", CredentialFilter{Type: credential.TypeOTP}, []string{credential.TypeOTP}},
		{"EnabledOnly", CredentialFilter{EnabledOnly: true}, []string{credential.TypePassword}},
		{"UnknownType", CredentialFilter{Type: "webauthn"}, []string{}},
	}
	for _, tc := range cases {
		suite.T().Run(tc.name, func(t *testing.T) {
			containers, svcErr := suite.service.ListCredentialTypes(suite.ctx, testRealm, testUser, tc.filter)
			require.Nil(t, svcErr)
			types := []string{}
			for _, c := range containers {
				types = append(types, c.Type)
			}
			assert.Equal(t, tc.expected, types)
		})
	}

	containers, svcErr := suite.service.ListCredentialTypes(suite.ctx, testRealm, testUser,
		CredentialFilter{OmitUserCredentials: true})
	require.Nil(suite.T(), svcErr)
	for _, c := range containers {
		assert.Nil(suite.T(), c.UserCredentials)
	}
}

func (suite *AccountCredentialServiceTestSuite) TestListCredentialTypesEnabledLookupFailure() {
	service := NewAccountCredentialService(suite.credentials, stubEnabledTypes{err: errors.New("db down")}, nil)

	_, svcErr := service.ListCredentialTypes(suite.ctx, testRealm, testUser, CredentialFilter{})

	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), serviceerror.InternalServerError.Code, svcErr.Code)
}

func (suite *AccountCredentialServiceTestSuite) TestRemoveAndLabelCredential() {
	require.Nil(suite.T(), suite.service.SetCredentialLabel(suite.ctx, testRealm, testUser, suite.otp.ID, "phone"))
	stored, err := suite.credentials.GetStoredCredentialsByType(suite.ctx, testRealm, testUser, credential.TypeOTP)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "phone", stored[0].UserLabel)

	require.Nil(suite.T(), suite.service.RemoveCredential(suite.ctx, testRealm, testUser, suite.otp.ID))
	svcErr := suite.service.RemoveCredential(suite.ctx, testRealm, testUser, suite.otp.ID)
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), credential.ErrorCredentialNotFound.Code, svcErr.Code)
}

func (suite *AccountCredentialServiceTestSuite) TestPasswordDetails() {
	details, svcErr := suite.service.GetPasswordDetails(suite.ctx, testRealm, testUser)
	require.Nil(suite.T(), svcErr)
	assert.True(suite.T(), details.Registered)
	assert.NotZero(suite.T(), details.LastUpdate)

	details, svcErr = suite.service.GetPasswordDetails(suite.ctx, testRealm, "nobody")
	require.Nil(suite.T(), svcErr)
	assert.False(suite.T(), details.Registered)
	assert.Zero(suite.T(), details.LastUpdate)
}

func (suite *AccountCredentialServiceTestSuite) TestUpdatePassword() {
	svcErr := suite.service.UpdatePassword(suite.ctx, testRealm, testUser, PasswordUpdateRequest{
		CurrentPassword: testPassword, NewPassword: "n3w-secret", Confirmation: "n3w-secret",
	})

	require.Nil(suite.T(), svcErr)
	valid, err := suite.credentials.IsValid(suite.ctx, testRealm, testUser,
		credential.CredentialInput{Type: credential.TypePassword, Value: "n3w-secret"})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), valid)
	require.Len(suite.T(), suite.sink.events, 1)
	assert.Equal(suite.T(), audit.EventUpdatePassword, suite.sink.events[0].Type)
}

func (suite *AccountCredentialServiceTestSuite) TestUpdatePasswordRejected() {
	cases := []struct {
		name     string
		req      PasswordUpdateRequest
		expected serviceerror.ServiceError
	}{
		{"WrongCurrent", PasswordUpdateRequest{CurrentPassword: "wrong", NewPassword: "x"},
			credential.ErrorInvalidCurrentPassword},
		{"MissingNew", PasswordUpdateRequest{CurrentPassword: testPassword},
			credential.ErrorInvalidCredentialValue},
		{"ConfirmationMismatch", PasswordUpdateRequest{CurrentPassword: testPassword, NewPassword: "a",
			Confirmation: "b"}, credential.ErrorPasswordConfirmationMismatch},
	}
	for _, tc := range cases {
		suite.T().Run(tc.name, func(t *testing.T) {
			svcErr := suite.service.UpdatePassword(suite.ctx, testRealm, testUser, tc.req)
			require.NotNil(t, svcErr)
			assert.Equal(t, tc.expected.Code, svcErr.Code)
		})
	}

	valid, err := suite.credentials.IsValid(suite.ctx, testRealm, testUser,
		credential.CredentialInput{Type: credential.TypePassword, Value: testPassword})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), valid)
	assert.Equal(suite.T(), audit.EventUpdatePasswordError, suite.sink.events[0].Type)
}
