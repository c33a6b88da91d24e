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

package credential_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/tests/mocks/credentialmock"
)

const testOTPSecret = "JBSWY3DPEHPK3PXP"

type CredentialServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *credentialmock.InMemoryCredentialStore
	service credential.CredentialServiceInterface
}

func TestCredentialServiceSuite(t *testing.T) {
	suite.Run(t, new(CredentialServiceTestSuite))
}

func (suite *CredentialServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = credentialmock.NewInMemoryCredentialStore()
	suite.service = credential.NewCredentialService(suite.store)
}

func (suite *CredentialServiceTestSuite) TestPasswordLifecycle() {
	require.Nil(suite.T(), suite.service.UpdateCredential(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypePassword, Value: "first-secret"}))

	ok, err := suite.service.IsValid(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypePassword, Value: "first-secret"})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	// Updating replaces the existing password instead of adding a second one.
	require.Nil(suite.T(), suite.service.UpdateCredential(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypePassword, Value: "second-secret"}))
	stored, err := suite.service.GetStoredCredentialsByType(suite.ctx, "master", "u1", credential.TypePassword)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), stored, 1)

	ok, _ = suite.service.IsValid(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypePassword, Value: "first-secret"})
	assert.False(suite.T(), ok)
	ok, _ = suite.service.IsValid(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypePassword, Value: "second-secret"})
	assert.True(suite.T(), ok)
}

func (suite *CredentialServiceTestSuite) TestIsValidEmptyValue() {
	ok, err := suite.service.IsValid(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypePassword})

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *CredentialServiceTestSuite) TestOTPRegistrationAndValidation() {
	code, err := totp.GenerateCode(testOTPSecret, time.Now())
	require.NoError(suite.T(), err)

	c, svcErr := suite.service.CreateOTPCredential(suite.ctx, "master", "u1", testOTPSecret, code, "phone")
	require.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), "phone", c.UserLabel)

	configured, err := suite.service.IsConfiguredFor(suite.ctx, "master", "u1", credential.TypeOTP)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), configured)

	ok, err := suite.service.IsValid(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypeOTP, Value: code})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), ok)

	ok, _ = suite.service.IsValid(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypeOTP, Value: code, CredentialID: "other"})
	assert.False(suite.T(), ok)

	ok, _ = suite.service.IsValid(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypeOTP, Value: "000000x"})
	assert.False(suite.T(), ok)
}

func (suite *CredentialServiceTestSuite) TestOTPRegistrationRejectsWrongCode() {
	_, svcErr := suite.service.CreateOTPCredential(suite.ctx, "master", "u1", testOTPSecret, "12", "")

	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), credential.ErrorInvalidOTPCode.Code, svcErr.Code)
}

func (suite *CredentialServiceTestSuite) TestUpdateCredentialUnsupportedType() {
	svcErr := suite.service.UpdateCredential(suite.ctx, "master", "u1",
		credential.CredentialInput{Type: credential.TypeOTP, Value: "x"})

	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), credential.ErrorUnsupportedCredentialType.Code, svcErr.Code)
}

func (suite *CredentialServiceTestSuite) TestRemoveAndLabel() {
	require.NoError(suite.T(), suite.store.AddCredential(suite.ctx, credential.Credential{
		ID: "c1", Realm: "master", UserID: "u1", Type: credential.TypeOTP, SecretData: testOTPSecret,
	}))

	assert.Nil(suite.T(), suite.service.UpdateCredentialLabel(suite.ctx, "master", "u1", "c1", " laptop "))
	stored, _ := suite.service.GetStoredCredentials(suite.ctx, "master", "u1")
	require.Len(suite.T(), stored, 1)
	assert.Equal(suite.T(), "laptop", stored[0].UserLabel)

	svcErr := suite.service.UpdateCredentialLabel(suite.ctx, "master", "u1", "c1", " ")
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), credential.ErrorInvalidCredentialValue.Code, svcErr.Code)

	assert.Nil(suite.T(), suite.service.RemoveStoredCredential(suite.ctx, "master", "u1", "c1"))
	svcErr = suite.service.RemoveStoredCredential(suite.ctx, "master", "u1", "c1")
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), credential.ErrorCredentialNotFound.Code, svcErr.Code)
}

func (suite *CredentialServiceTestSuite) TestStoreFailure() {
	suite.store.Err = errors.New("database is down")

	_, err := suite.service.IsConfiguredFor(suite.ctx, "master", "u1", credential.TypeOTP)
	assert.Error(suite.T(), err)

	svcErr := suite.service.RemoveStoredCredential(suite.ctx, "master", "u1", "c1")
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), serviceerror.ServerErrorType, svcErr.Type)
}

func (suite *CredentialServiceTestSuite) TestSupportedTypes() {
	types := suite.service.GetSupportedTypes()

	require.Len(suite.T(), types, 2)
	assert.Equal(suite.T(), credential.TypePassword, types[0].Type)
	assert.False(suite.T(), types[0].RemoveAble)
	assert.Equal(suite.T(), credential.RequiredActionConfigureTOTP, types[1].CreateAction)
}
