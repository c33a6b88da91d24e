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

package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/system/config"
)

type TokenServiceTestSuite struct {
	suite.Suite
	key     *rsa.PrivateKey
	service *tokenService
}

func TestTokenServiceSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (suite *TokenServiceTestSuite) SetupSuite() {
	var err error
	suite.key, err = rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.service = NewTokenService(suite.key, config.JWTConfig{
		Issuer: "https://idp.example.com", ValidityPeriod: 300, KeyID: "k1",
	}).(*tokenService)
}

func (suite *TokenServiceTestSuite) TestIssueAndVerify() {
	resp, err := suite.service.IssueToken(IssueRequest{
		Realm:     "master",
		SessionID: "s1",
		Subject:   Subject{UserID: "u1", Username: "alice", Email: "alice@example.com"},
		ClientNotes: map[string]string{
			ClientNoteClientID: "account-console",
			ClientNoteScope:    "openid profile",
		},
		RequiredActions: []string{"CONFIGURE_TOTP"},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Bearer", resp.TokenType)
	assert.Equal(suite.T(), int64(300), resp.ExpiresIn)
	assert.Equal(suite.T(), "openid profile", resp.Scope)

	claims, err := suite.service.VerifyToken(resp.AccessToken)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "u1", claims.Subject)
	assert.Equal(suite.T(), "alice", claims.PreferredUsername)
	assert.Equal(suite.T(), "s1", claims.SessionState)
	assert.Equal(suite.T(), jwt.ClaimStrings{"account-console"}, claims.Audience)
	assert.Equal(suite.T(), []string{"CONFIGURE_TOTP"}, claims.RequiredActions)
	assert.NotEmpty(suite.T(), claims.ID)
}

func (suite *TokenServiceTestSuite) TestIssueRequiresSubject() {
	_, err := suite.service.IssueToken(IssueRequest{Realm: "master"})

	assert.Error(suite.T(), err)
}

func (suite *TokenServiceTestSuite) TestVerifyExpiredToken() {
	resp, err := suite.service.IssueToken(IssueRequest{Subject: Subject{UserID: "u1"}})
	require.NoError(suite.T(), err)

	suite.service.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = suite.service.VerifyToken(resp.AccessToken)

	assert.ErrorIs(suite.T(), err, jwt.ErrTokenExpired)
}

func (suite *TokenServiceTestSuite) TestVerifyForeignToken() {
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)
	other := NewTokenService(otherKey, config.JWTConfig{Issuer: "https://idp.example.com"})
	resp, err := other.IssueToken(IssueRequest{Subject: Subject{UserID: "u1"}})
	require.NoError(suite.T(), err)

	_, err = suite.service.VerifyToken(resp.AccessToken)

	assert.ErrorIs(suite.T(), err, jwt.ErrTokenSignatureInvalid)
}

func (suite *TokenServiceTestSuite) TestLoadPrivateKey() {
	dir := suite.T().TempDir()
	pkcs1 := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(suite.key)})
	require.NoError(suite.T(), os.WriteFile(filepath.Join(dir, "pkcs1.key"), pkcs1, 0o600))
	der, err := x509.MarshalPKCS8PrivateKey(suite.key)
	require.NoError(suite.T(), err)
	pkcs8 := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	require.NoError(suite.T(), os.WriteFile(filepath.Join(dir, "pkcs8.key"), pkcs8, 0o600))
	require.NoError(suite.T(), os.WriteFile(filepath.Join(dir, "bad.key"), []byte("not pem"), 0o600))

	key, err := LoadPrivateKey(dir, "pkcs1.key")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), key.Equal(suite.key))

	key, err = LoadPrivateKey("/unused", filepath.Join(dir, "pkcs8.key"))
	require.NoError(suite.T(), err)
	assert.True(suite.T(), key.Equal(suite.key))

	_, err = LoadPrivateKey(dir, "bad.key")
	assert.Error(suite.T(), err)
	_, err = LoadPrivateKey(dir, "missing.key")
	assert.Error(suite.T(), err)
}
