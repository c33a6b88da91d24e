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

package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/authflow/internal/system/config"
)

type CertTestSuite struct {
	suite.Suite
	home string
}

func TestCertSuite(t *testing.T) {
	suite.Run(t, new(CertTestSuite))
}

func (suite *CertTestSuite) SetupTest() {
	suite.home = suite.T().TempDir()
	require.NoError(suite.T(), os.MkdirAll(filepath.Join(suite.home, "repository", "resources", "security"), 0o750))

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(suite.T(), err)
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		DNSNames:     []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(suite.T(), err)
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(suite.T(), err)

	suite.write("repository/resources/security/server.cert", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
	suite.write("repository/resources/security/server.key", pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}))
}

func (suite *CertTestSuite) write(name string, content []byte) {
	require.NoError(suite.T(), os.WriteFile(filepath.Join(suite.home, name), content, 0o600))
}

func (suite *CertTestSuite) TestLoadRelativeToHome() {
	tlsConfig, err := GetTLSConfig(config.ServerConfig{
		CertFile: "repository/resources/security/server.cert",
		KeyFile:  "repository/resources/security/server.key",
	}, suite.home)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), tlsConfig.Certificates, 1)
	assert.Equal(suite.T(), uint16(tls.VersionTLS12), tlsConfig.MinVersion)
}

func (suite *CertTestSuite) TestLoadAbsolutePaths() {
	tlsConfig, err := GetTLSConfig(config.ServerConfig{
		CertFile: filepath.Join(suite.home, "repository/resources/security/server.cert"),
		KeyFile:  filepath.Join(suite.home, "repository/resources/security/server.key"),
	}, "/nonexistent")

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), tlsConfig.Certificates, 1)
}

func (suite *CertTestSuite) TestErrors() {
	testCases := []struct {
		name string
		cfg  config.ServerConfig
	}{
		{name: "NotConfigured", cfg: config.ServerConfig{}},
		{name: "MissingCert", cfg: config.ServerConfig{CertFile: "missing.cert",
			KeyFile: "repository/resources/security/server.key"}},
		{name: "MissingKey", cfg: config.ServerConfig{CertFile: "repository/resources/security/server.cert",
			KeyFile: "missing.key"}},
		{name: "MismatchedPair", cfg: config.ServerConfig{CertFile: "repository/resources/security/server.key",
			KeyFile: "repository/resources/security/server.cert"}},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			tlsConfig, err := GetTLSConfig(tc.cfg, suite.home)
			assert.Error(t, err)
			assert.Nil(t, tlsConfig)
		})
	}
}
