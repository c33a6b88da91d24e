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

// Package token issues and verifies signed access tokens for completed authentications.
package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// IssuerInterface mints tokens for authenticated subjects.
type IssuerInterface interface {
	IssueToken(req IssueRequest) (*TokenResponse, error)
}

// VerifierInterface verifies tokens minted by the issuer.
type VerifierInterface interface {
	VerifyToken(tokenString string) (*Claims, error)
}

// TokenServiceInterface combines issuing and verification.
type TokenServiceInterface interface {
	IssuerInterface
	VerifierInterface
	GetPublicKey() *rsa.PublicKey
}

type tokenService struct {
	privateKey     *rsa.PrivateKey
	keyID          string
	issuer         string
	validityPeriod time.Duration
	now            func() time.Time
}

// NewTokenService creates a token service signing with the given RSA key.
func NewTokenService(privateKey *rsa.PrivateKey, jwtConfig config.JWTConfig) TokenServiceInterface {
	issuer := jwtConfig.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	validity := jwtConfig.ValidityPeriod
	if validity <= 0 {
		validity = defaultTokenValidity
	}
	return &tokenService{
		privateKey:     privateKey,
		keyID:          jwtConfig.KeyID,
		issuer:         issuer,
		validityPeriod: time.Duration(validity) * time.Second,
		now:            time.Now,
	}
}

// LoadPrivateKey reads a PKCS1 or PKCS8 PEM encoded RSA private key.
// A relative path is resolved against the server home.
func LoadPrivateKey(serverHome, keyFile string) (*rsa.PrivateKey, error) {
	keyFilePath := keyFile
	if !filepath.IsAbs(keyFilePath) {
		keyFilePath = filepath.Join(serverHome, keyFile)
	}
	keyData, err := os.ReadFile(filepath.Clean(keyFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, errors.New("failed to decode PEM block containing private key")
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("not an RSA private key")
		}
		return rsaKey, nil
	default:
		return nil, errors.New("unsupported private key type: " + block.Type)
	}
}

// GenerateEphemeralKey creates an in-memory signing key for deployments without a configured key file.
func GenerateEphemeralKey() (*rsa.PrivateKey, error) {
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenService")).
		Warn("No signing key configured, generating an ephemeral key")
	return rsa.GenerateKey(rand.Reader, 2048)
}

// IssueToken mints an RS256 access token for the subject of a completed authentication.
func (s *tokenService) IssueToken(req IssueRequest) (*TokenResponse, error) {
	if req.Subject.UserID == "" {
		return nil, errors.New("token subject is required")
	}

	now := s.now()
	scope := req.ClientNotes[ClientNoteScope]
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   req.Subject.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validityPeriod)),
			ID:        sysutils.GenerateUUID(),
		},
		Realm:             req.Realm,
		PreferredUsername: req.Subject.Username,
		Email:             req.Subject.Email,
		SessionState:      req.SessionID,
		Scope:             scope,
		RequiredActions:   req.RequiredActions,
	}
	if clientID := req.ClientNotes[ClientNoteClientID]; clientID != "" {
		claims.Audience = jwt.ClaimStrings{clientID}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if s.keyID != "" {
		token.Header["kid"] = s.keyID
	}
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   constants.TokenTypeBearer,
		ExpiresIn:   int64(s.validityPeriod / time.Second),
		Scope:       scope,
	}, nil
}

// VerifyToken parses and validates a token minted by this service.
func (s *tokenService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return &s.privateKey.PublicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// GetPublicKey returns the public key matching the signing key.
func (s *tokenService) GetPublicKey() *rsa.PublicKey {
	return &s.privateKey.PublicKey
}
