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

// Package credential provides credential storage, validation and management for realm users.
package credential

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/asgardeo/authflow/internal/system/crypto/hash"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
)

// CredentialServiceInterface defines the credential operations used by authenticators and account management.
type CredentialServiceInterface interface {
	IsValid(ctx context.Context, realm, userID string, input CredentialInput) (bool, error)
	IsConfiguredFor(ctx context.Context, realm, userID, credentialType string) (bool, error)
	GetStoredCredentials(ctx context.Context, realm, userID string) ([]Credential, error)
	GetStoredCredentialsByType(ctx context.Context, realm, userID, credentialType string) ([]Credential, error)
	UpdateCredential(ctx context.Context, realm, userID string, input CredentialInput) *serviceerror.ServiceError
	CreateOTPCredential(ctx context.Context, realm, userID, secret, code,
		label string) (*Credential, *serviceerror.ServiceError)
	RemoveStoredCredential(ctx context.Context, realm, userID, credentialID string) *serviceerror.ServiceError
	UpdateCredentialLabel(ctx context.Context, realm, userID, credentialID,
		label string) *serviceerror.ServiceError
	GetSupportedTypes() []CredentialTypeMetadata
}

type credentialService struct {
	store      CredentialStoreInterface
	hashParams hash.PasswordHashParams
	now        func() time.Time
}

// NewCredentialService creates a credential service over the given store.
func NewCredentialService(store CredentialStoreInterface) CredentialServiceInterface {
	return &credentialService{
		store:      store,
		hashParams: hash.DefaultPasswordHashParams,
		now:        time.Now,
	}
}

// IsValid reports whether the presented credential matches a stored credential of the user.
func (s *credentialService) IsValid(ctx context.Context, realm, userID string, input CredentialInput) (bool, error) {
	if input.Value == "" {
		return false, nil
	}
	stored, err := s.store.GetCredentialsByType(ctx, realm, userID, input.Type)
	if err != nil {
		return false, err
	}

	switch input.Type {
	case TypePassword:
		for _, c := range stored {
			ok, err := hash.VerifyPassword(input.Value, c.SecretData)
			if err != nil {
				s.logger().Warn("Stored password could not be verified",
					log.String("credentialID", c.ID), log.Error(err))
				continue
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case TypeOTP:
		for _, c := range stored {
			if input.CredentialID != "" && input.CredentialID != c.ID {
				continue
			}
			ok, err := s.validateOTP(input.Value, c.SecretData, parseOTPData(c.CredentialData))
			if err != nil {
				s.logger().Debug("OTP validation error", log.String("credentialID", c.ID), log.Error(err))
				continue
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, errors.New("unsupported credential type: " + input.Type)
	}
}

// IsConfiguredFor reports whether the user has at least one credential of the type.
func (s *credentialService) IsConfiguredFor(ctx context.Context, realm, userID, credentialType string) (bool, error) {
	stored, err := s.store.GetCredentialsByType(ctx, realm, userID, credentialType)
	if err != nil {
		return false, err
	}
	return len(stored) > 0, nil
}

// GetStoredCredentials returns all credentials of the user.
func (s *credentialService) GetStoredCredentials(ctx context.Context, realm, userID string) ([]Credential, error) {
	return s.store.GetCredentials(ctx, realm, userID)
}

// GetStoredCredentialsByType returns the credentials of the user of the given type.
func (s *credentialService) GetStoredCredentialsByType(ctx context.Context, realm, userID,
	credentialType string) ([]Credential, error) {
	return s.store.GetCredentialsByType(ctx, realm, userID, credentialType)
}

// UpdateCredential sets the password of the user, replacing any existing password.
// OTP credentials are registered through CreateOTPCredential.
func (s *credentialService) UpdateCredential(ctx context.Context, realm, userID string,
	input CredentialInput) *serviceerror.ServiceError {
	if input.Type != TypePassword {
		return &ErrorUnsupportedCredentialType
	}
	if input.Value == "" {
		return &ErrorInvalidCredentialValue
	}

	encoded, err := hash.HashPassword(input.Value, s.hashParams)
	if err != nil {
		s.logger().Error("Failed to hash password", log.Error(err))
		return &serviceerror.InternalServerError
	}
	data, _ := json.Marshal(PasswordCredentialData{Algorithm: "argon2id"})

	existing, err := s.store.GetCredentialsByType(ctx, realm, userID, TypePassword)
	if err != nil {
		s.logger().Error("Failed to load password credentials", log.Error(err))
		return &serviceerror.InternalServerError
	}

	if len(existing) > 0 {
		c := existing[0]
		c.SecretData = encoded
		c.CredentialData = string(data)
		c.CreatedDate = s.now().UTC()
		if err := s.store.UpdateCredential(ctx, c); err != nil {
			s.logger().Error("Failed to update password credential", log.Error(err))
			return &serviceerror.InternalServerError
		}
		return nil
	}

	c := Credential{
		ID:             sysutils.GenerateUUID(),
		Realm:          realm,
		UserID:         userID,
		Type:           TypePassword,
		SecretData:     encoded,
		CredentialData: string(data),
		CreatedDate:    s.now().UTC(),
		Priority:       10,
	}
	if err := s.store.AddCredential(ctx, c); err != nil {
		s.logger().Error("Failed to create password credential", log.Error(err))
		return &serviceerror.InternalServerError
	}
	return nil
}

// CreateOTPCredential registers a TOTP device once the presented code validates against the secret.
func (s *credentialService) CreateOTPCredential(ctx context.Context, realm, userID, secret, code,
	label string) (*Credential, *serviceerror.ServiceError) {
	secret = strings.ToUpper(strings.TrimSpace(secret))
	if secret == "" || code == "" {
		return nil, &ErrorInvalidCredentialValue
	}
	data := OTPCredentialData{Digits: defaultOTPDigits, Period: defaultOTPPeriod, Algorithm: defaultOTPAlgorithm}
	ok, err := s.validateOTP(code, secret, data)
	if err != nil || !ok {
		return nil, &ErrorInvalidOTPCode
	}

	encodedData, _ := json.Marshal(data)
	c := Credential{
		ID:             sysutils.GenerateUUID(),
		Realm:          realm,
		UserID:         userID,
		Type:           TypeOTP,
		UserLabel:      label,
		SecretData:     secret,
		CredentialData: string(encodedData),
		CreatedDate:    s.now().UTC(),
		Priority:       20,
	}
	if err := s.store.AddCredential(ctx, c); err != nil {
		s.logger().Error("Failed to create OTP credential", log.Error(err))
		return nil, &serviceerror.InternalServerError
	}
	return &c, nil
}

// RemoveStoredCredential removes a credential of the user.
func (s *credentialService) RemoveStoredCredential(ctx context.Context, realm, userID,
	credentialID string) *serviceerror.ServiceError {
	return s.mapStoreError(s.store.RemoveCredential(ctx, realm, userID, credentialID), "remove credential")
}

// UpdateCredentialLabel sets the user facing label of a credential.
func (s *credentialService) UpdateCredentialLabel(ctx context.Context, realm, userID, credentialID,
	label string) *serviceerror.ServiceError {
	label = strings.TrimSpace(label)
	if label == "" {
		return &ErrorInvalidCredentialValue
	}
	return s.mapStoreError(s.store.UpdateCredentialLabel(ctx, realm, userID, credentialID, label),
		"update credential label")
}

// GetSupportedTypes returns the metadata of all supported credential types.
func (s *credentialService) GetSupportedTypes() []CredentialTypeMetadata {
	types := make([]CredentialTypeMetadata, len(supportedTypes))
	copy(types, supportedTypes)
	return types
}

func (s *credentialService) validateOTP(code, secret string, data OTPCredentialData) (bool, error) {
	return totp.ValidateCustom(code, secret, s.now().UTC(), totp.ValidateOpts{
		Period:    data.Period,
		Skew:      otpSkew,
		Digits:    otp.Digits(data.Digits),
		Algorithm: otpAlgorithm(data.Algorithm),
	})
}

func (s *credentialService) mapStoreError(err error, operation string) *serviceerror.ServiceError {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCredentialNotFound) {
		return &ErrorCredentialNotFound
	}
	s.logger().Error("Failed to "+operation, log.Error(err))
	return &serviceerror.InternalServerError
}

func (s *credentialService) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CredentialService"))
}

func parseOTPData(raw string) OTPCredentialData {
	data := OTPCredentialData{Digits: defaultOTPDigits, Period: defaultOTPPeriod, Algorithm: defaultOTPAlgorithm}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &data)
	}
	if data.Digits <= 0 {
		data.Digits = defaultOTPDigits
	}
	if data.Period == 0 {
		data.Period = defaultOTPPeriod
	}
	return data
}

func otpAlgorithm(name string) otp.Algorithm {
	switch strings.ToUpper(name) {
	case "SHA256", "HMACSHA256":
		return otp.AlgorithmSHA256
	case "SHA512", "HMACSHA512":
		return otp.AlgorithmSHA512
	default:
		return otp.AlgorithmSHA1
	}
}
