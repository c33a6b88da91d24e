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

// Package account provides the account credential API through which authenticated users manage their own
// credentials.
package account

import (
	"context"
	"time"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
)

// EnabledTypesProviderInterface reports which credential types the flows of a realm validate.
type EnabledTypesProviderInterface interface {
	EnabledCredentialTypes(ctx context.Context, realm string) (map[string]bool, error)
}

// AccountCredentialServiceInterface defines the credential operations available to a signed in user.
type AccountCredentialServiceInterface interface {
	ListCredentialTypes(ctx context.Context, realm, userID string,
		filter CredentialFilter) ([]CredentialContainer, *serviceerror.ServiceError)
	RemoveCredential(ctx context.Context, realm, userID, credentialID string) *serviceerror.ServiceError
	SetCredentialLabel(ctx context.Context, realm, userID, credentialID, label string) *serviceerror.ServiceError
	GetPasswordDetails(ctx context.Context, realm, userID string) (*PasswordDetails, *serviceerror.ServiceError)
	UpdatePassword(ctx context.Context, realm, userID string, req PasswordUpdateRequest) *serviceerror.ServiceError
}

type accountCredentialService struct {
	credentials  credential.CredentialServiceInterface
	enabledTypes EnabledTypesProviderInterface
	sink         audit.SinkInterface
	logger       *log.Logger
}

// NewAccountCredentialService creates the service. The sink may be nil.
func NewAccountCredentialService(credentials credential.CredentialServiceInterface,
	enabledTypes EnabledTypesProviderInterface, sink audit.SinkInterface) AccountCredentialServiceInterface {
	if sink == nil {
		sink = audit.NoOpSink{}
	}
	return &accountCredentialService{
		credentials:  credentials,
		enabledTypes: enabledTypes,
		sink:         sink,
		logger:       log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AccountCredentialService")),
	}
}

// ListCredentialTypes lists the supported credential types. A type is enabled when some flow of the realm
// validates it.
func (s *accountCredentialService) ListCredentialTypes(ctx context.Context, realm, userID string,
	filter CredentialFilter) ([]CredentialContainer, *serviceerror.ServiceError) {
	enabled, err := s.enabledTypes.EnabledCredentialTypes(ctx, realm)
	if err != nil {
		s.logger.Error("Failed to resolve enabled credential types", log.String(log.LoggerKeyRealm, realm),
			log.Error(err))
		return nil, &serviceerror.InternalServerError
	}

	var stored []credential.Credential
	if !filter.OmitUserCredentials {
		stored, err = s.credentials.GetStoredCredentials(ctx, realm, userID)
		if err != nil {
			s.logger.Error("Failed to load user credentials", log.String(log.LoggerKeyRealm, realm),
				log.Error(err))
			return nil, &serviceerror.InternalServerError
		}
	}

	containers := []CredentialContainer{}
	for _, md := range s.credentials.GetSupportedTypes() {
		if filter.Type != "" && filter.Type != md.Type {
			continue
		}
		if filter.EnabledOnly && !enabled[md.Type] {
			continue
		}
		c := CredentialContainer{
			Type:         md.Type,
			Category:     md.Category,
			DisplayName:  md.DisplayName,
			HelpText:     md.HelpText,
			IconCSSClass: md.IconCSSClass,
			Enabled:      enabled[md.Type],
			CreateAction: md.CreateAction,
			UpdateAction: md.UpdateAction,
			RemoveAble:   md.RemoveAble,
		}
		if !filter.OmitUserCredentials {
			c.UserCredentials = []credential.Credential{}
			for _, cred := range stored {
				if cred.Type == md.Type {
					c.UserCredentials = append(c.UserCredentials, cred)
				}
			}
		}
		containers = append(containers, c)
	}
	return containers, nil
}

func (s *accountCredentialService) RemoveCredential(ctx context.Context, realm, userID,
	credentialID string) *serviceerror.ServiceError {
	return s.credentials.RemoveStoredCredential(ctx, realm, userID, credentialID)
}

func (s *accountCredentialService) SetCredentialLabel(ctx context.Context, realm, userID, credentialID,
	label string) *serviceerror.ServiceError {
	return s.credentials.UpdateCredentialLabel(ctx, realm, userID, credentialID, label)
}

// GetPasswordDetails reports the password of the user.
func (s *accountCredentialService) GetPasswordDetails(ctx context.Context, realm,
	userID string) (*PasswordDetails, *serviceerror.ServiceError) {
	passwords, err := s.credentials.GetStoredCredentialsByType(ctx, realm, userID, credential.TypePassword)
	if err != nil {
		s.logger.Error("Failed to load password credential", log.String(log.LoggerKeyRealm, realm), log.Error(err))
		return nil, &serviceerror.InternalServerError
	}
	if len(passwords) == 0 {
		return &PasswordDetails{}, nil
	}
	return &PasswordDetails{Registered: true, LastUpdate: passwords[0].CreatedDate.UnixMilli()}, nil
}

// UpdatePassword replaces the password after the current password validates. The confirmation is only
// checked when it is provided.
func (s *accountCredentialService) UpdatePassword(ctx context.Context, realm, userID string,
	req PasswordUpdateRequest) *serviceerror.ServiceError {
	valid, err := s.credentials.IsValid(ctx, realm, userID, credential.CredentialInput{
		Type: credential.TypePassword, Value: req.CurrentPassword,
	})
	if err != nil {
		s.logger.Error("Failed to validate current password", log.String(log.LoggerKeyRealm, realm),
			log.Error(err))
		return &serviceerror.InternalServerError
	}
	if !valid {
		s.emit(ctx, realm, userID, audit.EventUpdatePasswordError, "invalid_user_credentials")
		return &credential.ErrorInvalidCurrentPassword
	}
	if req.NewPassword == "" {
		return &credential.ErrorInvalidCredentialValue
	}
	if req.Confirmation != "" && req.Confirmation != req.NewPassword {
		return &credential.ErrorPasswordConfirmationMismatch
	}

	if svcErr := s.credentials.UpdateCredential(ctx, realm, userID, credential.CredentialInput{
		Type: credential.TypePassword, Value: req.NewPassword,
	}); svcErr != nil {
		return svcErr
	}
	s.emit(ctx, realm, userID, audit.EventUpdatePassword, "")
	return nil
}

func (s *accountCredentialService) emit(ctx context.Context, realm, userID string, eventType audit.EventType,
	code string) {
	s.sink.Emit(ctx, audit.Event{Type: eventType, Time: time.Now(), Realm: realm, UserID: userID, Error: code})
}
