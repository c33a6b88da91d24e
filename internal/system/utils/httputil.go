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

// Package utils provides common helpers for HTTP handling, string sanitization and identifiers.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/error/apierror"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
)

const maxRequestBodySize = 1 << 20

// DecodeJSONBody decodes the JSON request body into a value of type T.
func DecodeJSONBody[T any](r *http.Request) (*T, error) {
	if r.Body == nil {
		return nil, errors.New("request body is empty")
	}

	var data T
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize))
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode JSON body: %w", err)
	}
	return &data, nil
}

// ExtractBearerToken extracts the bearer token from the Authorization header.
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get(constants.AuthorizationHeaderName)
	prefix := constants.TokenTypeBearer + " "
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return "", errors.New("missing or invalid bearer token")
	}
	return strings.TrimSpace(authHeader[len(prefix):]), nil
}

// WriteJSON writes the given value as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, value any) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if value == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.GetLogger().Error("Error encoding response", log.Error(err))
	}
}

// WriteServiceError writes a service error as an API error response.
// Client errors map to the given client status code and server errors to 500.
func WriteServiceError(w http.ResponseWriter, svcErr *serviceerror.ServiceError, clientStatus int) {
	status := clientStatus
	if svcErr.Type == serviceerror.ServerErrorType {
		status = http.StatusInternalServerError
	}
	WriteJSON(w, status, apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	})
}

// GetAllowedOrigin returns the allowed origin that exactly matches the request origin, or an empty string.
func GetAllowedOrigin(allowedOrigins []string, requestOrigin string) string {
	for _, allowedOrigin := range allowedOrigins {
		if strings.EqualFold(strings.TrimSuffix(allowedOrigin, "/"), requestOrigin) {
			return allowedOrigin
		}
	}
	return ""
}
