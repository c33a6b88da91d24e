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
	"io"
	"net/http"
	"strconv"

	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
	sysutils "github.com/asgardeo/authflow/internal/system/utils"
	"github.com/asgardeo/authflow/internal/token"
)

const maxLabelSize = 1024

type accountCredentialHandler struct {
	service  AccountCredentialServiceInterface
	verifier token.VerifierInterface
	logger   *log.Logger
}

func newAccountCredentialHandler(service AccountCredentialServiceInterface,
	verifier token.VerifierInterface) *accountCredentialHandler {
	return &accountCredentialHandler{
		service:  service,
		verifier: verifier,
		logger:   log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AccountCredentialHandler")),
	}
}

// HandleListCredentials handles GET requests listing the credential types of the caller.
func (h *accountCredentialHandler) HandleListCredentials(w http.ResponseWriter, r *http.Request) {
	realm, userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	enabledOnly, err := parseBool(query.Get("enabled-only"), false)
	if err != nil {
		sysutils.WriteServiceError(w, &ErrorInvalidQueryParameter, http.StatusBadRequest)
		return
	}
	userCredentials, err := parseBool(query.Get("user-credentials"), true)
	if err != nil {
		sysutils.WriteServiceError(w, &ErrorInvalidQueryParameter, http.StatusBadRequest)
		return
	}

	containers, svcErr := h.service.ListCredentialTypes(r.Context(), realm, userID, CredentialFilter{
		Type:                sysutils.SanitizeString(query.Get("type")),
		EnabledOnly:         enabledOnly,
		OmitUserCredentials: !userCredentials,
	})
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusOK, containers)
}

// HandleRemoveCredential handles DELETE requests for one credential of the caller.
func (h *accountCredentialHandler) HandleRemoveCredential(w http.ResponseWriter, r *http.Request) {
	realm, userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	if svcErr := h.service.RemoveCredential(r.Context(), realm, userID, r.PathValue("id")); svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetLabel handles PUT requests whose plain text body is the new label of a credential.
func (h *accountCredentialHandler) HandleSetLabel(w http.ResponseWriter, r *http.Request) {
	realm, userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxLabelSize))
	if err != nil {
		sysutils.WriteServiceError(w, &ErrorInvalidRequestFormat, http.StatusBadRequest)
		return
	}
	label := sysutils.SanitizeString(string(body))
	if svcErr := h.service.SetCredentialLabel(r.Context(), realm, userID, r.PathValue("id"), label); svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetPasswordDetails handles GET requests for the password details of the caller.
func (h *accountCredentialHandler) HandleGetPasswordDetails(w http.ResponseWriter, r *http.Request) {
	realm, userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	details, svcErr := h.service.GetPasswordDetails(r.Context(), realm, userID)
	if svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusOK, details)
}

// HandleUpdatePassword handles POST requests changing the password of the caller.
func (h *accountCredentialHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	realm, userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, err := sysutils.DecodeJSONBody[PasswordUpdateRequest](r)
	if err != nil {
		sysutils.WriteServiceError(w, &ErrorInvalidRequestFormat, http.StatusBadRequest)
		return
	}
	if svcErr := h.service.UpdatePassword(r.Context(), realm, userID, *req); svcErr != nil {
		h.writeError(w, svcErr)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authenticate resolves the caller from the bearer token. The token must have been issued for the realm of
// the request path.
func (h *accountCredentialHandler) authenticate(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	realm := r.PathValue("realm")
	raw, err := sysutils.ExtractBearerToken(r)
	if err != nil {
		sysutils.WriteServiceError(w, &ErrorUnauthorized, http.StatusUnauthorized)
		return "", "", false
	}
	claims, err := h.verifier.VerifyToken(raw)
	if err != nil {
		h.logger.Debug("Rejected account request token", log.Error(err))
		sysutils.WriteServiceError(w, &ErrorUnauthorized, http.StatusUnauthorized)
		return "", "", false
	}
	if claims.Realm != realm || claims.Subject == "" {
		sysutils.WriteServiceError(w, &ErrorUnauthorized, http.StatusUnauthorized)
		return "", "", false
	}
	return realm, claims.Subject, true
}

func (h *accountCredentialHandler) writeError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	status := http.StatusBadRequest
	if svcErr.Code == credential.ErrorCredentialNotFound.Code {
		status = http.StatusNotFound
	}
	sysutils.WriteServiceError(w, svcErr, status)
}

func parseBool(value string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
