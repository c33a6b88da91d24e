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
	"net/http"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/system/middleware"
	"github.com/asgardeo/authflow/internal/token"
)

const credentialsPath = "/realms/{realm}/account/credentials"

// Initialize creates the account credential service and registers its routes.
func Initialize(mux *http.ServeMux, credentials credential.CredentialServiceInterface,
	enabledTypes EnabledTypesProviderInterface, verifier token.VerifierInterface,
	sink audit.SinkInterface) AccountCredentialServiceInterface {
	service := NewAccountCredentialService(credentials, enabledTypes, sink)
	registerRoutes(mux, newAccountCredentialHandler(service, verifier))
	return service
}

func registerRoutes(mux *http.ServeMux, handler *accountCredentialHandler) {
	opts := middleware.CORSOptions{
		AllowedMethods:   "GET, POST, PUT, DELETE",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}
	mux.HandleFunc(middleware.WithCORS("GET "+credentialsPath, handler.HandleListCredentials, opts))
	mux.HandleFunc(middleware.WithCORS("GET "+credentialsPath+"/password", handler.HandleGetPasswordDetails, opts))
	mux.HandleFunc(middleware.WithCORS("POST "+credentialsPath+"/password", handler.HandleUpdatePassword, opts))
	mux.HandleFunc(middleware.WithCORS("DELETE "+credentialsPath+"/{id}", handler.HandleRemoveCredential, opts))
	mux.HandleFunc(middleware.WithCORS("PUT "+credentialsPath+"/{id}/label", handler.HandleSetLabel, opts))
}
