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

import "github.com/asgardeo/authflow/internal/system/error/serviceerror"

var (
	// ErrorUnauthorized is returned when the request carries no valid bearer token for the realm.
	ErrorUnauthorized = serviceerror.ServiceError{
		Code:             "ACC-60001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Unauthorized",
		ErrorDescription: "A valid bearer token for the realm is required",
	}
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Code:             "ACC-60002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorInvalidQueryParameter is returned when a boolean filter cannot be parsed.
	ErrorInvalidQueryParameter = serviceerror.ServiceError{
		Code:             "ACC-60003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid query parameter",
		ErrorDescription: "A query parameter has an invalid value",
	}
)
