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

package realm

import (
	"time"

	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
)

const (
	// DefaultRealmName is the realm used when no realms are configured.
	DefaultRealmName = "master"
	// DefaultBrowserFlow is the alias of the default browser login flow.
	DefaultBrowserFlow = "browser"
	// DefaultFirstBrokerLoginFlow is the alias of the default first broker login flow.
	DefaultFirstBrokerLoginFlow = "first broker login"

	defaultSessionTTL    = 30 * time.Minute
	defaultMaxFailures   = 30
	defaultFailureWindow = 12 * time.Hour
	defaultWaitIncrement = time.Minute
	defaultMaxWait       = 15 * time.Minute
)

// ErrorRealmNotFound is the error returned when a realm is not configured.
var ErrorRealmNotFound = serviceerror.ServiceError{
	Code:             "RLM-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Realm not found",
	ErrorDescription: "The requested realm is not configured",
}

// ErrorInvalidRealmName is the error returned when an empty realm name is provided.
var ErrorInvalidRealmName = serviceerror.ServiceError{
	Code:             "RLM-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid realm",
	ErrorDescription: "The realm name must not be empty",
}
