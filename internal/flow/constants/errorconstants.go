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

package constants

import "github.com/asgardeo/authflow/internal/system/error/serviceerror"

// Client errors for flow execution.
var (
	// ErrorInvalidRequestFormat is returned when the request body cannot be decoded.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Code:             "AFE-60001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorInvalidRealm is returned when the realm of the request is unknown.
	ErrorInvalidRealm = serviceerror.ServiceError{
		Code:             "AFE-60002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid realm",
		ErrorDescription: "The requested realm is not configured",
	}
	// ErrorFlowNotFound is returned when the requested flow does not exist.
	ErrorFlowNotFound = serviceerror.ServiceError{
		Code:             "AFE-60003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Flow not found",
		ErrorDescription: "The requested authentication flow does not exist",
	}
	// ErrorInvalidAction is returned when the action type is not supported.
	ErrorInvalidAction = serviceerror.ServiceError{
		Code:             "AFE-60004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid action",
		ErrorDescription: "The action must be one of submit, select or back",
	}
	// ErrorBackNavigationUnavailable is returned when there is no previous step to return to.
	ErrorBackNavigationUnavailable = serviceerror.ServiceError{
		Code:             "AFE-60005",
		Type:             serviceerror.ClientErrorType,
		Error:            "Back navigation unavailable",
		ErrorDescription: "There is no previous step to return to",
	}
	// ErrorInvalidSelection is returned when the selected alternative is not offered.
	ErrorInvalidSelection = serviceerror.ServiceError{
		Code:             "AFE-60006",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid selection",
		ErrorDescription: "The selected alternative is not available for this step",
	}
	// ErrorAuthenticationFailed is the generic error returned when an authentication attempt fails.
	ErrorAuthenticationFailed = serviceerror.ServiceError{
		Code:             "AFE-60010",
		Type:             serviceerror.ClientErrorType,
		Error:            "Authentication failed",
		ErrorDescription: "The authentication attempt failed",
	}
)

// Server errors for flow execution.
var (
	// ErrorFlowConfiguration is returned when the flow definition is invalid.
	ErrorFlowConfiguration = serviceerror.ServiceError{
		Code:             "AFE-65001",
		Type:             serviceerror.ServerErrorType,
		Error:            "Flow configuration error",
		ErrorDescription: "The authentication flow is misconfigured",
	}
	// ErrorSessionPersistence is returned when the authentication session cannot be stored.
	ErrorSessionPersistence = serviceerror.ServiceError{
		Code:             "AFE-65002",
		Type:             serviceerror.ServerErrorType,
		Error:            "Session persistence error",
		ErrorDescription: "The authentication session could not be stored",
	}
	// ErrorTokenIssuance is returned when the token for a completed flow cannot be issued.
	ErrorTokenIssuance = serviceerror.ServiceError{
		Code:             "AFE-65003",
		Type:             serviceerror.ServerErrorType,
		Error:            "Token issuance error",
		ErrorDescription: "The token for the completed authentication could not be issued",
	}
)

// Flow management errors.
var (
	// ErrorInvalidFlowRequest is returned when a flow management request is missing required values.
	ErrorInvalidFlowRequest = serviceerror.ServiceError{
		Code:             "FMG-60001",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid request",
		ErrorDescription: "The flow management request is missing required values",
	}
	// ErrorFlowAliasConflict is returned when a flow alias already exists in the realm.
	ErrorFlowAliasConflict = serviceerror.ServiceError{
		Code:             "FMG-60002",
		Type:             serviceerror.ClientErrorType,
		Error:            "Flow alias conflict",
		ErrorDescription: "A flow with the same alias already exists in the realm",
	}
	// ErrorManagedFlowNotFound is returned when a flow referenced by a management request does not exist.
	ErrorManagedFlowNotFound = serviceerror.ServiceError{
		Code:             "FMG-60003",
		Type:             serviceerror.ClientErrorType,
		Error:            "Flow not found",
		ErrorDescription: "The referenced flow does not exist",
	}
	// ErrorExecutionNotFound is returned when an execution does not exist.
	ErrorExecutionNotFound = serviceerror.ServiceError{
		Code:             "FMG-60004",
		Type:             serviceerror.ClientErrorType,
		Error:            "Execution not found",
		ErrorDescription: "The referenced execution does not exist",
	}
	// ErrorBuiltInFlowImmutable is returned when an edit targets a built-in flow.
	ErrorBuiltInFlowImmutable = serviceerror.ServiceError{
		Code:             "FMG-60005",
		Type:             serviceerror.ClientErrorType,
		Error:            "Built-in flow is immutable",
		ErrorDescription: "Built-in flows cannot be modified; copy the flow and edit the copy",
	}
	// ErrorUnknownAuthenticator is returned when an authenticator id is not registered.
	ErrorUnknownAuthenticator = serviceerror.ServiceError{
		Code:             "FMG-60006",
		Type:             serviceerror.ClientErrorType,
		Error:            "Unknown authenticator",
		ErrorDescription: "The authenticator is not registered",
	}
	// ErrorInvalidRequirement is returned when a requirement value is not recognised.
	ErrorInvalidRequirement = serviceerror.ServiceError{
		Code:             "FMG-60007",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid requirement",
		ErrorDescription: "The requirement must be one of REQUIRED, ALTERNATIVE, CONDITIONAL or DISABLED",
	}
	// ErrorInvalidExecutionIndex is returned when an execution index is out of range.
	ErrorInvalidExecutionIndex = serviceerror.ServiceError{
		Code:             "FMG-60008",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid execution index",
		ErrorDescription: "The execution index is out of range",
	}
	// ErrorInvalidFlowDefinition is returned when a flow definition cannot be materialised.
	ErrorInvalidFlowDefinition = serviceerror.ServiceError{
		Code:             "FMG-60009",
		Type:             serviceerror.ClientErrorType,
		Error:            "Invalid flow definition",
		ErrorDescription: "The flow definition is invalid",
	}
)
