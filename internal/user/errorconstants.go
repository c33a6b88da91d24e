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

package user

import (
	"errors"

	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
)

// ErrUserNotFound is returned by stores when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrorUserNotFound is the error returned when a user does not exist.
var ErrorUserNotFound = serviceerror.ServiceError{
	Code:             "USR-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "User not found",
	ErrorDescription: "No user matches the provided identifier",
}

// ErrorInvalidRequest is the error returned when a user request is missing required values.
var ErrorInvalidRequest = serviceerror.ServiceError{
	Code:             "USR-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "The username and realm are required",
}

// ErrorUsernameConflict is the error returned when a username is already taken in the realm.
var ErrorUsernameConflict = serviceerror.ServiceError{
	Code:             "USR-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Username conflict",
	ErrorDescription: "A user with the same username already exists in the realm",
}
