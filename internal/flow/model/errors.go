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

package model

import "fmt"

// ConfigurationError reports an invalid flow definition detected at validation or at run time.
type ConfigurationError struct {
	FlowID      string
	ExecutionID string
	Reason      string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.ExecutionID != "":
		return fmt.Sprintf("flow configuration error at execution %s: %s", e.ExecutionID, e.Reason)
	case e.FlowID != "":
		return fmt.Sprintf("flow configuration error in flow %s: %s", e.FlowID, e.Reason)
	}
	return "flow configuration error: " + e.Reason
}

// AuthenticationFailedError reports that the authentication attempt failed and the session is terminated.
type AuthenticationFailedError struct {
	ExecutionID     string
	AuthenticatorID string
	Code            string
}

func (e *AuthenticationFailedError) Error() string {
	if e.AuthenticatorID != "" {
		return fmt.Sprintf("authentication failed at %s: %s", e.AuthenticatorID, e.Code)
	}
	return "authentication failed: " + e.Code
}

// SessionExpiredError reports that the referenced authentication session is unknown or expired.
type SessionExpiredError struct {
	SessionID string
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("authentication session %s is expired or unknown", e.SessionID)
}

// StaleRequestError reports an action that targets an execution other than the current one.
// Challenge holds the current step so the caller can re-display it.
type StaleRequestError struct {
	ExpectedExecutionID string
	ReceivedExecutionID string
	Challenge           *Challenge
}

func (e *StaleRequestError) Error() string {
	return fmt.Sprintf("stale request for execution %s, current execution is %s",
		e.ReceivedExecutionID, e.ExpectedExecutionID)
}

// BackNavigationUnavailableError reports a back request when there is no earlier interactive step.
type BackNavigationUnavailableError struct {
	Challenge *Challenge
}

func (e *BackNavigationUnavailableError) Error() string {
	return "no previous step to navigate back to"
}
