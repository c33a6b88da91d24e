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

package authenticator

import "github.com/asgardeo/authflow/internal/flow/model"

// Status is the outcome reported by an authenticator.
type Status string

const (
	// StatusSuccess means the step is satisfied.
	StatusSuccess Status = "SUCCESS"
	// StatusFailure means the step failed.
	StatusFailure Status = "FAILURE"
	// StatusChallenge means the flow suspends and waits for user input.
	StatusChallenge Status = "CHALLENGE"
	// StatusForceChallenge is a challenge that is issued even inside an alternative set.
	StatusForceChallenge Status = "FORCE_CHALLENGE"
	// StatusAttempted means the step did not apply; it fails a REQUIRED step and skips an alternative.
	StatusAttempted Status = "ATTEMPTED"
)

// Response is the result of an authenticator invocation.
type Response struct {
	Status    Status
	Challenge *model.Challenge
	// ErrorCode describes a failure, or the message shown with a failure challenge.
	ErrorCode string
}

// IsChallenge reports whether the response suspends the flow.
func (r *Response) IsChallenge() bool {
	return r.Status == StatusChallenge || r.Status == StatusForceChallenge
}
