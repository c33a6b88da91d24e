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

import (
	"context"

	"github.com/asgardeo/authflow/internal/flow/model"
	"github.com/asgardeo/authflow/internal/realm"
)

// Context carries the state an authenticator works with during one invocation.
type Context struct {
	ctx       context.Context
	Realm     realm.Realm
	Flow      model.FlowModel
	Execution model.ExecutionModel
	// Siblings are the executions of the flow that contains Execution.
	Siblings []model.ExecutionModel
	Session  *model.AuthenticationSession
	Inputs   map[string]string
	Registry *Registry

	attemptedUserID string
}

// NewContext creates an authenticator context.
func NewContext(ctx context.Context, rlm realm.Realm, flow model.FlowModel, execution model.ExecutionModel,
	siblings []model.ExecutionModel, session *model.AuthenticationSession, inputs map[string]string,
	registry *Registry) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if inputs == nil {
		inputs = map[string]string{}
	}
	return &Context{
		ctx:       ctx,
		Realm:     rlm,
		Flow:      flow,
		Execution: execution,
		Siblings:  siblings,
		Session:   session,
		Inputs:    inputs,
		Registry:  registry,
	}
}

// Context returns the request context.
func (c *Context) Context() context.Context {
	return c.ctx
}

// GetInput returns a submitted input value.
func (c *Context) GetInput(name string) string {
	return c.Inputs[name]
}

// GetConfig returns a configuration value of the current execution.
func (c *Context) GetConfig(key string) string {
	return c.Execution.GetConfig(key)
}

// GetUserID returns the id of the bound user, or an empty string.
func (c *Context) GetUserID() string {
	return c.Session.AuthenticatedUserID
}

// SetUser binds the user to the session on behalf of the current execution.
func (c *Context) SetUser(userID string) {
	c.Session.BindUser(userID, c.Execution.ID)
}

// SetAttemptedUser records the user a failed attempt was made for, e.g. for brute-force tracking.
func (c *Context) SetAttemptedUser(userID string) {
	c.attemptedUserID = userID
}

// GetAttemptedUser returns the user recorded with SetAttemptedUser, falling back to the bound user.
func (c *Context) GetAttemptedUser() string {
	if c.attemptedUserID != "" {
		return c.attemptedUserID
	}
	return c.Session.AuthenticatedUserID
}

// GetAuthNote returns an auth note of the session.
func (c *Context) GetAuthNote(key string) string {
	return c.Session.GetAuthNote(key)
}

// SetAuthNote stores an auth note on the session.
func (c *Context) SetAuthNote(key, value string) {
	c.Session.SetAuthNote(key, value)
}

// RemoveAuthNote removes an auth note from the session.
func (c *Context) RemoveAuthNote(key string) {
	c.Session.RemoveAuthNote(key)
}

// GetClientNote returns a client note of the session.
func (c *Context) GetClientNote(key string) string {
	return c.Session.GetClientNote(key)
}

// AddRequiredAction records a required action to be completed after login.
func (c *Context) AddRequiredAction(action string) {
	c.Session.AddRequiredAction(action)
}

// Success reports that the step is satisfied.
func (c *Context) Success() *Response {
	return &Response{Status: StatusSuccess}
}

// Failure reports that the step failed with the given error code.
func (c *Context) Failure(code string) *Response {
	return &Response{Status: StatusFailure, ErrorCode: code}
}

// Attempted reports that the step did not apply.
func (c *Context) Attempted() *Response {
	return &Response{Status: StatusAttempted}
}

// Challenge suspends the flow with the given challenge.
func (c *Context) Challenge(challenge *model.Challenge) *Response {
	return &Response{Status: StatusChallenge, Challenge: challenge}
}

// FailureChallenge re-displays the challenge after a failed attempt. The code is reported as the step
// failure and is shown as the challenge message unless the challenge already carries one.
func (c *Context) FailureChallenge(code string, challenge *model.Challenge) *Response {
	if challenge.Error == "" {
		challenge.Error = code
	}
	return &Response{Status: StatusChallenge, Challenge: challenge, ErrorCode: code}
}

// ForceChallenge suspends the flow with the given challenge even inside an alternative set.
func (c *Context) ForceChallenge(challenge *model.Challenge) *Response {
	return &Response{Status: StatusForceChallenge, Challenge: challenge}
}

// WithExecution returns a context for another execution of the same session and request.
func (c *Context) WithExecution(execution model.ExecutionModel) *Context {
	return &Context{
		ctx:       c.ctx,
		Realm:     c.Realm,
		Flow:      c.Flow,
		Execution: execution,
		Siblings:  c.Siblings,
		Session:   c.Session,
		Inputs:    c.Inputs,
		Registry:  c.Registry,
	}
}
