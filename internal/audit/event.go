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

// Package audit provides fire-and-forget delivery of authentication events to observability sinks.
package audit

import (
	"context"
	"time"
)

// EventType identifies the kind of an audit event.
type EventType string

const (
	// EventStepSuccess is emitted when an execution resolves successfully.
	EventStepSuccess EventType = "STEP_SUCCESS"
	// EventStepFailure is emitted when an execution resolves with a failure.
	EventStepFailure EventType = "STEP_FAILURE"
	// EventConditionSkipped is emitted when a conditional sub-flow does not apply.
	EventConditionSkipped EventType = "CONDITION_SKIPPED"
	// EventLogin is emitted when a flow completes successfully.
	EventLogin EventType = "LOGIN"
	// EventLoginError is emitted when a flow fails.
	EventLoginError EventType = "LOGIN_ERROR"
	// EventFlowRestarted is emitted when an expired or unknown session is restarted.
	EventFlowRestarted EventType = "FLOW_RESTARTED"
	// EventUpdatePassword is emitted when a user changes the password through the account API.
	EventUpdatePassword EventType = "UPDATE_PASSWORD"
	// EventUpdatePasswordError is emitted when a password change is rejected.
	EventUpdatePasswordError EventType = "UPDATE_PASSWORD_ERROR"
)

// Event is an authentication event.
type Event struct {
	Type            EventType         `json:"type"`
	Time            time.Time         `json:"time"`
	Realm           string            `json:"realm"`
	SessionID       string            `json:"sessionId,omitempty"`
	UserID          string            `json:"userId,omitempty"`
	FlowID          string            `json:"flowId,omitempty"`
	ExecutionID     string            `json:"executionId,omitempty"`
	AuthenticatorID string            `json:"authenticatorId,omitempty"`
	Error           string            `json:"error,omitempty"`
	Details         map[string]string `json:"details,omitempty"`
}

// SinkInterface receives emitted audit events.
type SinkInterface interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink drops audit events.
type NoOpSink struct{}

// Emit discards the event.
func (NoOpSink) Emit(context.Context, Event) {}

// MultiSink fans an event out to several sinks in order.
type MultiSink []SinkInterface

// Emit forwards the event to every sink.
func (m MultiSink) Emit(ctx context.Context, event Event) {
	for _, sink := range m {
		if sink != nil {
			sink.Emit(ctx, event)
		}
	}
}
