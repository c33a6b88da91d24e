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

package audit

import (
	"context"

	"github.com/asgardeo/authflow/internal/system/log"
)

// LogSink writes audit events to the structured logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink logging through the application logger.
func NewLogSink() *LogSink {
	return &LogSink{
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuditLog")),
	}
}

// Emit logs the event. Failures are logged at warn level and everything else at info level.
func (s *LogSink) Emit(_ context.Context, event Event) {
	fields := []log.Field{
		log.String("type", string(event.Type)),
		log.String(log.LoggerKeyRealm, event.Realm),
		log.String(log.LoggerKeySessionID, event.SessionID),
	}
	if event.UserID != "" {
		fields = append(fields, log.String("userId", event.UserID))
	}
	if event.ExecutionID != "" {
		fields = append(fields, log.String(log.LoggerKeyExecutionID, event.ExecutionID),
			log.String(log.LoggerKeyAuthenticatorID, event.AuthenticatorID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, log.Any("details", event.Details))
	}

	switch event.Type {
	case EventStepFailure, EventLoginError:
		s.logger.Warn("Audit event", append(fields, log.String("error", event.Error))...)
	default:
		s.logger.Info("Audit event", fields...)
	}
}
