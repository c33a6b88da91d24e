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

// Package bruteforce temporarily disables users after repeated credential failures.
package bruteforce

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/realm"
	"github.com/asgardeo/authflow/internal/system/log"
)

// ErrorCodeInvalidCredentials is the audit error code counted as a credential failure.
const ErrorCodeInvalidCredentials = "invalid_user_credentials"

// DetectorInterface reports whether a user is temporarily locked out.
type DetectorInterface interface {
	IsTemporarilyDisabled(realmName, userID string) bool
}

type userState struct {
	limiter     *rate.Limiter
	lockouts    int
	lockedUntil time.Time
}

// Detector tracks credential failures per realm user. It consumes audit events and is safe for concurrent use.
type Detector struct {
	realms realm.RealmProviderInterface
	mu     sync.Mutex
	states map[string]*userState
	now    func() time.Time
	logger *log.Logger
}

// NewDetector creates a detector applying the brute-force policy of each realm.
func NewDetector(realms realm.RealmProviderInterface) *Detector {
	return &Detector{
		realms: realms,
		states: make(map[string]*userState),
		now:    time.Now,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "BruteForceDetector")),
	}
}

// Emit implements audit.SinkInterface.
func (d *Detector) Emit(_ context.Context, event audit.Event) {
	if event.UserID == "" {
		return
	}
	switch {
	case event.Type == audit.EventStepFailure && event.Error == ErrorCodeInvalidCredentials:
		d.RecordFailure(event.Realm, event.UserID)
	case event.Type == audit.EventLogin:
		d.RecordSuccess(event.Realm, event.UserID)
	}
}

// RecordFailure counts a credential failure. Once the failures exceed the realm's rate the user is
// locked for a wait that doubles with every lockout up to the realm maximum.
func (d *Detector) RecordFailure(realmName, userID string) {
	policy, ok := d.policy(realmName)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	key := realmName + ":" + userID
	state, exists := d.states[key]
	if !exists {
		every := policy.FailureWindow / time.Duration(policy.MaxFailures)
		state = &userState{limiter: rate.NewLimiter(rate.Every(every), policy.MaxFailures)}
		d.states[key] = state
	}

	if state.limiter.AllowN(now, 1) {
		return
	}

	state.lockouts++
	wait := policy.WaitIncrement << (state.lockouts - 1)
	if wait > policy.MaxWait || wait <= 0 {
		wait = policy.MaxWait
	}
	state.lockedUntil = now.Add(wait)
	d.logger.Info("User temporarily disabled", log.String(log.LoggerKeyRealm, realmName),
		log.String("userId", userID), log.Duration("wait", wait))
}

// RecordSuccess clears the failure history of the user.
func (d *Detector) RecordSuccess(realmName, userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.states, realmName+":"+userID)
}

// IsTemporarilyDisabled reports whether the user is currently locked out.
func (d *Detector) IsTemporarilyDisabled(realmName, userID string) bool {
	if _, ok := d.policy(realmName); !ok {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	state, ok := d.states[realmName+":"+userID]
	if !ok {
		return false
	}
	return d.now().Before(state.lockedUntil)
}

func (d *Detector) policy(realmName string) (realm.BruteForcePolicy, bool) {
	r, svcErr := d.realms.GetRealm(realmName)
	if svcErr != nil || !r.BruteForce.Enabled || r.BruteForce.MaxFailures <= 0 {
		return realm.BruteForcePolicy{}, false
	}
	return r.BruteForce, true
}
