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

import "time"

// BruteForcePolicy defines the brute-force protection policy of a realm.
type BruteForcePolicy struct {
	Enabled       bool
	MaxFailures   int
	FailureWindow time.Duration
	WaitIncrement time.Duration
	MaxWait       time.Duration
}

// Realm holds the realm level policy consumed by the authentication flows.
type Realm struct {
	Name                 string
	BrowserFlow          string
	FirstBrokerLoginFlow string
	SessionTTL           time.Duration
	MaxLoginAttempts     int
	BruteForce           BruteForcePolicy
}
