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

// Package realm provides read only access to the realm level configuration used by authentication flows.
package realm

import (
	"sort"
	"strings"
	"time"

	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/error/serviceerror"
	"github.com/asgardeo/authflow/internal/system/log"
)

// RealmProviderInterface defines the read operations on realm configuration.
type RealmProviderInterface interface {
	GetRealm(name string) (*Realm, *serviceerror.ServiceError)
	GetRealmNames() []string
}

// realmProvider is the configuration backed implementation of RealmProviderInterface.
type realmProvider struct {
	realms map[string]Realm
}

// NewRealmProvider creates a realm provider from the realm configurations.
// A default realm is created when no realms are configured.
func NewRealmProvider(realmConfigs []config.RealmConfig, defaultSessionTTLSeconds int) RealmProviderInterface {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RealmProvider"))

	if len(realmConfigs) == 0 {
		realmConfigs = []config.RealmConfig{{Name: DefaultRealmName}}
	}

	realms := make(map[string]Realm, len(realmConfigs))
	for _, rc := range realmConfigs {
		name := strings.TrimSpace(rc.Name)
		if name == "" {
			logger.Warn("Skipping realm configuration without a name")
			continue
		}
		realms[name] = buildRealm(name, rc, defaultSessionTTLSeconds)
		logger.Debug("Realm loaded", log.String(log.LoggerKeyRealm, name))
	}

	return &realmProvider{realms: realms}
}

// GetRealm returns a copy of the named realm.
func (p *realmProvider) GetRealm(name string) (*Realm, *serviceerror.ServiceError) {
	if strings.TrimSpace(name) == "" {
		return nil, &ErrorInvalidRealmName
	}
	r, ok := p.realms[name]
	if !ok {
		return nil, &ErrorRealmNotFound
	}
	return &r, nil
}

// GetRealmNames returns the names of all configured realms in sorted order.
func (p *realmProvider) GetRealmNames() []string {
	names := make([]string, 0, len(p.realms))
	for name := range p.realms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func buildRealm(name string, rc config.RealmConfig, defaultSessionTTLSeconds int) Realm {
	r := Realm{
		Name:                 name,
		BrowserFlow:          valueOrDefault(rc.BrowserFlow, DefaultBrowserFlow),
		FirstBrokerLoginFlow: valueOrDefault(rc.FirstBrokerLoginFlow, DefaultFirstBrokerLoginFlow),
		SessionTTL:           seconds(rc.SessionTTL, seconds(defaultSessionTTLSeconds, defaultSessionTTL)),
		MaxLoginAttempts:     rc.MaxLoginAttempts,
		BruteForce: BruteForcePolicy{
			Enabled:       rc.BruteForce.Enabled,
			MaxFailures:   rc.BruteForce.MaxFailures,
			FailureWindow: seconds(rc.BruteForce.FailureWindow, defaultFailureWindow),
			WaitIncrement: seconds(rc.BruteForce.WaitIncrement, defaultWaitIncrement),
			MaxWait:       seconds(rc.BruteForce.MaxWait, defaultMaxWait),
		},
	}
	if r.BruteForce.MaxFailures <= 0 {
		r.BruteForce.MaxFailures = defaultMaxFailures
	}
	if r.BruteForce.MaxWait < r.BruteForce.WaitIncrement {
		r.BruteForce.MaxWait = r.BruteForce.WaitIncrement
	}
	return r
}

func valueOrDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func seconds(value int, def time.Duration) time.Duration {
	if value <= 0 {
		return def
	}
	return time.Duration(value) * time.Second
}
