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

// Package managers builds the server components from the deployment configuration and registers their routes.
package managers

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/asgardeo/authflow/internal/audit"
	"github.com/asgardeo/authflow/internal/authenticator"
	"github.com/asgardeo/authflow/internal/authenticator/autolink"
	"github.com/asgardeo/authflow/internal/authenticator/conditional"
	"github.com/asgardeo/authflow/internal/authenticator/confirmlink"
	"github.com/asgardeo/authflow/internal/authenticator/otpform"
	"github.com/asgardeo/authflow/internal/authenticator/passwordform"
	"github.com/asgardeo/authflow/internal/authenticator/usernamepassword"
	"github.com/asgardeo/authflow/internal/bruteforce"
	"github.com/asgardeo/authflow/internal/credential"
	"github.com/asgardeo/authflow/internal/credential/account"
	"github.com/asgardeo/authflow/internal/flow/condition"
	"github.com/asgardeo/authflow/internal/flow/engine"
	"github.com/asgardeo/authflow/internal/flow/flowexec"
	"github.com/asgardeo/authflow/internal/flow/flowmgt"
	"github.com/asgardeo/authflow/internal/flow/session"
	"github.com/asgardeo/authflow/internal/flow/store"
	"github.com/asgardeo/authflow/internal/realm"
	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/database/provider"
	"github.com/asgardeo/authflow/internal/system/healthcheck"
	"github.com/asgardeo/authflow/internal/system/log"
	"github.com/asgardeo/authflow/internal/token"
	"github.com/asgardeo/authflow/internal/user"
)

const sessionPurgeInterval = time.Minute

// ServiceManagerInterface defines the interface for managing services.
type ServiceManagerInterface interface {
	RegisterServices(ctx context.Context) error
	Close()
}

// ServiceManager wires the stores, authenticators and services together and registers their routes.
type ServiceManager struct {
	mux        *http.ServeMux
	cfg        *config.Config
	serverHome string
	dbProvider provider.DBProviderInterface
	dispatcher *audit.Dispatcher
	stopPurge  context.CancelFunc
	purgeWG    sync.WaitGroup
	closeOnce  sync.Once
	logger     *log.Logger
}

var _ ServiceManagerInterface = (*ServiceManager)(nil)

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, cfg *config.Config, serverHome string,
	dbProvider provider.DBProviderInterface) *ServiceManager {
	return &ServiceManager{
		mux:        mux,
		cfg:        cfg,
		serverHome: serverHome,
		dbProvider: dbProvider,
		logger:     log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ServiceManager")),
	}
}

// RegisterServices builds every component and registers the HTTP routes with the multiplexer.
func (sm *ServiceManager) RegisterServices(ctx context.Context) error {
	realms := realm.NewRealmProvider(sm.cfg.Realms, sm.cfg.Session.TTL)
	users := user.NewUserService(user.NewUserStore(sm.dbProvider))
	credentials := credential.NewCredentialService(credential.NewCredentialStore(sm.dbProvider))

	// The detector receives events synchronously so a lockout applies to the very next attempt.
	detector := bruteforce.NewDetector(realms)
	sink := audit.MultiSink{detector}
	sm.dispatcher = audit.NewDispatcher(sm.cfg.Audit, audit.NewLogSink())
	if sm.dispatcher != nil {
		sink = append(sink, sm.dispatcher)
	}

	flowStore, err := store.NewFlowStore(sm.cfg.Flow, sm.dbProvider)
	if err != nil {
		return err
	}
	sessions, err := session.NewSessionStore(*sm.cfg, sm.dbProvider)
	if err != nil {
		return err
	}

	registry := authenticator.NewRegistry()
	for _, a := range []authenticator.AuthenticatorInterface{
		usernamepassword.New(users, credentials, detector),
		passwordform.New(credentials, detector),
		otpform.New(credentials, detector),
		autolink.New(users),
		confirmlink.New(users),
		conditional.NewUserConfiguredCondition(),
		conditional.NewCredentialTypeCondition(credentials),
	} {
		if err := registry.Register(a); err != nil {
			return err
		}
	}

	flowMgtService, validator := flowmgt.Initialize(sm.mux, flowStore, registry, sm.cfg.Flow.StrictValidation)
	if err := flowmgt.SeedFlows(ctx, flowMgtService, realms.GetRealmNames(),
		sm.resolvePath(sm.cfg.Flow.DefinitionsDirectory)); err != nil {
		return fmt.Errorf("failed to seed flows: %w", err)
	}

	signingKey, err := sm.loadSigningKey()
	if err != nil {
		return err
	}
	tokens := token.NewTokenService(signingKey, sm.cfg.JWT)

	processor := engine.NewProcessor(flowStore, registry, condition.NewEvaluator(), sink, validator)
	flowexec.Initialize(sm.mux, realms, flowStore, sessions, processor, tokens, users, sink)
	account.Initialize(sm.mux, credentials, flowmgt.NewCredentialTypeUsage(flowStore, registry), tokens, sink)
	healthcheck.Initialize(sm.mux, sm.dbProvider, sm.checkedDatabases())

	if purger, ok := sessions.(session.ExpiredSessionPurgerInterface); ok {
		sm.startSessionPurger(purger)
	}

	sm.logger.Info("Services registered", log.Int("realms", len(realms.GetRealmNames())),
		log.String("flowStore", valueOrDefault(sm.cfg.Flow.Store, store.StoreTypeMemory)),
		log.String("sessionStore", valueOrDefault(sm.cfg.Session.Store, session.StoreTypeMemory)))
	return nil
}

// Close stops the background work and flushes the pending audit events.
func (sm *ServiceManager) Close() {
	sm.closeOnce.Do(func() {
		if sm.stopPurge != nil {
			sm.stopPurge()
			sm.purgeWG.Wait()
		}
		sm.dispatcher.Close()
		if dropped := sm.dispatcher.Dropped(); dropped > 0 {
			sm.logger.Warn("Audit events were dropped", log.Any("count", dropped))
		}
	})
}

func (sm *ServiceManager) loadSigningKey() (*rsa.PrivateKey, error) {
	if sm.cfg.JWT.KeyFile == "" {
		sm.logger.Warn("No token signing key configured, using an ephemeral key")
		return token.GenerateEphemeralKey()
	}
	key, err := token.LoadPrivateKey(sm.serverHome, sm.cfg.JWT.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load the token signing key: %w", err)
	}
	return key, nil
}

// checkedDatabases returns the databases the readiness check queries.
func (sm *ServiceManager) checkedDatabases() []string {
	databases := []string{constants.IdentityDBName}
	if sm.cfg.Session.Store == session.StoreTypeDatabase {
		databases = append(databases, constants.RuntimeDBName)
	}
	return databases
}

func (sm *ServiceManager) startSessionPurger(purger session.ExpiredSessionPurgerInterface) {
	ctx, cancel := context.WithCancel(context.Background())
	sm.stopPurge = cancel
	sm.purgeWG.Add(1)

	go func() {
		defer sm.purgeWG.Done()
		ticker := time.NewTicker(sessionPurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := purger.PurgeExpiredSessions(ctx)
				if err != nil {
					sm.logger.Error("Failed to purge expired sessions", log.Error(err))
					continue
				}
				if removed > 0 {
					sm.logger.Debug("Purged expired sessions", log.Int64("count", removed))
				}
			}
		}
	}()
}

func (sm *ServiceManager) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(sm.serverHome, p)
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
