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

// Package main is the entry point for starting the authentication flow server.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/asgardeo/authflow/internal/cert"
	"github.com/asgardeo/authflow/internal/managers"
	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/database/provider"
	"github.com/asgardeo/authflow/internal/system/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := log.GetLogger()
	defer logger.Sync()

	serverHome := getServerHome(logger)

	cfg := initConfigurations(logger, serverHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, cfg, serverHome, provider.GetDBProvider())
	if err := serviceManager.RegisterServices(context.Background()); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	server, serverAddr := createHTTPServer(logger, cfg, mux)
	listener := createListener(logger, cfg, serverAddr, serverHome)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serviceManager.Close()
			logger.Fatal("Failed to serve requests", log.Error(err))
		}
	case sig := <-stop:
		logger.Info("Shutting down the server", log.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Failed to shut down the server gracefully", log.Error(err))
		}
		cancel()
	}

	serviceManager.Close()
	logger.Info("Server stopped")
}

// getServerHome retrieves and returns the server home directory.
func getServerHome(logger *log.Logger) string {
	homeFlag := flag.String("authflowHome", "", "Path to the authentication flow server home directory")
	flag.Parse()

	if *homeFlag != "" {
		logger.Info("Using authflowHome from command line argument", log.String("authflowHome", *homeFlag))
		return *homeFlag
	}

	// Fall back to the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initConfigurations loads the deployment configuration and initializes the server runtime.
func initConfigurations(logger *log.Logger, serverHome string) *config.Config {
	configFilePath := path.Join(serverHome, constants.DeploymentConfigPath)
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeServerRuntime(serverHome, cfg); err != nil {
		logger.Fatal("Failed to initialize server runtime", log.Error(err))
	}
	return cfg
}

// createListener opens a plain TCP listener when TLS is disabled and a TLS listener otherwise.
func createListener(logger *log.Logger, cfg *config.Config, serverAddr, serverHome string) net.Listener {
	if cfg.Server.HTTPOnly {
		logger.Info("TLS is not enabled, starting server without TLS")
		ln, err := net.Listen("tcp", serverAddr)
		if err != nil {
			logger.Fatal("Failed to start listener", log.Error(err))
		}
		logger.Info("Authentication flow server started (HTTP)...", log.String("address", serverAddr))
		return ln
	}

	tlsConfig, err := cert.GetTLSConfig(cfg.Server, serverHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", log.Error(err))
	}
	ln, err := tls.Listen("tcp", serverAddr, tlsConfig)
	if err != nil {
		logger.Fatal("Failed to start TLS listener", log.Error(err))
	}
	logger.Info("Authentication flow server started (HTTPS)...", log.String("address", serverAddr))
	return ln
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           log.AccessLogHandler(logger, mux),
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return server, serverAddr
}
