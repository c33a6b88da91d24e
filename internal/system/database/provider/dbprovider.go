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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/asgardeo/authflow/internal/system/config"
	"github.com/asgardeo/authflow/internal/system/constants"
	"github.com/asgardeo/authflow/internal/system/database/client"
	"github.com/asgardeo/authflow/internal/system/log"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	identityClient client.DBClientInterface
	identityMutex  sync.RWMutex
	runtimeClient  client.DBClientInterface
	runtimeMutex   sync.RWMutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
		instance.closeOnInterrupt()
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
// Clients are created lazily and keep their own connection pool.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case constants.IdentityDBName:
		dataSource := config.GetServerRuntime().Config.Database.Identity
		return d.getOrInitClient(&d.identityClient, &d.identityMutex, dataSource)
	case constants.RuntimeDBName:
		dataSource := config.GetServerRuntime().Config.Database.Runtime
		return d.getOrInitClient(&d.runtimeClient, &d.runtimeMutex, dataSource)
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// getOrInitClient gets or initializes a DB client with locking.
func (d *DBProvider) getOrInitClient(
	clientPtr *client.DBClientInterface,
	mutex *sync.RWMutex,
	dataSource config.DataSource,
) (client.DBClientInterface, error) {
	mutex.RLock()
	if *clientPtr != nil {
		c := *clientPtr
		mutex.RUnlock()
		return c, nil
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	if *clientPtr != nil {
		return *clientPtr, nil
	}

	c, err := openClient(dataSource)
	if err != nil {
		return nil, err
	}
	*clientPtr = c
	return c, nil
}

// openClient opens a connection pool for the given data source and wraps it in a client.
func openClient(dataSource config.DataSource) (client.DBClientInterface, error) {
	dbConfig, err := getDBConfig(dataSource)
	if err != nil {
		return nil, err
	}
	dbName := dataSource.Name

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	if dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database %s: %w", dbName, err), db.Close())
	}

	if dbConfig.driverName == dataSourceTypeSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			return nil, errors.Join(
				fmt.Errorf("failed to enable foreign key constraints for %s: %w", dbName, err), db.Close())
		}
	}

	return client.NewDBClient(db, dbConfig.driverName), nil
}

// getDBConfig returns the driver name and DSN for the provided data source.
func getDBConfig(dataSource config.DataSource) (dbConfig, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		sslMode := dataSource.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return dbConfig{
			driverName: dataSourceTypePostgres,
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
				dataSource.Name, sslMode),
		}, nil
	case dataSourceTypeSQLite:
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dbPath := dataSource.Path
		if !path.IsAbs(dbPath) {
			dbPath = path.Join(config.GetServerRuntime().ServerHome, dbPath)
		}
		return dbConfig{
			driverName: dataSourceTypeSQLite,
			dsn:        dbPath + options,
		}, nil
	default:
		return dbConfig{}, fmt.Errorf("unsupported data source type: %s", dataSource.Type)
	}
}

// closeOnInterrupt closes the open connection pools on SIGINT or SIGTERM.
func (d *DBProvider) closeOnInterrupt() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBProvider"))
		if err := d.close(); err != nil {
			logger.Error("Error closing database connections", log.Error(err))
		} else {
			logger.Debug("Database connections closed successfully")
		}
	}()
}

// close closes the database connections.
func (d *DBProvider) close() error {
	identityErr := closeClient(&d.identityClient, &d.identityMutex, constants.IdentityDBName)
	runtimeErr := closeClient(&d.runtimeClient, &d.runtimeMutex, constants.RuntimeDBName)
	return errors.Join(identityErr, runtimeErr)
}

func closeClient(clientPtr *client.DBClientInterface, mutex *sync.RWMutex, clientName string) error {
	mutex.Lock()
	defer mutex.Unlock()
	if *clientPtr == nil {
		return nil
	}
	if err := (*clientPtr).Close(); err != nil {
		return fmt.Errorf("failed to close %s client: %w", clientName, err)
	}
	*clientPtr = nil
	return nil
}
