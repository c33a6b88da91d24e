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

package store

import dbmodel "github.com/asgardeo/authflow/internal/system/database/model"

const (
	flowColumns      = "FLOW_ID, REALM, ALIAS, PROVIDER_ID, DESCRIPTION, TOP_LEVEL, BUILT_IN"
	executionColumns = "EXECUTION_ID, PARENT_FLOW_ID, AUTHENTICATOR, FLOW_ID, REQUIREMENT, PRIORITY, " +
		"AUTHENTICATOR_FLOW, CONFIG"
)

var (
	// QueryCreateFlow is the query to create a flow.
	QueryCreateFlow = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-01",
		Query: "INSERT INTO AUTH_FLOW (" + flowColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7)",
	}
	// QueryGetFlowByAlias is the query to get a flow by realm and alias.
	QueryGetFlowByAlias = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-02",
		Query: "SELECT " + flowColumns + " FROM AUTH_FLOW WHERE REALM = $1 AND ALIAS = $2",
	}
	// QueryGetFlowByID is the query to get a flow by id.
	QueryGetFlowByID = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-03",
		Query: "SELECT " + flowColumns + " FROM AUTH_FLOW WHERE FLOW_ID = $1",
	}
	// QueryGetFlowsByRealm is the query to list the flows of a realm.
	QueryGetFlowsByRealm = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-04",
		Query: "SELECT " + flowColumns + " FROM AUTH_FLOW WHERE REALM = $1 ORDER BY ALIAS",
	}
	// QueryUpdateFlow is the query to update a flow.
	QueryUpdateFlow = dbmodel.DBQuery{
		ID: "ASQ-FLOW-05",
		Query: "UPDATE AUTH_FLOW SET ALIAS = $2, PROVIDER_ID = $3, DESCRIPTION = $4, TOP_LEVEL = $5, " +
			"BUILT_IN = $6 WHERE FLOW_ID = $1",
	}
	// QueryDeleteFlow is the query to delete a flow.
	QueryDeleteFlow = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-06",
		Query: "DELETE FROM AUTH_FLOW WHERE FLOW_ID = $1",
	}
	// QueryCountAliasInRealm is the query to count flows of a realm with an alias, excluding a flow id.
	QueryCountAliasInRealm = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-07",
		Query: "SELECT COUNT(*) AS TOTAL FROM AUTH_FLOW WHERE REALM = $1 AND ALIAS = $2 AND FLOW_ID <> $3",
	}

	// QueryCreateExecution is the query to create an execution.
	QueryCreateExecution = dbmodel.DBQuery{
		ID: "ASQ-FLOW-08",
		Query: "INSERT INTO AUTH_EXECUTION (" + executionColumns + ") " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
	}
	// QueryGetExecutionsByFlow is the query to list the executions of a flow.
	QueryGetExecutionsByFlow = dbmodel.DBQuery{
		ID: "ASQ-FLOW-09",
		Query: "SELECT " + executionColumns + " FROM AUTH_EXECUTION WHERE PARENT_FLOW_ID = $1 " +
			"ORDER BY PRIORITY",
	}
	// QueryGetExecutionByID is the query to get an execution by id.
	QueryGetExecutionByID = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-10",
		Query: "SELECT " + executionColumns + " FROM AUTH_EXECUTION WHERE EXECUTION_ID = $1",
	}
	// QueryUpdateExecution is the query to update an execution.
	QueryUpdateExecution = dbmodel.DBQuery{
		ID: "ASQ-FLOW-11",
		Query: "UPDATE AUTH_EXECUTION SET AUTHENTICATOR = $2, FLOW_ID = $3, REQUIREMENT = $4, PRIORITY = $5, " +
			"AUTHENTICATOR_FLOW = $6, CONFIG = $7 WHERE EXECUTION_ID = $1",
	}
	// QueryDeleteExecution is the query to delete an execution.
	QueryDeleteExecution = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-12",
		Query: "DELETE FROM AUTH_EXECUTION WHERE EXECUTION_ID = $1",
	}
	// QueryDeleteExecutionsByFlow is the query to delete all executions of a flow.
	QueryDeleteExecutionsByFlow = dbmodel.DBQuery{
		ID:    "ASQ-FLOW-13",
		Query: "DELETE FROM AUTH_EXECUTION WHERE PARENT_FLOW_ID = $1",
	}
	// QueryCountPriorityInFlow is the query to count sibling executions using a priority, excluding an id.
	QueryCountPriorityInFlow = dbmodel.DBQuery{
		ID: "ASQ-FLOW-14",
		Query: "SELECT COUNT(*) AS TOTAL FROM AUTH_EXECUTION WHERE PARENT_FLOW_ID = $1 AND PRIORITY = $2 " +
			"AND EXECUTION_ID <> $3",
	}
)
