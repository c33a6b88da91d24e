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

package credential

import "github.com/asgardeo/authflow/internal/system/database/model"

const credentialColumns = "CREDENTIAL_ID, REALM, USER_ID, TYPE, USER_LABEL, SECRET_DATA, CREDENTIAL_DATA, " +
	"CREATED_DATE, PRIORITY"

var (
	// QueryCreateCredential is the query to create a new credential.
	QueryCreateCredential = model.DBQuery{
		ID: "ASQ-CRED-01",
		Query: "INSERT INTO CREDENTIAL (" + credentialColumns + ") " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
	}
	// QueryGetCredentials is the query to get all credentials of a user.
	QueryGetCredentials = model.DBQuery{
		ID: "ASQ-CRED-02",
		Query: "SELECT " + credentialColumns + " FROM CREDENTIAL WHERE REALM = $1 AND USER_ID = $2 " +
			"ORDER BY PRIORITY, CREATED_DATE",
	}
	// QueryGetCredentialsByType is the query to get the credentials of a user of one type.
	QueryGetCredentialsByType = model.DBQuery{
		ID: "ASQ-CRED-03",
		Query: "SELECT " + credentialColumns + " FROM CREDENTIAL WHERE REALM = $1 AND USER_ID = $2 AND TYPE = $3 " +
			"ORDER BY PRIORITY, CREATED_DATE",
	}
	// QueryUpdateCredential is the query to update the secret and data of a credential.
	QueryUpdateCredential = model.DBQuery{
		ID: "ASQ-CRED-04",
		Query: "UPDATE CREDENTIAL SET SECRET_DATA = $4, CREDENTIAL_DATA = $5, CREATED_DATE = $6 " +
			"WHERE REALM = $1 AND USER_ID = $2 AND CREDENTIAL_ID = $3",
	}
	// QueryUpdateCredentialLabel is the query to update the label of a credential.
	QueryUpdateCredentialLabel = model.DBQuery{
		ID:    "ASQ-CRED-05",
		Query: "UPDATE CREDENTIAL SET USER_LABEL = $4 WHERE REALM = $1 AND USER_ID = $2 AND CREDENTIAL_ID = $3",
	}
	// QueryDeleteCredential is the query to delete a credential.
	QueryDeleteCredential = model.DBQuery{
		ID:    "ASQ-CRED-06",
		Query: "DELETE FROM CREDENTIAL WHERE REALM = $1 AND USER_ID = $2 AND CREDENTIAL_ID = $3",
	}
)
