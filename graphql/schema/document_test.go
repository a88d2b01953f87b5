/*
 * Copyright 2026 The gqlview Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUsersQuery(t *testing.T) {
	require.Equal(t,
		[]string{"users", "users.id", "users.name", "users.email", "users.age"},
		UsersQuery.Fields())
	require.Equal(t, "", UsersQuery.OperationName())

	req := UsersQuery.Request()
	require.Equal(t, UsersQuery.Source(), req.Query)
	require.Empty(t, req.Variables)
}

func TestNewDocument(t *testing.T) {
	tests := map[string]struct {
		src    string
		fields []string
		err    string
	}{
		"named query": {
			src:    `query AllUsers { users { id } }`,
			fields: []string{"users", "users.id"},
		},
		"aliased field": {
			src:    `{ people: users { name } }`,
			fields: []string{"people", "people.name"},
		},
		"syntax error": {
			src: `{ users { id }`,
			err: "parsing query document",
		},
		"two operations": {
			src: `query A { users { id } } query B { users { name } }`,
			err: "query document must hold exactly one operation, found 2",
		},
		"mutation": {
			src: `mutation { addUser { id } }`,
			err: "query document holds a mutation, not a query",
		},
		"variables": {
			src: `query ($first: Int) { users(first: $first) { id } }`,
			err: "query document must not take variables, found 1",
		},
	}

	for name, tcase := range tests {
		t.Run(name, func(t *testing.T) {
			doc, err := NewDocument(tcase.src)
			if tcase.err != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tcase.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tcase.fields, doc.Fields())
		})
	}
}

func TestMustDocument_Panics(t *testing.T) {
	require.Panics(t, func() { MustDocument(`{`) })
}
