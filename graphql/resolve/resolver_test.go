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

package resolve

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gqlview/gqlview/graphql/schema"
	"github.com/gqlview/gqlview/users"
	"github.com/gqlview/gqlview/x"
)

var testStore = NewStore(
	users.User{ID: "1", Name: "Ann", Email: "ann@example.com", Age: 31},
	users.User{ID: "2", Name: "Bob", Email: "bob@example.com", Age: 42},
)

func resolveJSON(t *testing.T, r *Resolver, ctx context.Context, query string) string {
	var buf bytes.Buffer
	_, err := r.Resolve(ctx, &schema.Request{Query: query}).WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestResolve(t *testing.T) {
	tests := map[string]struct {
		query string
		opts  Options
		want  string
	}{
		"users document": {
			query: schema.UsersQuery.Source(),
			want: `{"data":{"users":[
				{"id":"1","name":"Ann","email":"ann@example.com","age":31},
				{"id":"2","name":"Bob","email":"bob@example.com","age":42}]}}`,
		},
		"projects selected fields": {
			query: `{ users { name } }`,
			want:  `{"data":{"users":[{"name":"Ann"},{"name":"Bob"}]}}`,
		},
		"aliases": {
			query: `{ people: users { key: id name } }`,
			want:  `{"data":{"people":[{"key":"1","name":"Ann"},{"key":"2","name":"Bob"}]}}`,
		},
		"typename": {
			query: `{ __typename users { __typename id } }`,
			want: `{"data":{"__typename":"Query",
				"users":[{"__typename":"User","id":"1"},{"__typename":"User","id":"2"}]}}`,
		},
		"fragments": {
			query: `query Users { users { ...Name ... on User { id } } }
				fragment Name on User { name }`,
			want: `{"data":{"users":[{"name":"Ann","id":"1"},{"name":"Bob","id":"2"}]}}`,
		},
		"skip and include": {
			query: `{ users { id name @skip(if: true) email @include(if: false) } }`,
			want:  `{"data":{"users":[{"id":"1"},{"id":"2"}]}}`,
		},
		"forced failure": {
			query: `{ users { id } }`,
			opts:  Options{Fail: "users are unavailable"},
			want: `{"errors":[{"message":"users are unavailable",
				"locations":[{"line":1,"column":3}],"path":["users"]}],
				"data":{"users":null}}`,
		},
		"empty query": {
			query: ``,
			want:  `{"errors":[{"message":"no query string supplied in request"}]}`,
		},
	}

	for name, tcase := range tests {
		t.Run(name, func(t *testing.T) {
			r := New(testStore, tcase.opts)
			require.JSONEq(t, tcase.want, resolveJSON(t, r, context.Background(), tcase.query))
		})
	}
}

func TestResolve_EmptyStore(t *testing.T) {
	r := New(NewStore(), Options{})
	require.JSONEq(t, `{"data":{"users":[]}}`,
		resolveJSON(t, r, context.Background(), `{ users { id } }`))
}

func TestResolve_InvalidField(t *testing.T) {
	r := New(testStore, Options{})
	resp := r.Resolve(context.Background(), &schema.Request{Query: `{ users { nmae } }`})
	require.Len(t, resp.Errors, 1)
	require.Contains(t, resp.Errors[0].Message, `Cannot query field "nmae" on type "User".`)
	require.Equal(t, []x.Location{{Line: 1, Column: 11}}, resp.Errors[0].Locations)
	require.Zero(t, resp.Data.Len())
}

func TestResolve_Mutation(t *testing.T) {
	r := New(testStore, Options{})
	resp := r.Resolve(context.Background(), &schema.Request{Query: `mutation { users { id } }`})
	require.NotEmpty(t, resp.Errors)
	require.Zero(t, resp.Data.Len())
}

func TestResolve_Delay(t *testing.T) {
	r := New(testStore, Options{Delay: 50 * time.Millisecond})

	start := time.Now()
	resp := r.Resolve(context.Background(), &schema.Request{Query: `{ users { id } }`})
	require.Empty(t, resp.Errors)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	resp = r.Resolve(ctx, &schema.Request{Query: `{ users { id } }`})
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "couldn't resolve users because context canceled", resp.Errors[0].Message)
}
