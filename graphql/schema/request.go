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
	"github.com/pkg/errors"

	"github.com/dgraph-io/gqlparser/v2"
	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
	"github.com/dgraph-io/gqlparser/v2/validator"
	_ "github.com/dgraph-io/gqlparser/v2/validator/rules" // make gql validator init() all rules
)

// A Request represents a GraphQL request.  It makes no guarantees that the
// request is valid.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// FixtureSDL is the schema served by the fixture server. It is the smallest
// schema the users document is valid against.
const FixtureSDL = `
type User {
	id: ID!
	name: String
	email: String
	age: Int
}

type Query {
	users: [User]
}
`

// A Schema is a GraphQL schema that requests can be checked against.
type Schema struct {
	schema *ast.Schema
}

// An Operation is a single validated operation from a request, together with
// its coerced variables.
type Operation struct {
	*ast.OperationDefinition
	Vars map[string]interface{}
}

// FromString builds a Schema from SDL.
func FromString(sdl string) (*Schema, error) {
	sch, gqlErr := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	if gqlErr != nil {
		return nil, errors.Wrap(gqlErr, "loading schema")
	}
	return &Schema{schema: sch}, nil
}

// FixtureSchema returns the schema the fixture server validates requests with.
func FixtureSchema() *Schema {
	s, err := FromString(FixtureSDL)
	if err != nil {
		panic(err)
	}
	return s
}

// Operation finds the operation in req, if it is a valid request for GraphQL
// schema s. If the request is GraphQL valid, it must contain a single valid
// Operation.  If either the request is malformed or doesn't contain a valid
// operation, all GraphQL errors encountered are returned.
func (s *Schema) Operation(req *Request) (*Operation, error) {
	if req == nil || req.Query == "" {
		return nil, errors.New("no query string supplied in request")
	}

	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: req.Query})
	if gqlErr != nil {
		return nil, gqlErr
	}

	listErr := validator.Validate(s.schema, doc, req.Variables)
	if len(listErr) != 0 {
		return nil, listErr
	}

	if len(doc.Operations) > 1 && req.OperationName == "" {
		return nil, errors.Errorf("Operation name must by supplied when query has more " +
			"than 1 operation.")
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return nil, errors.Errorf("Supplied operation name %s isn't present in the request.",
			req.OperationName)
	}

	if op.Operation != ast.Query {
		return nil, errors.Errorf("Not resolving %s. Only queries are supported.", op.Operation)
	}

	vars, gqlErr := validator.VariableValues(s.schema, op, req.Variables)
	if gqlErr != nil {
		return nil, gqlErr
	}

	return &Operation{OperationDefinition: op, Vars: vars}, nil
}
