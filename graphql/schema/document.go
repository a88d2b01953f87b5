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

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
)

const usersQuery = `
  {
    users {
      id
      name
      email
      age
    }
  }
`

// UsersQuery asks for every user with the fields a User carries.
var UsersQuery = MustDocument(usersQuery)

// A Document is a fixed, parameterless GraphQL query.  It is parsed once, when
// built, and sent verbatim on every execution.
type Document struct {
	source string
	op     *ast.OperationDefinition
}

// NewDocument parses src. The document must hold exactly one query operation
// and that operation must not declare variables.
func NewDocument(src string) (*Document, error) {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: src})
	if gqlErr != nil {
		return nil, errors.Wrap(gqlErr, "parsing query document")
	}
	if len(doc.Operations) != 1 {
		return nil, errors.Errorf("query document must hold exactly one operation, found %d",
			len(doc.Operations))
	}

	op := doc.Operations[0]
	if op.Operation != ast.Query {
		return nil, errors.Errorf("query document holds a %s, not a query", op.Operation)
	}
	if len(op.VariableDefinitions) > 0 {
		return nil, errors.Errorf("query document must not take variables, found %d",
			len(op.VariableDefinitions))
	}
	return &Document{source: src, op: op}, nil
}

// MustDocument is NewDocument that panics on error.  It is meant for package
// level documents.
func MustDocument(src string) *Document {
	d, err := NewDocument(src)
	if err != nil {
		panic(err)
	}
	return d
}

// Source returns the document text as it is sent upstream.
func (d *Document) Source() string {
	return d.source
}

// OperationName is empty for anonymous operations.
func (d *Document) OperationName() string {
	return d.op.Name
}

// Request builds the GraphQL request that executes d.
func (d *Document) Request() *Request {
	return &Request{Query: d.source, OperationName: d.op.Name}
}

// Fields lists the fields d selects as dotted paths, parents before children,
// e.g. users, users.id, users.name.
func (d *Document) Fields() []string {
	var out []string
	var walk func(prefix string, set ast.SelectionSet)
	walk = func(prefix string, set ast.SelectionSet) {
		for _, sel := range set {
			f, ok := sel.(*ast.Field)
			if !ok {
				continue
			}
			path := f.Alias
			if path == "" {
				path = f.Name
			}
			if prefix != "" {
				path = prefix + "." + path
			}
			out = append(out, path)
			walk(path, f.SelectionSet)
		}
	}
	walk("", d.op.SelectionSet)
	return out
}
