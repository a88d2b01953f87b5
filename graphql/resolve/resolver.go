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

// Package resolve answers GraphQL requests against the fixture schema from an
// in-memory Store.
package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/dgraph-io/gqlparser/v2/ast"

	"github.com/gqlview/gqlview/graphql/api"
	"github.com/gqlview/gqlview/graphql/schema"
	"github.com/gqlview/gqlview/users"
	"github.com/gqlview/gqlview/x"
)

// Options change how the fixture server behaves, to demo the states a client
// goes through.
type Options struct {
	// Delay holds every response back for this long.
	Delay time.Duration
	// Fail, if set, makes every users field fail with this message.
	Fail string
}

// A Resolver resolves requests against the fixture schema.
type Resolver struct {
	schema *schema.Schema
	store  *Store
	opts   Options
}

// New returns a Resolver serving the users in store.
func New(store *Store, opts Options) *Resolver {
	return &Resolver{schema: schema.FixtureSchema(), store: store, opts: opts}
}

// Resolve processes req and returns a GraphQL response.  It never returns nil.
func (r *Resolver) Resolve(ctx context.Context, req *schema.Request) *schema.Response {
	ctx, span := trace.StartSpan(ctx, "resolve.Resolve")
	defer span.End()

	if r == nil {
		return schema.ErrorResponse(errors.New("Internal error: no resolver"))
	}

	reqID := api.RequestID(ctx)
	span.AddAttributes(trace.StringAttribute("requestID", reqID))

	op, err := r.schema.Operation(req)
	if err != nil {
		glog.V(2).Infof("Rejecting request %s: %v", reqID, err)
		return schema.ErrorResponse(err)
	}

	if r.opts.Delay > 0 {
		select {
		case <-time.After(r.opts.Delay):
		case <-ctx.Done():
			return schema.ErrorResponse(schema.GQLWrapf(ctx.Err(), "couldn't resolve users"))
		}
	}

	resp := &schema.Response{}
	c := &completer{vars: op.Vars, resp: resp}
	var buf bytes.Buffer
	c.object(&buf, "Query", nil, op.SelectionSet, func(f *ast.Field, path []interface{},
		out *bytes.Buffer) {
		r.queryField(c, f, path, out)
	})
	// The buffer holds {...}; AddData wants the members only.
	if b := buf.Bytes(); len(b) > 2 {
		resp.AddData(b[1 : len(b)-1])
	} else {
		resp.Data.WriteString("{}")
	}
	span.Annotatef(nil, "resolved with %d errors", len(resp.Errors))
	return resp
}

func (r *Resolver) queryField(c *completer, f *ast.Field, path []interface{},
	out *bytes.Buffer) {

	switch f.Name {
	case "users":
		if r.opts.Fail != "" {
			c.fail(x.GqlErrorf("%s", r.opts.Fail).
				WithLocations(location(f)...).
				WithPath(path))
			out.WriteString("null")
			return
		}
		us := r.store.Users()
		out.WriteByte('[')
		for i := range us {
			if i > 0 {
				out.WriteByte(',')
			}
			u := us[i]
			c.object(out, "User", append(path, i), f.SelectionSet,
				func(f *ast.Field, path []interface{}, out *bytes.Buffer) {
					userField(c, &u, f, path, out)
				})
		}
		out.WriteByte(']')
	default:
		c.unsupported(f, path, out)
	}
}

func userField(c *completer, u *users.User, f *ast.Field, path []interface{},
	out *bytes.Buffer) {

	switch f.Name {
	case "id":
		c.scalar(out, u.ID.String())
	case "name":
		c.scalar(out, u.Name)
	case "email":
		c.scalar(out, u.Email)
	case "age":
		c.scalar(out, u.Age)
	default:
		c.unsupported(f, path, out)
	}
}

// completer writes a JSON result in the shape of a selection set and collects
// field errors on the way.
type completer struct {
	vars map[string]interface{}
	resp *schema.Response
}

type fieldFunc func(f *ast.Field, path []interface{}, out *bytes.Buffer)

// object writes one object of type typeName: the fields of set, in order,
// under their response keys.  __typename is answered here.
func (c *completer) object(out *bytes.Buffer, typeName string, path []interface{},
	set ast.SelectionSet, field fieldFunc) {

	out.WriteByte('{')
	seen := make(map[string]bool)
	for _, f := range c.collect(set) {
		key := f.Alias
		if key == "" {
			key = f.Name
		}
		if seen[key] {
			// Validation guarantees same-key fields are mergeable.
			continue
		}
		if len(seen) > 0 {
			out.WriteByte(',')
		}
		seen[key] = true

		c.scalar(out, key)
		out.WriteByte(':')
		fieldPath := append(append([]interface{}(nil), path...), key)
		if f.Name == "__typename" {
			c.scalar(out, typeName)
			continue
		}
		field(f, fieldPath, out)
	}
	out.WriteByte('}')
}

// collect flattens fragments and drops fields excluded by @skip or @include.
func (c *completer) collect(set ast.SelectionSet) []*ast.Field {
	var fields []*ast.Field
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			if c.included(s.Directives) {
				fields = append(fields, s)
			}
		case *ast.InlineFragment:
			if c.included(s.Directives) {
				fields = append(fields, c.collect(s.SelectionSet)...)
			}
		case *ast.FragmentSpread:
			if c.included(s.Directives) && s.Definition != nil {
				fields = append(fields, c.collect(s.Definition.SelectionSet)...)
			}
		}
	}
	return fields
}

func (c *completer) included(dirs ast.DirectiveList) bool {
	if d := dirs.ForName("skip"); d != nil && c.ifArg(d) {
		return false
	}
	if d := dirs.ForName("include"); d != nil && !c.ifArg(d) {
		return false
	}
	return true
}

func (c *completer) ifArg(d *ast.Directive) bool {
	arg := d.Arguments.ForName("if")
	if arg == nil || arg.Value == nil {
		return false
	}
	v, err := arg.Value.Value(c.vars)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func (c *completer) scalar(out *bytes.Buffer, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		// Only strings and ints get here.
		glog.Errorf("Unable to marshal %v: %v", v, err)
		out.WriteString("null")
		return
	}
	out.Write(b)
}

func (c *completer) unsupported(f *ast.Field, path []interface{}, out *bytes.Buffer) {
	c.fail(x.GqlErrorf("Field %s is not supported by this server.", f.Name).
		WithLocations(location(f)...).
		WithPath(path))
	out.WriteString("null")
}

func location(f *ast.Field) []x.Location {
	if f.Position == nil {
		return nil
	}
	return []x.Location{{Line: f.Position.Line, Column: f.Position.Column}}
}

func (c *completer) fail(err *x.GqlError) {
	c.resp.Errors = append(c.resp.Errors, err)
}
