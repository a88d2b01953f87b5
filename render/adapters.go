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

package render

import (
	"context"

	"github.com/gqlview/gqlview/executor"
	"github.com/gqlview/gqlview/users"
)

// UsersQuery is the handle a users view holds while mounted.
type UsersQuery = executor.Query[users.Payload]

// Children turns one state of the users query into output.
type Children func(executor.Result[users.Payload]) Displayable

// Watch is the callback style of the users view.  It mounts children(result)
// for the state the query is in now, and once more when the query settles.
// If ctx ends first the query is cancelled and ctx's error returned.
func Watch(ctx context.Context, q *UsersQuery, host Host, children Children) error {
	if children == nil {
		children = Render
	}

	res := q.Result()
	host.Mount(children(res))
	if res.Settled() {
		return nil
	}

	select {
	case <-q.Done():
		host.Mount(children(q.Result()))
		return nil
	case <-ctx.Done():
		q.Cancel()
		return ctx.Err()
	}
}

// UseUsers is the direct-return style of the users view.  It reads the query
// and renders the result.  A query executed with Suspend reports a pending
// result as an *executor.Suspension error instead, for a Boundary to catch.
func UseUsers(q *UsersQuery) (Displayable, error) {
	res, err := q.Read()
	if err != nil {
		return Displayable{}, err
	}
	return Render(res), nil
}
