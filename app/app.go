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

// Package app wires the users view to a GraphQL endpoint and a host.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/gqlview/gqlview/executor"
	"github.com/gqlview/gqlview/graphql/schema"
	"github.com/gqlview/gqlview/render"
	"github.com/gqlview/gqlview/users"
	"github.com/gqlview/gqlview/x"
)

const (
	// Heading tops the page.
	Heading = "My first Apollo app 🚀"
	// HookFallback is what the boundary shows while the hook view is suspended.
	HookFallback = "Suspense loading..."
)

// Mode picks which adapter drives the users view.
type Mode string

const (
	// ModeQuery observes every state through a callback.
	ModeQuery Mode = "query"
	// ModeHook reads the query directly and suspends while it is pending.
	ModeHook Mode = "hook"
)

// ParseMode accepts query or hook, in any case.  An empty string is ModeQuery.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeQuery:
		return ModeQuery, nil
	case ModeHook:
		return ModeHook, nil
	default:
		return "", errors.Errorf("invalid mode %q, use %q or %q", s, ModeQuery, ModeHook)
	}
}

// App renders the users page.
type App struct {
	Fetcher executor.Fetcher
	Mode    Mode
	// Timeout bounds one render.  Zero means no bound beyond the caller's ctx.
	Timeout time.Duration
	// AccessLog receives one entry per page request.  It may be nil.
	AccessLog *x.Logger
}

// Render mounts one users view on host and returns once it is done: the query
// settled, or ctx ended.  The view is unmounted before Render returns.
func (a *App) Render(ctx context.Context, host render.Host) error {
	return a.render(ctx, a.Mode, host)
}

func (a *App) render(ctx context.Context, mode Mode, host render.Host) error {
	if a.Fetcher == nil {
		return errors.New("app has no fetcher")
	}
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	ctx, span := trace.StartSpan(ctx, "app.Render")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("mode", string(mode)))

	host = render.CountFrames(ctx, host)
	switch mode {
	case ModeHook:
		q := executor.Execute[users.Payload](ctx, a.Fetcher, schema.UsersQuery,
			executor.Options{Suspend: true})
		defer q.Cancel()

		b := render.Boundary{Fallback: render.Text(HookFallback)}
		return b.Render(ctx, host, func() (render.Displayable, error) {
			return render.UseUsers(q)
		})
	default:
		q := executor.Execute[users.Payload](ctx, a.Fetcher, schema.UsersQuery,
			executor.Options{})
		defer q.Cancel()

		return render.Watch(ctx, q, host, render.Render)
	}
}
