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

	"github.com/pkg/errors"
	"go.opencensus.io/stats"

	"github.com/gqlview/gqlview/executor"
	"github.com/gqlview/gqlview/x"
)

// A Host receives every frame a view produces, in order.
type Host interface {
	Mount(d Displayable)
}

// HostFunc adapts a function to a Host.
type HostFunc func(d Displayable)

func (f HostFunc) Mount(d Displayable) {
	f(d)
}

// Frames is a Host that records what it is given.
type Frames []Displayable

func (f *Frames) Mount(d Displayable) {
	*f = append(*f, d)
}

// Last returns the most recent frame, or a zero Displayable if none was mounted.
func (f Frames) Last() Displayable {
	if len(f) == 0 {
		return Displayable{}
	}
	return f[len(f)-1]
}

// counting records every mounted frame in the renders metric.
type counting struct {
	ctx  context.Context
	host Host
}

func (c counting) Mount(d Displayable) {
	stats.Record(c.ctx, x.NumRenders.M(1))
	c.host.Mount(d)
}

// CountFrames wraps host so every frame it is given shows up in the renders metric.
func CountFrames(ctx context.Context, host Host) Host {
	return counting{ctx: x.WithMethod(ctx, "render.Mount"), host: host}
}

// Boundary shows Fallback while the view inside it is suspended.
type Boundary struct {
	Fallback Displayable
}

// Render runs child and mounts its output on host.  Each time child suspends,
// the fallback is mounted and child runs again once the suspension resolves.
// Errors other than a suspension end the render.
func (b Boundary) Render(ctx context.Context, host Host,
	child func() (Displayable, error)) error {

	shown := false
	for {
		d, err := child()
		if s, ok := executor.AsSuspension(err); ok {
			if !shown {
				host.Mount(b.Fallback)
				shown = true
			}
			if err := s.Wait(ctx); err != nil {
				return errors.Wrap(err, "waiting on suspended view")
			}
			continue
		}
		if err != nil {
			return err
		}
		host.Mount(d)
		return nil
	}
}
