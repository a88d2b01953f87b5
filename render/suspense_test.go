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
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/gqlview/gqlview/executor"
)

var fallback = Text("Suspense loading...")

func TestBoundary_Render(t *testing.T) {
	g := newGate(twoUsers, nil)
	q := execute(g, true)
	defer q.Cancel()

	host := newFirstFrame()
	errCh := make(chan error, 1)
	go func() {
		errCh <- Boundary{Fallback: fallback}.Render(context.Background(), host,
			func() (Displayable, error) { return UseUsers(q) })
	}()

	<-host.mounted
	g.open()
	require.NoError(t, <-errCh)
	require.Equal(t, Frames{fallback, wantTwoUsers}, host.Frames)
}

func TestBoundary_NoSuspension(t *testing.T) {
	var frames Frames
	err := Boundary{Fallback: fallback}.Render(context.Background(), &frames,
		func() (Displayable, error) { return Text("ready"), nil })
	require.NoError(t, err)
	require.Equal(t, Frames{Text("ready")}, frames)
}

func TestBoundary_ChildError(t *testing.T) {
	var frames Frames
	err := Boundary{Fallback: fallback}.Render(context.Background(), &frames,
		func() (Displayable, error) { return Displayable{}, errors.New("boom") })
	require.EqualError(t, err, "boom")
	require.Empty(t, frames)
}

func TestBoundary_Discarded(t *testing.T) {
	g := newGate(twoUsers, nil)
	q := execute(g, true)

	host := newFirstFrame()
	errCh := make(chan error, 1)
	go func() {
		errCh <- Boundary{Fallback: fallback}.Render(context.Background(), host,
			func() (Displayable, error) { return UseUsers(q) })
	}()

	<-host.mounted
	q.Cancel()
	require.ErrorIs(t, <-errCh, executor.ErrDiscarded)
	require.Equal(t, Frames{fallback}, host.Frames)
}

func TestBoundary_ContextDone(t *testing.T) {
	g := newGate(twoUsers, nil)
	q := execute(g, true)
	defer q.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	var frames Frames
	err := Boundary{Fallback: fallback}.Render(ctx, &frames,
		func() (Displayable, error) { return UseUsers(q) })
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, Frames{fallback}, frames)
}

func TestHostFunc(t *testing.T) {
	var got []Displayable
	host := CountFrames(context.Background(), HostFunc(func(d Displayable) {
		got = append(got, d)
	}))
	host.Mount(Text("a"))
	host.Mount(List())
	require.Equal(t, []Displayable{Text("a"), List()}, got)
	require.Equal(t, Displayable{}, Frames(nil).Last())
}
