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

package executor

import (
	"context"

	"github.com/pkg/errors"
)

// ErrDiscarded is returned when waiting on a query that was cancelled before
// it settled.
var ErrDiscarded = errors.New("query discarded before it settled")

// FetchError is the one kind of error a query fails with: the fetch did not
// produce data.  Message is the text the transport or server gave, unmodified.
type FetchError struct {
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

// asFetchError keeps err's own text as the message.
func asFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Message: err.Error()}
}

// A Suspension is returned, as an error, by a read that cannot complete until
// a pending query settles.  Whoever catches it shows a fallback and tries the
// read again once Wait returns.
type Suspension struct {
	done  <-chan struct{}
	gone  <-chan struct{}
	query string
}

func (s *Suspension) Error() string {
	return "suspended on pending query " + s.query
}

// Wait blocks until the query the read suspended on settles.  It returns
// ErrDiscarded if the query was cancelled, or the context error.
func (s *Suspension) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-s.gone:
		return ErrDiscarded
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AsSuspension reports whether err is (or wraps) a Suspension.
func AsSuspension(err error) (*Suspension, bool) {
	var s *Suspension
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
