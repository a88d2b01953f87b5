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

// Package executor runs a fixed GraphQL query against a remote endpoint and
// exposes its progress as a three state Result.
//
// A query is executed once per mount:
//
//	q := executor.Execute[users.Payload](ctx, client, schema.UsersQuery, executor.Options{})
//	defer q.Cancel()
//
// Readers either take snapshots (Result, Read without Suspend) or, with
// Options.Suspend, get a *Suspension from Read while the query is pending and
// hand it to a boundary that waits for the query to settle.
package executor

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.opencensus.io/stats"
	"go.opencensus.io/trace"

	"github.com/gqlview/gqlview/graphql/schema"
	"github.com/gqlview/gqlview/x"
)

// A Fetcher sends a document to a GraphQL server and returns the data member
// of the response.  Any GraphQL errors in the response are returned as an error.
type Fetcher interface {
	Fetch(ctx context.Context, doc *schema.Document) (json.RawMessage, error)
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc func(ctx context.Context, doc *schema.Document) (json.RawMessage, error)

func (f FetcherFunc) Fetch(ctx context.Context, doc *schema.Document) (json.RawMessage, error) {
	return f(ctx, doc)
}

// Options select how a query is observed.
type Options struct {
	// Suspend makes Read return a *Suspension while the query is pending,
	// instead of the Pending result.
	Suspend bool
}

// Query is the handle a mounted view holds on one execution of a document.
// Its result moves from Pending to Failed or Succeeded exactly once.
type Query[T any] struct {
	doc    *schema.Document
	opts   Options
	cancel context.CancelFunc

	mu        sync.Mutex
	result    Result[T]
	discarded bool
	done      chan struct{}
	gone      chan struct{}
}

// Execute starts one fetch of doc through f and returns at once with a Pending
// query.  The fetch is bound to ctx: when ctx ends before the fetch does, the
// result is discarded.
func Execute[T any](ctx context.Context, f Fetcher, doc *schema.Document, opts Options) *Query[T] {
	ctx, cancel := context.WithCancel(ctx)
	q := &Query[T]{
		doc:    doc,
		opts:   opts,
		cancel: cancel,
		result: PendingResult[T](),
		done:   make(chan struct{}),
		gone:   make(chan struct{}),
	}
	stats.Record(ctx, x.PendingQueries.M(1))
	go q.run(ctx, f)
	return q
}

func (q *Query[T]) run(ctx context.Context, f Fetcher) {
	defer q.cancel()
	defer stats.Record(ctx, x.PendingQueries.M(-1))

	ctx, span := trace.StartSpan(ctx, "executor.Execute")
	defer span.End()

	res := q.fetch(ctx, f)
	if ctx.Err() != nil {
		// Unmounted while in flight: nobody is left to see the result.
		glog.V(2).Infof("Dropping %s result of discarded query", res.State())
		q.discard()
		return
	}
	span.Annotatef(nil, "query %s", res.State())
	q.settle(res)
}

func (q *Query[T]) fetch(ctx context.Context, f Fetcher) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("panic while fetching: %v", r)
			res = FailedResult[T](errors.Errorf("fetch panicked: %v", r).Error())
		}
	}()

	data, err := f.Fetch(ctx, q.doc)
	if err != nil {
		return FailedResult[T](asFetchError(err).Message)
	}

	var v T
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &v); err != nil {
			return FailedResult[T](errors.Wrap(err, "decoding response data").Error())
		}
	}
	return SucceededResult(v)
}

func (q *Query[T]) settle(res Result[T]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.discarded || q.result.Settled() {
		return
	}
	q.result = res
	close(q.done)
}

func (q *Query[T]) discard() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.discarded || q.result.Settled() {
		return
	}
	q.discarded = true
	close(q.gone)
}

// Result returns a snapshot of the query's current result.  It never blocks.
func (q *Query[T]) Result() Result[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.result
}

// Read returns the current result.  With Options.Suspend, a pending query is
// reported as a *Suspension error instead.
func (q *Query[T]) Read() (Result[T], error) {
	res := q.Result()
	if q.opts.Suspend && res.Loading() {
		return res, &Suspension{done: q.done, gone: q.gone, query: q.describe()}
	}
	return res, nil
}

// Done is closed once the query settles.  It stays open for a discarded query.
func (q *Query[T]) Done() <-chan struct{} {
	return q.done
}

// Wait blocks until the query settles and returns its result.
func (q *Query[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-q.done:
		return q.Result(), nil
	case <-q.gone:
		return q.Result(), ErrDiscarded
	case <-ctx.Done():
		return q.Result(), ctx.Err()
	}
}

// Cancel unmounts the query: the in-flight request is aborted and its result,
// if any arrives, is dropped.  Cancel on a settled query only releases
// resources; the result stays readable.
func (q *Query[T]) Cancel() {
	q.discard()
	q.cancel()
}

func (q *Query[T]) describe() string {
	if name := q.doc.OperationName(); name != "" {
		return name
	}
	fields := q.doc.Fields()
	if len(fields) == 0 {
		return "(empty)"
	}
	return fields[0]
}
