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

import "fmt"

// State is the lifecycle state of a query result.
type State int

const (
	// Pending means the fetch is in flight and there is no data yet.
	Pending State = iota
	// Failed means the fetch ended with an error.
	Failed
	// Succeeded means the fetch completed with data.
	Succeeded
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is exactly one of Pending, Failed(message) or Succeeded(data).  The
// zero value is Pending.
type Result[T any] struct {
	state   State
	message string
	data    T
}

// PendingResult returns the Pending result.
func PendingResult[T any]() Result[T] {
	return Result[T]{state: Pending}
}

// FailedResult returns Failed(message).  The message is kept verbatim.
func FailedResult[T any](message string) Result[T] {
	return Result[T]{state: Failed, message: message}
}

// SucceededResult returns Succeeded(data).
func SucceededResult[T any](data T) Result[T] {
	return Result[T]{state: Succeeded, data: data}
}

func (r Result[T]) State() State {
	return r.state
}

// Loading reports whether r is Pending.
func (r Result[T]) Loading() bool {
	return r.state == Pending
}

// Settled reports whether r has left Pending.
func (r Result[T]) Settled() bool {
	return r.state != Pending
}

// Message is the error text of a Failed result and empty otherwise.
func (r Result[T]) Message() string {
	return r.message
}

// Data returns the data of a Succeeded result.  ok is false in the other states.
func (r Result[T]) Data() (data T, ok bool) {
	if r.state != Succeeded {
		var zero T
		return zero, false
	}
	return r.data, true
}

func (r Result[T]) String() string {
	if r.state == Failed {
		return fmt.Sprintf("failed(%s)", r.message)
	}
	return r.state.String()
}
