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

// Package render turns the result of the users query into output.
//
// The state machine lives in Render.  Watch and UseUsers are the two ways a
// view can drive it: by observing every state of a query through a callback,
// or by reading the query directly and letting a Boundary handle suspension.
package render

import (
	"github.com/gqlview/gqlview/executor"
	"github.com/gqlview/gqlview/users"
)

const (
	// LoadingText is shown while the users query is pending.
	LoadingText = "Loading..."
	// ErrorPrefix starts the text shown when the users query failed.
	ErrorPrefix = "Users Error! "
)

// Render maps a users result to its output.  It is a pure function of r.
//
//	Pending           -> placeholder "Loading..."
//	Failed(m)         -> text "Users Error! " + m
//	Succeeded(data)   -> list keyed by user id, showing user names
//
// Only id and name are shown; email and age are fetched but never rendered.
func Render(r executor.Result[users.Payload]) Displayable {
	switch r.State() {
	case executor.Failed:
		return Text(ErrorPrefix + r.Message())
	case executor.Succeeded:
		data, _ := r.Data()
		items := make([]Item, 0, len(data.Users))
		for _, u := range data.Users {
			items = append(items, Item{Key: u.ID.String(), Text: u.Name})
		}
		return List(items...)
	default:
		return Placeholder(LoadingText)
	}
}
