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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gqlview/gqlview/executor"
	"github.com/gqlview/gqlview/users"
)

func TestRender(t *testing.T) {
	tests := map[string]struct {
		result executor.Result[users.Payload]
		want   Displayable
	}{
		"pending": {
			result: executor.PendingResult[users.Payload](),
			want:   Displayable{Kind: KindPlaceholder, Text: "Loading..."},
		},
		"network failure": {
			result: executor.FailedResult[users.Payload]("Failed to fetch"),
			want:   Displayable{Kind: KindText, Text: "Users Error! Failed to fetch"},
		},
		"empty message": {
			result: executor.FailedResult[users.Payload](""),
			want:   Displayable{Kind: KindText, Text: "Users Error! "},
		},
		"two users": {
			result: executor.SucceededResult(users.Payload{Users: []users.User{
				{ID: "1", Name: "Ann", Email: "ann@example.com", Age: 31},
				{ID: "2", Name: "Bob"},
			}}),
			want: Displayable{Kind: KindList, Items: []Item{
				{Key: "1", Text: "Ann"},
				{Key: "2", Text: "Bob"},
			}},
		},
		"one user": {
			result: executor.SucceededResult(users.Payload{Users: []users.User{
				{ID: "1", Name: "Ada", Email: "a@x.com", Age: 30},
			}}),
			want: Displayable{Kind: KindList, Items: []Item{{Key: "1", Text: "Ada"}}},
		},
		"network down": {
			result: executor.FailedResult[users.Payload]("network down"),
			want:   Displayable{Kind: KindText, Text: "Users Error! network down"},
		},
		"no users": {
			result: executor.SucceededResult(users.Payload{Users: []users.User{}}),
			want:   Displayable{Kind: KindList, Items: []Item{}},
		},
		"users absent": {
			result: executor.SucceededResult(users.Payload{}),
			want:   Displayable{Kind: KindList, Items: []Item{}},
		},
		"order is kept": {
			result: executor.SucceededResult(users.Payload{Users: []users.User{
				{ID: "9", Name: "Zed"}, {ID: "3", Name: "Amy"}, {ID: "5", Name: ""},
			}}),
			want: Displayable{Kind: KindList, Items: []Item{
				{Key: "9", Text: "Zed"}, {Key: "3", Text: "Amy"}, {Key: "5", Text: ""},
			}},
		},
	}

	for name, tcase := range tests {
		t.Run(name, func(t *testing.T) {
			got := Render(tcase.result)
			if diff := cmp.Diff(tcase.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
			// Same input, same output.
			require.Equal(t, got, Render(tcase.result))
		})
	}
}

func TestRender_OnlyIDAndName(t *testing.T) {
	a := Render(executor.SucceededResult(users.Payload{Users: []users.User{
		{ID: "1", Name: "Ann", Email: "a@x", Age: 1}}}))
	b := Render(executor.SucceededResult(users.Payload{Users: []users.User{
		{ID: "1", Name: "Ann", Email: "b@y", Age: 99}}}))
	require.Equal(t, a, b)
}

func TestDisplayable_String(t *testing.T) {
	require.Equal(t, `placeholder("Loading...")`, Placeholder(LoadingText).String())
	require.Equal(t, `text("hi")`, Text("hi").String())
	require.Equal(t, "list(2 items)", List(Item{Key: "1"}, Item{Key: "2"}).String())
	require.Equal(t, "Kind(7)", Kind(7).String())
}
