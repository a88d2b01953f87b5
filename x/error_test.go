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

package x

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, Wrapf(nil, "reading config"))

	err := Wrapf(errors.New("no such file"), "reading %s", "config.yml")
	require.EqualError(t, err, "reading config.yml: no such file")
}

func TestGqlErrorList_Error(t *testing.T) {
	tests := map[string]struct {
		errs GqlErrorList
		want string
	}{
		"empty": {want: ""},
		"one error": {
			errs: GqlErrorList{GqlErrorf("users failed")},
			want: "users failed",
		},
		"with locations": {
			errs: GqlErrorList{GqlErrorf("bad field %q", "nmae").
				WithLocations(Location{Line: 1, Column: 11})},
			want: `bad field "nmae" (Locations: [{Line: 1, Column: 11}])`,
		},
		"many errors": {
			errs: GqlErrorList{GqlErrorf("first"), GqlErrorf("second")},
			want: "first\nsecond",
		},
	}

	for name, tcase := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tcase.want, tcase.errs.Error())
		})
	}
}

func TestGqlError_JSON(t *testing.T) {
	var errs GqlErrorList
	err := json.Unmarshal([]byte(`[{"message":"boom","locations":[{"line":2,"column":3}],
		"path":["users",0],"extensions":{"code":"X"}}]`), &errs)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	require.Equal(t, "boom", errs[0].Message)
	require.Equal(t, []Location{{Line: 2, Column: 3}}, errs[0].Locations)
	require.Equal(t, "X", errs[0].Extensions["code"])

	var nilErr *GqlError
	require.Nil(t, nilErr.WithPath([]interface{}{"users"}))
	require.Equal(t, "", nilErr.Error())
}
