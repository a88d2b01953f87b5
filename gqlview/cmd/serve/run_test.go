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

package serve

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/gqlview/gqlview/graphql/resolve"
	"github.com/gqlview/gqlview/graphql/web"
	"github.com/gqlview/gqlview/users"
)

func TestSetup(t *testing.T) {
	store := resolve.NewStore(users.User{ID: "1", Name: "Ann"})
	gql := httptest.NewServer(web.NewServer(resolve.New(store, resolve.Options{})).HTTPHandler())
	defer gql.Close()

	conf := viper.New()
	conf.Set("endpoint", gql.URL)
	conf.Set("mode", "hook")
	conf.Set("timeout", 5*time.Second)
	conf.Set("trace", 1.0)

	h, cleanup, err := setup(conf)
	require.NoError(t, err)
	defer cleanup()

	tests := map[string]struct {
		path     string
		contains string
	}{
		"page":    {path: "/", contains: `<li data-key="1">Ann</li>`},
		"frames":  {path: "/users.json", contains: `"mode":"hook"`},
		"metrics": {path: "/debug/prometheus_metrics", contains: "gqlview_"},
		"zpages":  {path: "/z/tracez", contains: "app.Render"},
	}

	// The page load comes first so metrics and traces have something to show.
	for _, name := range []string{"page", "frames", "metrics", "zpages"} {
		tcase := tests[name]
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tcase.path, nil))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Contains(t, rec.Body.String(), tcase.contains)
		})
	}
}

func TestSetup_BadMode(t *testing.T) {
	conf := viper.New()
	conf.Set("endpoint", "http://localhost:4000/")
	conf.Set("mode", "render")

	_, _, err := setup(conf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid mode")
}
