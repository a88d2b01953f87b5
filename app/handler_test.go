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

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gqlview/gqlview/executor"
	"github.com/gqlview/gqlview/graphql/api"
	"github.com/gqlview/gqlview/graphql/schema"
	"github.com/gqlview/gqlview/render"
	"github.com/gqlview/gqlview/x"
)

func fixedFetcher(data string, err error) executor.Fetcher {
	return executor.FetcherFunc(func(context.Context, *schema.Document) (json.RawMessage, error) {
		if err != nil {
			return nil, err
		}
		return json.RawMessage(data), nil
	})
}

func TestHandler_Page(t *testing.T) {
	tests := map[string]struct {
		fetcher  executor.Fetcher
		url      string
		contains []string
	}{
		"users": {
			fetcher: fixedFetcher(twoUsers, nil),
			url:     "/",
			contains: []string{
				"<h2>My first Apollo app 🚀</h2>",
				`<div><ul class="ul"><li data-key="1">Ann</li><li data-key="2">Bob</li></ul></div>`,
			},
		},
		"hook mode": {
			fetcher:  fixedFetcher(twoUsers, nil),
			url:      "/?mode=hook",
			contains: []string{`<li data-key="2">Bob</li>`},
		},
		"failure is part of the page": {
			fetcher:  fixedFetcher("", errors.New("Failed to fetch")),
			url:      "/",
			contains: []string{"<div>Users Error! Failed to fetch</div>"},
		},
		"names are escaped": {
			fetcher:  fixedFetcher(`{"users":[{"id":"1","name":"<script>"}]}`, nil),
			url:      "/",
			contains: []string{`<li data-key="1">&lt;script&gt;</li>`},
		},
	}

	for name, tcase := range tests {
		t.Run(name, func(t *testing.T) {
			a := &App{Fetcher: tcase.fetcher, Mode: ModeQuery}
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tcase.url, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			require.NotEmpty(t, rec.Header().Get(api.RequestIDHeader))
			for _, want := range tcase.contains {
				require.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestHandler_Frames(t *testing.T) {
	a := &App{Fetcher: fixedFetcher(twoUsers, nil), Mode: ModeQuery}
	r := httptest.NewRequest(http.MethodGet, "/users.json?mode=hook", nil)
	r.Header.Set(api.RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var out Frames
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, ModeHook, out.Mode)
	require.Equal(t, "req-7", out.RequestID)
	require.Empty(t, out.Error)
	require.NotEmpty(t, out.Frames)
	require.Equal(t, usersList, out.Frames[len(out.Frames)-1])
	if len(out.Frames) == 2 {
		require.Equal(t, render.Text(HookFallback), out.Frames[0])
	}
}

func TestHandler_BadRequests(t *testing.T) {
	a := &App{Fetcher: fixedFetcher(twoUsers, nil)}

	tests := map[string]struct {
		method string
		url    string
		code   int
	}{
		"bad mode":     {method: http.MethodGet, url: "/?mode=render", code: http.StatusBadRequest},
		"post":         {method: http.MethodPost, url: "/users.json", code: http.StatusMethodNotAllowed},
		"unknown path": {method: http.MethodGet, url: "/users", code: http.StatusNotFound},
	}

	for name, tcase := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, httptest.NewRequest(tcase.method, tcase.url, nil))
			require.Equal(t, tcase.code, rec.Code)
		})
	}
}

func TestHandler_AccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	a := &App{
		Fetcher:   fixedFetcher("", errors.New("Failed to fetch")),
		AccessLog: x.NewLogger(zap.New(core)),
	}

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessage("users page").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, rec.Header().Get(api.RequestIDHeader), fields["requestID"])
	require.Equal(t, "/users.json", fields["path"])
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
}
