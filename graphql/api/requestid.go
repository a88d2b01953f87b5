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

package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on the way in and on the way out.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// WithRequestID attaches a request ID to ctx.  The ID in r's RequestIDHeader is
// kept if present, otherwise a new one is made.
func WithRequestID(ctx context.Context, r *http.Request) (context.Context, string) {
	id := ""
	if r != nil {
		id = r.Header.Get(RequestIDHeader)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey{}, id), id
}

// RequestID returns the ID attached by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
