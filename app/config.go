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
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/gqlview/gqlview/executor"
	"github.com/gqlview/gqlview/x"
)

// DefaultEndpoint is the GraphQL server the page talks to unless told otherwise.
const DefaultEndpoint = "https://qk9qvkw6nw.sse.codesandbox.io/"

// ParseHeaders reads extra request headers from a config value.  Flags and the
// environment give "key:value" strings (comma separated in a single string);
// a config file may give a map instead.
func ParseHeaders(v interface{}) (http.Header, error) {
	h := make(http.Header)
	switch val := v.(type) {
	case nil:
		return h, nil
	case string:
		if strings.TrimSpace(val) == "" {
			return h, nil
		}
		return h, addHeaders(h, strings.Split(val, ","))
	case map[string]interface{}, map[string]string, map[interface{}]interface{}:
		m, err := cast.ToStringMapStringE(val)
		if err != nil {
			return nil, errors.Wrap(err, "while reading headers")
		}
		for k, v := range m {
			h.Add(strings.TrimSpace(k), strings.TrimSpace(v))
		}
		return h, nil
	default:
		kvs, err := cast.ToStringSliceE(val)
		if err != nil {
			return nil, errors.Wrap(err, "while reading headers")
		}
		return h, addHeaders(h, kvs)
	}
}

func addHeaders(h http.Header, kvs []string) error {
	for _, kv := range kvs {
		if strings.TrimSpace(kv) == "" {
			continue
		}
		k, v, ok := strings.Cut(kv, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return errors.Errorf("invalid header %q, want key:value", kv)
		}
		h.Add(strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return nil
}

// NewClient builds the client the page fetches users with.
func NewClient(endpoint string, timeout time.Duration, header http.Header) (*executor.Client,
	error) {

	opts := []executor.ClientOption{executor.WithTimeout(timeout)}
	for k, vs := range header {
		for _, v := range vs {
			opts = append(opts, executor.WithHeader(k, v))
		}
	}
	c, err := executor.NewClient(endpoint, opts...)
	return c, x.Wrapf(err, "while building GraphQL client for %s", endpoint)
}
