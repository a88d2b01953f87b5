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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"go.opencensus.io/stats"
	"go.opencensus.io/trace"

	"github.com/gqlview/gqlview/graphql/schema"
	"github.com/gqlview/gqlview/x"
)

// GraphQLResponse is a GraphQL response as read by the client.
type GraphQLResponse struct {
	Data       json.RawMessage        `json:"data,omitempty"`
	Errors     x.GqlErrorList         `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Client is a Fetcher that talks GraphQL over HTTP to a single endpoint.  It
// sends each document once; it neither retries nor caches.
type Client struct {
	endpoint string
	header   http.Header
	hc       *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout bounds every request the client makes.  Zero means no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.hc.Timeout = d
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.header.Add(key, value)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// NewClient returns a Client for the GraphQL endpoint at uri.
func NewClient(uri string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid GraphQL endpoint %q", uri)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("invalid GraphQL endpoint %q: scheme must be http or https", uri)
	}
	if u.Host == "" {
		return nil, errors.Errorf("invalid GraphQL endpoint %q: missing host", uri)
	}

	c := &Client{
		endpoint: u.String(),
		header:   http.Header{},
		hc:       &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the URI requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch posts doc to the endpoint and returns the response data.  GraphQL
// errors in the response come back as an x.GqlErrorList.
func (c *Client) Fetch(ctx context.Context, doc *schema.Document) (json.RawMessage, error) {
	ctx = x.WithMethod(ctx, "executor.Fetch")
	ctx, span := trace.StartSpan(ctx, "executor.Fetch")
	defer span.End()

	start := time.Now()
	data, err := c.fetch(ctx, doc)
	stats.Record(x.WithStatus(ctx, err), x.NumQueries.M(1), x.LatencyMs.M(x.SinceMs(start)))
	if err != nil {
		span.SetStatus(trace.Status{Code: trace.StatusCodeUnknown, Message: err.Error()})
		glog.V(2).Infof("Query to %s failed: %v", c.endpoint, err)
	}
	return data, err
}

func (c *Client) fetch(ctx context.Context, doc *schema.Document) (json.RawMessage, error) {
	reqBody, err := json.Marshal(doc.Request())
	if err != nil {
		return nil, errors.Wrap(err, "error while marshalling GraphQL request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		bytes.NewReader(reqBody))
	if err != nil {
		return nil, errors.Wrapf(err, "error building request for endpoint [%v]", c.endpoint)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Setting Accept-Encoding ourselves turns off net/http's transparent
	// decompression, so gzip bodies are decoded below.
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			glog.Warningf("error closing response body: %v", err)
		}
	}()

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to parse gzip")
		}
		defer zr.Close()
		body = zr
	}

	respBody, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading response body: url: [%v]", c.endpoint)
	}

	var gqlResp GraphQLResponse
	jsonErr := json.Unmarshal(respBody, &gqlResp)
	if jsonErr == nil && len(gqlResp.Errors) > 0 {
		return nil, gqlResp.Errors
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Message: fmt.Sprintf(
			"Response not successful: Received status code %d", resp.StatusCode)}
	}
	if jsonErr != nil {
		return nil, errors.Wrap(jsonErr, "error unmarshalling GraphQL response")
	}

	glog.V(2).Infof("Fetched %s from %s", humanize.Bytes(uint64(len(respBody))), c.endpoint)
	return gqlResp.Data, nil
}
