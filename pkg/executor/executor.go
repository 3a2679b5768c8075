/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package executor performs single request/response round trips against the
// document database service.  It does not retry: any failure is returned
// to the caller, typed as an *Error where the service responded.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/links"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Request is a single operation on a resource link.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Link is a name or resource ID based link, leading and trailing
	// separators are optional.
	Link string
	// Body is JSON encoded when set, unless it is already a []byte.
	Body any
	// ContentType overrides the default JSON media type.
	ContentType string
	// Headers are additional request headers e.g. request options.
	Headers http.Header
}

// Response is a successful (2xx) response.
type Response struct {
	StatusCode  int
	Headers     *ResponseHeaders
	Body        []byte
	TraceParent string
	Duration    time.Duration
}

// Decode unmarshals the response body.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	return nil
}

//go:generate mockgen -source=executor.go -destination=mock/interfaces.go -package=mock

// Executor performs a request, returning an *Error for non-2xx responses.
type Executor interface {
	Execute(ctx context.Context, request *Request) (*Response, error)
}

// Options configure the HTTP executor.
type Options struct {
	// Endpoint is the service base URL.
	Endpoint string
	// AuthToken, when set, is sent as a bearer token.
	AuthToken string
	// RequestTimeout bounds each individual round trip.
	RequestTimeout time.Duration
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.Endpoint, "endpoint", "http://localhost:8081", "Document database service endpoint")
	f.StringVar(&o.AuthToken, "auth-token", "", "Bearer token sent with every request")
	f.DurationVar(&o.RequestTimeout, "request-timeout", 30*time.Second, "Timeout for each request")
}

// HTTPExecutor executes requests over HTTP.
type HTTPExecutor struct {
	baseURL   string
	client    *http.Client
	authToken string
}

// Ensure the interface is implemented.
var _ Executor = &HTTPExecutor{}

// New returns an HTTP executor.
func New(options *Options) *HTTPExecutor {
	return NewWithClient(options, &http.Client{
		Timeout: options.RequestTimeout,
	})
}

// NewWithClient returns an HTTP executor using the provided HTTP client,
// the request timeout option is ignored.
func NewWithClient(options *Options, client *http.Client) *HTTPExecutor {
	return &HTTPExecutor{
		baseURL:   strings.TrimSuffix(options.Endpoint, "/"),
		client:    client,
		authToken: options.AuthToken,
	}
}

func (e *HTTPExecutor) newRequest(ctx context.Context, request *Request, traceParent string) (*http.Request, error) {
	var body io.Reader

	if request.Body != nil {
		data, ok := request.Body.([]byte)
		if !ok {
			var err error

			if data, err = json.Marshal(request.Body); err != nil {
				return nil, fmt.Errorf("marshaling request body: %w", err)
			}
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, request.Method, e.baseURL+links.EscapedPath(request.Link), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range request.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	req.Header.Set(constants.HeaderTraceParent, traceParent)
	req.Header.Set(constants.HeaderTraceState, "docdb=sdk")
	req.Header.Set(constants.HeaderVersion, constants.APIVersion)
	req.Header.Set(constants.HeaderUserAgent, constants.VersionString())
	req.Header.Set("Accept", constants.MediaTypeJSON)

	if body != nil {
		contentType := request.ContentType
		if contentType == "" {
			contentType = constants.MediaTypeJSON
		}

		req.Header.Set(constants.HeaderContentType, contentType)
	}

	if e.authToken != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+e.authToken)
	}

	return req, nil
}

// Execute performs a single round trip.
func (e *HTTPExecutor) Execute(ctx context.Context, request *Request) (*Response, error) {
	log := log.FromContext(ctx).WithValues("method", request.Method, "link", request.Link)

	traceParent := NewTraceParent()

	req, err := e.newRequest(ctx, request, traceParent)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.V(1).Info("request failed", "duration", duration, "traceID", TraceID(traceParent), "error", err)

		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	log.V(1).Info("request complete", "status", resp.StatusCode, "duration", duration, "traceID", TraceID(traceParent))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newErrorFromResponse(resp.StatusCode, resp.Header.Get(constants.HeaderActivityID), body)
	}

	headers, err := parseResponseHeaders(resp.Header)
	if err != nil {
		return nil, err
	}

	response := &Response{
		StatusCode:  resp.StatusCode,
		Headers:     headers,
		Body:        body,
		TraceParent: traceParent,
		Duration:    duration,
	}

	return response, nil
}
