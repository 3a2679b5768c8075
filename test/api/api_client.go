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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/docdb/pkg/client"
	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

// loggingExecutor reports every round trip to the ginkgo writer with its
// trace ID, so failures can be correlated with service logs.
type loggingExecutor struct {
	delegate executor.Executor
	config   *TestConfig
}

func (e *loggingExecutor) Execute(ctx context.Context, request *executor.Request) (*executor.Response, error) {
	start := time.Now()

	response, err := e.delegate.Execute(ctx, request)
	if err != nil {
		ginkgo.GinkgoWriter.Printf("[%s %s] ERROR duration=%s error=%v\n", request.Method, request.Link, time.Since(start), err)
		return nil, err
	}

	if e.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", request.Method, request.Link, response.StatusCode, response.Duration, response.TraceParent)
		ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request\n", executor.TraceID(response.TraceParent))
	}

	if e.config.LogResponses && len(response.Body) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", request.Method, request.Link, string(response.Body))
	}

	return response, nil
}

// APIClient drives the service through the SDK, with raw HTTP access for
// requests the SDK refuses to send.
type APIClient struct {
	*client.Client

	baseURL   string
	http      *http.Client
	authToken string
	endpoints *Endpoints
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	options := &executor.Options{
		Endpoint:       config.BaseURL,
		AuthToken:      config.AuthToken,
		RequestTimeout: config.RequestTimeout,
	}

	return &APIClient{
		Client: client.NewWithExecutor(&loggingExecutor{
			delegate: executor.New(options),
			config:   config,
		}),
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		http: &http.Client{
			Timeout: config.RequestTimeout,
		},
		authToken: config.AuthToken,
		endpoints: NewEndpoints(),
	}
}

// doRequest performs a raw request outside of the SDK, returning the status
// code and body.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := executor.NewTraceParent()
	req.Header.Set(constants.HeaderTraceParent, traceParent)
	req.Header.Set(constants.HeaderTraceState, "test-automation=ginkgo")
	req.Header.Set(constants.HeaderVersion, constants.APIVersion)

	if body != nil {
		req.Header.Set(constants.HeaderContentType, constants.MediaTypeJSON)
	}

	if c.authToken != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		ginkgo.GinkgoWriter.Printf("[%s %s] ERROR traceparent=%s error=%v\n", method, path, traceParent, err)
		return 0, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// ReplaceOfferRaw sends an offer replacement without any client side
// validation, it is used to check the service rejects malformed offers.
func (c *APIClient) ReplaceOfferRaw(ctx context.Context, offerID string, offer *openapi.Offer) (int, *openapi.Error, error) {
	//nolint:bodyclose // response body is closed in doRequest
	status, body, err := c.doRequest(ctx, http.MethodPut, c.endpoints.Offer(offerID), offer)
	if err != nil {
		return 0, nil, fmt.Errorf("replacing offer: %w", err)
	}

	if status == http.StatusOK {
		return status, nil, nil
	}

	var serviceError openapi.Error
	if err := json.Unmarshal(body, &serviceError); err != nil {
		return status, nil, fmt.Errorf("unmarshaling error response: %w", err)
	}

	return status, &serviceError, nil
}

// RemoveAllDatabases deletes every database visible to the client.
func (c *APIClient) RemoveAllDatabases(ctx context.Context) error {
	databases, err := c.ReadDatabases(nil).ToSlice(ctx)
	if err != nil {
		return fmt.Errorf("listing databases: %w", err)
	}

	for i := range databases {
		if err := c.DeleteDatabase(ctx, databases[i].SelfLink); err != nil && !executor.IsNotFound(err) {
			return fmt.Errorf("deleting database %s: %w", databases[i].ID, err)
		}
	}

	return nil
}
