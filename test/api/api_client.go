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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/onsi/ginkgo/v2"
)

//go:generate mockgen -source=api_client.go -destination=mock/doer.go -package=mock

// Doer executes a single HTTP request, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a fully read HTTP response. The client never interprets the
// status code, that is left to the caller.
type Response struct {
	StatusCode  int
	Header      http.Header
	Body        []byte
	Request     *http.Request
	Duration    time.Duration
	TraceParent string
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// TraceID returns the trace ID sent with the request, use it to search
// server side logs.
func (r *Response) TraceID() string {
	return extractTraceID(r.TraceParent)
}

// Param is a single query parameter. A nil value, or a nil pointer, slice
// or map, is omitted from the query string.
type Param struct {
	Name  string
	Value any
}

// QueryParam is shorthand for constructing a Param.
func QueryParam(name string, value any) Param {
	return Param{Name: name, Value: value}
}

type APIClient struct {
	baseURL string
	client  Doer
	apiKey  string
	config  *TestConfig
	log     logr.Logger
}

// NewAPIClient creates a client from the environment, an empty base URL
// selects the configured one.
func NewAPIClient(baseURL string) (*APIClient, error) {
	config, err := LoadTestConfig()
	if err != nil {
		return nil, err
	}

	if baseURL == "" {
		baseURL = config.BaseURL
	}

	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}

	return newAPIClientWithConfig(config, baseURL), nil
}

func NewAPIClientWithConfig(config *TestConfig) *APIClient {
	return newAPIClientWithConfig(config, config.BaseURL)
}

// common constructor logic.
func newAPIClientWithConfig(config *TestConfig, baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		apiKey: config.APIKey,
		config: config,
		log:    ginkgo.GinkgoLogr.WithName("petstore"),
	}
}

func (c *APIClient) BaseURL() string {
	return c.baseURL
}

func (c *APIClient) SetAPIKey(key string) {
	c.apiKey = key
}

// SetHTTPClient replaces the transport, used to inject fakes.
func (c *APIClient) SetHTTPClient(client Doer) {
	c.client = client
}

func (c *APIClient) SetLogger(log logr.Logger) {
	c.log = log
}

// Get issues a GET, params are appended to the query string in order.
func (c *APIClient) Get(ctx context.Context, endpoint string, params ...Param) (*Response, error) {
	query, err := encodeQuery(params)
	if err != nil {
		return nil, fmt.Errorf("encoding query parameters: %w", err)
	}

	if query != "" {
		endpoint += "?" + query
	}

	return c.doRequest(ctx, http.MethodGet, endpoint, nil, nil)
}

// Post issues a POST with data encoded as JSON.
func (c *APIClient) Post(ctx context.Context, endpoint string, data any) (*Response, error) {
	return c.doJSONRequest(ctx, http.MethodPost, endpoint, data)
}

// Put issues a PUT with data encoded as JSON.
func (c *APIClient) Put(ctx context.Context, endpoint string, data any) (*Response, error) {
	return c.doJSONRequest(ctx, http.MethodPut, endpoint, data)
}

// Delete issues a DELETE with no body.
func (c *APIClient) Delete(ctx context.Context, endpoint string) (*Response, error) {
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *APIClient) doJSONRequest(ctx context.Context, method, endpoint string, data any) (*Response, error) {
	var body io.Reader

	if data != nil {
		bodyBytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(bodyBytes)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	return c.doRequest(ctx, method, endpoint, body, headers)
}

// encodeQuery form encodes parameters, slices explode into repeated keys.
func encodeQuery(params []Param) (string, error) {
	parts := make([]string, 0, len(params))

	for _, param := range params {
		if isNil(param.Value) {
			continue
		}

		part, err := runtime.StyleParamWithLocation("form", true, param.Name, runtime.ParamLocationQuery, param.Value)
		if err != nil {
			return "", fmt.Errorf("parameter %s: %w", param.Name, err)
		}

		parts = append(parts, part)
	}

	return strings.Join(parts, "&"), nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	//nolint:exhaustive // only nillable kinds matter
	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.log.Error(err, context, "method", method, "path", path, "duration", duration, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.log.Info("use the trace ID to search logs for this request", "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID, one per request so a failure
// can be found in the server logs.
func generateTraceID() string {
	id := uuid.New()

	return hex.EncodeToString(id[:])
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	id := uuid.New()

	return hex.EncodeToString(id[:8])
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

func (c *APIClient) doRequest(ctx context.Context, method, path string, body io.Reader, headers http.Header) (*Response, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")

	if c.apiKey != "" {
		req.Header.Set("api_key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests || c.config.DebugLogging {
		c.log.Info("request complete", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if (c.config.LogResponses || c.config.DebugLogging) && len(respBody) > 0 {
		c.log.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Body:        respBody,
		Request:     req,
		Duration:    duration,
		TraceParent: traceParent,
	}, nil
}
