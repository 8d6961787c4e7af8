package bandsintown

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// errorResponse is the payload the API sends for rejected requests.
type errorResponse struct {
	Errors []string `json:"errors"`
}

// messageResponse is the payload of write operations that do not return
// a resource.
type messageResponse struct {
	Message string `json:"message"`
}

// requestURL builds {base}/{resource}/{method}?{query}. Empty path parts are
// skipped so a blank method leaves no trailing slash.
func (c *Client) requestURL(resource, method string, params Params) (string, error) {
	query, err := Encode(params, c.appID)
	if err != nil {
		return "", err
	}

	var path []string
	for _, p := range []string{resource, method} {
		if p != "" {
			path = append(path, p)
		}
	}

	return c.baseURL + "/" + strings.Join(path, "/") + "?" + query, nil
}

// get makes a GET request with params encoded into the query string.
func (c *Client) get(ctx context.Context, resource, method string, params Params) ([]byte, error) {
	return c.request(ctx, http.MethodGet, resource, method, params, nil)
}

// post makes a POST request with body sent as JSON. Only the fixed
// parameters go into the query string.
func (c *Client) post(ctx context.Context, resource, method string, body interface{}) ([]byte, error) {
	return c.request(ctx, http.MethodPost, resource, method, Params{}, body)
}

// request sends a single HTTP request to the API and returns the response
// body once it has been checked for API errors.
//
// There is no retry: any failure is returned to the caller.
func (c *Client) request(ctx context.Context, httpMethod, resource, method string, params Params, body interface{}) ([]byte, error) {
	if httpMethod != http.MethodGet && httpMethod != http.MethodPost {
		return nil, ErrUnsupportedMethod
	}

	reqURL, err := c.requestURL(resource, method, params)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if httpMethod == http.MethodPost {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, httpMethod, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "bandsintown-go/1.0")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logDebugf("bandsintown: %s %s", httpMethod, req.URL.EscapedPath())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	respBody, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if err := checkForErrors(resp.StatusCode, respBody); err != nil {
		c.logDebugf("bandsintown: %s %s failed: %v", httpMethod, req.URL.EscapedPath(), err)
		return nil, err
	}

	c.logDebugf("bandsintown: %s %s succeeded (%d)", httpMethod, req.URL.EscapedPath(), resp.StatusCode)
	return respBody, nil
}

// checkForErrors maps an "errors" payload, or a non-2xx status, to *APIError.
//
// The API reports errors in the body of 4xx responses as well as in some
// 200 responses, so the payload is checked whatever the status.
func checkForErrors(statusCode int, body []byte) error {
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Errors != nil {
		return &APIError{StatusCode: statusCode, Messages: payload.Errors}
	}

	if statusCode < 200 || statusCode > 299 {
		apiErr := &APIError{StatusCode: statusCode}
		if text := strings.TrimSpace(string(body)); text != "" && !json.Valid(body) {
			apiErr.Messages = []string{text}
		}
		return apiErr
	}

	return nil
}

// decodeJSON unmarshals a successful response body into v.
func decodeJSON(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &MalformedResponseError{Content: body, Err: err}
	}
	return nil
}

// decodeMessage extracts the "message" field of a write response.
func decodeMessage(body []byte) (string, error) {
	var resp messageResponse
	if err := decodeJSON(body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
