package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Response records the outcome of a request served through the harness.
type Response struct {
	*httptest.ResponseRecorder
}

// PerformRequest serves a request through the handler and returns the
// recorded response. A body that is not already an io.Reader or string is
// marshalled to JSON and the content type set accordingly.
func PerformRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *Response {
	t.Helper()
	return PerformRequestWithHeaders(t, h, method, path, body, nil)
}

// PerformRequestWithHeaders is PerformRequest with extra request headers.
func PerformRequestWithHeaders(t *testing.T, h http.Handler, method, path string, body interface{}, headers map[string]string) *Response {
	t.Helper()

	var reader io.Reader
	isJSON := false
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	case string:
		reader = strings.NewReader(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err, "Failed to marshal request body")
		reader = bytes.NewReader(data)
		isJSON = true
	}

	req := httptest.NewRequest(method, path, reader)
	if isJSON {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return &Response{ResponseRecorder: w}
}

// DecodeJSON parses the response body into out.
func (r *Response) DecodeJSON(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), out), "Failed to parse JSON response")
}

// Envelope returns the decoded API response envelope.
func (r *Response) Envelope(t *testing.T) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	r.DecodeJSON(t, &result)
	return result
}

// AssertSuccess verifies the status code and a success envelope.
func (r *Response) AssertSuccess(t *testing.T, status int) {
	t.Helper()

	require.Equal(t, status, r.Code, "Unexpected status code")
	env := r.Envelope(t)
	success, ok := env["success"].(bool)
	require.True(t, ok, "Expected a success flag in the response")
	assert.True(t, success, "Expected success to be true")
	assert.Nil(t, env["error"], "Expected no error")
}

// AssertError verifies the status code and the error code carried in the
// envelope.
func (r *Response) AssertError(t *testing.T, status int, code string) {
	t.Helper()

	require.Equal(t, status, r.Code, "Unexpected status code")
	env := r.Envelope(t)

	errMap, ok := env["error"].(map[string]interface{})
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, code, errMap["code"], "Unexpected error code")
}
