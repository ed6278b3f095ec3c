//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorBody mirrors httperr.Response on the wire.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail struct {
		Reason string `json:"reason"`
	} `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "decode response: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and, when expectedMsg is set, that
// the error message contains it.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String())

	var body errorBody
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode error response: %s", w.Body.String()) {
		return
	}
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
}

// Reason returns detail.reason from an error response.
func Reason(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Detail.Reason
}

func AssertReason(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()
	assert.Equal(t, reason, Reason(t, w), "response: %s", w.Body.String())
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s", k)
	}
}
