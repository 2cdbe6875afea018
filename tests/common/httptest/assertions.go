//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"dj-booking-engine/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccessResponse stops the test on a status mismatch so later field checks never run on an error body.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	require.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	if target == nil || w.Body.Len() == 0 {
		return
	}
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), target), "response is not valid JSON: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the message contains msgPart, then returns the body.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, msgPart string) httperr.Response {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var resp httperr.Response
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &resp), "error body is not valid JSON: %s", w.Body.String())
	if msgPart != "" {
		assert.Contains(t, resp.Error.Message, msgPart)
	}
	return resp
}
