//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medoffice-booking/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

// AssertSuccessResponse decodes a 2xx body into target when target is non-nil.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "decode body: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the error message contains
// expectedMsg. An empty expectedMsg only checks the body shape.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()
	decodeError(t, w, expectedStatus, expectedMsg)
}

// AssertConflictResponse requires a 409 and returns the slot conflicts it lists.
func AssertConflictResponse(t *testing.T, w *httptest.ResponseRecorder) []httperr.ConflictDetail {
	t.Helper()

	body := decodeError(t, w, http.StatusConflict, "")
	require.NotEmpty(t, body.Detail, "conflict response without detail: %s", w.Body.String())

	var details []httperr.ConflictDetail
	require.NoError(t, json.Unmarshal(body.Detail, &details), "decode conflict detail: %s", body.Detail)
	return details
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) errorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var body errorBody
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode error body: %s", w.Body.String()) {
		return body
	}
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
	return body
}
