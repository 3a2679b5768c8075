/*
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

package errors_test

import (
	"encoding/json"
	goerrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/errors"
)

var errCause = goerrors.New("boom")

func handle(t *testing.T, err error) (int, *openapi.Error) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	errors.HandleError(w, r, err)

	var body openapi.Error

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return w.Code, &body
}

// TestHandleError ensures errors render with the right status and code.
func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
		code   string
	}{
		{err: errors.NewInvalidRequestError(), status: http.StatusBadRequest, code: "BadRequest"},
		{err: errors.NewResourceMissingError("offer"), status: http.StatusNotFound, code: "NotFound"},
		{err: errors.NewConflictError(), status: http.StatusConflict, code: "Conflict"},
		{err: errors.NewInternalError(), status: http.StatusInternalServerError, code: "InternalServerError"},
		{err: errCause, status: http.StatusInternalServerError, code: "InternalServerError"},
	}

	for _, test := range tests {
		status, body := handle(t, test.err)
		require.Equal(t, test.status, status)
		require.Equal(t, test.code, body.Code)
		require.NotEmpty(t, body.Message)
	}
}

// TestCauseNotLeaked ensures causes are logged, descriptions returned.
func TestCauseNotLeaked(t *testing.T) {
	t.Parallel()

	err := errors.NewInvalidRequestError().
		WithCause(errCause).
		WithErrorDescription("The offer is invalid.").
		Prefixed()

	require.ErrorIs(t, err, errCause)
	require.Contains(t, err.Error(), "TestCauseNotLeaked")

	_, body := handle(t, err)
	require.Equal(t, "The offer is invalid.", body.Message)
}
