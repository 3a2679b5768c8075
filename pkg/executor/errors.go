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

package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

var (
	// ErrInvalidHeader is raised when a response header cannot be parsed.
	ErrInvalidHeader = errors.New("invalid response header")

	// ErrInvalidResponse is raised when a response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response")
)

// Error is returned for any non-2xx response.  StatusCode is the sole
// classification signal, the remaining fields are informational.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	ActivityID string
}

func (e *Error) Error() string {
	message := fmt.Sprintf("status %d", e.StatusCode)

	if e.Code != "" {
		message += " " + e.Code
	}

	if e.Message != "" {
		message += ": " + e.Message
	}

	if e.ActivityID != "" {
		message += " (activity ID: " + e.ActivityID + ")"
	}

	return message
}

// NewBadRequestError is used for requests that can be rejected without
// a round trip.
func NewBadRequestError(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BadRequest",
		Message:    message,
	}
}

// newErrorFromResponse decodes a service error body, falling back to the
// raw body when it is not the documented shape.
func newErrorFromResponse(statusCode int, activityID string, body []byte) *Error {
	err := &Error{
		StatusCode: statusCode,
		ActivityID: activityID,
	}

	var response openapi.Error

	if jsonErr := json.Unmarshal(body, &response); jsonErr == nil && response.Code != "" {
		err.Code = response.Code
		err.Message = response.Message

		return err
	}

	err.Code = http.StatusText(statusCode)
	err.Message = string(body)

	return err
}

// StatusCode returns the response status code an error carries, or zero.
func StatusCode(err error) int {
	var e *Error

	if !errors.As(err, &e) {
		return 0
	}

	return e.StatusCode
}

// IsBadRequest is true for 400 responses.
func IsBadRequest(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

// IsNotFound is true for 404 responses.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflict is true for 409 responses.
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}
