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

// Package errors provides HTTP errors for the emulator.  Errors are built
// fluently at the point of failure and rendered once by HandleError.  The
// cause is logged but never returned to the client, the description is.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"runtime"
	"strings"

	"github.com/go-chi/render"

	"github.com/unikorn-cloud/docdb/pkg/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Error is an HTTP error.
type Error struct {
	status      int
	code        string
	description string
	cause       error
}

func newError(status int, description string) *Error {
	return &Error{
		status:      status,
		code:        strings.ReplaceAll(http.StatusText(status), " ", ""),
		description: description,
	}
}

// NewInvalidRequestError is raised for malformed or disallowed requests.
func NewInvalidRequestError() *Error {
	return newError(http.StatusBadRequest, "The request is invalid.")
}

// NewResourceMissingError is raised when a link does not resolve.
func NewResourceMissingError(kind string) *Error {
	return newError(http.StatusNotFound, fmt.Sprintf("The requested %s does not exist.", kind))
}

// NewConflictError is raised when a resource ID is already in use.
func NewConflictError() *Error {
	return newError(http.StatusConflict, "The resource already exists.")
}

// NewInternalError is raised for anything unexpected.
func NewInternalError() *Error {
	return newError(http.StatusInternalServerError, "An internal error occurred.")
}

func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

func (e *Error) WithCausef(format string, a ...any) *Error {
	e.cause = fmt.Errorf(format, a...)
	return e
}

//nolint:err113
func (e *Error) WithSimpleCause(message string) *Error {
	e.cause = errors.New(message)
	return e
}

//nolint:err113
func (e *Error) WithSimpleCausef(format string, a ...any) *Error {
	e.cause = fmt.Errorf(format, a...)
	return e
}

// WithErrorDescription sets the message returned to the client.
func (e *Error) WithErrorDescription(description string) *Error {
	e.description = description
	return e
}

// Prefixed prepends the calling function's name to the cause so the log
// identifies where the error was raised.
func (e *Error) Prefixed() *Error {
	if e.cause == nil {
		return e
	}

	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return e
	}

	if f := runtime.FuncForPC(pc); f != nil {
		e.cause = fmt.Errorf("%s: %w", path.Base(f.Name()), e.cause)
	}

	return e
}

// StatusCode returns the HTTP status.
func (e *Error) StatusCode() int {
	return e.status
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.description
	}

	return e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HandleError renders the error.  Anything that isn't an *Error is
// reported as an internal error.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := log.FromContext(r.Context())

	var httpError *Error

	if !errors.As(err, &httpError) {
		httpError = NewInternalError().WithCause(err)
	}

	if httpError.status >= http.StatusInternalServerError {
		log.Error(httpError, "request failed", "status", httpError.status)
	} else {
		log.V(1).Info("request rejected", "status", httpError.status, "error", httpError.Error())
	}

	body := &openapi.Error{
		Code:    httpError.code,
		Message: httpError.description,
	}

	render.Status(r, httpError.status)
	render.JSON(w, r, body)
}
