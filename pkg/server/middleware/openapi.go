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

package middleware

import (
	goerrors "errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/errors"
)

//nolint:gochecknoinits
func init() {
	// Queries are JSON, just with a different media type.
	openapi3filter.RegisterBodyDecoder(constants.MediaTypeQueryJSON, openapi3filter.JSONBodyDecoder)
}

// Validator checks requests against the OpenAPI document before they
// reach a handler.
type Validator struct {
	router routers.Router
}

// NewValidator returns a validator for the embedded OpenAPI document.
func NewValidator() (*Validator, error) {
	doc, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	v := &Validator{
		router: router,
	}

	return v, nil
}

func (v *Validator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, params, err := v.router.FindRoute(r)
		if err != nil {
			if goerrors.Is(err, routers.ErrPathNotFound) {
				errors.HandleError(w, r, errors.NewResourceMissingError("resource").WithCause(err))
				return
			}

			errors.HandleError(w, r, errors.NewInvalidRequestError().
				WithCause(err).
				WithErrorDescription("The request method is not supported by the resource."))

			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    r,
			PathParams: params,
			Route:      route,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}

		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			errors.HandleError(w, r, errors.NewInvalidRequestError().
				WithCausef("request validation failed: %w", err).
				WithErrorDescription(err.Error()))

			return
		}

		next.ServeHTTP(w, r)
	})
}
