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

// Package middleware contains the emulator's HTTP middleware.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/unikorn-cloud/docdb/pkg/constants"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// requestCharge is the fixed cost reported for every request.
const requestCharge = "1"

// Logging assigns every request an activity ID, reports it with the request
// charge, and logs the request with a logger carried in the context.
func Logging(base logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			activityID := uuid.NewString()

			w.Header().Set(constants.HeaderActivityID, activityID)
			w.Header().Set(constants.HeaderRequestCharge, requestCharge)

			logger := base.WithValues("activityID", activityID, "method", r.Method, "path", r.URL.EscapedPath())

			if traceParent := r.Header.Get(constants.HeaderTraceParent); traceParent != "" {
				logger = logger.WithValues("traceparent", traceParent)
			}

			writer := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			start := time.Now()

			next.ServeHTTP(writer, r.WithContext(log.IntoContext(r.Context(), logger)))

			logger.V(1).Info("request complete", "status", writer.Status(), "bytes", writer.BytesWritten(), "duration", time.Since(start))
		})
	}
}
