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

// Package api provides functional test utilities for the document database
// offer API.
//
// The suites drive the service through the SDK client so they exercise the
// same validation a consumer would see, every round trip is logged to the
// ginkgo writer with its W3C trace ID.  Requests the SDK refuses to send,
// such as replacing an offer without an identity, are made with a raw HTTP
// client instead.
//
// # Targets
//
// When API_BASE_URL is unset the suites start an in-process emulator,
// otherwise they run against the given service.  Each scenario removes all
// databases first, so never point the suites at a shared account.
package api
