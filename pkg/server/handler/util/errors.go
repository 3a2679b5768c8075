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

package util

import (
	goerrors "errors"

	"github.com/unikorn-cloud/docdb/pkg/server/errors"
	"github.com/unikorn-cloud/docdb/pkg/server/store"
)

// StoreError maps a store error onto an HTTP error.
func StoreError(err error, kind string) error {
	switch {
	case goerrors.Is(err, store.ErrNotFound):
		return errors.NewResourceMissingError(kind).WithCause(err)
	case goerrors.Is(err, store.ErrConflict):
		return errors.NewConflictError().
			WithCause(err).
			WithErrorDescription("A " + kind + " with the requested id already exists.")
	case goerrors.Is(err, store.ErrInvalid):
		return errors.NewInvalidRequestError().
			WithCause(err).
			WithErrorDescription(err.Error())
	}

	return errors.NewInternalError().WithCause(err)
}
