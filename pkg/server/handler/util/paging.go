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
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/server/errors"
)

// EncodeContinuation returns an opaque token for the item offset.
func EncodeContinuation(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeContinuation(token string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, err
	}

	offset, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, err
	}

	if offset < 0 {
		return 0, strconv.ErrRange
	}

	return offset, nil
}

// Paginate returns the page of items selected by the request's page size
// and continuation headers, and the continuation for the next page if any.
func Paginate[T any](r *http.Request, items []T) ([]T, string, error) {
	pageSize := constants.DefaultMaxItemCount

	if value := r.Header.Get(constants.HeaderMaxItemCount); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, "", errors.NewInvalidRequestError().
				WithCausef("failed to parse page size: %w", err).
				WithErrorDescription("The page size is not an integer.").
				Prefixed()
		}

		if n > 0 {
			pageSize = n
		}
	}

	offset := 0

	if value := r.Header.Get(constants.HeaderContinuation); value != "" {
		n, err := decodeContinuation(value)
		if err != nil {
			return nil, "", errors.NewInvalidRequestError().
				WithCausef("failed to decode continuation: %w", err).
				WithErrorDescription("The continuation token is invalid.").
				Prefixed()
		}

		offset = n
	}

	if offset >= len(items) {
		return []T{}, "", nil
	}

	end := offset + min(pageSize, len(items)-offset)

	var continuation string

	if end < len(items) {
		continuation = EncodeContinuation(end)
	}

	return items[offset:end], continuation, nil
}
