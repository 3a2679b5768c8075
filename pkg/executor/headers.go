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
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/unikorn-cloud/docdb/pkg/constants"
)

// Quota is a set of named resource limits or usages.
type Quota map[string]int64

// ParseQuota decodes a key=value;key=value header.  Empty pairs, such as
// a trailing separator, are ignored.
func ParseQuota(value string) (Quota, error) {
	quota := Quota{}

	for _, pair := range strings.Split(value, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: quota entry %q is not a key=value pair", ErrInvalidHeader, pair)
		}

		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: quota entry %q is not an integer", ErrInvalidHeader, pair)
		}

		quota[key] = n
	}

	return quota, nil
}

// Get returns a named quota value.
func (q Quota) Get(key string) (int64, bool) {
	v, ok := q[key]

	return v, ok
}

// String encodes the quota in the header format, keys are sorted so the
// result is stable.
func (q Quota) String() string {
	keys := make([]string, 0, len(q))

	for key := range q {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	pairs := make([]string, len(keys))

	for i, key := range keys {
		pairs[i] = key + "=" + strconv.FormatInt(q[key], 10)
	}

	return strings.Join(pairs, ";")
}

// ResponseHeaders are the service headers the SDK understands.
type ResponseHeaders struct {
	ActivityID    string
	RequestCharge float64
	Continuation  string
	ItemCount     *int
	ETag          string
	ResourceQuota Quota
	ResourceUsage Quota
}

// parseResponseHeaders validates and types the raw headers.
func parseResponseHeaders(header http.Header) (*ResponseHeaders, error) {
	headers := &ResponseHeaders{
		ActivityID:   header.Get(constants.HeaderActivityID),
		Continuation: header.Get(constants.HeaderContinuation),
		ETag:         header.Get(constants.HeaderETag),
	}

	if value := header.Get(constants.HeaderRequestCharge); value != "" {
		charge, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidHeader, constants.HeaderRequestCharge, value)
		}

		headers.RequestCharge = charge
	}

	if value := header.Get(constants.HeaderItemCount); value != "" {
		count, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q", ErrInvalidHeader, constants.HeaderItemCount, value)
		}

		headers.ItemCount = &count
	}

	if value := header.Get(constants.HeaderResourceQuota); value != "" {
		quota, err := ParseQuota(value)
		if err != nil {
			return nil, err
		}

		headers.ResourceQuota = quota
	}

	if value := header.Get(constants.HeaderResourceUsage); value != "" {
		usage, err := ParseQuota(value)
		if err != nil {
			return nil, err
		}

		headers.ResourceUsage = usage
	}

	return headers, nil
}
