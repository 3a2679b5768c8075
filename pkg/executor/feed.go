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
	"context"
	"iter"
	"net/http"
	"strconv"

	"github.com/unikorn-cloud/docdb/pkg/constants"
)

// FeedOptions control paging.
type FeedOptions struct {
	// MaxItemCount limits the page size, zero leaves it up to the service.
	MaxItemCount int
	// Continuation resumes a feed from a previous page.
	Continuation string
}

// Headers returns the options as request headers.
func (o *FeedOptions) Headers() http.Header {
	header := http.Header{}

	if o == nil {
		return header
	}

	if o.MaxItemCount != 0 {
		header.Set(constants.HeaderMaxItemCount, strconv.Itoa(o.MaxItemCount))
	}

	if o.Continuation != "" {
		header.Set(constants.HeaderContinuation, o.Continuation)
	}

	return header
}

// ExtractFunc decodes the items from a feed page.
type ExtractFunc[T any] func(response *Response) ([]T, error)

// Feed is a lazy, finite sequence of resources fetched a page at a time.
// Nothing is fetched until a page is requested, and Reset makes it start
// over from the beginning.  A Feed is not safe for concurrent use.
type Feed[T any] struct {
	executor Executor
	request  Request
	extract  ExtractFunc[T]
	initial  string

	continuation string
	started      bool
}

// NewFeed returns a feed that repeats request, following continuations.
func NewFeed[T any](executor Executor, request *Request, options *FeedOptions, extract ExtractFunc[T]) *Feed[T] {
	f := &Feed[T]{
		executor: executor,
		request:  *request,
		extract:  extract,
	}

	f.request.Headers = options.Headers()

	for key, values := range request.Headers {
		f.request.Headers[http.CanonicalHeaderKey(key)] = values
	}

	f.initial = f.request.Headers.Get(constants.HeaderContinuation)
	f.continuation = f.initial

	return f
}

// HasMoreResults is true until the final page has been fetched.
func (f *Feed[T]) HasMoreResults() bool {
	return !f.started || f.continuation != ""
}

// FetchNext fetches the next page.  Once exhausted it returns no items.
func (f *Feed[T]) FetchNext(ctx context.Context) ([]T, *ResponseHeaders, error) {
	if !f.HasMoreResults() {
		return nil, &ResponseHeaders{}, nil
	}

	request := f.request
	request.Headers = f.request.Headers.Clone()

	if f.continuation != "" {
		request.Headers.Set(constants.HeaderContinuation, f.continuation)
	} else {
		request.Headers.Del(constants.HeaderContinuation)
	}

	response, err := f.executor.Execute(ctx, &request)
	if err != nil {
		return nil, nil, err
	}

	items, err := f.extract(response)
	if err != nil {
		return nil, nil, err
	}

	f.started = true
	f.continuation = response.Headers.Continuation

	return items, response.Headers, nil
}

// Reset restarts the feed from where it was first created.
func (f *Feed[T]) Reset() {
	f.started = false
	f.continuation = f.initial
}

// All iterates over every remaining item, stopping at the first error.
func (f *Feed[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for f.HasMoreResults() {
			items, _, err := f.FetchNext(ctx)
			if err != nil {
				var zero T

				yield(zero, err)

				return
			}

			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

// ToSlice resets the feed and materializes every item.
func (f *Feed[T]) ToSlice(ctx context.Context) ([]T, error) {
	f.Reset()

	var result []T

	for item, err := range f.All(ctx) {
		if err != nil {
			return nil, err
		}

		result = append(result, item)
	}

	return result, nil
}
