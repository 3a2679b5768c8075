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

// Package collections manages databases and collections.  Creating a
// collection provisions its offer, deleting it removes the offer.
package collections

import (
	"context"
	"net/http"
	"strconv"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/links"
	"github.com/unikorn-cloud/docdb/pkg/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// RequestOptions modify collection requests.
type RequestOptions struct {
	// OfferThroughput provisions a throughput based offer, mutually
	// exclusive with OfferType.
	OfferThroughput *int
	// OfferType provisions a tier based offer.
	OfferType *openapi.OfferType
	// PopulateQuotaInfo requests quota and usage headers on read.
	PopulateQuotaInfo bool
}

// Headers returns the options as request headers.
func (o *RequestOptions) Headers() http.Header {
	header := http.Header{}

	if o == nil {
		return header
	}

	if o.OfferThroughput != nil {
		header.Set(constants.HeaderOfferThroughput, strconv.Itoa(*o.OfferThroughput))
	}

	if o.OfferType != nil {
		header.Set(constants.HeaderOfferType, string(*o.OfferType))
	}

	if o.PopulateQuotaInfo {
		header.Set(constants.HeaderPopulateQuotaInfo, "true")
	}

	return header
}

// Manager provides database and collection operations.
type Manager struct {
	executor executor.Executor
}

// New returns a new manager.
func New(executor executor.Executor) *Manager {
	return &Manager{
		executor: executor,
	}
}

func (m *Manager) create(ctx context.Context, link string, body any, headers http.Header, out any) error {
	request := &executor.Request{
		Method:  http.MethodPost,
		Link:    link,
		Body:    body,
		Headers: headers,
	}

	response, err := m.executor.Execute(ctx, request)
	if err != nil {
		return err
	}

	return response.Decode(out)
}

func (m *Manager) read(ctx context.Context, link string, headers http.Header, out any) (*executor.ResponseHeaders, error) {
	request := &executor.Request{
		Method:  http.MethodGet,
		Link:    link,
		Headers: headers,
	}

	response, err := m.executor.Execute(ctx, request)
	if err != nil {
		return nil, err
	}

	if err := response.Decode(out); err != nil {
		return nil, err
	}

	return response.Headers, nil
}

func (m *Manager) delete(ctx context.Context, link string) error {
	request := &executor.Request{
		Method: http.MethodDelete,
		Link:   link,
	}

	if _, err := m.executor.Execute(ctx, request); err != nil {
		return err
	}

	return nil
}

// CreateDatabase creates a database.
func (m *Manager) CreateDatabase(ctx context.Context, database *openapi.Database) (*openapi.Database, error) {
	if database == nil || database.ID == "" {
		return nil, executor.NewBadRequestError("database id is required")
	}

	result := &openapi.Database{}

	if err := m.create(ctx, links.Databases, database, nil, result); err != nil {
		return nil, err
	}

	log.FromContext(ctx).V(1).Info("database created", "id", result.ID, "rid", result.ResourceID)

	return result, nil
}

// ReadDatabase reads a database by name or resource ID based link.
func (m *Manager) ReadDatabase(ctx context.Context, link string) (*openapi.Database, error) {
	result := &openapi.Database{}

	if _, err := m.read(ctx, link, nil, result); err != nil {
		return nil, err
	}

	return result, nil
}

// ReadDatabases returns a feed of all databases.
func (m *Manager) ReadDatabases(options *executor.FeedOptions) *executor.Feed[openapi.Database] {
	request := &executor.Request{
		Method: http.MethodGet,
		Link:   links.Databases,
	}

	extract := func(response *executor.Response) ([]openapi.Database, error) {
		var list openapi.DatabaseList

		if err := response.Decode(&list); err != nil {
			return nil, err
		}

		return list.Databases, nil
	}

	return executor.NewFeed(m.executor, request, options, extract)
}

// DeleteDatabase deletes a database, and with it all collections and offers.
func (m *Manager) DeleteDatabase(ctx context.Context, link string) error {
	return m.delete(ctx, link)
}

// CreateCollection creates a collection in the linked database, and with
// it the collection's offer.
func (m *Manager) CreateCollection(ctx context.Context, databaseLink string, collection *openapi.Collection, options *RequestOptions) (*openapi.Collection, error) {
	if collection == nil || collection.ID == "" {
		return nil, executor.NewBadRequestError("collection id is required")
	}

	if options != nil && options.OfferThroughput != nil && *options.OfferThroughput <= 0 {
		return nil, executor.NewBadRequestError("offer throughput must be positive")
	}

	result := &openapi.Collection{}

	if err := m.create(ctx, links.CollectionFeed(databaseLink), collection, options.Headers(), result); err != nil {
		return nil, err
	}

	log.FromContext(ctx).V(1).Info("collection created", "id", result.ID, "rid", result.ResourceID)

	return result, nil
}

// ReadCollection reads a collection.  When requested in the options then
// quota and usage are reported in the response headers.
func (m *Manager) ReadCollection(ctx context.Context, link string, options *RequestOptions) (*openapi.Collection, *executor.ResponseHeaders, error) {
	result := &openapi.Collection{}

	headers, err := m.read(ctx, link, options.Headers(), result)
	if err != nil {
		return nil, nil, err
	}

	return result, headers, nil
}

// ReadCollections returns a feed of collections in the linked database.
func (m *Manager) ReadCollections(databaseLink string, options *executor.FeedOptions) *executor.Feed[openapi.Collection] {
	request := &executor.Request{
		Method: http.MethodGet,
		Link:   links.CollectionFeed(databaseLink),
	}

	extract := func(response *executor.Response) ([]openapi.Collection, error) {
		var list openapi.CollectionList

		if err := response.Decode(&list); err != nil {
			return nil, err
		}

		return list.Collections, nil
	}

	return executor.NewFeed(m.executor, request, options, extract)
}

// DeleteCollection deletes a collection and its offer.
func (m *Manager) DeleteCollection(ctx context.Context, link string) error {
	return m.delete(ctx, link)
}
