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

package collection

import (
	"context"
	"net/http"
	"strconv"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/errors"
	"github.com/unikorn-cloud/docdb/pkg/server/handler/util"
	"github.com/unikorn-cloud/docdb/pkg/server/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Client wraps up collection related management handling.
type Client struct {
	store *store.Store
}

// NewClient returns a new client.
func NewClient(store *store.Store) *Client {
	return &Client{
		store: store,
	}
}

// offerOptions extracts offer provisioning options from the request headers.
func offerOptions(header http.Header) (*store.OfferOptions, error) {
	options := &store.OfferOptions{}

	if value := header.Get(constants.HeaderOfferThroughput); value != "" {
		throughput, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.NewInvalidRequestError().
				WithCausef("failed to parse offer throughput: %w", err).
				WithErrorDescription("The offer throughput must be an integer.").
				Prefixed()
		}

		options.Throughput = &throughput
	}

	if value := header.Get(constants.HeaderOfferType); value != "" {
		var offerType openapi.OfferType

		if err := offerType.UnmarshalText([]byte(value)); err != nil {
			return nil, errors.NewInvalidRequestError().
				WithCause(err).
				WithErrorDescription("The offer type is not a valid performance tier.").
				Prefixed()
		}

		options.Type = &offerType
	}

	return options, nil
}

// List returns the collections in a database.
func (c *Client) List(databaseID string) ([]openapi.Collection, error) {
	result, err := c.store.ListCollections(databaseID)
	if err != nil {
		return nil, util.StoreError(err, "database")
	}

	return result, nil
}

// Get returns a collection, and if requested its quota and usage in the
// response headers.
func (c *Client) Get(w http.ResponseWriter, r *http.Request, databaseID, collectionID string) (*openapi.Collection, error) {
	result, offer, err := c.store.GetCollection(databaseID, collectionID)
	if err != nil {
		return nil, util.StoreError(err, "collection")
	}

	if populate, _ := strconv.ParseBool(r.Header.Get(constants.HeaderPopulateQuotaInfo)); populate {
		w.Header().Set(constants.HeaderResourceQuota, executor.Quota(store.Quota(result, offer)).String())
		w.Header().Set(constants.HeaderResourceUsage, executor.Quota(store.Usage()).String())
	}

	return result, nil
}

// Create creates a collection and its offer.
func (c *Client) Create(ctx context.Context, header http.Header, databaseID string, request *openapi.Collection) (*openapi.Collection, error) {
	options, err := offerOptions(header)
	if err != nil {
		return nil, err
	}

	result, err := c.store.CreateCollection(databaseID, request, options)
	if err != nil {
		return nil, util.StoreError(err, "collection")
	}

	log.FromContext(ctx).Info("collection created", "id", result.ID, "rid", result.ResourceID, "partitioned", result.Partitioned())

	return result, nil
}

// Delete deletes a collection and its offer.
func (c *Client) Delete(ctx context.Context, databaseID, collectionID string) error {
	if err := c.store.DeleteCollection(databaseID, collectionID); err != nil {
		return util.StoreError(err, "collection")
	}

	log.FromContext(ctx).Info("collection deleted", "database", databaseID, "collection", collectionID)

	return nil
}
