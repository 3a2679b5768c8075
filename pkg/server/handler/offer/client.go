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

package offer

import (
	"context"
	"encoding/json"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/errors"
	"github.com/unikorn-cloud/docdb/pkg/server/handler/util"
	"github.com/unikorn-cloud/docdb/pkg/server/query"
	"github.com/unikorn-cloud/docdb/pkg/server/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Client wraps up offer related management handling.
type Client struct {
	store *store.Store
}

// NewClient returns a new client.
func NewClient(store *store.Store) *Client {
	return &Client{
		store: store,
	}
}

// List returns all offers.
func (c *Client) List() []openapi.Offer {
	return c.store.ListOffers()
}

// Get returns an offer.
func (c *Client) Get(offerID string) (*openapi.Offer, error) {
	result, err := c.store.GetOffer(offerID)
	if err != nil {
		return nil, util.StoreError(err, "offer")
	}

	return result, nil
}

// document converts an offer into the generic form queries evaluate.
func document(offer *openapi.Offer) (map[string]any, error) {
	data, err := json.Marshal(offer)
	if err != nil {
		return nil, err
	}

	var out map[string]any

	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Query returns all offers matching the query.
func (c *Client) Query(spec *openapi.QuerySpec) ([]openapi.Offer, error) {
	q, err := query.Compile(spec)
	if err != nil {
		return nil, errors.NewInvalidRequestError().
			WithCause(err).
			WithErrorDescription(err.Error()).
			Prefixed()
	}

	offers := c.store.ListOffers()

	result := []openapi.Offer{}

	for i := range offers {
		doc, err := document(&offers[i])
		if err != nil {
			return nil, errors.NewInternalError().
				WithCausef("failed to convert offer: %w", err).
				Prefixed()
		}

		if q.Matches(doc) {
			result = append(result, offers[i])
		}
	}

	return result, nil
}

// Replace updates an offer's throughput.
func (c *Client) Replace(ctx context.Context, offerID string, request *openapi.Offer) (*openapi.Offer, error) {
	if request.ID == "" || request.ResourceID == "" {
		return nil, errors.NewInvalidRequestError().
			WithSimpleCause("offer identity missing").
			WithErrorDescription("The offer id and _rid are required.").
			Prefixed()
	}

	result, err := c.store.ReplaceOffer(offerID, request)
	if err != nil {
		return nil, util.StoreError(err, "offer")
	}

	log.FromContext(ctx).Info("offer replaced", "id", result.ID, "throughput", result.Throughput())

	return result, nil
}
