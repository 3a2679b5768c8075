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

// Package offers reads, lists, queries and replaces offers.  Offers are
// never created or deleted directly, that happens atomically with the
// collection they provision, see the collections package.
package offers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/links"
	"github.com/unikorn-cloud/docdb/pkg/openapi"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

var (
	// ErrInvalidOffer is raised when an offer returned by the service is
	// structurally invalid or not linked as expected.
	ErrInvalidOffer = errors.New("invalid offer")

	// ErrIdentityMismatch is raised when a replaced offer comes back with
	// different identity fields to those sent.
	ErrIdentityMismatch = errors.New("offer identity mismatch")
)

// Manager provides offer operations over a request executor.
type Manager struct {
	executor executor.Executor
}

// New returns a new manager.
func New(executor executor.Executor) *Manager {
	return &Manager{
		executor: executor,
	}
}

// Validate checks the structural invariants every offer must satisfy: it has
// an ID, resource ID and self link, and the self link embeds the ID.
func Validate(offer *openapi.Offer) error {
	if offer == nil {
		return fmt.Errorf("%w: offer is nil", ErrInvalidOffer)
	}

	if offer.ID == "" {
		return fmt.Errorf("%w: id is not set", ErrInvalidOffer)
	}

	if offer.ResourceID == "" {
		return fmt.Errorf("%w: resource ID is not set", ErrInvalidOffer)
	}

	if offer.SelfLink == "" {
		return fmt.Errorf("%w: self link is not set", ErrInvalidOffer)
	}

	if !slices.Contains(strings.Split(links.Trim(offer.SelfLink), "/"), offer.ID) {
		return fmt.Errorf("%w: self link %q does not contain id %q", ErrInvalidOffer, offer.SelfLink, offer.ID)
	}

	return nil
}

// ValidateLinkage checks the offer is valid, provisions the collection with
// the given self link, and, if requested, carries the expected offer type.
func ValidateLinkage(offer *openapi.Offer, collectionLink string, offerType *openapi.OfferType) error {
	if err := Validate(offer); err != nil {
		return err
	}

	if offer.ResourceLink == "" {
		return fmt.Errorf("%w: resource link is not set", ErrInvalidOffer)
	}

	if !links.Equal(offer.ResourceLink, collectionLink) {
		return fmt.Errorf("%w: offer %s provisions %q, expected %q", ErrInvalidOffer, offer.ID, offer.ResourceLink, collectionLink)
	}

	if offerType != nil {
		if offer.OfferType == nil {
			return fmt.Errorf("%w: offer %s has no type, expected %s", ErrInvalidOffer, offer.ID, *offerType)
		}

		if *offer.OfferType != *offerType {
			return fmt.Errorf("%w: offer %s has type %s, expected %s", ErrInvalidOffer, offer.ID, *offer.OfferType, *offerType)
		}
	}

	return nil
}

func extract(response *executor.Response) ([]openapi.Offer, error) {
	var list openapi.OfferList

	if err := response.Decode(&list); err != nil {
		return nil, err
	}

	for i := range list.Offers {
		if err := Validate(&list.Offers[i]); err != nil {
			return nil, err
		}
	}

	return list.Offers, nil
}

// Read returns the offer addressed by the link.
func (m *Manager) Read(ctx context.Context, link string) (*openapi.Offer, error) {
	request := &executor.Request{
		Method: http.MethodGet,
		Link:   link,
	}

	response, err := m.executor.Execute(ctx, request)
	if err != nil {
		return nil, err
	}

	offer := &openapi.Offer{}

	if err := response.Decode(offer); err != nil {
		return nil, err
	}

	if err := Validate(offer); err != nil {
		return nil, err
	}

	return offer, nil
}

// List returns a feed of every offer in the account.
func (m *Manager) List(options *executor.FeedOptions) *executor.Feed[openapi.Offer] {
	request := &executor.Request{
		Method: http.MethodGet,
		Link:   links.Offers,
	}

	return executor.NewFeed(m.executor, request, options, extract)
}

// Query returns a feed of offers matching the query.
func (m *Manager) Query(query *openapi.QuerySpec, options *executor.FeedOptions) *executor.Feed[openapi.Offer] {
	headers := http.Header{}
	headers.Set(constants.HeaderIsQuery, "True")

	request := &executor.Request{
		Method:      http.MethodPost,
		Link:        links.Offers,
		Body:        query,
		ContentType: constants.MediaTypeQueryJSON,
		Headers:     headers,
	}

	return executor.NewFeed(m.executor, request, options, extract)
}

// Replace updates the offer addressed by the link.  Only the throughput may
// change, the identity fields must be set and are preserved.
func (m *Manager) Replace(ctx context.Context, link string, offer *openapi.Offer) (*openapi.Offer, error) {
	if offer == nil {
		return nil, executor.NewBadRequestError("offer is required")
	}

	if offer.ID == "" {
		return nil, executor.NewBadRequestError("offer id is required")
	}

	if offer.ResourceID == "" {
		return nil, executor.NewBadRequestError("offer resource ID is required")
	}

	request := &executor.Request{
		Method: http.MethodPut,
		Link:   link,
		Body:   offer,
	}

	response, err := m.executor.Execute(ctx, request)
	if err != nil {
		return nil, err
	}

	result := &openapi.Offer{}

	if err := response.Decode(result); err != nil {
		return nil, err
	}

	if err := Validate(result); err != nil {
		return nil, err
	}

	if result.ID != offer.ID || result.ResourceID != offer.ResourceID {
		return nil, fmt.Errorf("%w: sent %s/%s, received %s/%s", ErrIdentityMismatch, offer.ID, offer.ResourceID, result.ID, result.ResourceID)
	}

	if offer.SelfLink != "" && !links.Equal(offer.SelfLink, result.SelfLink) {
		return nil, fmt.Errorf("%w: self link changed from %q to %q", ErrIdentityMismatch, offer.SelfLink, result.SelfLink)
	}

	if offer.ResourceLink != "" && !links.Equal(offer.ResourceLink, result.ResourceLink) {
		return nil, fmt.Errorf("%w: resource link changed from %q to %q", ErrIdentityMismatch, offer.ResourceLink, result.ResourceLink)
	}

	log.FromContext(ctx).V(1).Info("offer replaced", "id", result.ID, "throughput", result.Throughput())

	return result, nil
}

// ForCollection returns the single offer provisioning the collection.
func (m *Manager) ForCollection(ctx context.Context, collection *openapi.Collection) (*openapi.Offer, error) {
	if collection == nil || collection.SelfLink == "" {
		return nil, executor.NewBadRequestError("collection self link is required")
	}

	query := &openapi.QuerySpec{
		Query: "SELECT * FROM root r WHERE r.resource = @link",
		Parameters: []openapi.QueryParameter{
			{
				Name:  "@link",
				Value: collection.SelfLink,
			},
		},
	}

	offers, err := m.Query(query, nil).ToSlice(ctx)
	if err != nil {
		return nil, err
	}

	if len(offers) != 1 {
		return nil, fmt.Errorf("%w: collection %s has %d offers, expected 1", ErrInvalidOffer, collection.SelfLink, len(offers))
	}

	offer := &offers[0]

	if err := ValidateLinkage(offer, collection.SelfLink, nil); err != nil {
		return nil, err
	}

	if collection.ResourceID != "" && offer.OfferResourceID != "" && offer.OfferResourceID != collection.ResourceID {
		return nil, fmt.Errorf("%w: offer %s references resource ID %s, expected %s", ErrInvalidOffer, offer.ID, offer.OfferResourceID, collection.ResourceID)
	}

	return offer, nil
}
