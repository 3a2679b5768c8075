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

// Package store is the emulator's in-memory resource store.
//
// Every collection has exactly one offer: both are created and removed in
// the same critical section, so no reader observes one without the other.
// Resources are returned by value and never aliased with the store.
package store

import (
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/links"
	"github.com/unikorn-cloud/docdb/pkg/openapi"

	"k8s.io/apimachinery/pkg/util/sets"
)

var (
	// ErrNotFound is raised when a reference does not resolve.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is raised when an ID is already in use in its scope.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalid is raised when a request is semantically invalid.
	ErrInvalid = errors.New("invalid resource")
)

// Resource ID sizes, in bytes, before encoding.
const (
	databaseRIDSize   = 4
	collectionRIDSize = 4
	offerRIDSize      = 3
)

// OfferOptions select the offer provisioned with a collection.
type OfferOptions struct {
	Throughput *int
	Type       *openapi.OfferType
}

type collection struct {
	resource openapi.Collection
	offer    *openapi.Offer
}

type database struct {
	resource    openapi.Database
	collections []*collection
}

// Store is safe for concurrent use.
type Store struct {
	lock      sync.RWMutex
	databases []*database
	rids      sets.Set[string]
	now       func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		rids: sets.New[string](),
		now:  time.Now,
	}
}

func encodeRID(b []byte) string {
	return strings.ReplaceAll(base64.StdEncoding.EncodeToString(b), "/", "-")
}

func decodeRID(rid string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.ReplaceAll(rid, "-", "/"))
}

// allocateRID returns a new, unique resource ID with the given prefix.
func (s *Store) allocateRID(prefix []byte, size int) string {
	for {
		random := uuid.New()

		rid := encodeRID(append(slices.Clone(prefix), random[:size]...))

		if !s.rids.Has(rid) {
			s.rids.Insert(rid)

			return rid
		}
	}
}

func (s *Store) stamp(metadata *openapi.ResourceMetadata) {
	metadata.ETag = `"` + uuid.NewString() + `"`
	metadata.Timestamp = s.now().Unix()
}

// resolve finds by ID first, then by resource ID, so names that look like
// resource IDs still address what the user called them.
func resolve[T any](items []T, reference string, metadata func(T) *openapi.ResourceMetadata) (T, bool) {
	if i := slices.IndexFunc(items, func(item T) bool { return metadata(item).ID == reference }); i >= 0 {
		return items[i], true
	}

	if i := slices.IndexFunc(items, func(item T) bool { return metadata(item).ResourceID == reference }); i >= 0 {
		return items[i], true
	}

	var zero T

	return zero, false
}

func databaseMetadata(d *database) *openapi.ResourceMetadata {
	return &d.resource.ResourceMetadata
}

func collectionMetadata(c *collection) *openapi.ResourceMetadata {
	return &c.resource.ResourceMetadata
}

func (s *Store) database(reference string) (*database, error) {
	d, ok := resolve(s.databases, reference, databaseMetadata)
	if !ok {
		return nil, fmt.Errorf("%w: database %q", ErrNotFound, reference)
	}

	return d, nil
}

func (s *Store) collection(databaseReference, collectionReference string) (*database, *collection, error) {
	d, err := s.database(databaseReference)
	if err != nil {
		return nil, nil, err
	}

	c, ok := resolve(d.collections, collectionReference, collectionMetadata)
	if !ok {
		return nil, nil, fmt.Errorf("%w: collection %q", ErrNotFound, collectionReference)
	}

	return d, c, nil
}

func (s *Store) offers() []*openapi.Offer {
	var result []*openapi.Offer

	for _, d := range s.databases {
		for _, c := range d.collections {
			result = append(result, c.offer)
		}
	}

	return result
}

func (s *Store) offer(reference string) (*openapi.Offer, error) {
	offer, ok := resolve(s.offers(), reference, func(o *openapi.Offer) *openapi.ResourceMetadata { return &o.ResourceMetadata })
	if !ok {
		return nil, fmt.Errorf("%w: offer %q", ErrNotFound, reference)
	}

	return offer, nil
}

// CreateDatabase creates a database, its ID must be unique.
func (s *Store) CreateDatabase(in *openapi.Database) (*openapi.Database, error) {
	if in.ID == "" {
		return nil, fmt.Errorf("%w: database id is required", ErrInvalid)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if slices.ContainsFunc(s.databases, func(d *database) bool { return d.resource.ID == in.ID }) {
		return nil, fmt.Errorf("%w: database %q", ErrConflict, in.ID)
	}

	rid := s.allocateRID(nil, databaseRIDSize)

	d := &database{
		resource: openapi.Database{
			ResourceMetadata: openapi.ResourceMetadata{
				ID:         in.ID,
				ResourceID: rid,
				SelfLink:   links.Database(rid) + "/",
			},
			Collections: links.Collections + "/",
		},
	}

	s.stamp(&d.resource.ResourceMetadata)

	s.databases = append(s.databases, d)

	out := d.resource

	return &out, nil
}

// GetDatabase returns a database by ID or resource ID.
func (s *Store) GetDatabase(reference string) (*openapi.Database, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	d, err := s.database(reference)
	if err != nil {
		return nil, err
	}

	out := d.resource

	return &out, nil
}

// ListDatabases returns all databases in creation order.
func (s *Store) ListDatabases() []openapi.Database {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]openapi.Database, len(s.databases))

	for i, d := range s.databases {
		out[i] = d.resource
	}

	return out
}

// DeleteDatabase deletes a database and all its collections and offers.
func (s *Store) DeleteDatabase(reference string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	d, err := s.database(reference)
	if err != nil {
		return err
	}

	for _, c := range d.collections {
		s.rids.Delete(c.resource.ResourceID, c.offer.ResourceID)
	}

	s.rids.Delete(d.resource.ResourceID)

	s.databases = slices.DeleteFunc(s.databases, func(x *database) bool { return x == d })

	return nil
}

func (s *Store) newOffer(c *openapi.Collection, options *OfferOptions) (*openapi.Offer, error) {
	offer := &openapi.Offer{
		ResourceLink:    c.SelfLink,
		OfferResourceID: c.ResourceID,
		OfferVersion:    openapi.OfferVersionV2,
		Content: &openapi.OfferContent{
			OfferThroughput: constants.DefaultOfferThroughput,
		},
	}

	if options != nil {
		if options.Throughput != nil && options.Type != nil {
			return nil, fmt.Errorf("%w: offer throughput and offer type are mutually exclusive", ErrInvalid)
		}

		if options.Throughput != nil {
			if *options.Throughput <= 0 {
				return nil, fmt.Errorf("%w: offer throughput must be positive", ErrInvalid)
			}

			offer.Content.OfferThroughput = *options.Throughput
		}

		if options.Type != nil {
			throughput, ok := options.Type.Throughput()
			if !ok {
				return nil, fmt.Errorf("%w: unknown offer type %q", ErrInvalid, *options.Type)
			}

			offerType := *options.Type

			offer.OfferType = &offerType
			offer.OfferVersion = openapi.OfferVersionV1
			offer.Content.OfferThroughput = throughput
		}
	}

	return offer, nil
}

// CreateCollection creates a collection, and its offer, in a database.
func (s *Store) CreateCollection(databaseReference string, in *openapi.Collection, options *OfferOptions) (*openapi.Collection, error) {
	if in.ID == "" {
		return nil, fmt.Errorf("%w: collection id is required", ErrInvalid)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	d, err := s.database(databaseReference)
	if err != nil {
		return nil, err
	}

	if slices.ContainsFunc(d.collections, func(c *collection) bool { return c.resource.ID == in.ID }) {
		return nil, fmt.Errorf("%w: collection %q", ErrConflict, in.ID)
	}

	prefix, err := decodeRID(d.resource.ResourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: corrupt database resource ID: %w", ErrInvalid, err)
	}

	rid := s.allocateRID(prefix, collectionRIDSize)

	resource := openapi.Collection{
		ResourceMetadata: openapi.ResourceMetadata{
			ID:         in.ID,
			ResourceID: rid,
			SelfLink:   links.Collection(d.resource.ResourceID, rid) + "/",
		},
		IndexingPolicy: in.IndexingPolicy,
		PartitionKey:   in.PartitionKey,
		Documents:      "docs/",
	}

	offer, err := s.newOffer(&resource, options)
	if err != nil {
		s.rids.Delete(rid)

		return nil, err
	}

	offerRID := s.allocateRID(nil, offerRIDSize)

	offer.ID = offerRID
	offer.ResourceID = offerRID
	offer.SelfLink = links.Offer(offerRID) + "/"

	s.stamp(&resource.ResourceMetadata)
	s.stamp(&offer.ResourceMetadata)

	d.collections = append(d.collections, &collection{
		resource: resource,
		offer:    offer,
	})

	return &resource, nil
}

// GetCollection returns a collection and the offer provisioning it.
func (s *Store) GetCollection(databaseReference, collectionReference string) (*openapi.Collection, *openapi.Offer, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	_, c, err := s.collection(databaseReference, collectionReference)
	if err != nil {
		return nil, nil, err
	}

	out := c.resource

	return &out, copyOffer(c.offer), nil
}

// ListCollections returns the collections in a database in creation order.
func (s *Store) ListCollections(databaseReference string) ([]openapi.Collection, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	d, err := s.database(databaseReference)
	if err != nil {
		return nil, err
	}

	out := make([]openapi.Collection, len(d.collections))

	for i, c := range d.collections {
		out[i] = c.resource
	}

	return out, nil
}

// DeleteCollection deletes a collection and its offer.
func (s *Store) DeleteCollection(databaseReference, collectionReference string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	d, c, err := s.collection(databaseReference, collectionReference)
	if err != nil {
		return err
	}

	s.rids.Delete(c.resource.ResourceID, c.offer.ResourceID)

	d.collections = slices.DeleteFunc(d.collections, func(x *collection) bool { return x == c })

	return nil
}

func copyOffer(in *openapi.Offer) *openapi.Offer {
	out := *in

	if in.OfferType != nil {
		offerType := *in.OfferType
		out.OfferType = &offerType
	}

	if in.Content != nil {
		content := *in.Content
		out.Content = &content
	}

	return &out
}

// GetOffer returns an offer by ID or resource ID.
func (s *Store) GetOffer(reference string) (*openapi.Offer, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	offer, err := s.offer(reference)
	if err != nil {
		return nil, err
	}

	return copyOffer(offer), nil
}

// ListOffers returns all offers, ordered by their collection's creation.
func (s *Store) ListOffers() []openapi.Offer {
	s.lock.RLock()
	defer s.lock.RUnlock()

	offers := s.offers()

	out := make([]openapi.Offer, len(offers))

	for i, offer := range offers {
		out[i] = *copyOffer(offer)
	}

	return out
}

// ReplaceOffer updates the throughput of the referenced offer.  The request
// must carry the offer's ID and resource ID, everything other than the
// throughput is preserved.
func (s *Store) ReplaceOffer(reference string, in *openapi.Offer) (*openapi.Offer, error) {
	if in.ID == "" || in.ResourceID == "" {
		return nil, fmt.Errorf("%w: offer id and resource ID are required", ErrInvalid)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if !slices.ContainsFunc(s.offers(), func(o *openapi.Offer) bool { return o.ResourceID == in.ResourceID }) {
		return nil, fmt.Errorf("%w: offer resource ID %q does not exist", ErrInvalid, in.ResourceID)
	}

	offer, err := s.offer(reference)
	if err != nil {
		return nil, err
	}

	if offer.ResourceID != in.ResourceID || offer.ID != in.ID {
		return nil, fmt.Errorf("%w: offer identity does not match %q", ErrInvalid, reference)
	}

	if in.Throughput() <= 0 {
		return nil, fmt.Errorf("%w: offer throughput must be positive", ErrInvalid)
	}

	offer.Content = &openapi.OfferContent{
		OfferThroughput: in.Throughput(),
	}

	s.stamp(&offer.ResourceMetadata)

	return copyOffer(offer), nil
}
