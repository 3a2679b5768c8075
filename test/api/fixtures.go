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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/docdb/pkg/collections"
	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

// CreateDatabaseWithCleanup creates a database and schedules its deletion,
// which also removes its collections and offers.
func CreateDatabaseWithCleanup(client *APIClient, ctx context.Context) *openapi.Database {
	database, err := client.CreateDatabase(ctx, &openapi.Database{
		ResourceMetadata: openapi.ResourceMetadata{
			ID: GenerateTestID(),
		},
	})
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created database with ID: %s\n", database.ID)

	// Schedule cleanup - this runs whether the test passes or fails so we don't need to clean up manually
	DeferCleanup(func() {
		if err := client.DeleteDatabase(ctx, database.SelfLink); err != nil && !executor.IsNotFound(err) {
			GinkgoWriter.Printf("Warning: Failed to delete database %s: %v\n", database.ID, err)
		}
	})

	return database
}

// CollectionFixture is a collection and the offer provisioning it.
type CollectionFixture struct {
	Database   *openapi.Database
	Collection *openapi.Collection
	Offer      *openapi.Offer
}

// CreateCollectionFixture creates a collection in a new database and looks
// up its offer.
func CreateCollectionFixture(client *APIClient, ctx context.Context, definition *openapi.Collection, options *collections.RequestOptions) *CollectionFixture {
	database := CreateDatabaseWithCleanup(client, ctx)

	collection, err := client.CreateCollection(ctx, database.SelfLink, definition, options)
	Expect(err).NotTo(HaveOccurred())

	offer, err := client.OfferForCollection(ctx, collection)
	Expect(err).NotTo(HaveOccurred())

	return &CollectionFixture{
		Database:   database,
		Collection: collection,
		Offer:      offer,
	}
}

// OfferLink returns a link to the offer, offers are only addressable by
// resource ID so both modes resolve to the self link.
func (f *CollectionFixture) OfferLink(_ AddressingMode) string {
	return f.Offer.SelfLink
}

// VerifyOfferResponseBody checks an offer is consistent with the collection
// it provisions and has the expected throughput.
func VerifyOfferResponseBody(offer *openapi.Offer, collection *openapi.Collection, throughput int) {
	Expect(offer).NotTo(BeNil())
	Expect(offer.ID).NotTo(BeEmpty())
	Expect(offer.ID).To(Equal(offer.ResourceID))
	Expect(offer.SelfLink).To(ContainSubstring(offer.ID))
	Expect(strings.Trim(offer.ResourceLink, "/")).To(Equal(strings.Trim(collection.SelfLink, "/")))
	Expect(offer.OfferResourceID).To(Equal(collection.ResourceID))
	Expect(offer.Throughput()).To(Equal(throughput))
}

// VerifyCollectionSize checks the reported collection size quota in KiB.
func VerifyCollectionSize(headers *executor.ResponseHeaders, expected int64) {
	Expect(headers).NotTo(BeNil())
	Expect(headers.ResourceQuota).NotTo(BeNil())

	size, ok := headers.ResourceQuota.Get(constants.QuotaCollectionSize)
	Expect(ok).To(BeTrue())
	Expect(size).To(Equal(expected))
}
