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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/docdb/pkg/collections"
	"github.com/unikorn-cloud/docdb/pkg/offers"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/test/api"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"
)

const (
	singlePartitionSize = 1024 * 1024
	multiPartitionSize  = 5 * singlePartitionSize
)

var _ = Describe("Offer Read and Query", func() {
	endpoints := api.NewEndpoints()

	DescribeTable("reading and querying the offer of a collection",
		func(mode api.AddressingMode, partitioned bool, throughput int, expectedSize int64) {
			builder := api.NewCollection()
			if partitioned {
				builder = builder.Partitioned()
			}

			fixture := api.CreateCollectionFixture(client, ctx, builder.Build(), &collections.RequestOptions{
				OfferThroughput: ptr.To(throughput),
			})

			api.VerifyOfferResponseBody(fixture.Offer, fixture.Collection, throughput)

			By("reading the collection with quota information")

			collectionLink := endpoints.Collection(mode, fixture.Database, fixture.Collection)

			collection, headers, err := client.ReadCollection(ctx, collectionLink, &collections.RequestOptions{
				PopulateQuotaInfo: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(collection.ResourceID).To(Equal(fixture.Collection.ResourceID))
			api.VerifyCollectionSize(headers, expectedSize)

			By("reading the offer by its link")

			offer, err := client.ReadOffer(ctx, fixture.OfferLink(mode))
			Expect(err).NotTo(HaveOccurred())
			api.VerifyOfferResponseBody(offer, fixture.Collection, throughput)
			Expect(offers.ValidateLinkage(offer, collection.SelfLink, nil)).To(Succeed())

			By("querying the offer by ID")

			results, err := client.QueryOffers(&openapi.QuerySpec{
				Query: "SELECT * FROM root r WHERE r.id = @id",
				Parameters: []openapi.QueryParameter{
					{Name: "@id", Value: offer.ID},
				},
			}, nil).ToSlice(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].ResourceID).To(Equal(offer.ResourceID))

			By("listing all offers")

			all, err := client.ReadOffers(nil).ToSlice(ctx)
			Expect(err).NotTo(HaveOccurred())

			ids := sets.New[string]()
			for i := range all {
				ids.Insert(all[i].ID)
			}

			Expect(ids.Has(offer.ID)).To(BeTrue())
		},
		Entry("by name, single partition", api.ByName, false, 5000, int64(singlePartitionSize)),
		Entry("by resource ID, single partition", api.ByResourceID, false, 5000, int64(singlePartitionSize)),
		Entry("by name, partitioned below the partition threshold", api.ByName, true, 1900, int64(singlePartitionSize)),
		Entry("by resource ID, partitioned below the partition threshold", api.ByResourceID, true, 1900, int64(singlePartitionSize)),
		Entry("by name, partitioned at the partition threshold", api.ByName, true, 2000, int64(multiPartitionSize)),
		Entry("by resource ID, partitioned at the partition threshold", api.ByResourceID, true, 2000, int64(multiPartitionSize)),
	)

	Context("When the collection is removed", func() {
		It("should remove its offer", func() {
			fixture := api.CreateCollectionFixture(client, ctx, api.NewCollection().Build(), nil)

			Expect(client.DeleteCollection(ctx, fixture.Collection.SelfLink)).To(Succeed())

			_, err := client.ReadOffer(ctx, fixture.Offer.SelfLink)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("404"))

			results, err := client.QueryOffers(&openapi.QuerySpec{
				Query: "SELECT * FROM root r WHERE r.id = @id",
				Parameters: []openapi.QueryParameter{
					{Name: "@id", Value: fixture.Offer.ID},
				},
			}, nil).ToSlice(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})
	})

	Context("When the offer link does not resolve", func() {
		It("should return not found for a corrupted link", func() {
			fixture := api.CreateCollectionFixture(client, ctx, api.NewCollection().Build(), nil)

			selfLink := fixture.Offer.SelfLink
			corrupted := selfLink[:len(selfLink)-1] + "x/"

			_, err := client.ReadOffer(ctx, corrupted)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("404"))
		})

		It("should return not found for an unknown link", func() {
			_, err := client.ReadOffer(ctx, "offers/bogus")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("404"))
		})
	})
})

var _ = Describe("Offer Type", func() {
	Context("When creating a collection with a legacy offer type", func() {
		It("should provision a tier based offer", func() {
			offerType := openapi.OfferTypeS2

			for _, mode := range []api.AddressingMode{api.ByName, api.ByResourceID} {
				fixture := api.CreateCollectionFixture(client, ctx, api.NewCollection().Build(), &collections.RequestOptions{
					OfferType: &offerType,
				})

				collection, _, err := client.ReadCollection(ctx, api.NewEndpoints().Collection(mode, fixture.Database, fixture.Collection), nil)
				Expect(err).NotTo(HaveOccurred())

				offer, err := client.OfferForCollection(ctx, collection)
				Expect(err).NotTo(HaveOccurred())
				Expect(offers.ValidateLinkage(offer, collection.SelfLink, &offerType)).To(Succeed())
				Expect(offer.OfferVersion).To(Equal(openapi.OfferVersionV1))
			}
		})
	})
})
