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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/docdb/pkg/collections"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Offer Replace", func() {
	var fixture *api.CollectionFixture

	BeforeEach(func() {
		fixture = api.CreateCollectionFixture(client, ctx, api.NewCollection().Build(), &collections.RequestOptions{
			OfferThroughput: ptr.To(1000),
		})
	})

	// withResourceID copies the fixture's offer, overriding its resource ID.
	withResourceID := func(rid string) *openapi.Offer {
		offer := *fixture.Offer
		offer.ResourceID = rid

		return &offer
	}

	Context("When replacing the offer with a new throughput", func() {
		It("should persist the throughput", func() {
			offer, err := client.ReadOffer(ctx, fixture.Offer.SelfLink)
			Expect(err).NotTo(HaveOccurred())

			offer.Content = &openapi.OfferContent{
				OfferThroughput: offer.Throughput() + 100,
			}

			result, err := client.ReplaceOffer(ctx, offer.SelfLink, offer)
			Expect(err).NotTo(HaveOccurred())
			api.VerifyOfferResponseBody(result, fixture.Collection, 1100)
			Expect(result.ETag).NotTo(Equal(fixture.Offer.ETag))

			persisted, err := client.ReadOffer(ctx, offer.SelfLink)
			Expect(err).NotTo(HaveOccurred())
			Expect(persisted.Throughput()).To(Equal(1100))
		})
	})

	Context("When replacing the offer with an invalid identity", func() {
		DescribeTable("should reject the replacement",
			func(rid string) {
				_, err := client.ReplaceOffer(ctx, fixture.Offer.SelfLink, withResourceID(rid))
				Expect(executor.IsBadRequest(err)).To(BeTrue(), "%v", err)

				persisted, err := client.ReadOffer(ctx, fixture.Offer.SelfLink)
				Expect(err).NotTo(HaveOccurred())
				Expect(persisted.Throughput()).To(Equal(1000))
			},
			Entry("with an unknown resource ID", "NotAllowed"),
			Entry("with a malformed resource ID", "InvalidRid"),
		)

		It("should reject a missing ID and resource ID in the client", func() {
			offer := *fixture.Offer
			offer.ID = ""
			offer.ResourceID = ""

			_, err := client.ReplaceOffer(ctx, fixture.Offer.SelfLink, &offer)
			Expect(executor.IsBadRequest(err)).To(BeTrue())
		})

		It("should reject a missing ID and resource ID in the service", func() {
			offer := *fixture.Offer
			offer.ID = ""
			offer.ResourceID = ""

			status, serviceError, err := client.ReplaceOfferRaw(ctx, fixture.Offer.ID, &offer)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusBadRequest))
			Expect(serviceError.Code).To(Equal("BadRequest"))
		})
	})

	Context("When replacing the offer with a non-positive throughput", func() {
		It("should reject the replacement", func() {
			offer := *fixture.Offer
			offer.Content = &openapi.OfferContent{OfferThroughput: 0}

			_, err := client.ReplaceOffer(ctx, offer.SelfLink, &offer)
			Expect(executor.IsBadRequest(err)).To(BeTrue())
		})
	})
})
