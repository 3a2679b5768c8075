/*
Copyright 2025 the Unikorn Authors.
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

package docdb_test

import (
	"context"
	"fmt"
	"net"
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive
	. "github.com/onsi/gomega"    //nolint:revive
	"github.com/pact-foundation/pact-go/v2/consumer"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/pact-foundation/pact-go/v2/models"

	"github.com/unikorn-cloud/docdb/pkg/client"
	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

const (
	offerID        = "aB3d"
	offerLink      = "offers/aB3d/"
	collectionRID  = "k1EeAPdJmds="
	collectionLink = "dbs/k1EeAA==/colls/k1EeAPdJmds=/"
)

var testingT *testing.T //nolint:gochecknoglobals

func TestContracts(t *testing.T) { //nolint:paralleltest
	testingT = t

	RegisterFailHandler(Fail)
	RunSpecs(t, "Document Database Consumer Contract Suite")
}

// createClient creates an SDK client for the mock server.
func createClient(config consumer.MockServerConfig) *client.Client {
	url := fmt.Sprintf("http://%s", net.JoinHostPort(config.Host, fmt.Sprintf("%d", config.Port)))

	return client.New(&client.Options{
		Executor: executor.Options{
			Endpoint:  url,
			AuthToken: "contract-token",
		},
	})
}

// offerBody is the wire representation of the offer under test.
func offerBody(throughput int) map[string]interface{} {
	return map[string]interface{}{
		"id":              matchers.String(offerID),
		"_rid":            matchers.String(offerID),
		"_self":           matchers.String(offerLink),
		"_etag":           matchers.String("\"00000000-0000-0000-0000-000000000000\""),
		"_ts":             matchers.Integer(1700000000),
		"resource":        matchers.String(collectionLink),
		"offerResourceId": matchers.String(collectionRID),
		"offerVersion":    matchers.String("V2"),
		"content": map[string]interface{}{
			"offerThroughput": matchers.Integer(throughput),
		},
	}
}

func jsonResponse(status int, body interface{}) (int, func(*consumer.V4ResponseBuilder)) {
	return status, func(b *consumer.V4ResponseBuilder) {
		b.Header(constants.HeaderContentType, matchers.String(constants.MediaTypeJSON))
		b.JSONBody(body)
	}
}

var _ = Describe("Document Database Offer Contract", func() {
	var (
		pact *consumer.V4HTTPMockProvider
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		pact, err = consumer.NewV4Pact(consumer.MockHTTPProviderConfig{
			Consumer: "docdb-sdk",
			Provider: "docdb",
			PactDir:  "../pacts",
		})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("ReadOffer", func() {
		Context("when the offer exists", func() {
			It("returns the offer", func() {
				pact.AddInteraction().
					GivenWithParameter(models.ProviderState{
						Name: "offer exists",
						Parameters: map[string]interface{}{
							"offerID":    offerID,
							"throughput": 400,
						},
					}).
					UponReceiving("a request for an offer").
					WithRequest("GET", "/offers/"+offerID, func(b *consumer.V4RequestBuilder) {
						b.Header(constants.HeaderVersion, matchers.String(constants.APIVersion))
					}).
					WillRespondWith(jsonResponse(200, offerBody(400)))

				test := func(config consumer.MockServerConfig) error {
					offer, err := createClient(config).ReadOffer(ctx, offerLink)
					if err != nil {
						return fmt.Errorf("reading offer: %w", err)
					}

					Expect(offer.ID).To(Equal(offerID))
					Expect(offer.ResourceLink).To(Equal(collectionLink))
					Expect(offer.Throughput()).To(Equal(400))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})

		Context("when the offer does not exist", func() {
			It("returns not found", func() {
				pact.AddInteraction().
					Given("offer does not exist").
					UponReceiving("a request for a missing offer").
					WithRequest("GET", "/offers/missing").
					WillRespondWith(jsonResponse(404, map[string]interface{}{
						"code":    matchers.String("NotFound"),
						"message": matchers.String("offer does not exist"),
					}))

				test := func(config consumer.MockServerConfig) error {
					_, err := createClient(config).ReadOffer(ctx, "offers/missing")
					Expect(executor.IsNotFound(err)).To(BeTrue())

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("ReadOffers", func() {
		Context("when offers exist", func() {
			It("returns a page of offers", func() {
				pact.AddInteraction().
					Given("offer exists").
					UponReceiving("a request for the offer feed").
					WithRequest("GET", "/offers").
					WillRespondWith(jsonResponse(200, map[string]interface{}{
						"_rid":   matchers.String(""),
						"Offers": matchers.EachLike(offerBody(400), 1),
						"_count": matchers.Integer(1),
					}))

				test := func(config consumer.MockServerConfig) error {
					offers, err := createClient(config).ReadOffers(nil).ToSlice(ctx)
					if err != nil {
						return fmt.Errorf("listing offers: %w", err)
					}

					Expect(offers).To(HaveLen(1))
					Expect(offers[0].SelfLink).To(Equal(offerLink))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("QueryOffers", func() {
		Context("when an offer matches", func() {
			It("returns the matching offers", func() {
				pact.AddInteraction().
					Given("offer exists").
					UponReceiving("a query for offers by id").
					WithRequest("POST", "/offers", func(b *consumer.V4RequestBuilder) {
						b.Header(constants.HeaderContentType, matchers.String(constants.MediaTypeQueryJSON))
						b.Header(constants.HeaderIsQuery, matchers.String("True"))
						b.JSONBody(map[string]interface{}{
							"query": matchers.String("SELECT * FROM root r WHERE r.id = @id"),
							"parameters": []map[string]interface{}{
								{
									"name":  matchers.String("@id"),
									"value": matchers.String(offerID),
								},
							},
						})
					}).
					WillRespondWith(jsonResponse(200, map[string]interface{}{
						"Offers": matchers.EachLike(offerBody(400), 1),
						"_count": matchers.Integer(1),
					}))

				test := func(config consumer.MockServerConfig) error {
					query := &openapi.QuerySpec{
						Query: "SELECT * FROM root r WHERE r.id = @id",
						Parameters: []openapi.QueryParameter{
							{Name: "@id", Value: offerID},
						},
					}

					offers, err := createClient(config).QueryOffers(query, nil).ToSlice(ctx)
					if err != nil {
						return fmt.Errorf("querying offers: %w", err)
					}

					Expect(offers).To(HaveLen(1))
					Expect(offers[0].ID).To(Equal(offerID))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})

	Describe("ReplaceOffer", func() {
		Context("when the offer exists", func() {
			It("returns the updated offer", func() {
				pact.AddInteraction().
					Given("offer exists").
					UponReceiving("a request to replace an offer").
					WithRequest("PUT", "/offers/"+offerID, func(b *consumer.V4RequestBuilder) {
						b.Header(constants.HeaderContentType, matchers.String(constants.MediaTypeJSON))
						b.JSONBody(map[string]interface{}{
							"id":   matchers.String(offerID),
							"_rid": matchers.String(offerID),
							"content": map[string]interface{}{
								"offerThroughput": matchers.Integer(500),
							},
						})
					}).
					WillRespondWith(jsonResponse(200, offerBody(500)))

				test := func(config consumer.MockServerConfig) error {
					offer := &openapi.Offer{
						ResourceMetadata: openapi.ResourceMetadata{
							ID:         offerID,
							ResourceID: offerID,
						},
						Content: &openapi.OfferContent{
							OfferThroughput: 500,
						},
					}

					result, err := createClient(config).ReplaceOffer(ctx, offerLink, offer)
					if err != nil {
						return fmt.Errorf("replacing offer: %w", err)
					}

					Expect(result.Throughput()).To(Equal(500))

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})

		Context("when the throughput is invalid", func() {
			It("returns bad request", func() {
				pact.AddInteraction().
					Given("offer exists").
					UponReceiving("a request to replace an offer with invalid throughput").
					WithRequest("PUT", "/offers/"+offerID, func(b *consumer.V4RequestBuilder) {
						b.JSONBody(map[string]interface{}{
							"id":   matchers.String(offerID),
							"_rid": matchers.String(offerID),
							"content": map[string]interface{}{
								"offerThroughput": matchers.Integer(-1),
							},
						})
					}).
					WillRespondWith(jsonResponse(400, map[string]interface{}{
						"code":    matchers.String("BadRequest"),
						"message": matchers.String("offer throughput must be positive"),
					}))

				test := func(config consumer.MockServerConfig) error {
					offer := &openapi.Offer{
						ResourceMetadata: openapi.ResourceMetadata{
							ID:         offerID,
							ResourceID: offerID,
						},
						Content: &openapi.OfferContent{
							OfferThroughput: -1,
						},
					}

					_, err := createClient(config).ReplaceOffer(ctx, offerLink, offer)
					Expect(executor.IsBadRequest(err)).To(BeTrue())

					return nil
				}

				Expect(pact.ExecuteTest(testingT, test)).To(Succeed())
			})
		})
	})
})
