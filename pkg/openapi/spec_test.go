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

package openapi_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

// TestSwaggerLoads ensures the embedded document is valid.
func TestSwaggerLoads(t *testing.T) {
	t.Parallel()

	doc, err := openapi.GetSwagger()
	require.NoError(t, err)
	require.NotNil(t, doc.Paths.Find("/offers/{offerID}"))
	require.NotNil(t, doc.Paths.Find("/dbs/{databaseID}/colls/{collectionID}"))
}

// TestOfferTypeDecode ensures tier labels are validated on decode.
func TestOfferTypeDecode(t *testing.T) {
	t.Parallel()

	var offer openapi.Offer

	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","offerType":"S2"}`), &offer))
	require.NotNil(t, offer.OfferType)
	require.Equal(t, openapi.OfferTypeS2, *offer.OfferType)

	throughput, ok := offer.OfferType.Throughput()
	require.True(t, ok)
	require.Equal(t, 1000, throughput)

	require.Error(t, json.Unmarshal([]byte(`{"id":"a","offerType":"not a tier"}`), &offer))
}

// TestOfferThroughput ensures offers without content report zero.
func TestOfferThroughput(t *testing.T) {
	t.Parallel()

	offer := &openapi.Offer{}
	require.Zero(t, offer.Throughput())

	offer.Content = &openapi.OfferContent{OfferThroughput: 400}
	require.Equal(t, 400, offer.Throughput())
}
