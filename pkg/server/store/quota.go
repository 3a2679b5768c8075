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

package store

import (
	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

// Partitions returns how many physical partitions back a collection.
func Partitions(collection *openapi.Collection, offer *openapi.Offer) int {
	if collection.Partitioned() && offer.Throughput() >= constants.MultiPartitionThroughput {
		return constants.MultiPartitionCount
	}

	return 1
}

// Quota returns the resource limits of a collection, keyed as reported in
// the resource quota header.
func Quota(collection *openapi.Collection, offer *openapi.Offer) map[string]int64 {
	size := int64(Partitions(collection, offer)) * constants.PartitionSize

	return map[string]int64{
		constants.QuotaFunctions:        25,
		constants.QuotaStoredProcedures: 100,
		constants.QuotaTriggers:         25,
		constants.QuotaDocumentSize:     10240,
		constants.QuotaDocumentsSize:    size,
		constants.QuotaDocumentsCount:   -1,
		constants.QuotaCollectionSize:   size,
	}
}

// Usage returns the resource usage of a collection.  The emulator stores no
// documents so everything is zero.
func Usage() map[string]int64 {
	return map[string]int64{
		constants.QuotaFunctions:        0,
		constants.QuotaStoredProcedures: 0,
		constants.QuotaTriggers:         0,
		constants.QuotaDocumentSize:     0,
		constants.QuotaDocumentsSize:    0,
		constants.QuotaDocumentsCount:   0,
		constants.QuotaCollectionSize:   0,
	}
}
