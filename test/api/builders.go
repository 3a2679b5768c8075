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

package api

import (
	"github.com/google/uuid"

	"github.com/unikorn-cloud/docdb/pkg/openapi"

	"k8s.io/utils/ptr"
)

// GenerateTestID returns a unique resource ID.
func GenerateTestID() string {
	return "test-" + uuid.NewString()
}

// CollectionBuilder builds collection definitions for testing.
type CollectionBuilder struct {
	collection *openapi.Collection
}

// NewCollection creates a non-partitioned collection with a unique ID.
func NewCollection() *CollectionBuilder {
	return &CollectionBuilder{
		collection: &openapi.Collection{
			ResourceMetadata: openapi.ResourceMetadata{
				ID: GenerateTestID(),
			},
		},
	}
}

// WithID overrides the generated ID.
func (b *CollectionBuilder) WithID(id string) *CollectionBuilder {
	b.collection.ID = id
	return b
}

// Partitioned adds range indexes on all paths and a hash partition key
// on the document ID.
func (b *CollectionBuilder) Partitioned() *CollectionBuilder {
	b.collection.IndexingPolicy = &openapi.IndexingPolicy{
		IncludedPaths: []openapi.IncludedPath{
			{
				Path: "/",
				Indexes: []openapi.Index{
					{Kind: openapi.IndexKindRange, DataType: openapi.DataTypeNumber, Precision: ptr.To(-1)},
					{Kind: openapi.IndexKindRange, DataType: openapi.DataTypeString, Precision: ptr.To(-1)},
				},
			},
		},
	}

	b.collection.PartitionKey = &openapi.PartitionKeyDefinition{
		Paths: []string{"/id"},
		Kind:  openapi.PartitionKindHash,
	}

	return b
}

// Build returns the completed collection definition.
func (b *CollectionBuilder) Build() *openapi.Collection {
	return b.collection
}
