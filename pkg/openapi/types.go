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

package openapi

// ResourceMetadata is common to all service resources.
type ResourceMetadata struct {
	// ID is the user or service assigned identifier.
	ID string `json:"id,omitempty"`
	// ResourceID is the server assigned, immutable identifier.
	ResourceID string `json:"_rid,omitempty"`
	// SelfLink addresses the resource using resource IDs.
	SelfLink string `json:"_self,omitempty"`
	// ETag changes on every modification.
	ETag string `json:"_etag,omitempty"`
	// Timestamp is the last modification time in seconds since the epoch.
	Timestamp int64 `json:"_ts,omitempty"`
}

// Database is a container of collections.
type Database struct {
	ResourceMetadata

	// Collections is the relative link to the collections feed.
	Collections string `json:"_colls,omitempty"`
}

// IndexKind defines how a path is indexed.
type IndexKind string

const (
	IndexKindHash    IndexKind = "Hash"
	IndexKindRange   IndexKind = "Range"
	IndexKindSpatial IndexKind = "Spatial"
)

// DataType is the type of value an index applies to.
type DataType string

const (
	DataTypeString DataType = "String"
	DataTypeNumber DataType = "Number"
	DataTypePoint  DataType = "Point"
)

type Index struct {
	Kind      IndexKind `json:"kind"`
	DataType  DataType  `json:"dataType"`
	Precision *int      `json:"precision,omitempty"`
}

type IncludedPath struct {
	Path    string  `json:"path"`
	Indexes []Index `json:"indexes,omitempty"`
}

type ExcludedPath struct {
	Path string `json:"path"`
}

type IndexingPolicy struct {
	Automatic     *bool          `json:"automatic,omitempty"`
	IndexingMode  string         `json:"indexingMode,omitempty"`
	IncludedPaths []IncludedPath `json:"includedPaths,omitempty"`
	ExcludedPaths []ExcludedPath `json:"excludedPaths,omitempty"`
}

// PartitionKind is the partitioning algorithm.
type PartitionKind string

const (
	PartitionKindHash  PartitionKind = "Hash"
	PartitionKindRange PartitionKind = "Range"
)

type PartitionKeyDefinition struct {
	Paths []string      `json:"paths"`
	Kind  PartitionKind `json:"kind"`
}

// Collection is a container of documents, provisioned by exactly one offer.
type Collection struct {
	ResourceMetadata

	IndexingPolicy *IndexingPolicy          `json:"indexingPolicy,omitempty"`
	PartitionKey   *PartitionKeyDefinition `json:"partitionKey,omitempty"`

	Documents string `json:"_docs,omitempty"`
}

// Partitioned is true when the collection declares a partition key.
func (c *Collection) Partitioned() bool {
	return c.PartitionKey != nil && len(c.PartitionKey.Paths) > 0
}

// OfferVersion distinguishes tier based and throughput based offers.
type OfferVersion string

const (
	// OfferVersionV1 offers are tier based, see OfferType.
	OfferVersionV1 OfferVersion = "V1"
	// OfferVersionV2 offers are throughput based.
	OfferVersionV2 OfferVersion = "V2"
)

type OfferContent struct {
	OfferThroughput int `json:"offerThroughput"`
}

// Offer represents provisioned throughput for exactly one collection.
type Offer struct {
	ResourceMetadata

	// ResourceLink is the self link of the owning collection.
	ResourceLink string `json:"resource,omitempty"`
	// OfferResourceID is the resource ID of the owning collection.
	OfferResourceID string        `json:"offerResourceId,omitempty"`
	OfferType       *OfferType    `json:"offerType,omitempty"`
	OfferVersion    OfferVersion  `json:"offerVersion,omitempty"`
	Content         *OfferContent `json:"content,omitempty"`
}

// Throughput returns the provisioned throughput, or zero if it isn't reported.
func (o *Offer) Throughput() int {
	if o.Content == nil {
		return 0
	}

	return o.Content.OfferThroughput
}

// QueryParameter binds a named parameter e.g. @id.
type QueryParameter struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// QuerySpec is a parameterized query.
type QuerySpec struct {
	Query      string           `json:"query"`
	Parameters []QueryParameter `json:"parameters,omitempty"`
}

// DatabaseList is a single page of the database feed.
type DatabaseList struct {
	ResourceID string     `json:"_rid"`
	Databases  []Database `json:"Databases"`
	Count      int        `json:"_count"`
}

// CollectionList is a single page of a collection feed.
type CollectionList struct {
	ResourceID  string       `json:"_rid"`
	Collections []Collection `json:"DocumentCollections"`
	Count       int          `json:"_count"`
}

// OfferList is a single page of the offer feed.
type OfferList struct {
	ResourceID string  `json:"_rid"`
	Offers     []Offer `json:"Offers"`
	Count      int     `json:"_count"`
}

// Error is returned by the service on any non-2xx response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
