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

package constants

import (
	"fmt"
	"os"
	"path"
)

var (
	// Application is the application name.
	//nolint:gochecknoglobals
	Application = path.Base(os.Args[0])

	// Version is the application version set via the Makefile.
	//nolint:gochecknoglobals
	Version string

	// Revision is the git revision set via the Makefile.
	//nolint:gochecknoglobals
	Revision string
)

// VersionString returns a canonical version string.  It's based on
// HTTP's User-Agent so can be used to set that too, if this ever has to
// call out to other micro services.
func VersionString() string {
	return fmt.Sprintf("%s/%s (revision/%s)", Application, Version, Revision)
}

// Request headers.
const (
	HeaderAuthorization     = "Authorization"
	HeaderContentType       = "Content-Type"
	HeaderUserAgent         = "User-Agent"
	HeaderTraceParent       = "Traceparent"
	HeaderTraceState        = "Tracestate"
	HeaderVersion           = "x-ms-version"
	HeaderOfferThroughput   = "x-ms-offer-throughput"
	HeaderOfferType         = "x-ms-offer-type"
	HeaderPopulateQuotaInfo = "x-ms-documentdb-populatequotainfo"
	HeaderIsQuery           = "x-ms-documentdb-isquery"
	HeaderMaxItemCount      = "x-ms-max-item-count"
)

// Response headers.  HeaderContinuation is also sent on requests.
const (
	HeaderActivityID    = "x-ms-activity-id"
	HeaderRequestCharge = "x-ms-request-charge"
	HeaderContinuation  = "x-ms-continuation"
	HeaderItemCount     = "x-ms-item-count"
	HeaderResourceQuota = "x-ms-resource-quota"
	HeaderResourceUsage = "x-ms-resource-usage"
	HeaderETag          = "Etag"
)

const (
	// APIVersion is the service API version the SDK speaks.
	APIVersion = "2018-12-31"

	MediaTypeJSON      = "application/json"
	MediaTypeQueryJSON = "application/query+json"
)

// Quota keys reported in the resource quota and usage headers.
const (
	QuotaCollectionSize   = "collectionSize"
	QuotaDocumentSize     = "documentSize"
	QuotaDocumentsSize    = "documentsSize"
	QuotaDocumentsCount   = "documentsCount"
	QuotaFunctions        = "functions"
	QuotaStoredProcedures = "storedProcedures"
	QuotaTriggers         = "triggers"
)

const (
	// DefaultOfferThroughput is provisioned when a collection is created
	// without an explicit throughput or type.
	DefaultOfferThroughput = 400

	// MultiPartitionThroughput is the minimum throughput at which a
	// partitioned collection is spread over more than one partition.
	MultiPartitionThroughput = 2000

	// MultiPartitionCount is how many partitions a multi-partition
	// collection is created with.
	MultiPartitionCount = 5

	// PartitionSize is the quota, in KiB, each partition contributes to the
	// collection size.
	PartitionSize = 1024 * 1024

	// DefaultMaxItemCount is the page size used when none is requested.
	DefaultMaxItemCount = 100
)
