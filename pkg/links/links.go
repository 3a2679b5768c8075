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

// Package links builds and parses hierarchical resource links.
//
// A resource may be addressed by name (dbs/my-db/colls/my-coll) or by
// resource ID (dbs/AbCdEQ==/colls/AbCdEYg2bXk=/), the latter being what the
// service returns as a self link.  Both forms share the same structure.
package links

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMalformedLink = errors.New("malformed resource link")

const (
	Databases   = "dbs"
	Collections = "colls"
	Offers      = "offers"
)

// Kind is the resource type a link addresses.
type Kind string

const (
	KindDatabaseFeed   Kind = "databases"
	KindDatabase       Kind = "database"
	KindCollectionFeed Kind = "collections"
	KindCollection     Kind = "collection"
	KindOfferFeed      Kind = "offers"
	KindOffer          Kind = "offer"
)

// Trim removes leading and trailing separators.
func Trim(link string) string {
	return strings.Trim(link, "/")
}

// Equal compares two links after normalization.
func Equal(a, b string) bool {
	return Trim(a) == Trim(b)
}

// Database returns a name based database link.
func Database(databaseID string) string {
	return Databases + "/" + databaseID
}

// Collection returns a name based collection link.
func Collection(databaseID, collectionID string) string {
	return Database(databaseID) + "/" + Collections + "/" + collectionID
}

// CollectionFeed returns the collection feed under a database link.
func CollectionFeed(databaseLink string) string {
	return Trim(databaseLink) + "/" + Collections
}

// Offer returns an offer link.
func Offer(offerID string) string {
	return Offers + "/" + offerID
}

// Path is a parsed link.
type Path struct {
	Kind         Kind
	DatabaseID   string
	CollectionID string
	OfferID      string
}

// Parse decomposes a link.  Segments are returned verbatim, so may be names
// or resource IDs.
func Parse(link string) (*Path, error) {
	trimmed := Trim(link)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty link", ErrMalformedLink)
	}

	segments := strings.Split(trimmed, "/")

	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrMalformedLink, link)
		}
	}

	switch segments[0] {
	case Offers:
		switch len(segments) {
		case 1:
			return &Path{Kind: KindOfferFeed}, nil
		case 2:
			return &Path{Kind: KindOffer, OfferID: segments[1]}, nil
		}
	case Databases:
		switch len(segments) {
		case 1:
			return &Path{Kind: KindDatabaseFeed}, nil
		case 2:
			return &Path{Kind: KindDatabase, DatabaseID: segments[1]}, nil
		case 3:
			if segments[2] == Collections {
				return &Path{Kind: KindCollectionFeed, DatabaseID: segments[1]}, nil
			}
		case 4:
			if segments[2] == Collections {
				return &Path{Kind: KindCollection, DatabaseID: segments[1], CollectionID: segments[3]}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrMalformedLink, link)
}

// EscapedPath returns the link as an absolute, escaped URL path.
func EscapedPath(link string) string {
	segments := strings.Split(Trim(link), "/")

	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}

	return "/" + strings.Join(segments, "/")
}
