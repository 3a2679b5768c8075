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

package links_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/docdb/pkg/links"
)

// TestNormalization ensures leading and trailing separators are ignored.
func TestNormalization(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dbs/a/colls/b", links.Trim("/dbs/a/colls/b/"))
	require.True(t, links.Equal("dbs/a/colls/b/", "/dbs/a/colls/b"))
	require.False(t, links.Equal("dbs/a/colls/b/", "dbs/a/colls/c/"))
}

// TestBuilders ensures name based links are well formed.
func TestBuilders(t *testing.T) {
	t.Parallel()

	require.Equal(t, "dbs/sample database", links.Database("sample database"))
	require.Equal(t, "dbs/db/colls/coll", links.Collection("db", "coll"))
	require.Equal(t, "dbs/AbCdEQ==/colls", links.CollectionFeed("dbs/AbCdEQ==/"))
	require.Equal(t, "offers/x1Y2", links.Offer("x1Y2"))
}

// TestParse ensures links of every kind decompose.
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		link     string
		expected links.Path
	}{
		{
			link:     "dbs",
			expected: links.Path{Kind: links.KindDatabaseFeed},
		},
		{
			link:     "dbs/AbCdEQ==/",
			expected: links.Path{Kind: links.KindDatabase, DatabaseID: "AbCdEQ=="},
		},
		{
			link:     "/dbs/db/colls",
			expected: links.Path{Kind: links.KindCollectionFeed, DatabaseID: "db"},
		},
		{
			link:     "dbs/db/colls/sample collection/",
			expected: links.Path{Kind: links.KindCollection, DatabaseID: "db", CollectionID: "sample collection"},
		},
		{
			link:     "offers",
			expected: links.Path{Kind: links.KindOfferFeed},
		},
		{
			link:     "offers/x1Y2/",
			expected: links.Path{Kind: links.KindOffer, OfferID: "x1Y2"},
		},
	}

	for _, test := range tests {
		path, err := links.Parse(test.link)
		require.NoError(t, err, test.link)
		require.Equal(t, test.expected, *path, test.link)
	}
}

// TestParseMalformed ensures structurally invalid links are rejected.
func TestParseMalformed(t *testing.T) {
	t.Parallel()

	for _, link := range []string{"", "/", "dbs//colls", "dbs/a/docs", "dbs/a/colls/b/docs/c", "offers/a/b", "users/a"} {
		_, err := links.Parse(link)
		require.ErrorIs(t, err, links.ErrMalformedLink, link)
	}
}

// TestEscapedPath ensures segments are escaped individually.
func TestEscapedPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/dbs/sample%20database/colls", links.EscapedPath("dbs/sample database/colls/"))
	require.Equal(t, "/offers/x1Y2", links.EscapedPath("/offers/x1Y2/"))
}
