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

package query_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/query"
)

//nolint:gochecknoglobals
var document = map[string]any{
	"id":       "aB3d",
	"resource": "dbs/k1EeAA==/colls/k1EeAPdJmds=/",
	"content": map[string]any{
		"offerThroughput": float64(400),
	},
	"enabled": true,
}

func compile(t *testing.T, q string, parameters ...openapi.QueryParameter) *query.Query {
	t.Helper()

	compiled, err := query.Compile(&openapi.QuerySpec{Query: q, Parameters: parameters})
	require.NoError(t, err)

	return compiled
}

// TestMatches ensures supported queries evaluate correctly.
func TestMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query      string
		parameters []openapi.QueryParameter
		matches    bool
	}{
		{query: "SELECT * FROM root", matches: true},
		{query: "select * from root r", matches: true},
		{query: "select * FROM root r WHERE r.id=@id", parameters: []openapi.QueryParameter{{Name: "@id", Value: "aB3d"}}, matches: true},
		{query: "select * FROM root r WHERE r.id=@id", parameters: []openapi.QueryParameter{{Name: "@id", Value: "zzzz"}}, matches: false},
		{query: "SELECT * FROM root AS o WHERE o.id = 'aB3d'", matches: true},
		{query: `SELECT * FROM root WHERE root.resource = "dbs/k1EeAA==/colls/k1EeAPdJmds=/"`, matches: true},
		{query: "SELECT * FROM root r WHERE r.content.offerThroughput = 400", matches: true},
		{query: "SELECT * FROM root r WHERE r.content.offerThroughput = @t", parameters: []openapi.QueryParameter{{Name: "@t", Value: 400}}, matches: true},
		{query: "SELECT * FROM root r WHERE r.id = 'aB3d' AND r.enabled = true", matches: true},
		{query: "SELECT * FROM root r WHERE r.id = 'aB3d' and r.enabled = false", matches: false},
		{query: "SELECT * FROM root r WHERE r.missing = null", matches: false},
		{query: "SELECT * FROM root r WHERE r.content = 400", matches: false},
	}

	for _, test := range tests {
		require.Equal(t, test.matches, compile(t, test.query, test.parameters...).Matches(document), test.query)
	}
}

// TestCompileInvalid ensures unsupported or malformed queries are rejected.
func TestCompileInvalid(t *testing.T) {
	t.Parallel()

	tests := []*openapi.QuerySpec{
		nil,
		{Query: ""},
		{Query: "   "},
		{Query: "SELECT id FROM root"},
		{Query: "SELECT * root"},
		{Query: "SELECT * FROM"},
		{Query: "SELECT * FROM root r WHERE"},
		{Query: "SELECT * FROM root r WHERE x.id = 'a'"},
		{Query: "SELECT * FROM root r WHERE r.id = @id"},
		{Query: "SELECT * FROM root r WHERE r.id = 'a' OR r.id = 'b'"},
		{Query: "SELECT * FROM root r WHERE r.id > 1"},
		{Query: "SELECT * FROM root r WHERE r.id = 'unterminated"},
		{Query: "SELECT * FROM root r WHERE r.id = @id", Parameters: []openapi.QueryParameter{{Name: "id", Value: "a"}}},
		{Query: "SELECT * FROM root r ORDER BY r.id"},
	}

	for _, test := range tests {
		_, err := query.Compile(test)
		require.ErrorIs(t, err, query.ErrInvalidQuery)
	}
}
