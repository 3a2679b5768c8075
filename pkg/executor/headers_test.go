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

package executor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
)

// TestParseQuota ensures quota headers decode.
func TestParseQuota(t *testing.T) {
	t.Parallel()

	quota, err := executor.ParseQuota("functions=25;storedProcedures=100;documentsCount=-1;collectionSize=1048576;")
	require.NoError(t, err)

	size, ok := quota.Get(constants.QuotaCollectionSize)
	require.True(t, ok)
	require.EqualValues(t, 1048576, size)

	count, ok := quota.Get(constants.QuotaDocumentsCount)
	require.True(t, ok)
	require.EqualValues(t, -1, count)

	_, ok = quota.Get("missing")
	require.False(t, ok)
}

// TestParseQuotaInvalid ensures malformed entries are rejected.
func TestParseQuotaInvalid(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"collectionSize", "=1", "collectionSize=1.5", "a=1;b"} {
		_, err := executor.ParseQuota(value)
		require.ErrorIs(t, err, executor.ErrInvalidHeader, value)
	}
}

// TestQuotaString ensures encoding is stable and round trips.
func TestQuotaString(t *testing.T) {
	t.Parallel()

	quota := executor.Quota{
		constants.QuotaTriggers:       25,
		constants.QuotaCollectionSize: 5242880,
	}

	require.Equal(t, "collectionSize=5242880;triggers=25", quota.String())

	decoded, err := executor.ParseQuota(quota.String())
	require.NoError(t, err)
	require.Equal(t, quota, decoded)
}
