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

package database

import (
	"context"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/handler/util"
	"github.com/unikorn-cloud/docdb/pkg/server/store"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Client wraps up database related management handling.
type Client struct {
	store *store.Store
}

// NewClient returns a new client.
func NewClient(store *store.Store) *Client {
	return &Client{
		store: store,
	}
}

// List returns all databases.
func (c *Client) List() []openapi.Database {
	return c.store.ListDatabases()
}

// Get returns a database by name or resource ID.
func (c *Client) Get(databaseID string) (*openapi.Database, error) {
	result, err := c.store.GetDatabase(databaseID)
	if err != nil {
		return nil, util.StoreError(err, "database")
	}

	return result, nil
}

// Create creates a database.
func (c *Client) Create(ctx context.Context, request *openapi.Database) (*openapi.Database, error) {
	result, err := c.store.CreateDatabase(request)
	if err != nil {
		return nil, util.StoreError(err, "database")
	}

	log.FromContext(ctx).Info("database created", "id", result.ID, "rid", result.ResourceID)

	return result, nil
}

// Delete deletes a database, its collections and their offers.
func (c *Client) Delete(ctx context.Context, databaseID string) error {
	if err := c.store.DeleteDatabase(databaseID); err != nil {
		return util.StoreError(err, "database")
	}

	log.FromContext(ctx).Info("database deleted", "database", databaseID)

	return nil
}
