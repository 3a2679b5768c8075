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

// Package client is the SDK entry point.
package client

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/docdb/pkg/collections"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/offers"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

// Options configure a client.
type Options struct {
	Executor executor.Options
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	o.Executor.AddFlags(f)
}

// Client is safe for concurrent use, it holds no state between calls.
type Client struct {
	collections *collections.Manager
	offers      *offers.Manager
}

// New returns a client that talks HTTP.
func New(options *Options) *Client {
	return NewWithExecutor(executor.New(&options.Executor))
}

// NewWithExecutor returns a client using the provided executor.
func NewWithExecutor(executor executor.Executor) *Client {
	return &Client{
		collections: collections.New(executor),
		offers:      offers.New(executor),
	}
}

func (c *Client) CreateDatabase(ctx context.Context, database *openapi.Database) (*openapi.Database, error) {
	return c.collections.CreateDatabase(ctx, database)
}

func (c *Client) ReadDatabase(ctx context.Context, link string) (*openapi.Database, error) {
	return c.collections.ReadDatabase(ctx, link)
}

func (c *Client) ReadDatabases(options *executor.FeedOptions) *executor.Feed[openapi.Database] {
	return c.collections.ReadDatabases(options)
}

func (c *Client) DeleteDatabase(ctx context.Context, link string) error {
	return c.collections.DeleteDatabase(ctx, link)
}

func (c *Client) CreateCollection(ctx context.Context, databaseLink string, collection *openapi.Collection, options *collections.RequestOptions) (*openapi.Collection, error) {
	return c.collections.CreateCollection(ctx, databaseLink, collection, options)
}

func (c *Client) ReadCollection(ctx context.Context, link string, options *collections.RequestOptions) (*openapi.Collection, *executor.ResponseHeaders, error) {
	return c.collections.ReadCollection(ctx, link, options)
}

func (c *Client) ReadCollections(databaseLink string, options *executor.FeedOptions) *executor.Feed[openapi.Collection] {
	return c.collections.ReadCollections(databaseLink, options)
}

func (c *Client) DeleteCollection(ctx context.Context, link string) error {
	return c.collections.DeleteCollection(ctx, link)
}

func (c *Client) ReadOffer(ctx context.Context, link string) (*openapi.Offer, error) {
	return c.offers.Read(ctx, link)
}

func (c *Client) ReadOffers(options *executor.FeedOptions) *executor.Feed[openapi.Offer] {
	return c.offers.List(options)
}

func (c *Client) QueryOffers(query *openapi.QuerySpec, options *executor.FeedOptions) *executor.Feed[openapi.Offer] {
	return c.offers.Query(query, options)
}

func (c *Client) ReplaceOffer(ctx context.Context, link string, offer *openapi.Offer) (*openapi.Offer, error) {
	return c.offers.Replace(ctx, link, offer)
}

// OfferForCollection returns the offer provisioning a collection.
func (c *Client) OfferForCollection(ctx context.Context, collection *openapi.Collection) (*openapi.Offer, error) {
	return c.offers.ForCollection(ctx, collection)
}
