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

// Package cli implements the docdb-offers command.
package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/unikorn-cloud/docdb/pkg/client"
	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/executor"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

type factory struct {
	options client.Options
}

func (f *factory) client() *client.Client {
	return client.New(&f.options)
}

func printOffers(w io.Writer, offers ...openapi.Offer) error {
	table := uitable.New()
	table.MaxColWidth = 64
	table.AddRow("ID", "RID", "RESOURCE", "TYPE", "VERSION", "THROUGHPUT")

	for i := range offers {
		offer := &offers[i]

		offerType := "-"
		if offer.OfferType != nil {
			offerType = string(*offer.OfferType)
		}

		table.AddRow(offer.ID, offer.ResourceID, offer.ResourceLink, offerType, offer.OfferVersion, strconv.Itoa(offer.Throughput()))
	}

	_, err := fmt.Fprintln(w, table)

	return err
}

func newListCommand(f *factory) *cobra.Command {
	var maxItemCount int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			offers, err := f.client().ReadOffers(&executor.FeedOptions{MaxItemCount: maxItemCount}).ToSlice(cmd.Context())
			if err != nil {
				return err
			}

			return printOffers(cmd.OutOrStdout(), offers...)
		},
	}

	cmd.Flags().IntVar(&maxItemCount, "max-item-count", 0, "Page size used when reading the offer feed")

	return cmd
}

func newGetCommand(f *factory) *cobra.Command {
	return &cobra.Command{
		Use:   "get <offer-link>",
		Short: "Read an offer by its self link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offer, err := f.client().ReadOffer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printOffers(cmd.OutOrStdout(), *offer)
		},
	}
}

func newForCollectionCommand(f *factory) *cobra.Command {
	return &cobra.Command{
		Use:   "for-collection <collection-link>",
		Short: "Show the offer provisioning a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.client()

			collection, _, err := c.ReadCollection(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}

			offer, err := c.OfferForCollection(cmd.Context(), collection)
			if err != nil {
				return err
			}

			return printOffers(cmd.OutOrStdout(), *offer)
		},
	}
}

func newQueryCommand(f *factory) *cobra.Command {
	var id string

	var query string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query offers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := &openapi.QuerySpec{
				Query: query,
			}

			if id != "" {
				spec.Query = "SELECT * FROM root r WHERE r.id = @id"
				spec.Parameters = []openapi.QueryParameter{
					{Name: "@id", Value: id},
				}
			}

			offers, err := f.client().QueryOffers(spec, nil).ToSlice(cmd.Context())
			if err != nil {
				return err
			}

			return printOffers(cmd.OutOrStdout(), offers...)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Select the offer with this ID")
	cmd.Flags().StringVar(&query, "query", "SELECT * FROM root", "Raw query to execute")
	cmd.MarkFlagsMutuallyExclusive("id", "query")

	return cmd
}

func newReplaceCommand(f *factory) *cobra.Command {
	var throughput int

	cmd := &cobra.Command{
		Use:   "replace <offer-link>",
		Short: "Change an offer's throughput",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := f.client()

			offer, err := c.ReadOffer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			offer.Content = &openapi.OfferContent{
				OfferThroughput: throughput,
			}

			result, err := c.ReplaceOffer(cmd.Context(), offer.SelfLink, offer)
			if err != nil {
				return err
			}

			return printOffers(cmd.OutOrStdout(), *result)
		},
	}

	cmd.Flags().IntVar(&throughput, "throughput", 0, "New throughput to provision")

	if err := cmd.MarkFlagRequired("throughput"); err != nil {
		panic(err)
	}

	return cmd
}

// NewRootCommand returns the command tree.
func NewRootCommand() *cobra.Command {
	f := &factory{}

	cmd := &cobra.Command{
		Use:           "docdb-offers",
		Short:         "Inspect and manage document database offers",
		Version:       constants.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f.options.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newListCommand(f),
		newGetCommand(f),
		newForCollectionCommand(f),
		newQueryCommand(f),
		newReplaceCommand(f),
	)

	return cmd
}
