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

//nolint:revive
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/unikorn-cloud/docdb/pkg/constants"
	"github.com/unikorn-cloud/docdb/pkg/openapi"
	"github.com/unikorn-cloud/docdb/pkg/server/errors"
	"github.com/unikorn-cloud/docdb/pkg/server/handler/collection"
	"github.com/unikorn-cloud/docdb/pkg/server/handler/database"
	"github.com/unikorn-cloud/docdb/pkg/server/handler/offer"
	"github.com/unikorn-cloud/docdb/pkg/server/handler/util"
	"github.com/unikorn-cloud/docdb/pkg/server/store"
)

type Handler struct {
	// store holds all resources.
	store *store.Store
}

// Ensure the interface is implemented.
var _ openapi.ServerInterface = &Handler{}

func New(store *store.Store) *Handler {
	return &Handler{
		store: store,
	}
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func readJSONBody(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return errors.NewInvalidRequestError().
			WithCausef("failed to decode request body: %w", err).
			WithErrorDescription("The request body is not valid JSON.").
			Prefixed()
	}

	return nil
}

func writeJSONResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// writeFeed writes a single page of a feed.
func writeFeed[T any](w http.ResponseWriter, r *http.Request, items []T, envelope func([]T) any) {
	page, continuation, err := util.Paginate(r, items)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	if continuation != "" {
		w.Header().Set(constants.HeaderContinuation, continuation)
	}

	w.Header().Set(constants.HeaderItemCount, strconv.Itoa(len(page)))

	writeJSONResponse(w, r, http.StatusOK, envelope(page))
}

func databaseList(items []openapi.Database) any {
	return &openapi.DatabaseList{Databases: items, Count: len(items)}
}

func collectionList(items []openapi.Collection) any {
	return &openapi.CollectionList{Collections: items, Count: len(items)}
}

func offerList(items []openapi.Offer) any {
	return &openapi.OfferList{Offers: items, Count: len(items)}
}

func (h *Handler) databaseClient() *database.Client {
	return database.NewClient(h.store)
}

func (h *Handler) GetDbs(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeFeed(w, r, h.databaseClient().List(), databaseList)
}

func (h *Handler) PostDbs(w http.ResponseWriter, r *http.Request) {
	request := &openapi.Database{}

	if err := readJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.databaseClient().Create(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusCreated, result)
}

func (h *Handler) DeleteDbsDatabaseID(w http.ResponseWriter, r *http.Request, databaseID openapi.DatabaseIDParameter) {
	if err := h.databaseClient().Delete(r.Context(), databaseID); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDbsDatabaseID(w http.ResponseWriter, r *http.Request, databaseID openapi.DatabaseIDParameter) {
	result, err := h.databaseClient().Get(databaseID)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) collectionClient() *collection.Client {
	return collection.NewClient(h.store)
}

func (h *Handler) GetDbsDatabaseIDColls(w http.ResponseWriter, r *http.Request, databaseID openapi.DatabaseIDParameter) {
	result, err := h.collectionClient().List(databaseID)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeFeed(w, r, result, collectionList)
}

func (h *Handler) PostDbsDatabaseIDColls(w http.ResponseWriter, r *http.Request, databaseID openapi.DatabaseIDParameter) {
	request := &openapi.Collection{}

	if err := readJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.collectionClient().Create(r.Context(), r.Header, databaseID, request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusCreated, result)
}

func (h *Handler) DeleteDbsDatabaseIDCollsCollectionID(w http.ResponseWriter, r *http.Request, databaseID openapi.DatabaseIDParameter, collectionID openapi.CollectionIDParameter) {
	if err := h.collectionClient().Delete(r.Context(), databaseID, collectionID); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetDbsDatabaseIDCollsCollectionID(w http.ResponseWriter, r *http.Request, databaseID openapi.DatabaseIDParameter, collectionID openapi.CollectionIDParameter) {
	result, err := h.collectionClient().Get(w, r, databaseID, collectionID)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) offerClient() *offer.Client {
	return offer.NewClient(h.store)
}

func (h *Handler) GetOffers(w http.ResponseWriter, r *http.Request) {
	h.setUncacheable(w)
	writeFeed(w, r, h.offerClient().List(), offerList)
}

func (h *Handler) PostOffers(w http.ResponseWriter, r *http.Request) {
	request := &openapi.QuerySpec{}

	if err := readJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.offerClient().Query(request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeFeed(w, r, result, offerList)
}

func (h *Handler) GetOffersOfferID(w http.ResponseWriter, r *http.Request, offerID openapi.OfferIDParameter) {
	result, err := h.offerClient().Get(offerID)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) PutOffersOfferID(w http.ResponseWriter, r *http.Request, offerID openapi.OfferIDParameter) {
	request := &openapi.Offer{}

	if err := readJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.offerClient().Replace(r.Context(), offerID, request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	writeJSONResponse(w, r, http.StatusOK, result)
}
