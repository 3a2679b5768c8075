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

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// DatabaseIDParameter is a database name or resource ID.
type DatabaseIDParameter = string

// CollectionIDParameter is a collection name or resource ID.
type CollectionIDParameter = string

// OfferIDParameter is an offer ID.
type OfferIDParameter = string

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /dbs)
	GetDbs(w http.ResponseWriter, r *http.Request)
	// (POST /dbs)
	PostDbs(w http.ResponseWriter, r *http.Request)
	// (DELETE /dbs/{databaseID})
	DeleteDbsDatabaseID(w http.ResponseWriter, r *http.Request, databaseID DatabaseIDParameter)
	// (GET /dbs/{databaseID})
	GetDbsDatabaseID(w http.ResponseWriter, r *http.Request, databaseID DatabaseIDParameter)
	// (GET /dbs/{databaseID}/colls)
	GetDbsDatabaseIDColls(w http.ResponseWriter, r *http.Request, databaseID DatabaseIDParameter)
	// (POST /dbs/{databaseID}/colls)
	PostDbsDatabaseIDColls(w http.ResponseWriter, r *http.Request, databaseID DatabaseIDParameter)
	// (DELETE /dbs/{databaseID}/colls/{collectionID})
	DeleteDbsDatabaseIDCollsCollectionID(w http.ResponseWriter, r *http.Request, databaseID DatabaseIDParameter, collectionID CollectionIDParameter)
	// (GET /dbs/{databaseID}/colls/{collectionID})
	GetDbsDatabaseIDCollsCollectionID(w http.ResponseWriter, r *http.Request, databaseID DatabaseIDParameter, collectionID CollectionIDParameter)
	// (GET /offers)
	GetOffers(w http.ResponseWriter, r *http.Request)
	// (POST /offers)
	PostOffers(w http.ResponseWriter, r *http.Request)
	// (GET /offers/{offerID})
	GetOffersOfferID(w http.ResponseWriter, r *http.Request, offerID OfferIDParameter)
	// (PUT /offers/{offerID})
	PutOffersOfferID(w http.ResponseWriter, r *http.Request, offerID OfferIDParameter)
}

// InvalidParamFormatError is raised when a path parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler          ServerInterface
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// bindPath binds and unescapes a single path parameter.
func (siw *ServerInterfaceWrapper) bindPath(w http.ResponseWriter, r *http.Request, name string, dest *string) bool {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})

		return false
	}

	return true
}

func (siw *ServerInterfaceWrapper) GetDbs(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetDbs(w, r)
}

func (siw *ServerInterfaceWrapper) PostDbs(w http.ResponseWriter, r *http.Request) {
	siw.Handler.PostDbs(w, r)
}

func (siw *ServerInterfaceWrapper) DeleteDbsDatabaseID(w http.ResponseWriter, r *http.Request) {
	var databaseID DatabaseIDParameter

	if !siw.bindPath(w, r, "databaseID", &databaseID) {
		return
	}

	siw.Handler.DeleteDbsDatabaseID(w, r, databaseID)
}

func (siw *ServerInterfaceWrapper) GetDbsDatabaseID(w http.ResponseWriter, r *http.Request) {
	var databaseID DatabaseIDParameter

	if !siw.bindPath(w, r, "databaseID", &databaseID) {
		return
	}

	siw.Handler.GetDbsDatabaseID(w, r, databaseID)
}

func (siw *ServerInterfaceWrapper) GetDbsDatabaseIDColls(w http.ResponseWriter, r *http.Request) {
	var databaseID DatabaseIDParameter

	if !siw.bindPath(w, r, "databaseID", &databaseID) {
		return
	}

	siw.Handler.GetDbsDatabaseIDColls(w, r, databaseID)
}

func (siw *ServerInterfaceWrapper) PostDbsDatabaseIDColls(w http.ResponseWriter, r *http.Request) {
	var databaseID DatabaseIDParameter

	if !siw.bindPath(w, r, "databaseID", &databaseID) {
		return
	}

	siw.Handler.PostDbsDatabaseIDColls(w, r, databaseID)
}

func (siw *ServerInterfaceWrapper) DeleteDbsDatabaseIDCollsCollectionID(w http.ResponseWriter, r *http.Request) {
	var databaseID DatabaseIDParameter

	var collectionID CollectionIDParameter

	if !siw.bindPath(w, r, "databaseID", &databaseID) || !siw.bindPath(w, r, "collectionID", &collectionID) {
		return
	}

	siw.Handler.DeleteDbsDatabaseIDCollsCollectionID(w, r, databaseID, collectionID)
}

func (siw *ServerInterfaceWrapper) GetDbsDatabaseIDCollsCollectionID(w http.ResponseWriter, r *http.Request) {
	var databaseID DatabaseIDParameter

	var collectionID CollectionIDParameter

	if !siw.bindPath(w, r, "databaseID", &databaseID) || !siw.bindPath(w, r, "collectionID", &collectionID) {
		return
	}

	siw.Handler.GetDbsDatabaseIDCollsCollectionID(w, r, databaseID, collectionID)
}

func (siw *ServerInterfaceWrapper) GetOffers(w http.ResponseWriter, r *http.Request) {
	siw.Handler.GetOffers(w, r)
}

func (siw *ServerInterfaceWrapper) PostOffers(w http.ResponseWriter, r *http.Request) {
	siw.Handler.PostOffers(w, r)
}

func (siw *ServerInterfaceWrapper) GetOffersOfferID(w http.ResponseWriter, r *http.Request) {
	var offerID OfferIDParameter

	if !siw.bindPath(w, r, "offerID", &offerID) {
		return
	}

	siw.Handler.GetOffersOfferID(w, r, offerID)
}

func (siw *ServerInterfaceWrapper) PutOffersOfferID(w http.ResponseWriter, r *http.Request) {
	var offerID OfferIDParameter

	if !siw.bindPath(w, r, "offerID", &offerID) {
		return
	}

	siw.Handler.PutOffersOfferID(w, r, offerID)
}

// ChiServerOptions configure route registration.
type ChiServerOptions struct {
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions registers every operation on the base router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}

	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:          si,
		ErrorHandlerFunc: options.ErrorHandlerFunc,
	}

	r.Get("/dbs", wrapper.GetDbs)
	r.Post("/dbs", wrapper.PostDbs)
	r.Delete("/dbs/{databaseID}", wrapper.DeleteDbsDatabaseID)
	r.Get("/dbs/{databaseID}", wrapper.GetDbsDatabaseID)
	r.Get("/dbs/{databaseID}/colls", wrapper.GetDbsDatabaseIDColls)
	r.Post("/dbs/{databaseID}/colls", wrapper.PostDbsDatabaseIDColls)
	r.Delete("/dbs/{databaseID}/colls/{collectionID}", wrapper.DeleteDbsDatabaseIDCollsCollectionID)
	r.Get("/dbs/{databaseID}/colls/{collectionID}", wrapper.GetDbsDatabaseIDCollsCollectionID)
	r.Get("/offers", wrapper.GetOffers)
	r.Post("/offers", wrapper.PostOffers)
	r.Get("/offers/{offerID}", wrapper.GetOffersOfferID)
	r.Put("/offers/{offerID}", wrapper.PutOffersOfferID)

	return r
}
