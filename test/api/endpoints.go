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

package api

import (
	"fmt"

	"github.com/unikorn-cloud/docdb/pkg/openapi"
)

// AddressingMode selects how resources are addressed in links.
type AddressingMode string

const (
	// ByName uses user assigned IDs e.g. dbs/mydb/colls/mycoll.
	ByName AddressingMode = "name"
	// ByResourceID uses server assigned self links.
	ByResourceID AddressingMode = "rid"
)

// Endpoints builds resource links in either addressing mode.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

func (e *Endpoints) Database(mode AddressingMode, database *openapi.Database) string {
	if mode == ByResourceID {
		return database.SelfLink
	}

	return fmt.Sprintf("dbs/%s", database.ID)
}

func (e *Endpoints) Collection(mode AddressingMode, database *openapi.Database, collection *openapi.Collection) string {
	if mode == ByResourceID {
		return collection.SelfLink
	}

	return fmt.Sprintf("dbs/%s/colls/%s", database.ID, collection.ID)
}

// Offer is the raw HTTP path of an offer.
func (e *Endpoints) Offer(offerID string) string {
	return fmt.Sprintf("/offers/%s", offerID)
}
