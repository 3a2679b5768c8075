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

package openapi

import (
	"errors"
	"regexp"
)

var ErrInvalidOfferType = errors.New("invalid offer type: must be a performance tier label e.g. S1")

var offerTypeValidationRegex = regexp.MustCompile("^[A-Z][A-Za-z0-9]{0,15}$")

// OfferType is a performance tier label.
type OfferType string

const (
	OfferTypeS1 OfferType = "S1"
	OfferTypeS2 OfferType = "S2"
	OfferTypeS3 OfferType = "S3"
)

// tierThroughput is what each legacy tier provisions.
//
//nolint:gochecknoglobals
var tierThroughput = map[OfferType]int{
	OfferTypeS1: 250,
	OfferTypeS2: 1000,
	OfferTypeS3: 2500,
}

// Throughput returns the throughput a tier provisions.
func (t OfferType) Throughput() (int, bool) {
	throughput, ok := tierThroughput[t]

	return throughput, ok
}

func (t *OfferType) UnmarshalText(text []byte) error {
	if !offerTypeValidationRegex.Match(text) {
		return ErrInvalidOfferType
	}

	*t = OfferType(text)

	return nil
}
