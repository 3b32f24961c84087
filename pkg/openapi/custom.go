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
	"errors"
	"fmt"
	"slices"
)

var ErrInvalidPetStatus = errors.New("invalid pet status: must be one of available, pending or sold")

// PetStatus is the lifecycle state of a pet in the store, and drives
// server side filtering.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusSold      PetStatus = "sold"
)

// AllPetStatuses returns every status in declaration order.
func AllPetStatuses() []PetStatus {
	return []PetStatus{
		PetStatusAvailable,
		PetStatusPending,
		PetStatusSold,
	}
}

// Valid reports whether the status is a member of the enumeration.
func (s PetStatus) Valid() bool {
	return slices.Contains(AllPetStatuses(), s)
}

// ParsePetStatus converts a string into a status, rejecting unknown values.
func ParsePetStatus(s string) (PetStatus, error) {
	status := PetStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPetStatus, s)
	}

	return status, nil
}

// MarshalText rejects anything outside the enumeration so an invalid status
// can never be sent as a query parameter.
func (s PetStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPetStatus, string(s))
	}

	return []byte(s), nil
}
