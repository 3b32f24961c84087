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

package api

import (
	"context"
	"fmt"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"
)

// PetClient binds the generic client to the pet store's pet endpoints.
// Responses are returned raw, status checking is left to the caller.
type PetClient struct {
	*APIClient

	endpoints *Endpoints
}

func NewPetClient(client *APIClient) *PetClient {
	return &PetClient{
		APIClient: client,
		endpoints: NewEndpoints(),
	}
}

// AddPet adds a new pet to the store.
func (c *PetClient) AddPet(ctx context.Context, pet openapi.Pet) (*Response, error) {
	resp, err := c.Post(ctx, c.endpoints.AddPet(), pet)
	if err != nil {
		return nil, fmt.Errorf("adding pet: %w", err)
	}

	return resp, nil
}

// UpdatePet replaces an existing pet, the pet's ID selects the record.
func (c *PetClient) UpdatePet(ctx context.Context, pet openapi.Pet) (*Response, error) {
	resp, err := c.Put(ctx, c.endpoints.UpdatePet(), pet)
	if err != nil {
		return nil, fmt.Errorf("updating pet: %w", err)
	}

	return resp, nil
}

// FindPetsByStatus lists pets having any of the given statuses. Statuses
// outside the enumeration are rejected before anything is sent.
func (c *PetClient) FindPetsByStatus(ctx context.Context, status ...openapi.PetStatus) (*Response, error) {
	var values []string

	for _, s := range status {
		text, err := s.MarshalText()
		if err != nil {
			return nil, fmt.Errorf("finding pets by status: %w", err)
		}

		values = append(values, string(text))
	}

	resp, err := c.Get(ctx, c.endpoints.FindPetsByStatus(), QueryParam("status", values))
	if err != nil {
		return nil, fmt.Errorf("finding pets by status: %w", err)
	}

	return resp, nil
}

// FindPetByID reads a single pet.
func (c *PetClient) FindPetByID(ctx context.Context, petID int64) (*Response, error) {
	resp, err := c.Get(ctx, c.endpoints.GetPet(petID))
	if err != nil {
		return nil, fmt.Errorf("finding pet %d: %w", petID, err)
	}

	return resp, nil
}

// DeletePet removes a pet from the store.
func (c *PetClient) DeletePet(ctx context.Context, petID int64) (*Response, error) {
	resp, err := c.Delete(ctx, c.endpoints.DeletePet(petID))
	if err != nil {
		return nil, fmt.Errorf("deleting pet %d: %w", petID, err)
	}

	return resp, nil
}

// ParsePet decodes the body as a single pet.
func (c *PetClient) ParsePet(resp *Response) (*openapi.Pet, error) {
	var pet openapi.Pet
	if err := resp.DecodeJSON(&pet); err != nil {
		return nil, fmt.Errorf("unmarshaling pet response: %w", err)
	}

	return &pet, nil
}

// ParsePets decodes the body as a list of pets.
func (c *PetClient) ParsePets(resp *Response) ([]openapi.Pet, error) {
	var pets []openapi.Pet
	if err := resp.DecodeJSON(&pets); err != nil {
		return nil, fmt.Errorf("unmarshaling pet list response: %w", err)
	}

	return pets, nil
}

// ParseAPIResponse decodes the body as an acknowledgement envelope.
func (c *PetClient) ParseAPIResponse(resp *Response) (*openapi.APIResponse, error) {
	var envelope openapi.APIResponse
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("unmarshaling api response: %w", err)
	}

	return &envelope, nil
}
