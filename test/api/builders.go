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
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"

	"k8s.io/utils/ptr"
)

var ErrPetNameRequired = errors.New("pet name is required")

func generateRandomName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// GenerateTestName returns a name that will not collide with other runs
// against the shared demo store.
func GenerateTestName(prefix string) string {
	return generateRandomName(prefix)
}

// PetBuilder builds pet payloads for testing.
type PetBuilder struct {
	pet openapi.Pet
}

// NewPetBuilder creates a builder for an unnamed pet with no photos.
func NewPetBuilder() *PetBuilder {
	return &PetBuilder{
		pet: openapi.Pet{
			Name:      "",
			PhotoURLs: []string{},
		},
	}
}

// WithID sets the pet ID. The store assigns IDs on creation, so this is only
// for updates of an existing record.
func (b *PetBuilder) WithID(id int64) *PetBuilder {
	b.pet.ID = ptr.To(id)
	return b
}

// WithName sets the pet name.
func (b *PetBuilder) WithName(name string) *PetBuilder {
	b.pet.Name = name
	return b
}

// WithCategory sets the pet category.
func (b *PetBuilder) WithCategory(category openapi.Category) *PetBuilder {
	b.pet.Category = &category
	return b
}

// WithPhotoURLs replaces the photo URLs.
func (b *PetBuilder) WithPhotoURLs(photoURLs []string) *PetBuilder {
	b.pet.PhotoURLs = slices.Clone(photoURLs)
	return b
}

// WithTags replaces the tags.
func (b *PetBuilder) WithTags(tags []openapi.Tag) *PetBuilder {
	b.pet.Tags = slices.Clone(tags)
	return b
}

// WithStatus sets the pet status.
func (b *PetBuilder) WithStatus(status openapi.PetStatus) *PetBuilder {
	b.pet.Status = status
	return b
}

// Build returns a copy of the pet that is independent of the builder.
func (b *PetBuilder) Build() (openapi.Pet, error) {
	if b.pet.Name == "" {
		return openapi.Pet{}, ErrPetNameRequired
	}

	return copyPet(b.pet), nil
}

// DefaultPet returns a fully populated available pet.
func DefaultPet(name string) (openapi.Pet, error) {
	return NewPetBuilder().
		WithName(name).
		WithCategory(openapi.Category{ID: 1, Name: "Cats"}).
		WithPhotoURLs([]string{"https://example.com/photo1.jpg"}).
		WithTags([]openapi.Tag{{ID: 1, Name: "friendly"}}).
		WithStatus(openapi.PetStatusAvailable).
		Build()
}

func copyPet(in openapi.Pet) openapi.Pet {
	out := in

	if in.ID != nil {
		out.ID = ptr.To(*in.ID)
	}

	if in.Category != nil {
		category := *in.Category
		out.Category = &category
	}

	if in.PhotoURLs != nil {
		out.PhotoURLs = slices.Clone(in.PhotoURLs)
	}

	if in.Tags != nil {
		out.Tags = slices.Clone(in.Tags)
	}

	return out
}
