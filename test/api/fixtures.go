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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"
)

// Fixed lookup tables, only ever handed out as copies.
var (
	defaultCategory = openapi.Category{ID: 1, Name: "Cats"}

	defaultTags = []openapi.Tag{
		{ID: 1, Name: "friendly"},
		{ID: 2, Name: "cute"},
	}

	defaultPhotoURLs = []string{
		"https://example.com/photo1.jpg",
		"https://example.com/photo2.jpg",
	}

	testCategories = []openapi.Category{
		{ID: 1, Name: "Cats"},
		{ID: 2, Name: "Dogs"},
		{ID: 3, Name: "Birds"},
		{ID: 4, Name: "Fish"},
	}

	testTags = []openapi.Tag{
		{ID: 1, Name: "friendly"},
		{ID: 2, Name: "cute"},
		{ID: 3, Name: "playful"},
		{ID: 4, Name: "calm"},
		{ID: 5, Name: "energetic"},
	}
)

// mustBuild panics on a builder error, fixtures are only ever built from
// literal names so an error is a bug in the test itself.
func mustBuild(b *PetBuilder) openapi.Pet {
	pet, err := b.Build()
	if err != nil {
		panic(err)
	}

	return pet
}

// CreatePet returns a fully populated pet, available unless a status is given.
func CreatePet(name string, status ...openapi.PetStatus) openapi.Pet {
	petStatus := openapi.PetStatusAvailable
	if len(status) > 0 {
		petStatus = status[0]
	}

	return mustBuild(NewPetBuilder().
		WithName(name).
		WithCategory(defaultCategory).
		WithPhotoURLs(defaultPhotoURLs).
		WithTags(defaultTags).
		WithStatus(petStatus))
}

// CreateMinimalPet returns a pet with only the required fields.
func CreateMinimalPet(name string) openapi.Pet {
	return mustBuild(NewPetBuilder().
		WithName(name).
		WithPhotoURLs([]string{"https://example.com/photo.jpg"}))
}

// CreatePetWithCategory returns an available pet in the given category.
func CreatePetWithCategory(name string, category openapi.Category) openapi.Pet {
	return mustBuild(NewPetBuilder().
		WithName(name).
		WithCategory(category).
		WithPhotoURLs(defaultPhotoURLs).
		WithTags(defaultTags).
		WithStatus(openapi.PetStatusAvailable))
}

// CreatePetWithTags returns an available pet with the given tags.
func CreatePetWithTags(name string, tags []openapi.Tag) openapi.Pet {
	return mustBuild(NewPetBuilder().
		WithName(name).
		WithCategory(defaultCategory).
		WithPhotoURLs(defaultPhotoURLs).
		WithTags(tags).
		WithStatus(openapi.PetStatusAvailable))
}

// TestPets returns sample pets covering every status.
func TestPets() map[string]openapi.Pet {
	return map[string]openapi.Pet{
		"cat1":       CreatePet("Cat1", openapi.PetStatusAvailable),
		"cat2":       CreatePet("Cat2", openapi.PetStatusAvailable),
		"dogPending": CreatePet("Dog1", openapi.PetStatusPending),
		"birdSold":   CreatePet("Bird1", openapi.PetStatusSold),
	}
}

func TestCategories() []openapi.Category {
	return slices.Clone(testCategories)
}

func TestTags() []openapi.Tag {
	return slices.Clone(testTags)
}

func AllPetStatuses() []openapi.PetStatus {
	return openapi.AllPetStatuses()
}

// PetCleanup records pets created by a spec so they can be deleted when
// it finishes.
type PetCleanup struct {
	client *PetClient
	ids    []int64
}

func NewPetCleanup(client *PetClient) *PetCleanup {
	return &PetCleanup{
		client: client,
	}
}

// Track schedules a pet for deletion.
func (c *PetCleanup) Track(petID int64) {
	c.ids = append(c.ids, petID)
}

// IDs returns the pets currently scheduled for deletion.
func (c *PetCleanup) IDs() []int64 {
	return slices.Clone(c.ids)
}

// Run deletes every tracked pet and forgets them. Failures are logged and
// never fail the spec, the demo store may have already removed the record.
// Deletion is not cut short when ctx is cancelled or has expired.
func (c *PetCleanup) Run(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	for _, petID := range c.ids {
		GinkgoWriter.Printf("Cleaning up pet: %d\n", petID)

		resp, err := c.client.DeletePet(ctx, petID)

		switch {
		case err != nil:
			GinkgoWriter.Printf("Warning: Failed to delete pet %d: %v\n", petID, err)
		case !resp.OK():
			GinkgoWriter.Printf("Warning: Failed to delete pet %d: status %d (trace ID: %s)\n", petID, resp.StatusCode, resp.TraceID())
		default:
			GinkgoWriter.Printf("Successfully deleted pet: %d\n", petID)
		}
	}

	c.ids = nil
}

// CreatePetWithCleanup adds a pet, verifies the store accepted it, and
// schedules its deletion.
func CreatePetWithCleanup(ctx context.Context, client *PetClient, cleanup *PetCleanup, pet openapi.Pet) openapi.Pet {
	GinkgoHelper()

	resp, err := client.AddPet(ctx, pet)
	Expect(err).NotTo(HaveOccurred())

	created := AssertPetCreated(resp, pet)
	Expect(created.ID).NotTo(BeNil(), "the store must assign an ID")

	cleanup.Track(*created.ID)

	GinkgoWriter.Printf("Created pet with ID: %d\n", *created.ID)

	return created
}

// VerifyPetPresence verifies that the expected pets are present in the list.
func VerifyPetPresence(pets []openapi.Pet, expectedPetIDs ...int64) {
	GinkgoHelper()

	petIDs := extractPetIDs(pets)
	for _, expectedID := range expectedPetIDs {
		Expect(petIDs).To(ContainElement(expectedID), "Expected pet ID %d to be present in the list", expectedID)
	}
}

// extractPetIDs extracts IDs from a list of pets, pets without one are skipped.
func extractPetIDs(pets []openapi.Pet) []int64 {
	petIDs := make([]int64, 0, len(pets))

	for _, pet := range pets {
		if pet.ID != nil {
			petIDs = append(petIDs, *pet.ID)
		}
	}

	return petIDs
}
