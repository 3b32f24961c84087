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

//nolint:testpackage,revive // test package in suites is standard for these tests
package suites

import (
	"net/http"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"
	"github.com/unikorn-cloud/petstore-api-tests/test/api"
)

var _ = Describe("Pet Management", func() {
	Context("When creating a pet", func() {
		DescribeTable("should store the pet and assign an ID",
			func(name string) {
				pet := api.CreatePet(name)

				resp, err := client.AddPet(ctx, pet)
				Expect(err).NotTo(HaveOccurred())

				created := api.AssertPetCreated(resp, pet)
				Expect(created.ID).NotTo(BeNil(), "Created pet should have an ID")
				cleanup.Track(*created.ID)

				api.AssertMatchesContract(ctx, validator, resp, openapi.OperationAddPet)

				api.AssertPetName(created, name)
				api.AssertPetStatus(created, openapi.PetStatusAvailable)
				api.AssertValidPetDocument(api.AssertAPIContract(resp, "id", "name", "photoUrls"))

				GinkgoWriter.Printf("Created pet %s with ID %d\n", name, *created.ID)
			},
			Entry("Cat1", "Cat1"),
			Entry("Cat2", "Cat2"),
		)

		It("should read back a default pet by ID", func() {
			pet, err := api.DefaultPet(api.GenerateTestName("X"))
			Expect(err).NotTo(HaveOccurred())

			created := api.CreatePetWithCleanup(ctx, client, cleanup, pet)

			resp, err := client.FindPetByID(ctx, *created.ID)
			Expect(err).NotTo(HaveOccurred())
			api.AssertStatusCode(resp, http.StatusOK)

			fetched, err := client.ParsePet(resp)
			Expect(err).NotTo(HaveOccurred())
			api.AssertValidPet(*fetched)
			api.AssertPetName(*fetched, pet.Name)
			Expect(fetched.ID).To(HaveValue(Equal(*created.ID)))
		})
	})

	Context("When finding pets by status", func() {
		It("should return the created available pet", func() {
			created := api.CreatePetWithCleanup(ctx, client, cleanup, api.CreatePet(api.GenerateTestName("available"), openapi.PetStatusAvailable))

			resp, err := client.FindPetsByStatus(ctx, openapi.PetStatusAvailable)
			Expect(err).NotTo(HaveOccurred())
			api.AssertSuccess(resp)

			pets, err := client.ParsePets(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(pets).NotTo(BeEmpty())

			for _, pet := range pets {
				api.AssertValidPet(pet)

				if pet.Status != "" {
					api.AssertPetStatus(pet, openapi.PetStatusAvailable)
				}
			}

			api.VerifyPetPresence(pets, *created.ID)
		})

		It("should only return pending pets", func() {
			created := api.CreatePetWithCleanup(ctx, client, cleanup, api.CreatePet(api.GenerateTestName("pending"), openapi.PetStatusPending))

			resp, err := client.FindPetsByStatus(ctx, openapi.PetStatusPending)
			Expect(err).NotTo(HaveOccurred())
			api.AssertSuccess(resp)

			pets, err := client.ParsePets(resp)
			Expect(err).NotTo(HaveOccurred())

			for _, pet := range pets {
				api.AssertValidPet(pet)

				if pet.Status != "" {
					api.AssertPetStatus(pet, openapi.PetStatusPending)
				}
			}

			if len(pets) > 0 {
				api.VerifyPetPresence(pets, *created.ID)
			}
		})
	})

	Context("When finding a pet by ID", func() {
		It("should honour the API contract for a known pet", func() {
			resp, err := client.FindPetByID(ctx, config.KnownPetID)
			Expect(err).NotTo(HaveOccurred())

			body := api.AssertPetContract(resp)
			Expect(body["id"]).To(BeNumerically(">", 0))
		})

		It("should return not found for a missing pet", func() {
			resp, err := client.FindPetByID(ctx, config.MissingPetID)
			Expect(err).NotTo(HaveOccurred())
			api.AssertStatusCode(resp, http.StatusNotFound)
		})
	})

	Context("When updating a pet", func() {
		It("should persist the new status", func() {
			created := api.CreatePetWithCleanup(ctx, client, cleanup, api.CreatePet(api.GenerateTestName("update")))

			updated := created
			updated.Status = openapi.PetStatusSold

			resp, err := client.UpdatePet(ctx, updated)
			Expect(err).NotTo(HaveOccurred())
			api.AssertSuccess(resp)

			resp, err = client.FindPetByID(ctx, *created.ID)
			Expect(err).NotTo(HaveOccurred())
			api.AssertStatusCode(resp, http.StatusOK)

			fetched, err := client.ParsePet(resp)
			Expect(err).NotTo(HaveOccurred())
			api.AssertPetStatus(*fetched, openapi.PetStatusSold)
		})
	})

	Context("When deleting a pet", func() {
		It("should acknowledge the deletion and forget the pet", func() {
			pet := api.CreateMinimalPet(api.GenerateTestName("delete"))

			resp, err := client.AddPet(ctx, pet)
			Expect(err).NotTo(HaveOccurred())

			created := api.AssertPetCreated(resp, pet)
			Expect(created.ID).NotTo(BeNil())

			// Tracked in case the deletion under test fails.
			cleanup.Track(*created.ID)

			resp, err = client.DeletePet(ctx, *created.ID)
			Expect(err).NotTo(HaveOccurred())
			api.AssertSuccess(resp)

			envelope, err := client.ParseAPIResponse(resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(envelope.Message).To(Equal(strconv.FormatInt(*created.ID, 10)))

			resp, err = client.FindPetByID(ctx, *created.ID)
			Expect(err).NotTo(HaveOccurred())
			api.AssertStatusCode(resp, http.StatusNotFound)
		})
	})
})
