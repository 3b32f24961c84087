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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"encoding/json"
	"maps"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"
)

// AssertStatusCode verifies the response has the expected status code.
func AssertStatusCode(resp *Response, expected int) {
	GinkgoHelper()

	Expect(resp).NotTo(BeNil())
	Expect(resp.StatusCode).To(Equal(expected), "unexpected status, body: %s (trace ID: %s)", string(resp.Body), resp.TraceID())
}

// AssertSuccess verifies the response has a 2xx status code.
func AssertSuccess(resp *Response) {
	GinkgoHelper()

	Expect(resp).NotTo(BeNil())
	Expect(resp.OK()).To(BeTrue(), "expected 2xx, got %d, body: %s (trace ID: %s)", resp.StatusCode, string(resp.Body), resp.TraceID())
}

// AssertValidJSON verifies the body decodes as JSON and returns the value.
// An empty body fails, a literal null is accepted and returned as nil.
func AssertValidJSON(resp *Response) any {
	GinkgoHelper()

	var body any

	Expect(resp.DecodeJSON(&body)).To(Succeed(), "response body is not valid JSON: %s", string(resp.Body))

	return body
}

// AssertValidPet verifies the structure of a decoded pet. The name is not
// required to be non-empty and photo URLs are not checked for well-formedness.
func AssertValidPet(pet openapi.Pet) {
	GinkgoHelper()

	Expect(pet.PhotoURLs).NotTo(BeNil(), "pet %q has no photoUrls", pet.Name)

	if pet.Status != "" {
		Expect(pet.Status).To(BeElementOf(openapi.AllPetStatuses()), "pet %q has an invalid status", pet.Name)
	}
}

// AssertValidPetDocument applies the same structural rules as AssertValidPet
// to a raw JSON object, where field types are not yet guaranteed.
func AssertValidPetDocument(doc map[string]any) {
	GinkgoHelper()

	Expect(doc).NotTo(BeNil())
	Expect(doc).To(HaveKeyWithValue("name", BeAssignableToTypeOf("")), "name must be a string")
	Expect(doc).To(HaveKeyWithValue("photoUrls", BeAssignableToTypeOf([]any{})), "photoUrls must be an array")

	if id, ok := doc["id"]; ok && id != nil {
		Expect(isNumber(id)).To(BeTrue(), "id must be numeric, got %T", id)
	}

	if status, ok := doc["status"]; ok && status != nil {
		Expect(status).To(BeElementOf(statusStrings()), "status must be one of the enumeration")
	}

	if category, ok := doc["category"].(map[string]any); ok {
		if id, ok := category["id"]; ok && id != nil {
			Expect(isNumber(id)).To(BeTrue(), "category.id must be numeric, got %T", id)
		}
	}

	if tags, ok := doc["tags"]; ok && tags != nil {
		Expect(tags).To(BeAssignableToTypeOf([]any{}), "tags must be an array")

		for _, tag := range tags.([]any) { //nolint:forcetypeassert // checked above
			tag, ok := tag.(map[string]any)
			if !ok {
				continue
			}

			if id, ok := tag["id"]; ok && id != nil {
				Expect(isNumber(id)).To(BeTrue(), "tags[].id must be numeric, got %T", id)
			}
		}
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, json.Number:
		return true
	default:
		return false
	}
}

func statusStrings() []string {
	statuses := openapi.AllPetStatuses()

	out := make([]string, len(statuses))
	for i, status := range statuses {
		out[i] = string(status)
	}

	return out
}

// AssertPetName verifies the pet has the expected name.
func AssertPetName(pet openapi.Pet, expected string) {
	GinkgoHelper()

	Expect(pet.Name).To(Equal(expected))
}

// AssertPetStatus verifies the pet has the expected status.
func AssertPetStatus(pet openapi.Pet, expected openapi.PetStatus) {
	GinkgoHelper()

	Expect(pet.Status).To(Equal(expected), "pet %q has the wrong status", pet.Name)
}

// AssertAllPetsHaveStatus verifies the list is not empty and every pet has
// the expected status.
func AssertAllPetsHaveStatus(pets []openapi.Pet, expected openapi.PetStatus) {
	GinkgoHelper()

	Expect(pets).NotTo(BeEmpty(), "expected at least one pet")

	for _, pet := range pets {
		AssertPetStatus(pet, expected)
	}
}

// AssertPetCreated verifies a create response and returns the pet the
// store recorded.
func AssertPetCreated(resp *Response, expected openapi.Pet) openapi.Pet {
	GinkgoHelper()

	AssertStatusCode(resp, 200)
	AssertValidJSON(resp)

	var created openapi.Pet

	Expect(resp.DecodeJSON(&created)).To(Succeed())

	AssertValidPet(created)
	AssertPetName(created, expected.Name)

	if expected.Status != "" {
		AssertPetStatus(created, expected.Status)
	}

	return created
}

// AssertAPIContract verifies a successful response is a JSON object carrying
// every expected field. Field types are not checked.
func AssertAPIContract(resp *Response, expectedFields ...string) map[string]any {
	GinkgoHelper()

	AssertSuccess(resp)
	AssertValidJSON(resp)

	var body map[string]any

	Expect(resp.DecodeJSON(&body)).To(Succeed(), "response body is not a JSON object: %s", string(resp.Body))

	required := set.New[string](expectedFields...)
	present := set.New[string](slices.Collect(maps.Keys(body))...)

	var missing []string

	for field := range required.Difference(present).All() {
		missing = append(missing, field)
	}

	slices.Sort(missing)

	Expect(missing).To(BeEmpty(), "response is missing required fields")

	return body
}

// AssertPetContract verifies a single pet response carries a numeric id,
// and photoUrls and tags arrays. Both arrays are required.
func AssertPetContract(resp *Response) map[string]any {
	GinkgoHelper()

	body := AssertAPIContract(resp, "id", "photoUrls", "tags")

	Expect(isNumber(body["id"])).To(BeTrue(), "id must be numeric, got %T", body["id"])
	Expect(body).To(HaveKeyWithValue("photoUrls", BeAssignableToTypeOf([]any{})), "photoUrls must be an array")
	Expect(body).To(HaveKeyWithValue("tags", BeAssignableToTypeOf([]any{})), "tags must be an array")

	return body
}

// AssertMatchesContract verifies the response against the OpenAPI operation.
func AssertMatchesContract(ctx context.Context, validator *ContractValidator, resp *Response, operationID string) {
	GinkgoHelper()

	Expect(validator.Validate(ctx, resp, operationID)).To(Succeed())
}
