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
package api_test

import (
	"encoding/json"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"
	"github.com/unikorn-cloud/petstore-api-tests/test/api"
)

func jsonResponse(status int, body string) *api.Response {
	return &api.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}

func document(body string) map[string]any {
	GinkgoHelper()

	var doc map[string]any

	Expect(json.Unmarshal([]byte(body), &doc)).To(Succeed())

	return doc
}

var _ = Describe("Assertions", func() {
	Context("When checking status codes", func() {
		It("should accept the expected code", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertStatusCode(jsonResponse(http.StatusNotFound, `{}`), http.StatusNotFound)
			})).To(Succeed())
		})

		It("should reject any other code", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertStatusCode(jsonResponse(http.StatusOK, `{}`), http.StatusNotFound)
			})).NotTo(Succeed())
		})

		DescribeTable("should only treat 2xx as success",
			func(status int, success bool) {
				err := InterceptGomegaFailure(func() {
					api.AssertSuccess(jsonResponse(status, `{}`))
				})

				if success {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(HaveOccurred())
				}
			},
			Entry("200", http.StatusOK, true),
			Entry("204", http.StatusNoContent, true),
			Entry("299", 299, true),
			Entry("199", 199, false),
			Entry("300", http.StatusMultipleChoices, false),
			Entry("404", http.StatusNotFound, false),
		)
	})

	Context("When checking JSON bodies", func() {
		It("should return the decoded value", func() {
			var body any

			Expect(InterceptGomegaFailure(func() {
				body = api.AssertValidJSON(jsonResponse(http.StatusOK, `[1,2]`))
			})).To(Succeed())
			Expect(body).To(HaveLen(2))
		})

		It("should accept a null body", func() {
			var body any = "unset"

			Expect(InterceptGomegaFailure(func() {
				body = api.AssertValidJSON(jsonResponse(http.StatusOK, `null`))
			})).To(Succeed())
			Expect(body).To(BeNil())
		})

		It("should reject an empty body", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertValidJSON(jsonResponse(http.StatusOK, ``))
			})).NotTo(Succeed())
		})

		It("should reject a body that is not JSON", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertValidJSON(jsonResponse(http.StatusOK, `<html></html>`))
			})).NotTo(Succeed())
		})
	})

	Context("When validating a pet", func() {
		It("should accept a pet with an empty name", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertValidPet(openapi.Pet{PhotoURLs: []string{}})
			})).To(Succeed())
		})

		It("should require photo URLs", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertValidPet(openapi.Pet{Name: "Rex"})
			})).NotTo(Succeed())
		})

		It("should reject a status outside the enumeration", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertValidPet(openapi.Pet{Name: "Rex", PhotoURLs: []string{}, Status: "lost"})
			})).NotTo(Succeed())
		})

		DescribeTable("should check raw pet documents",
			func(body string, valid bool) {
				err := InterceptGomegaFailure(func() {
					api.AssertValidPetDocument(document(body))
				})

				if valid {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(HaveOccurred())
				}
			},
			Entry("minimal", `{"name":"","photoUrls":[]}`, true),
			Entry("full", `{"id":1,"category":{"id":1,"name":"Cats"},"name":"Rex","photoUrls":["a"],"tags":[{"id":1,"name":"friendly"}],"status":"sold"}`, true),
			Entry("null status", `{"name":"Rex","photoUrls":[],"status":null}`, true),
			Entry("missing name", `{"photoUrls":[]}`, false),
			Entry("numeric name", `{"name":5,"photoUrls":[]}`, false),
			Entry("missing photoUrls", `{"name":"Rex"}`, false),
			Entry("string photoUrls", `{"name":"Rex","photoUrls":"a"}`, false),
			Entry("string id", `{"id":"1","name":"Rex","photoUrls":[]}`, false),
			Entry("unknown status", `{"name":"Rex","photoUrls":[],"status":"lost"}`, false),
			Entry("string category id", `{"category":{"id":"1"},"name":"Rex","photoUrls":[]}`, false),
			Entry("object tags", `{"name":"Rex","photoUrls":[],"tags":{}}`, false),
			Entry("string tag id", `{"name":"Rex","photoUrls":[],"tags":[{"id":"1"}]}`, false),
		)
	})

	Context("When checking pet fields", func() {
		It("should compare names and statuses", func() {
			pet := api.CreatePet("Rex", openapi.PetStatusPending)

			Expect(InterceptGomegaFailure(func() {
				api.AssertPetName(pet, "Rex")
				api.AssertPetStatus(pet, openapi.PetStatusPending)
			})).To(Succeed())

			Expect(InterceptGomegaFailure(func() {
				api.AssertPetName(pet, "Max")
			})).NotTo(Succeed())

			Expect(InterceptGomegaFailure(func() {
				api.AssertPetStatus(pet, openapi.PetStatusSold)
			})).NotTo(Succeed())
		})

		It("should require every pet to have the status", func() {
			pets := []openapi.Pet{
				api.CreatePet("Cat1"),
				api.CreatePet("Cat2"),
			}

			Expect(InterceptGomegaFailure(func() {
				api.AssertAllPetsHaveStatus(pets, openapi.PetStatusAvailable)
			})).To(Succeed())

			pets = append(pets, api.CreatePet("Dog1", openapi.PetStatusPending))

			Expect(InterceptGomegaFailure(func() {
				api.AssertAllPetsHaveStatus(pets, openapi.PetStatusAvailable)
			})).NotTo(Succeed())
		})

		It("should reject an empty list", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertAllPetsHaveStatus(nil, openapi.PetStatusAvailable)
			})).NotTo(Succeed())
		})
	})

	Context("When checking a created pet", func() {
		It("should return the decoded pet", func() {
			expected := api.CreatePet("Rex")

			var created openapi.Pet

			Expect(InterceptGomegaFailure(func() {
				created = api.AssertPetCreated(jsonResponse(http.StatusOK, `{"id":10,"name":"Rex","photoUrls":[],"status":"available"}`), expected)
			})).To(Succeed())
			Expect(created.ID).To(HaveValue(BeEquivalentTo(10)))
		})

		It("should ignore the status when none was requested", func() {
			expected := api.CreateMinimalPet("Rex")

			Expect(InterceptGomegaFailure(func() {
				api.AssertPetCreated(jsonResponse(http.StatusOK, `{"id":10,"name":"Rex","photoUrls":[],"status":"sold"}`), expected)
			})).To(Succeed())
		})

		It("should reject a renamed pet", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertPetCreated(jsonResponse(http.StatusOK, `{"id":10,"name":"Max","photoUrls":[]}`), api.CreateMinimalPet("Rex"))
			})).NotTo(Succeed())
		})

		It("should reject a failed request", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertPetCreated(jsonResponse(http.StatusMethodNotAllowed, ``), api.CreateMinimalPet("Rex"))
			})).NotTo(Succeed())
		})
	})

	Context("When checking a single pet contract", func() {
		DescribeTable("should require a numeric id and both arrays",
			func(body string, valid bool) {
				err := InterceptGomegaFailure(func() {
					api.AssertPetContract(jsonResponse(http.StatusOK, body))
				})

				if valid {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(HaveOccurred())
				}
			},
			Entry("complete", `{"id":5,"name":"Rex","photoUrls":[],"tags":[]}`, true),
			Entry("missing tags", `{"id":5,"name":"Rex","photoUrls":[]}`, false),
			Entry("null tags", `{"id":5,"name":"Rex","photoUrls":[],"tags":null}`, false),
			Entry("object tags", `{"id":5,"name":"Rex","photoUrls":[],"tags":{}}`, false),
			Entry("missing photoUrls", `{"id":5,"name":"Rex","tags":[]}`, false),
			Entry("string photoUrls", `{"id":5,"name":"Rex","photoUrls":"a","tags":[]}`, false),
			Entry("string id", `{"id":"5","name":"Rex","photoUrls":[],"tags":[]}`, false),
		)
	})

	Context("When checking the API contract", func() {
		It("should return the body when every field is present", func() {
			var body map[string]any

			Expect(InterceptGomegaFailure(func() {
				body = api.AssertAPIContract(jsonResponse(http.StatusOK, `{"id":1,"name":"Rex","photoUrls":[]}`), "id", "name", "photoUrls")
			})).To(Succeed())
			Expect(body).To(HaveKeyWithValue("name", "Rex"))
		})

		It("should reject a missing field", func() {
			err := InterceptGomegaFailure(func() {
				api.AssertAPIContract(jsonResponse(http.StatusOK, `{"name":"Rex"}`), "id", "name", "photoUrls")
			})
			Expect(err).To(MatchError(ContainSubstring("photoUrls")))
		})

		It("should reject a non-2xx response", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertAPIContract(jsonResponse(http.StatusNotFound, `{"id":1}`), "id")
			})).NotTo(Succeed())
		})

		It("should reject an array body", func() {
			Expect(InterceptGomegaFailure(func() {
				api.AssertAPIContract(jsonResponse(http.StatusOK, `[]`))
			})).NotTo(Succeed())
		})
	})
})
