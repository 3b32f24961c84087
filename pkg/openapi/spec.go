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
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed petstore.yaml
var swaggerSpec []byte

// Operation IDs defined by the embedded schema.
const (
	OperationAddPet           = "addPet"
	OperationUpdatePet        = "updatePet"
	OperationFindPetsByStatus = "findPetsByStatus"
	OperationGetPetByID       = "getPetById"
	OperationDeletePet        = "deletePet"
)

// GetSwagger returns the OpenAPI description of the pet store. Every call
// parses a fresh copy so callers are free to mutate it.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	spec, err := loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi schema: %w", err)
	}

	if err := spec.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validating openapi schema: %w", err)
	}

	return spec, nil
}
