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
	"strconv"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Pet collection endpoints.
func (e *Endpoints) AddPet() string {
	return "/pet"
}

func (e *Endpoints) UpdatePet() string {
	return "/pet"
}

func (e *Endpoints) FindPetsByStatus() string {
	return "/pet/findByStatus"
}

// Single pet endpoints.
func (e *Endpoints) GetPet(petID int64) string {
	return "/pet/" + petIDPathParam(petID)
}

func (e *Endpoints) DeletePet(petID int64) string {
	return "/pet/" + petIDPathParam(petID)
}

// petIDPathParam styles the ID as a simple path parameter.
func petIDPathParam(petID int64) string {
	param, err := runtime.StyleParamWithLocation("simple", false, "petId", runtime.ParamLocationPath, petID)
	if err != nil {
		return strconv.FormatInt(petID, 10)
	}

	return param
}
