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
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"
)

var ErrOperationNotFound = errors.New("operation not found")

// ContractValidator checks responses against the pet store's OpenAPI schema.
type ContractValidator struct {
	routes map[string]*routers.Route
}

func NewContractValidator() (*ContractValidator, error) {
	spec, err := openapi.GetSwagger()
	if err != nil {
		return nil, err
	}

	routes := map[string]*routers.Route{}

	for path, item := range spec.Paths.Map() {
		for method, operation := range item.Operations() {
			routes[operation.OperationID] = &routers.Route{
				Spec:      spec,
				Path:      path,
				PathItem:  item,
				Method:    method,
				Operation: operation,
			}
		}
	}

	return &ContractValidator{
		routes: routes,
	}, nil
}

// Validate checks the status code, content type and body of a response
// against the named operation. Undocumented status codes are rejected.
func (v *ContractValidator) Validate(ctx context.Context, resp *Response, operationID string) error {
	route, ok := v.routes[operationID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request: resp.Request,
			Route:   route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	input.SetBodyBytes(resp.Body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s response does not match contract (trace ID: %s): %w", operationID, resp.TraceID(), err)
	}

	return nil
}
