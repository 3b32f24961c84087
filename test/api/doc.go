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

// Package api provides integration test utilities for the pet store API.
//
// # Separate Client Implementation
//
// This package maintains its own HTTP client (APIClient) rather than a
// generated one. Any change to the pet store's OpenAPI document must have a
// compensating change here, which makes API evolution explicit. Responses are
// checked structurally by the assertion helpers, and against the embedded
// OpenAPI document by ContractValidator.
//
// The client carries features tailored for integration testing:
//   - W3C trace context propagation for request correlation
//   - Detailed error logging with trace IDs for debugging
//   - Optional api_key authentication
//   - Direct access to HTTP status codes and response bodies
//
// # Test Data
//
// PetBuilder constructs pet payloads, and the CreatePet family of functions
// provide ready made fixtures. Pets created against the live store should be
// tracked with a PetCleanup so they are deleted when the spec finishes.
package api
