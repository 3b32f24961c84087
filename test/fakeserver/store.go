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

package fakeserver

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"

	"k8s.io/utils/ptr"
)

var (
	ErrNotFound  = errors.New("pet not found")
	ErrMissingID = errors.New("pet ID is required")
)

// firstID keeps generated IDs clear of the small IDs tests seed explicitly.
const firstID = 1000

// store is an in-memory pet repository.
type store struct {
	mu     sync.RWMutex
	pets   map[int64]openapi.Pet
	nextID int64
}

func newStore() *store {
	return &store{
		pets:   map[int64]openapi.Pet{},
		nextID: firstID,
	}
}

// put inserts or replaces a pet, allocating an ID when none is given.
func (s *store) put(pet openapi.Pet) openapi.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pet.ID == nil || *pet.ID == 0 {
		pet.ID = ptr.To(s.nextID)
	}

	if *pet.ID >= s.nextID {
		s.nextID = *pet.ID + 1
	}

	if pet.PhotoURLs == nil {
		pet.PhotoURLs = []string{}
	}

	s.pets[*pet.ID] = pet

	return pet
}

func (s *store) update(pet openapi.Pet) (openapi.Pet, error) {
	if pet.ID == nil {
		return openapi.Pet{}, ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[*pet.ID]; !ok {
		return openapi.Pet{}, ErrNotFound
	}

	if pet.PhotoURLs == nil {
		pet.PhotoURLs = []string{}
	}

	s.pets[*pet.ID] = pet

	return pet, nil
}

func (s *store) get(id int64) (openapi.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pet, ok := s.pets[id]
	if !ok {
		return openapi.Pet{}, ErrNotFound
	}

	return pet, nil
}

func (s *store) delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pets[id]; !ok {
		return ErrNotFound
	}

	delete(s.pets, id)

	return nil
}

// findByStatus returns pets having any of the statuses, ordered by ID.
func (s *store) findByStatus(statuses []openapi.PetStatus) []openapi.Pet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []openapi.Pet{}

	for _, pet := range s.pets {
		if slices.Contains(statuses, pet.Status) {
			out = append(out, pet)
		}
	}

	slices.SortFunc(out, func(a, b openapi.Pet) int {
		return cmp.Compare(*a.ID, *b.ID)
	})

	return out
}
