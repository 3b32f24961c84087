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

// Package fakeserver implements an in-process pet store that behaves like
// the public demo service, so the API suites can run offline.
package fakeserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/unikorn-cloud/petstore-api-tests/pkg/openapi"
)

// BasePath is where the API is mounted, matching the public service.
const BasePath = "/v2"

// Server is a running fake pet store.
type Server struct {
	store  *store
	log    logr.Logger
	server *httptest.Server
}

// New starts a fake pet store listening on a loopback port.
func New(log logr.Logger) *Server {
	s := &Server{
		store: newStore(),
		log:   log,
	}

	s.server = httptest.NewServer(s.Handler())

	return s
}

// URL is the base URL clients should be configured with.
func (s *Server) URL() string {
	return s.server.URL + BasePath
}

func (s *Server) Close() {
	s.server.Close()
}

// Seed inserts pets directly, bypassing validation. Pets without an ID are
// allocated one. The stored pets are returned.
func (s *Server) Seed(pets ...openapi.Pet) []openapi.Pet {
	out := make([]openapi.Pet, len(pets))

	for i, pet := range pets {
		out[i] = s.store.put(pet)
	}

	return out
}

// Handler returns the router, exposed for use with httptest.NewRecorder.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Route(BasePath+"/pet", func(pr chi.Router) {
		pr.Post("/", s.addPet)
		pr.Put("/", s.updatePet)
		pr.Get("/findByStatus", s.findPetsByStatus)
		pr.Get("/{petId}", s.getPetByID)
		pr.Delete("/{petId}", s.deletePet)
	})

	return r
}

// requestLogger logs every request with the caller's trace context, or a
// generated request ID when there is none.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("Traceparent")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-Id", requestID)

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.V(1).Info("fake pet store request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start), "requestID", requestID)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

// decodePet reads a pet from the request body, the status must be one of the
// enumeration when present.
func decodePet(r *http.Request) (openapi.Pet, bool) {
	var pet openapi.Pet

	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		return openapi.Pet{}, false
	}

	if pet.Status != "" && !pet.Status.Valid() {
		return openapi.Pet{}, false
	}

	return pet, true
}

func petIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petId"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

func (s *Server) addPet(w http.ResponseWriter, r *http.Request) {
	pet, ok := decodePet(r)
	if !ok {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.store.put(pet))
}

func (s *Server) updatePet(w http.ResponseWriter, r *http.Request) {
	pet, ok := decodePet(r)
	if !ok {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	updated, err := s.store.update(pet)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) findPetsByStatus(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()["status"]

	statuses := make([]openapi.PetStatus, 0, len(values))

	for _, value := range values {
		status, err := openapi.ParsePetStatus(value)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		statuses = append(statuses, status)
	}

	writeJSON(w, http.StatusOK, s.store.findByStatus(statuses))
}

func (s *Server) getPetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := petIDParam(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	pet, err := s.store.get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, openapi.APIResponse{
			Code:    1,
			Type:    "error",
			Message: "Pet not found",
		})

		return
	}

	writeJSON(w, http.StatusOK, pet)
}

func (s *Server) deletePet(w http.ResponseWriter, r *http.Request) {
	id, ok := petIDParam(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := s.store.delete(id); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, openapi.APIResponse{
		Code:    http.StatusOK,
		Type:    "unknown",
		Message: strconv.FormatInt(id, 10),
	})
}
