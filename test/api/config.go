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
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public demo pet store.
	DefaultBaseURL = "https://petstore.swagger.io/v2"

	// DefaultKnownPetID is a record the demo store is expected to carry.
	DefaultKnownPetID int64 = 5

	// DefaultMissingPetID is large enough never to be allocated by the demo store.
	DefaultMissingPetID int64 = 999911111
)

var ErrInvalidBaseURL = errors.New("invalid base url")

type TestConfig struct {
	BaseURL         string
	APIKey          string
	RequestTimeout  time.Duration
	TestTimeout     time.Duration
	KnownPetID      int64
	MissingPetID    int64
	SkipIntegration bool
	UseFakeServer   bool
	DebugLogging    bool
	LogRequests     bool
	LogResponses    bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Everything has a default, so this only fails on malformed values.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:         getStringWithDefault("API_BASE_URL", DefaultBaseURL),
		APIKey:          os.Getenv("API_KEY"),
		RequestTimeout:  getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:     getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		KnownPetID:      getInt64WithDefault("TEST_KNOWN_PET_ID", DefaultKnownPetID),
		MissingPetID:    getInt64WithDefault("TEST_MISSING_PET_ID", DefaultMissingPetID),
		SkipIntegration: getBoolWithDefault("SKIP_INTEGRATION", false),
		UseFakeServer:   getBoolWithDefault("USE_FAKE_SERVER", false),
		DebugLogging:    getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:     getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:    getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := validateBaseURL(config.BaseURL); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultTestConfig returns the configuration used when nothing is set in
// the environment.
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: 30 * time.Second,
		TestTimeout:    5 * time.Minute,
		KnownPetID:     DefaultKnownPetID,
		MissingPetID:   DefaultMissingPetID,
	}
}

func getStringWithDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	return value
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getInt64WithDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env", // From test/api/suites directory
		"../.env",    // From test/api directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Values already present in the environment take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

func validateBaseURL(baseURL string) error {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidBaseURL, baseURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidBaseURL, baseURL)
	}

	return nil
}
