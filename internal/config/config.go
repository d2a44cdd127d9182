package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Events EventsConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	store, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}

	events, err := loadEventsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Store: store, Events: events}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// loadServerConfig resolves the listen address from PORT.
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept a full address such as ":8080" or "127.0.0.1:8080".
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// StoreConfig describes the in-memory person store.
type StoreConfig struct {
	DefaultTake int
	Seed        bool
}

func loadStoreConfig() (StoreConfig, error) {
	seed, err := parseBoolEnv("PEOPLE_SEED", true)
	if err != nil {
		return StoreConfig{}, err
	}

	defaultTake := 50
	if override, err := parseOptionalIntEnv("PEOPLE_DEFAULT_TAKE"); err != nil {
		return StoreConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return StoreConfig{}, fmt.Errorf("PEOPLE_DEFAULT_TAKE must be positive, got %d", *override)
		}
		defaultTake = *override
	}

	return StoreConfig{DefaultTake: defaultTake, Seed: seed}, nil
}

// EventsConfig describes the change-feed endpoint.
type EventsConfig struct {
	Enabled bool
	Buffer  int
}

func loadEventsConfig() (EventsConfig, error) {
	enabled, err := parseBoolEnv("EVENTS_ENABLED", true)
	if err != nil {
		return EventsConfig{}, err
	}

	buffer := 16
	if override, err := parseOptionalIntEnv("EVENTS_BUFFER"); err != nil {
		return EventsConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return EventsConfig{}, fmt.Errorf("EVENTS_BUFFER must be positive, got %d", *override)
		}
		buffer = *override
	}

	return EventsConfig{Enabled: enabled, Buffer: buffer}, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
