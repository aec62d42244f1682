// Package config reads runtime settings for the postlist client and the fixture server
// from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Client configures cmd/postlist
type Client struct {
	BaseURL  string
	LogFile  string
	Timeout  time.Duration
	ReadOnly bool
}

// Server configures cmd/server
type Server struct {
	Port              string
	DatabaseURL       string
	RateLimitWindow   time.Duration
	SeedPosts         int
	RateLimitRequests int
}

// LoadClient reads POSTS_BASE_URL, POSTS_TIMEOUT, POSTLIST_READONLY and POSTLIST_LOG_FILE
func LoadClient() (*Client, error) {
	timeout, err := getDuration("POSTS_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	readOnly, err := getBool("POSTLIST_READONLY", false)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL:  strings.TrimRight(getEnv("POSTS_BASE_URL", "https://jsonplaceholder.typicode.com"), "/"),
		Timeout:  timeout,
		ReadOnly: readOnly,
		LogFile:  getEnv("POSTLIST_LOG_FILE", ""),
	}, nil
}

// LoadServer reads SERVER_PORT, DATABASE_URL, SEED_POSTS, RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW.
// An empty DATABASE_URL selects the in-memory store.
func LoadServer() (*Server, error) {
	seed, err := getInt("SEED_POSTS", 100)
	if err != nil {
		return nil, err
	}
	requests, err := getInt("RATE_LIMIT_REQUESTS", 100)
	if err != nil {
		return nil, err
	}
	window, err := getDuration("RATE_LIMIT_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, fmt.Errorf("SEED_POSTS must not be negative, got %d", seed)
	}
	if requests <= 0 || window <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d per %s", requests, window)
	}

	return &Server{
		Port:              getEnv("SERVER_PORT", "8081"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SeedPosts:         seed,
		RateLimitRequests: requests,
		RateLimitWindow:   window,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
