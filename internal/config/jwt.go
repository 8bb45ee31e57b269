package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// JWTConfig holds configuration for bearer token validation.
// Tokens are issued by the account service; this service only verifies them.
type JWTConfig struct {
	Secret string
	Leeway time.Duration
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads JWT_SECRET (required) and JWT_LEEWAY_SECONDS (default: 0).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	leeway := 0
	if s := os.Getenv("JWT_LEEWAY_SECONDS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_LEEWAY_SECONDS: %v", err)
		}
		leeway = n
	}

	config := &JWTConfig{
		Secret: secret,
		Leeway: time.Duration(leeway) * time.Second,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.Leeway < 0 {
		return fmt.Errorf("JWT_LEEWAY_SECONDS must be non-negative, got: %v", c.Leeway)
	}
	return nil
}
