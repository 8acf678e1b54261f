// Package config provides configuration loading and validation for the resume enhancer.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// OperatorConfig holds the single operator account the API authenticates
// against. The password is supplied pre-hashed so the plaintext never has
// to live in the environment.
type OperatorConfig struct {
	Email        string
	PasswordHash string
	BcryptCost   int
}

// NewOperatorConfig creates an operator configuration from environment
// variables. It reads OPERATOR_EMAIL and OPERATOR_PASSWORD_HASH (both
// required) and optionally BCRYPT_COST (default: 12, used when hashing
// new passwords via the CLI).
func NewOperatorConfig() (*OperatorConfig, error) {
	email := os.Getenv("OPERATOR_EMAIL")
	if email == "" {
		return nil, fmt.Errorf("OPERATOR_EMAIL is required but not set")
	}

	hash := os.Getenv("OPERATOR_PASSWORD_HASH")
	if hash == "" {
		return nil, fmt.Errorf("OPERATOR_PASSWORD_HASH is required but not set")
	}

	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	cfg := &OperatorConfig{
		Email:        email,
		PasswordHash: hash,
		BcryptCost:   cost,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *OperatorConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// HashPassword hashes a password with the configured bcrypt cost.
func (c *OperatorConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (c *OperatorConfig) VerifyPassword(pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pw)) == nil
}
