package usersrepobridge

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/luminahq/lumina/core/repositories/usersrepo"
)

// SignupInput is the request model for account creation.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Validate checks the signup input.
func (i SignupInput) Validate() error {
	if !strings.Contains(i.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(i.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// LoginInput is the request model for authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login input.
func (i LoginInput) Validate() error {
	if i.Email == "" || i.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

// AuthResponse carries a fresh bearer token and its owner.
type AuthResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      usersrepo.User `json:"user"`
}

// Encode implements the encoder interface.
func (a AuthResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(a)
	return data, "application/json", err
}
