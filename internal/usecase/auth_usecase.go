// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
// Role is optional; an empty role registers a regular shopper.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// SignInInput defines the data required to sign in.
type SignInInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// SignUpOutput returns the newly created user.
type SignUpOutput struct {
	User *entity.User
}

// SignInOutput returns the token pair and the authenticated user after a
// successful credential check.
type SignInOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for credential-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	SignUp(ctx context.Context, input *SignUpInput) (*SignUpOutput, error)
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)
}
