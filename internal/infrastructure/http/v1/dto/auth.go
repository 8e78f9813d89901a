package dto

import (
	"time"

	"posadmin/internal/core/apperror"
	"posadmin/internal/domain/auth"
)

// --- Request DTOs ---

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Role     string  `json:"role" binding:"required"`
	BranchID *string `json:"branchId"`
}

// ToAuthRequest converts DTO to domain request.
func (r *RegisterRequest) ToAuthRequest() (auth.RegisterRequest, error) {
	branchID, err := optionalID(r.BranchID)
	if err != nil {
		return auth.RegisterRequest{}, apperror.NewValidation("invalid branchId format")
	}
	return auth.RegisterRequest{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Role:     r.Role,
		BranchID: branchID,
	}, nil
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts DTO to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password}
}

// RefreshTokenRequest is the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SetUserActiveRequest toggles an account on or off.
type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// --- Response DTOs ---

// UserResponse is the response body for a user.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	BranchID    *string    `json:"branchId,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser creates response DTO from domain entity.
func FromUser(u *auth.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		BranchID:    idString(u.BranchID),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// TokenPairResponse carries issued tokens.
type TokenPairResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TokenType    string    `json:"tokenType"`
}

// FromTokenPair creates response DTO from domain token pair.
func FromTokenPair(t *auth.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    t.ExpiresAt,
		TokenType:    t.TokenType,
	}
}

// LoginResponse combines tokens with user data.
type LoginResponse struct {
	Tokens TokenPairResponse `json:"tokens"`
	User   *UserResponse     `json:"user"`
}
