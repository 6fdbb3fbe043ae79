package dto

import "github.com/spec-kit/recouvrement-service/internal/domain"

// LoginRequest payload for the JSON login variant.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest payload for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest payload for password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// TokenResponse is the OAuth2-style token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserProfile is the identity snapshot returned by login-json and /auth/me.
type UserProfile struct {
	ID       int64  `json:"id_utilisateur"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	AgenceID *int64 `json:"id_agence,omitempty"`
	Actif    bool   `json:"actif"`
}

// LoginResponse combines tokens with the identity snapshot.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
	User         UserProfile `json:"user"`
}

// NewUserProfile maps a domain user to its wire representation.
func NewUserProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:       user.ID,
		Nom:      user.Nom,
		Prenom:   user.Prenom,
		Email:    user.Email,
		Role:     string(user.Role),
		AgenceID: user.AgenceID,
		Actif:    user.Actif,
	}
}
