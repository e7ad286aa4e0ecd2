package models

import "time"

// GoogleUser is the profile of the signed in Google account.
type GoogleUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Picture     string `json:"picture,omitempty"`
}

// TokenInfo is the OAuth token bundle granted for a user.
type TokenInfo struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Scope        []string  `json:"scope"`
}

// Expired reports whether the access token is past its expiry at t.
func (t TokenInfo) Expired(at time.Time) bool {
	return !t.ExpiryDate.IsZero() && !at.Before(t.ExpiryDate)
}

// AuthSession binds a user identity to its tokens for the lifetime of a login.
type AuthSession struct {
	User      GoogleUser `json:"user"`
	Tokens    TokenInfo  `json:"tokens"`
	CreatedAt time.Time  `json:"createdAt"`
}
