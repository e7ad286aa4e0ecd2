// Package auth wraps the Google OAuth2 flow: consent URL generation, code
// exchange, token refresh and user profile lookup.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"yt-mcp/internal/models"
)

// Scopes requested at login.
var Scopes = []string{
	youtube.YoutubeReadonlyScope,
	oauth2api.UserinfoProfileScope,
	oauth2api.UserinfoEmailScope,
}

// defaultTokenLifetime is assumed when the provider omits an expiry.
const defaultTokenLifetime = time.Hour

var (
	ErrMissingCredentials = errors.New("missing required OAuth2 client settings")
	ErrNoAccessToken      = errors.New("no access token in provider response")
)

// Config holds the OAuth client settings. Endpoint and APIEndpoint are only
// set to point the service at a non-Google server.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	Endpoint    oauth2.Endpoint
	APIEndpoint string
}

// Service performs the OAuth2 operations for one client registration.
type Service struct {
	oauth   *oauth2.Config
	apiOpts []option.ClientOption
	now     func() time.Time
}

// NewService validates c and returns a Service.
func NewService(c Config) (*Service, error) {
	if c.ClientID == "" || c.ClientSecret == "" || c.RedirectURI == "" {
		return nil, ErrMissingCredentials
	}
	endpoint := c.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	s := &Service{
		oauth: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURI,
			Endpoint:     endpoint,
			Scopes:       Scopes,
		},
		now: time.Now,
	}
	if c.APIEndpoint != "" {
		s.apiOpts = append(s.apiOpts, option.WithEndpoint(c.APIEndpoint))
	}
	return s, nil
}

// AuthURL returns the consent page URL. Offline access and a forced consent
// prompt make Google return a refresh token on every login.
func (s *Service) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange trades an authorization code for tokens.
func (s *Service) Exchange(ctx context.Context, code string) (models.TokenInfo, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return models.TokenInfo{}, fmt.Errorf("exchange code: %w", err)
	}
	if tok.AccessToken == "" {
		return models.TokenInfo{}, ErrNoAccessToken
	}
	return s.tokenInfo(tok, ""), nil
}

// Refresh obtains a new access token using the refresh token in t.
func (s *Service) Refresh(ctx context.Context, t models.TokenInfo) (models.TokenInfo, error) {
	if t.RefreshToken == "" {
		return models.TokenInfo{}, errors.New("no refresh token")
	}
	tok, err := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: t.RefreshToken}).Token()
	if err != nil {
		return models.TokenInfo{}, fmt.Errorf("refresh access token: %w", err)
	}
	if tok.AccessToken == "" {
		return models.TokenInfo{}, ErrNoAccessToken
	}
	info := s.tokenInfo(tok, t.RefreshToken)
	if len(info.Scope) == 0 {
		info.Scope = t.Scope
	}
	return info, nil
}

// TokenSource returns a source that refreshes t as needed.
func (s *Service) TokenSource(ctx context.Context, t models.TokenInfo) oauth2.TokenSource {
	return s.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.ExpiryDate,
		TokenType:    "Bearer",
	})
}

// UserInfo fetches the profile of the token's owner.
func (s *Service) UserInfo(ctx context.Context, accessToken string) (models.GoogleUser, error) {
	opts := append([]option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})),
	}, s.apiOpts...)
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return models.GoogleUser{}, fmt.Errorf("userinfo client: %w", err)
	}
	ui, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return models.GoogleUser{}, fmt.Errorf("get userinfo: %w", err)
	}
	return models.GoogleUser{
		ID:          ui.Id,
		Email:       ui.Email,
		DisplayName: ui.Name,
		Picture:     ui.Picture,
	}, nil
}

func (s *Service) tokenInfo(tok *oauth2.Token, fallbackRefresh string) models.TokenInfo {
	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = s.now().Add(defaultTokenLifetime)
	}
	refresh := tok.RefreshToken
	if refresh == "" {
		refresh = fallbackRefresh
	}
	var scope []string
	if raw, ok := tok.Extra("scope").(string); ok && raw != "" {
		scope = strings.Fields(raw)
	}
	return models.TokenInfo{
		AccessToken:  tok.AccessToken,
		RefreshToken: refresh,
		ExpiryDate:   expiry,
		Scope:        scope,
	}
}
