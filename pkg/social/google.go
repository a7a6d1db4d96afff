package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type GoogleConfig struct {
	UserInfoURL string
	HTTPClient  *http.Client
}

type Google struct {
	userInfoURL string
	client      *http.Client
}

func NewGoogle(config GoogleConfig) *Google {
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultGoogleUserInfoURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Google{userInfoURL: config.UserInfoURL, client: config.HTTPClient}
}

func (g *Google) Name() string { return "google" }

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// UserInfo resolves an OAuth access token to the Google account behind it.
func (g *Google) UserInfo(ctx context.Context, accessToken string) (*Profile, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("google: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	body, err := fetch(ctx, g.client, g.Name(), req)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("google: decode userinfo: %w", err)
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("google: missing subject: %w", ErrInvalidToken)
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, ErrNoEmail
	}

	return &Profile{
		Provider: g.Name(),
		ID:       info.Sub,
		Email:    strings.ToLower(info.Email),
		Name:     info.Name,
	}, nil
}
