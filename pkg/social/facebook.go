package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultFacebookGraphURL = "https://graph.facebook.com"

type FacebookConfig struct {
	GraphURL   string
	HTTPClient *http.Client
}

type Facebook struct {
	graphURL string
	client   *http.Client
}

func NewFacebook(config FacebookConfig) *Facebook {
	if config.GraphURL == "" {
		config.GraphURL = defaultFacebookGraphURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Facebook{graphURL: strings.TrimRight(config.GraphURL, "/"), client: config.HTTPClient}
}

func (f *Facebook) Name() string { return "facebook" }

type facebookMe struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (f *Facebook) UserInfo(ctx context.Context, accessToken string) (*Profile, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrInvalidToken
	}

	q := url.Values{}
	q.Set("fields", "id,name,email")
	q.Set("access_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.graphURL+"/me?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("facebook: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := fetch(ctx, f.client, f.Name(), req)
	if err != nil {
		return nil, err
	}

	var me facebookMe
	if err := json.Unmarshal(body, &me); err != nil {
		return nil, fmt.Errorf("facebook: decode me: %w", err)
	}
	if me.ID == "" {
		return nil, fmt.Errorf("facebook: missing id: %w", ErrInvalidToken)
	}
	if me.Email == "" {
		return nil, ErrNoEmail
	}

	return &Profile{
		Provider: f.Name(),
		ID:       me.ID,
		Email:    strings.ToLower(me.Email),
		Name:     me.Name,
	}, nil
}
