package social

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"hirehub/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrInvalidToken means the provider refused the access token.
	ErrInvalidToken = errors.New("social: invalid or expired access token")
	// ErrUnavailable means the provider could not be reached or its breaker is open.
	ErrUnavailable = errors.New("social: provider unavailable")
	// ErrNoEmail means the provider did not share an email address.
	ErrNoEmail = errors.New("social: provider returned no email")
)

// Profile is the identity asserted by a social provider.
type Profile struct {
	Provider string
	ID       string
	Email    string
	Name     string
}

type Provider interface {
	Name() string
	UserInfo(ctx context.Context, accessToken string) (*Profile, error)
}

// NewProviders builds the Google and Facebook providers, each with its own circuit breaker.
func NewProviders(config utils.SocialConfig, log *zap.Logger) map[string]Provider {
	return map[string]Provider{
		"google": NewGoogle(GoogleConfig{
			UserInfoURL: config.GoogleUserInfoURL,
			HTTPClient:  newBreakerClient("google", config, log),
		}),
		"facebook": NewFacebook(FacebookConfig{
			GraphURL:   config.FacebookGraphURL,
			HTTPClient: newBreakerClient("facebook", config, log),
		}),
	}
}

func newBreakerClient(name string, config utils.SocialConfig, log *zap.Logger) *http.Client {
	return &http.Client{
		Timeout:   10 * time.Second,
		Transport: NewBreakerTransport(name, config.BreakerFailures, config.BreakerTimeout, http.DefaultTransport, log),
	}
}

// fetch performs an authenticated GET and returns the body for 200 responses.
func fetch(ctx context.Context, client *http.Client, provider string, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", provider, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", provider, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%s: status %d: %w", provider, resp.StatusCode, ErrInvalidToken)
	default:
		return nil, fmt.Errorf("%s: status %d: %w", provider, resp.StatusCode, ErrUnavailable)
	}
}
