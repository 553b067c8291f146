// Package oauth implements the Google authorization-code exchange used by
// social login.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleVerifier trades authorization codes for the Google account's email
// and display name. It satisfies the service-side GoogleVerifier interface.
type GoogleVerifier struct {
	config *oauth2.Config
}

// Config carries the Google OAuth client settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGoogleVerifier(cfg Config) *GoogleVerifier {
	return &GoogleVerifier{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type userinfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Exchange performs the code-for-token exchange and fetches the account's
// profile. Any failure along the way reads as a failed login upstream.
func (v *GoogleVerifier) Exchange(ctx context.Context, code string) (email, name string, err error) {
	token, err := v.config.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("exchange code: %w", err)
	}

	resp, err := v.config.Client(ctx, token).Get(userinfoURL)
	if err != nil {
		return "", "", fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("fetch userinfo: unexpected status %d", resp.StatusCode)
	}

	var info userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", "", fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" {
		return "", "", fmt.Errorf("userinfo missing email")
	}
	if info.Name == "" {
		info.Name = info.Email
	}

	return info.Email, info.Name, nil
}
