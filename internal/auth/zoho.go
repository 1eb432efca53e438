// Package auth exchanges the long-lived Zoho refresh token for a bearer token.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"github.com/andresuchdata/material-price-dispatch/internal/domain"
	"github.com/andresuchdata/material-price-dispatch/pkg/logger"
)

// DefaultTokenURL is the Zoho accounts endpoint for the India data center.
const DefaultTokenURL = "https://accounts.zoho.in/oauth/v2/token"

// TokenRefresher mints a short-lived access token from refresh credentials.
type TokenRefresher interface {
	Refresh(ctx context.Context, creds domain.Credentials) (string, error)
}

// ZohoRefresher implements TokenRefresher against the Zoho OAuth token endpoint.
type ZohoRefresher struct {
	tokenURL   string
	httpClient *http.Client
}

// NewZohoRefresher creates a ZohoRefresher. A nil httpClient uses http.DefaultClient.
func NewZohoRefresher(tokenURL string, httpClient *http.Client) *ZohoRefresher {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &ZohoRefresher{tokenURL: tokenURL, httpClient: httpClient}
}

// Refresh performs a single refresh_token grant. Missing credentials fail
// before any request is made.
func (r *ZohoRefresher) Refresh(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := validateCredentials(creds); err != nil {
		return "", err
	}

	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL: r.tokenURL,
			// Zoho expects the client credentials in the form body.
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	if r.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	}

	token, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken}).Token()
	if err != nil {
		return "", toAuthError(err)
	}
	if token.AccessToken == "" {
		return "", &domain.AuthError{Body: "token response missing access_token"}
	}

	logger.Log.Info().Msg("successfully refreshed Zoho access token")
	return token.AccessToken, nil
}

func validateCredentials(creds domain.Credentials) error {
	switch {
	case strings.TrimSpace(creds.RefreshToken) == "":
		return domain.NewConfigurationError("ZOHO_REFRESH_TOKEN", "")
	case strings.TrimSpace(creds.ClientID) == "":
		return domain.NewConfigurationError("ZOHO_CLIENT_ID", "")
	case strings.TrimSpace(creds.ClientSecret) == "":
		return domain.NewConfigurationError("ZOHO_CLIENT_SECRET", "")
	}
	return nil
}

func toAuthError(err error) *domain.AuthError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		authErr := &domain.AuthError{Body: string(retrieveErr.Body), Err: err}
		if retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
		}
		if authErr.Body == "" {
			authErr.Body = retrieveErr.ErrorCode
		}
		return authErr
	}
	return &domain.AuthError{Body: err.Error(), Err: err}
}
