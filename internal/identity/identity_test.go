package identity

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugenenazirov/coffishop-settings/internal/settings"
)

func newDevelopmentProvider(t *testing.T) *Provider {
	t.Helper()
	s, err := settings.Load(settings.Development)
	require.NoError(t, err)
	return New(s)
}

func TestIssuerAndJWKS(t *testing.T) {
	p := newDevelopmentProvider(t)

	assert.Equal(t, "https://dev-ekrtug23.us.auth0.com/", p.Issuer())
	assert.Equal(t, "https://dev-ekrtug23.us.auth0.com/.well-known/jwks.json", p.JWKSURL())
}

func TestOAuth2Config(t *testing.T) {
	p := newDevelopmentProvider(t)

	cfg := p.OAuth2Config()
	assert.Equal(t, "LjN1APSGfE2fTZc5x9TuZVAghag7OZGI", cfg.ClientID)
	assert.Equal(t, "http://localhost:8100", cfg.RedirectURL)
	assert.Equal(t, "https://dev-ekrtug23.us.auth0.com/authorize", cfg.Endpoint.AuthURL)
	assert.Equal(t, "https://dev-ekrtug23.us.auth0.com/oauth/token", cfg.Endpoint.TokenURL)

	cfg.ClientID = "changed"
	assert.Equal(t, "LjN1APSGfE2fTZc5x9TuZVAghag7OZGI", p.OAuth2Config().ClientID, "callers get a copy")
}

func TestLoginURL(t *testing.T) {
	p := newDevelopmentProvider(t)

	u, err := url.Parse(p.LoginURL("xyz"))
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "dev-ekrtug23.us.auth0.com", u.Host)
	assert.Equal(t, "/authorize", u.Path)

	q := u.Query()
	assert.Equal(t, "CoffishopApi", q.Get("audience"))
	assert.Equal(t, "token", q.Get("response_type"))
	assert.Equal(t, "LjN1APSGfE2fTZc5x9TuZVAghag7OZGI", q.Get("client_id"))
	assert.Equal(t, "http://localhost:8100", q.Get("redirect_uri"))
	assert.Equal(t, "xyz", q.Get("state"))
}

func TestLogoutURL(t *testing.T) {
	p := newDevelopmentProvider(t)

	u, err := url.Parse(p.LogoutURL())
	require.NoError(t, err)

	assert.Equal(t, "/v2/logout", u.Path)
	assert.Equal(t, "LjN1APSGfE2fTZc5x9TuZVAghag7OZGI", u.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:8100", u.Query().Get("returnTo"))
}
