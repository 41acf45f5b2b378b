// Package identity derives Auth0 endpoints and login links from the frontend
// settings. Nothing here talks to the network.
package identity

import (
	"net/url"

	"golang.org/x/oauth2"

	"github.com/eugenenazirov/coffishop-settings/internal/settings"
)

// Provider exposes the identity-provider URLs for one settings profile.
type Provider struct {
	settings settings.Settings
	oauth    oauth2.Config
}

// New builds a Provider for the tenant, client and callback in s.
func New(s settings.Settings) *Provider {
	base := tenantURL(s.AuthDomain())
	return &Provider{
		settings: s,
		oauth: oauth2.Config{
			ClientID:    s.AuthClientID(),
			RedirectURL: s.AuthCallbackURL(),
			Endpoint: oauth2.Endpoint{
				AuthURL:   base.JoinPath("authorize").String(),
				TokenURL:  base.JoinPath("oauth", "token").String(),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// Issuer is the token issuer the API must expect, including the trailing slash.
func (p *Provider) Issuer() string {
	return tenantURL(p.settings.AuthDomain()).String()
}

// JWKSURL is where the tenant publishes its signing keys.
func (p *Provider) JWKSURL() string {
	return tenantURL(p.settings.AuthDomain()).JoinPath(".well-known", "jwks.json").String()
}

// OAuth2Config returns a copy of the client configuration.
func (p *Provider) OAuth2Config() *oauth2.Config {
	cfg := p.oauth
	return &cfg
}

// LoginURL builds the implicit-flow authorize link that returns an access
// token for the configured audience to the callback URL.
func (p *Provider) LoginURL(state string) string {
	return p.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("audience", p.settings.AuthAudience()),
		oauth2.SetAuthURLParam("response_type", "token"),
	)
}

// LogoutURL ends the tenant session and returns the browser to the callback URL.
func (p *Provider) LogoutURL() string {
	u := tenantURL(p.settings.AuthDomain()).JoinPath("v2", "logout")
	u.RawQuery = url.Values{
		"client_id": {p.settings.AuthClientID()},
		"returnTo":  {p.settings.AuthCallbackURL()},
	}.Encode()
	return u.String()
}

func tenantURL(domain string) *url.URL {
	return &url.URL{Scheme: "https", Host: domain, Path: "/"}
}
