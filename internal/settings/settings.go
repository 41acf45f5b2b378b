package settings

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profiles embed.FS

// Document is the wire shape of a settings profile, both as embedded YAML and
// as the JSON handed to the frontend.
type Document struct {
	Production   bool          `yaml:"production" json:"production"`
	APIServerURL string        `yaml:"apiServerUrl" json:"apiServerUrl"`
	Auth0        Auth0Document `yaml:"auth0" json:"auth0"`
}

// Auth0Document holds the identity-provider section of a Document.
type Auth0Document struct {
	URL         string `yaml:"url" json:"url" validate:"required,hostname_rfc1123"`
	Audience    string `yaml:"audience" json:"audience" validate:"required"`
	ClientID    string `yaml:"clientId" json:"clientId" validate:"required"`
	CallbackURL string `yaml:"callbackURL" json:"callbackURL" validate:"required,absurl"`
}

// profile is the decoding target for an embedded profile. Production is a
// pointer so a missing key can be told apart from an explicit false.
type profile struct {
	Production   *bool         `yaml:"production" validate:"required"`
	APIServerURL string        `yaml:"apiServerUrl" validate:"required,absurl"`
	Auth0        Auth0Document `yaml:"auth0"`
}

// Settings is the validated, read-only configuration for one environment.
// The zero value is not valid; obtain one from Load.
type Settings struct {
	environment     Environment
	production      bool
	apiBaseURL      string
	authDomain      string
	authAudience    string
	authClientID    string
	authCallbackURL string
}

// Load returns the compiled-in settings for env. It performs no I/O beyond
// reading the embedded profile and fails with a *ConfigurationError when the
// environment is unknown or its profile is incomplete.
func Load(env Environment) (Settings, error) {
	if !env.Valid() {
		return Settings{}, &ConfigurationError{
			Environment: env,
			Field:       "environment",
			Reason:      "is not one of " + joinEnvironments(environments),
		}
	}

	raw, err := profiles.ReadFile(env.profilePath())
	if err != nil {
		return Settings{}, &ConfigurationError{Environment: env, Field: "profile", Reason: "is not compiled in", Err: err}
	}

	return decode(env, raw)
}

// MustLoad is like Load but panics on error.
func MustLoad(env Environment) Settings {
	s, err := Load(env)
	if err != nil {
		panic(fmt.Sprintf("load settings: %v", err))
	}
	return s
}

func decode(env Environment, raw []byte) (Settings, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc profile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Settings{}, &ConfigurationError{Environment: env, Field: "profile", Reason: "is empty"}
		}
		return Settings{}, &ConfigurationError{Environment: env, Field: "profile", Reason: "cannot be parsed", Err: err}
	}

	doc = doc.trimmed()
	if err := validateDocument(env, doc); err != nil {
		return Settings{}, err
	}
	if *doc.Production != (env == Production) {
		return Settings{}, &ConfigurationError{Environment: env, Field: "production", Reason: "does not match environment"}
	}

	return Settings{
		environment:     env,
		production:      *doc.Production,
		apiBaseURL:      doc.APIServerURL,
		authDomain:      doc.Auth0.URL,
		authAudience:    doc.Auth0.Audience,
		authClientID:    doc.Auth0.ClientID,
		authCallbackURL: doc.Auth0.CallbackURL,
	}, nil
}

func (d profile) trimmed() profile {
	d.APIServerURL = strings.TrimSpace(d.APIServerURL)
	d.Auth0.URL = strings.TrimSpace(d.Auth0.URL)
	d.Auth0.Audience = strings.TrimSpace(d.Auth0.Audience)
	d.Auth0.ClientID = strings.TrimSpace(d.Auth0.ClientID)
	d.Auth0.CallbackURL = strings.TrimSpace(d.Auth0.CallbackURL)
	return d
}

func (s Settings) Environment() Environment { return s.environment }
func (s Settings) IsProduction() bool { return s.production }
func (s Settings) APIBaseURL() string { return s.apiBaseURL }
func (s Settings) AuthDomain() string { return s.authDomain }
func (s Settings) AuthAudience() string { return s.authAudience }
func (s Settings) AuthClientID() string { return s.authClientID }
func (s Settings) AuthCallbackURL() string { return s.authCallbackURL }

// Document renders s in its wire shape.
func (s Settings) Document() Document {
	return Document{
		Production:   s.production,
		APIServerURL: s.apiBaseURL,
		Auth0: Auth0Document{
			URL:         s.authDomain,
			Audience:    s.authAudience,
			ClientID:    s.authClientID,
			CallbackURL: s.authCallbackURL,
		},
	}
}

func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Document())
}

func (s Settings) MarshalYAML() (any, error) {
	return s.Document(), nil
}
