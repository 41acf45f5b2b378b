package settings

import (
	"slices"
	"strings"
)

// Environment names a deployment profile compiled into the binary.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

var environments = []Environment{Development, Production}

var environmentAliases = map[string]Environment{
	"dev":  Development,
	"prod": Production,
}

// Environments returns every environment with a compiled-in profile.
func Environments() []Environment {
	return slices.Clone(environments)
}

// ParseEnvironment maps a user-supplied name onto the closed set of environments.
// Matching is case-insensitive and accepts the short forms "dev" and "prod".
func ParseEnvironment(raw string) (Environment, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := environmentAliases[name]; ok {
		return alias, nil
	}

	env := Environment(name)
	if !env.Valid() {
		return "", &ConfigurationError{
			Environment: Environment(raw),
			Field:       "environment",
			Reason:      "is not one of " + joinEnvironments(environments),
		}
	}
	return env, nil
}

// Valid reports whether e is one of the predefined environments.
func (e Environment) Valid() bool {
	return slices.Contains(environments, e)
}

func (e Environment) String() string {
	return string(e)
}

func (e Environment) profilePath() string {
	return "profiles/" + string(e) + ".yaml"
}

func joinEnvironments(envs []Environment) string {
	names := make([]string, len(envs))
	for i, env := range envs {
		names[i] = string(env)
	}
	return strings.Join(names, ", ")
}
