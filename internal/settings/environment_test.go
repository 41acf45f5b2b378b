package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvironment(t *testing.T) {
	for raw, want := range map[string]Environment{
		"development":   Development,
		"Production":    Production,
		" production  ": Production,
		"dev":           Development,
		"PROD":          Production,
	} {
		got, err := ParseEnvironment(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseEnvironmentRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "staging", "developmnet"} {
		_, err := ParseEnvironment(raw)
		assert.ErrorIs(t, err, ErrConfiguration, raw)
	}
}

func TestEnvironmentsReturnsCopy(t *testing.T) {
	envs := Environments()
	require.Len(t, envs, 2)
	envs[0] = "mutated"

	assert.Equal(t, Development, Environments()[0])
}
