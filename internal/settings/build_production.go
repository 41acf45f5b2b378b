//go:build production

package settings

// BuildEnvironment is the environment compiled into this binary.
const BuildEnvironment = Production
