package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "ISLANDFERRY_"

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 {
			continue
		}

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetPrefixedVariable reads ISLANDFERRY_<name> from an environment map.
func GetPrefixedVariable(env map[string]string, name string) string {
	return strings.TrimSpace(env[EnvironmentPrefix+name])
}
