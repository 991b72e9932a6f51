package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	domainconfig "github.com/felixgeelhaar/agent-fs/domain/config"
)

var (
	// ${VAR}, ${VAR:-default}, ${VAR:?message}
	bracketPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::([-?])([^}]*))?\}`)
	// $VAR
	simplePattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expand substitutes environment variables in input.
// Supported patterns:
//   - ${VAR} expands to the value of VAR
//   - ${VAR:-default} expands to VAR, or default when unset or empty
//   - ${VAR:?message} fails when VAR is unset or empty
//   - $VAR simple expansion
//
// In strict mode an unset variable without a default is an error; otherwise
// it expands to the empty string.
func expand(input string, strict bool) (string, error) {
	var missing []string

	result := bracketPattern.ReplaceAllStringFunc(input, func(match string) string {
		m := bracketPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case "-":
			if !ok || value == "" {
				return arg
			}
		case "?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
		default:
			if !ok && strict {
				missing = append(missing, name)
			}
		}
		return value
	})

	result = simplePattern.ReplaceAllStringFunc(result, func(match string) string {
		name := match[1:]
		value, ok := os.LookupEnv(name)
		if !ok && strict {
			missing = append(missing, name)
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", domainconfig.ErrMissingEnvVar, strings.Join(missing, ", "))
	}
	return result, nil
}

// ExpandEnv expands environment variables, leaving unset ones empty.
// Required variables (${VAR:?msg}) that are unset are kept verbatim.
func ExpandEnv(input string) string {
	result, err := expand(input, false)
	if err != nil {
		return input
	}
	return result
}

// ExpandEnvStrict expands environment variables and returns an error for
// missing ones.
func ExpandEnvStrict(input string) (string, error) {
	return expand(input, true)
}
