package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Resolve returns a usable secret from an inline value or a file, the file
// taking precedence. The result is always trimmed. Name is used in error
// messages only.
func Resolve(name, inline, file string) (string, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = "secret"
	}

	if file = strings.TrimSpace(file); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}

		return secret, nil
	}

	secret := strings.TrimSpace(inline)
	if secret == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
