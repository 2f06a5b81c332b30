package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingCredential is returned when no Gemini API key can be found.
var ErrMissingCredential = errors.New(ErrCredentialMissing)

// Settings carries the runtime configuration of the components that call the
// Gemini API. It is built once in main and passed down explicitly.
type Settings struct {
	APIKey  string
	Model   string
	Timeout time.Duration // Per-request deadline. Zero disables it.

	// Endpoint overrides the API base URL. Empty uses the public endpoint.
	Endpoint string

	// ResponseLimit caps the bytes read from one API response. Zero uses MaxResponseSize.
	ResponseLimit int64
}

// Validate reports configuration errors that must stop the application.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.APIKey) == "" {
		return ErrMissingCredential
	}
	if strings.TrimSpace(s.Model) == "" {
		return errors.New(ErrModelEmpty)
	}
	return nil
}

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// SecretGetFunc matches keyring.Get.
type SecretGetFunc func(service, user string) (string, error)

// ResolveAPIKey finds the API key in the environment first, then in the keyring.
// The returned source is EnvGeminiKey, EnvAPIKey or KeyringService.
func ResolveAPIKey(lookupEnv LookupEnvFunc, getSecret SecretGetFunc) (key, source string, err error) {
	for _, name := range []string{EnvGeminiKey, EnvAPIKey} {
		if lookupEnv == nil {
			break
		}
		if v, ok := lookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), name, nil
		}
	}

	if getSecret != nil {
		v, err := getSecret(KeyringService, KeyringUser)
		if err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), KeyringService, nil
		}
		if err != nil {
			return "", "", fmt.Errorf("%w (%s: %v)", ErrMissingCredential, ErrKeyringRead, err)
		}
	}

	return "", "", ErrMissingCredential
}
