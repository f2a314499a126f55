package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile decodes the YAML file at path into out, then overlays
// <dir>/<env>.yaml when it exists. ${VAR} placeholders are expanded from
// <dir>/secrets.env first and the process environment second.
// A missing base file is not an error: out keeps whatever defaults it had.
func LoadFile(path, env string, out any) error {
	dir := filepath.Dir(path)

	secrets := map[string]string{}
	secretsFile := filepath.Join(dir, "secrets.env")
	if _, err := os.Stat(secretsFile); err == nil {
		secrets, err = loadEnvFile(secretsFile)
		if err != nil {
			return fmt.Errorf("failed to load secrets.env: %w", err)
		}
	}

	if err := decodeYAMLFile(path, secrets, out); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if env != "" && env != "base" {
		envFile := filepath.Join(dir, fmt.Sprintf("%s.yaml", env))
		if err := decodeYAMLFile(envFile, secrets, out); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s.yaml: %w", env, err)
		}
	}

	return nil
}

// decodeYAMLFile decodes onto out, so fields absent from the file keep their values.
func decodeYAMLFile(path string, secrets map[string]string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	expanded := substituteString(string(data), secrets)
	if strings.TrimSpace(expanded) == "" {
		return nil
	}
	return yaml.Unmarshal([]byte(expanded), out)
}

// loadEnvFile parses KEY=VALUE lines
func loadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			value = strings.Trim(value, `"`)
			value = strings.Trim(value, `'`)
			env[key] = value
		}
	}

	return env, nil
}

// substituteString replaces ${VAR} placeholders
func substituteString(s string, secrets map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, func(key string) string {
		if v, ok := secrets[key]; ok {
			return v
		}
		return os.Getenv(key)
	})
}

// GetEnv returns the environment value or defaultValue when unset
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetConfigEnv returns CONFIG_ENV, defaulting to local
func GetConfigEnv() string {
	return GetEnv("CONFIG_ENV", "local")
}
