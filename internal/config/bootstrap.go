package config

import (
	"errors"
	"os"
	"path/filepath"
)

// defaultYAML is written on first run when no packaged default config is
// available next to the binary.
const defaultYAML = `app:
  port: 38472
  data_dir: "."

search:
  default_limit: 20
  max_limit: 100
  page_size: 10

fetch:
  host_rate_per_sec: 1.0
  host_burst: 2

sources:
  alljobs:
    enabled: true
    weight: 40
    rate_per_min: 30
  drushim:
    enabled: false
    weight: 30
    rate_per_min: 20
  gsearch:
    enabled: false
    weight: 20
    rate_per_min: 10
    cx: ""
    site: ""
  synthetic:
    enabled: true
    weight: 10
    rate_per_min: 0

alerts:
  enabled: false
  keywords: []
  location: ""
  interval_minutes: 60
  telegram_chat_id: 0
`

// EnsureUserConfig makes sure a writable config exists under dataDir,
// seeding it from defaultPath if present, else from the built-in default.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	seed := []byte(defaultYAML)
	if defaultPath != "" {
		if b, err := os.ReadFile(defaultPath); err == nil {
			seed = b
		}
	}

	if err := os.WriteFile(userPath, seed, 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}
